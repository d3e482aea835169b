package constants

// Log field name constants
const (
	LOG_RUN_ID    = "run_id"
	LOG_URL       = "url"
	LOG_CATEGORY  = "category"
	LOG_OUTCOME   = "outcome"
	LOG_RESP_CODE = "code"
	LOG_ERROR     = "error"
	LOG_REASON    = "reason"
	LOG_LATENCY   = "latency"
	LOG_ELAPSED   = "elapsed"
	LOG_VERDICT   = "verdict"
	LOG_MSG_CODE  = "message_code"
)
