package constants

const (
	MESSAGE_CODE_CHECK_RUN_STARTED   = "check_run_started"
	MESSAGE_CODE_CHECK_RUN_COMPLETED = "check_run_completed"
	MESSAGE_CODE_CHECK_RUN_FAILED    = "check_run_failed"
	MESSAGE_CODE_REPORT_WRITTEN      = "report_written"
	MESSAGE_CODE_REPORT_PERSISTED    = "report_persisted"
)
