package constants

// Process exit codes consumed by the invoking scheduler
const (
	ExitOK           = 0
	ExitChecksFailed = 1
	ExitConfigError  = 2
)
