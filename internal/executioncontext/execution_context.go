package executioncontext

import (
	"context"
	"log/slog"
	"time"
)

// ExecutionContext contains execution context for one monitoring run. This pattern
// enables type-safe passing of state to check operations, which receive an
// ExecutionContext instead of loose parameters.
//
// The ExecutionContext contains:
//   - Ctx: the run-scoped context, carrying cancellation for the whole run
//   - RunID: a unique id attached to the report and every log line
//   - Logger: a run-scoped logger with enriched fields (run_id, etc.)
//   - StartedAt: the run start time used for report timestamps
type ExecutionContext struct {
	Ctx       context.Context
	RunID     string
	Logger    *slog.Logger
	StartedAt time.Time
}

func NewExecutionContext(
	ctx context.Context,
	runID string,
	logger *slog.Logger,
) *ExecutionContext {
	return &ExecutionContext{
		Ctx:       ctx,
		RunID:     runID,
		Logger:    logger,
		StartedAt: time.Now(),
	}
}
