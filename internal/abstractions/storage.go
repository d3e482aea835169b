package abstractions

import (
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/pkg/api"
)

// HistoryStore interface defines the methods for persisting health reports across
// runs. This interface must be decoupled from the checker itself; the checker
// produces reports whether or not a store is configured.

type HistoryStore interface {
	SaveReport(ctx *executioncontext.ExecutionContext, report *api.HealthReport) error
	RecentReports(ctx *executioncontext.ExecutionContext, limit int) ([]api.HealthReport, error)
	Close() error
}
