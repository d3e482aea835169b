package storage

import (
	"log/slog"

	"github.com/model-health/model-health/internal/abstractions"
	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/storage/sql"
)

// NewHistoryStore creates the report history store from the
// configuration. It currently uses the SQL implementation. A nil store
// means history is disabled; the checker runs unchanged without one.
func NewHistoryStore(serviceConfig *config.Config, logger *slog.Logger) (abstractions.HistoryStore, error) {
	if serviceConfig.History == nil {
		return nil, nil
	}
	if enabled, ok := serviceConfig.History["enabled"].(bool); !ok || !enabled {
		return nil, nil
	}
	return sql.NewStore(serviceConfig.History, logger)
}
