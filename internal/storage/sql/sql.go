package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	// import the postgres driver - "pgx"
	_ "github.com/jackc/pgx/v5/stdlib"

	// import the sqlite driver - "sqlite"
	_ "modernc.org/sqlite"

	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	se "github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/pkg/api"
)

const (
	// These are the only drivers currently supported
	SQLITE_DRIVER   = "sqlite"
	POSTGRES_DRIVER = "pgx"
)

type SQLHistoryStore struct {
	historyConfig *HistoryConfig
	pool          *sql.DB
	logger        *slog.Logger
}

func NewStore(config map[string]any, logger *slog.Logger) (*SQLHistoryStore, error) {
	var historyConfig HistoryConfig
	if err := mapstructure.Decode(config, &historyConfig); err != nil {
		return nil, se.NewStorageErrorWithError(err, "decoding history configuration")
	}
	if err := historyConfig.CheckConfig(); err != nil {
		return nil, se.NewStorageError("%s", err.Error())
	}

	// check that the driver is supported
	switch historyConfig.Driver {
	case SQLITE_DRIVER:
		break
	case POSTGRES_DRIVER:
		break
	default:
		return nil, se.NewStorageError("unsupported history driver: %s", historyConfig.Driver)
	}

	logger.Info("Creating SQL history store", "driver", historyConfig.Driver, "url", historyConfig.URL)

	pool, err := otelsql.Open(historyConfig.Driver, historyConfig.URL)
	if err != nil {
		return nil, se.NewStorageErrorWithError(err, "opening history store")
	}

	if historyConfig.ConnMaxLifetime != nil {
		pool.SetConnMaxLifetime(*historyConfig.ConnMaxLifetime)
	}
	if historyConfig.MaxIdleConns != nil {
		pool.SetMaxIdleConns(*historyConfig.MaxIdleConns)
	}
	if historyConfig.MaxOpenConns != nil {
		pool.SetMaxOpenConns(*historyConfig.MaxOpenConns)
	}

	store := &SQLHistoryStore{
		historyConfig: &historyConfig,
		pool:          pool,
		logger:        logger,
	}

	// ping the database to verify the DSN provided by the user is valid and the server is accessible
	if err := store.Ping(1 * time.Second); err != nil {
		return nil, se.NewStorageErrorWithError(err, "pinging history store")
	}

	// ensure the schema is created
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

// Ping the database to verify the DSN provided by the user is valid and
// the server accessible.
func (s *SQLHistoryStore) Ping(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return s.pool.PingContext(ctx)
}

func (s *SQLHistoryStore) Close() error {
	return s.pool.Close()
}

func (s *SQLHistoryStore) ensureSchema() error {
	schema, err := createSchemaStatement(s.historyConfig.Driver, s.historyConfig.TableName)
	if err != nil {
		return err
	}
	if _, err := s.pool.ExecContext(context.Background(), schema); err != nil {
		return se.NewStorageErrorWithError(err, "creating history schema")
	}
	return nil
}

// SaveReport stores one health report. The full report is stored as a
// JSON entity next to the columns used for querying trends.
func (s *SQLHistoryStore) SaveReport(ctx *executioncontext.ExecutionContext, report *api.HealthReport) error {
	entityJSON, err := json.Marshal(report)
	if err != nil {
		return se.NewStorageErrorWithError(err, "marshalling report %s", report.RunID)
	}
	statement, err := createAddEntityStatement(s.historyConfig.Driver, s.historyConfig.TableName)
	if err != nil {
		return err
	}
	s.logger.Info("Persisting health report",
		constants.LOG_MSG_CODE, constants.MESSAGE_CODE_REPORT_PERSISTED,
		"run_id", report.RunID, "verdict", report.Verdict.String())
	_, err = s.pool.ExecContext(ctx.Ctx, statement,
		report.RunID, report.FinishedAt, report.Verdict.String(), report.Summary.ErrorRate, string(entityJSON))
	if err != nil {
		return se.NewStorageErrorWithError(err, "persisting report %s", report.RunID)
	}
	return nil
}

// RecentReports returns up to limit reports, newest first. Used for
// trend inspection across runs.
func (s *SQLHistoryStore) RecentReports(ctx *executioncontext.ExecutionContext, limit int) ([]api.HealthReport, error) {
	statement, err := createListEntitiesStatement(s.historyConfig.Driver, s.historyConfig.TableName)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.QueryContext(ctx.Ctx, statement, limit)
	if err != nil {
		return nil, se.NewStorageErrorWithError(err, "listing reports")
	}
	defer rows.Close()

	reports := make([]api.HealthReport, 0, limit)
	for rows.Next() {
		var entityJSON string
		if err := rows.Scan(&entityJSON); err != nil {
			return nil, se.NewStorageErrorWithError(err, "scanning report row")
		}
		var report api.HealthReport
		if err := json.Unmarshal([]byte(entityJSON), &report); err != nil {
			s.logger.Error("Failed to unmarshal stored report", "error", err)
			return nil, se.NewStorageErrorWithError(err, "unmarshalling stored report")
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, se.NewStorageErrorWithError(err, "listing reports")
	}
	return reports, nil
}
