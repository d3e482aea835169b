package sql

import (
	"fmt"

	se "github.com/model-health/model-health/internal/serviceerrors"
)

// The two drivers differ in placeholder syntax and in the timestamp
// column type, so statements are built per driver.

func createSchemaStatement(driver string, tableName string) (string, error) {
	switch driver {
	case SQLITE_DRIVER:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run_id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			verdict TEXT NOT NULL,
			error_rate REAL NOT NULL,
			entity TEXT NOT NULL
		)`, tableName), nil
	case POSTGRES_DRIVER:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run_id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			verdict TEXT NOT NULL,
			error_rate DOUBLE PRECISION NOT NULL,
			entity TEXT NOT NULL
		)`, tableName), nil
	default:
		return "", se.NewStorageError("unsupported history driver: %s", driver)
	}
}

func createAddEntityStatement(driver string, tableName string) (string, error) {
	switch driver {
	case SQLITE_DRIVER:
		return fmt.Sprintf("INSERT INTO %s (run_id, created_at, verdict, error_rate, entity) VALUES (?, ?, ?, ?, ?)", tableName), nil
	case POSTGRES_DRIVER:
		return fmt.Sprintf("INSERT INTO %s (run_id, created_at, verdict, error_rate, entity) VALUES ($1, $2, $3, $4, $5)", tableName), nil
	default:
		return "", se.NewStorageError("unsupported history driver: %s", driver)
	}
}

func createListEntitiesStatement(driver string, tableName string) (string, error) {
	switch driver {
	case SQLITE_DRIVER:
		return fmt.Sprintf("SELECT entity FROM %s ORDER BY created_at DESC LIMIT ?", tableName), nil
	case POSTGRES_DRIVER:
		return fmt.Sprintf("SELECT entity FROM %s ORDER BY created_at DESC LIMIT $1", tableName), nil
	default:
		return "", se.NewStorageError("unsupported history driver: %s", driver)
	}
}
