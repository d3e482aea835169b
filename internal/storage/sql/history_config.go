package sql

import (
	"fmt"
	"time"
)

// HistoryConfig is decoded from the generic "history" configuration
// block. Only the store needs to know its shape.
type HistoryConfig struct {
	Enabled         bool           `mapstructure:"enabled,omitempty"`
	Driver          string         `mapstructure:"driver"`
	URL             string         `mapstructure:"url"`
	ConnMaxLifetime *time.Duration `mapstructure:"conn_max_lifetime,omitempty"`
	MaxIdleConns    *int           `mapstructure:"max_idle_conns,omitempty"`
	MaxOpenConns    *int           `mapstructure:"max_open_conns,omitempty"`
	TableName       string         `mapstructure:"table_name,omitempty"`
}

func (hc *HistoryConfig) CheckConfig() error {
	if hc.Driver == "" {
		return fmt.Errorf("missing history driver")
	}
	if hc.URL == "" {
		return fmt.Errorf("missing history url")
	}
	if hc.TableName == "" {
		hc.TableName = "health_reports"
	}
	return nil
}
