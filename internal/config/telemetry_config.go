package config

// TelemetryConfig groups the optional tracing and metrics settings.
type TelemetryConfig struct {
	Tracing *TracingConfig `mapstructure:"tracing,omitempty" json:"tracing,omitempty"`
	Metrics *MetricsConfig `mapstructure:"metrics,omitempty" json:"metrics,omitempty"`
}

// TracingConfig selects the span exporter for the run. The stdout
// exporter is intended for debugging; the OTLP exporters ship spans to a
// collector.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled,omitempty" json:"enabled,omitempty"`
	Exporter string `mapstructure:"exporter,omitempty" json:"exporter,omitempty" validate:"omitempty,oneof=stdout otlp-grpc otlp-http"`
	Endpoint string `mapstructure:"endpoint,omitempty" json:"endpoint,omitempty"`
}

// MetricsConfig points at a Prometheus Pushgateway. A run-to-completion
// job cannot be scraped, so metrics are pushed at the end of each run.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled,omitempty" json:"enabled,omitempty"`
	PushgatewayURL string `mapstructure:"pushgateway_url" json:"pushgateway_url"`
	Job            string `mapstructure:"job,omitempty" json:"job,omitempty"`
}
