package config

import (
	"bytes"
	_ "embed"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"

	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/internal/validation"
)

//go:embed config_schema.json
var configSchema string

// ModelEndpointsEnvVar lists comma-separated model endpoint URLs and is
// consulted when no configuration file is given.
const ModelEndpointsEnvVar = "MODEL_ENDPOINTS"

const (
	defaultExpectedResponseTime = 2.0
	defaultMaxErrorRate         = 0.05
	defaultTimeout              = 30
	defaultConcurrency          = 4
)

// defaultModelEndpoint is checked when neither a configuration file nor
// MODEL_ENDPOINTS names any target.
const defaultModelEndpoint = "http://localhost:8000/predict"

// DefaultTestQueries returns the queries sent to model endpoints when
// the configuration does not override them.
func DefaultTestQueries() []string {
	return []string{
		"Hello, how are you?",
		"What is the capital of France?",
		"Explain quantum computing in simple terms.",
	}
}

// Load reads the Monitoring Configuration from the given file path. When
// path is empty the configuration is assembled from defaults and the
// MODEL_ENDPOINTS environment variable. Every failure here is a fatal
// configuration error; no network request has been made yet.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if path == "" {
		return loadFromEnvironment(logger)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, serviceerrors.NewServiceError(messages.ConfigFileNotFound, "Path", path, "Error", err.Error())
	}

	if err := checkSchema(raw); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, serviceerrors.NewServiceError(messages.ConfigParseFailed, "Path", path, "Error", err.Error())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, serviceerrors.NewServiceError(messages.ConfigParseFailed, "Path", path, "Error", err.Error())
	}

	if err := checkConfig(&cfg); err != nil {
		return nil, err
	}

	logger.Info("Loaded configuration", "path", path,
		"model_endpoints", len(cfg.ModelEndpoints),
		"pages_endpoints", len(cfg.GitHubPagesEndpoints),
		"api_endpoints", len(cfg.GitHubAPIEndpoints))
	return &cfg, nil
}

func loadFromEnvironment(logger *slog.Logger) (*Config, error) {
	cfg := &Config{
		ExpectedResponseTime: defaultExpectedResponseTime,
		MaxErrorRate:         defaultMaxErrorRate,
		Timeout:              defaultTimeout,
		Concurrency:          defaultConcurrency,
	}
	raw := os.Getenv(ModelEndpointsEnvVar)
	if raw == "" {
		raw = defaultModelEndpoint
	}
	for _, url := range strings.Split(raw, ",") {
		if url = strings.TrimSpace(url); url != "" {
			cfg.ModelEndpoints = append(cfg.ModelEndpoints, url)
		}
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	logger.Info("Loaded configuration from environment", "model_endpoints", len(cfg.ModelEndpoints))
	return cfg, nil
}

// checkSchema runs the structural validation against the embedded JSON
// schema before any decoding happens, so that malformed input gets a
// precise error instead of a mapstructure one.
func checkSchema(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return serviceerrors.NewServiceError(messages.ConfigSchemaInvalid, "Error", err.Error())
	}
	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			descriptions = append(descriptions, resultError.String())
		}
		return serviceerrors.NewServiceError(messages.ConfigSchemaInvalid, "Error", strings.Join(descriptions, "; "))
	}
	return nil
}

func checkConfig(cfg *Config) error {
	validate, err := validation.NewValidator()
	if err != nil {
		return serviceerrors.NewServiceError(messages.ConfigValidationFailed, "Error", err.Error())
	}
	if err := validate.Struct(cfg); err != nil {
		return serviceerrors.NewServiceError(messages.ConfigValidationFailed, "Error", err.Error())
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("expected_response_time", defaultExpectedResponseTime)
	v.SetDefault("max_error_rate", defaultMaxErrorRate)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("concurrency", defaultConcurrency)
}
