package config

import (
	"os"
	"time"

	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/pkg/api"
)

// Config is the Monitoring Configuration. It is loaded once per
// invocation and immutable thereafter.
type Config struct {
	ModelEndpoints       []string          `mapstructure:"model_endpoints" json:"model_endpoints,omitempty"`
	GitHubPagesEndpoints []string          `mapstructure:"github_pages_endpoints" json:"github_pages_endpoints,omitempty"`
	GitHubAPIEndpoints   []string          `mapstructure:"github_api_endpoints" json:"github_api_endpoints,omitempty"`
	ExpectedResponseTime float64           `mapstructure:"expected_response_time" json:"expected_response_time" validate:"gt=0"`
	MaxErrorRate         float64           `mapstructure:"max_error_rate" json:"max_error_rate" validate:"fraction"`
	TestQueries          []string          `mapstructure:"test_queries" json:"test_queries,omitempty"`
	APIKeys              map[string]string `mapstructure:"api_keys" json:"api_keys,omitempty"`
	Timeout              int               `mapstructure:"timeout" json:"timeout" validate:"gt=0"`
	// Predicates maps an endpoint URL to a JSONPath expression that must
	// resolve in the response body of that model endpoint.
	Predicates  map[string]string `mapstructure:"predicates" json:"predicates,omitempty"`
	Concurrency int               `mapstructure:"concurrency" json:"concurrency" validate:"gte=1"`

	// History is decoded by the store implementation itself, the way a
	// driver-specific block should be.
	History   map[string]any   `mapstructure:"history,omitempty" json:"history,omitempty"`
	Report    *ReportConfig    `mapstructure:"report,omitempty" json:"report,omitempty"`
	Telemetry *TelemetryConfig `mapstructure:"telemetry,omitempty" json:"telemetry,omitempty"`
}

func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c *Config) ExpectedResponseTimeDuration() time.Duration {
	return time.Duration(c.ExpectedResponseTime * float64(time.Second))
}

// Endpoints expands the configured URL lists into the ordered endpoint
// collection: models first, then pages, then API endpoints. API key
// references are resolved from the environment here so that the rest of
// the code never sees a secret reference.
func (c *Config) Endpoints() ([]api.Endpoint, error) {
	endpoints := make([]api.Endpoint, 0, len(c.ModelEndpoints)+len(c.GitHubPagesEndpoints)+len(c.GitHubAPIEndpoints))
	for _, url := range c.ModelEndpoints {
		endpoint := api.Endpoint{
			URL:      url,
			Category: api.CategoryModel,
			Timeout:  c.TimeoutDuration(),
		}
		if predicate, ok := c.Predicates[url]; ok {
			endpoint.Predicate = predicate
		}
		token, err := c.resolveToken(url)
		if err != nil {
			return nil, err
		}
		endpoint.AuthToken = token
		endpoints = append(endpoints, endpoint)
	}
	for _, url := range c.GitHubPagesEndpoints {
		endpoints = append(endpoints, api.Endpoint{
			URL:      url,
			Category: api.CategoryPages,
			Timeout:  c.TimeoutDuration(),
		})
	}
	for _, url := range c.GitHubAPIEndpoints {
		token, err := c.resolveToken(url)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, api.Endpoint{
			URL:       url,
			Category:  api.CategoryAPI,
			AuthToken: token,
			Timeout:   c.TimeoutDuration(),
		})
	}
	return endpoints, nil
}

// resolveToken looks up the api_keys entry for the URL and resolves it
// as an environment variable name. A missing entry is fine (unauthenticated
// endpoint); a present entry that resolves to nothing is a configuration error.
func (c *Config) resolveToken(url string) (string, error) {
	reference, ok := c.APIKeys[url]
	if !ok || reference == "" {
		return "", nil
	}
	token := os.Getenv(reference)
	if token == "" {
		return "", serviceerrors.NewServiceError(messages.SecretNotResolved, "Reference", reference, "URL", url)
	}
	return token, nil
}
