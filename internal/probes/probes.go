package probes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/model-health/model-health/internal/abstractions"
	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/pkg/api"
)

// UserAgent identifies this client on every outbound request. GitHub
// requires an identifying User-Agent on all API calls.
const UserAgent = "model-health-check/1.0 (+https://github.com/model-health/model-health)"

// maxBodyBytes bounds how much of a response body is read for payload
// inspection and error excerpts.
const maxBodyBytes = 1 << 20

// NewHTTPClient builds the shared probe client. Timeouts are enforced
// per request through the context, not on the client, because each
// endpoint carries its own timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// ForConfig builds the probe set for one run, keyed by endpoint category.
func ForConfig(cfg *config.Config, client *http.Client) map[api.EndpointCategory]abstractions.Probe {
	set := make(map[api.EndpointCategory]abstractions.Probe, 3)
	for _, probe := range []abstractions.Probe{
		NewModelProbe(client, cfg.TestQueries, cfg.ExpectedResponseTimeDuration()),
		NewPagesProbe(client),
		NewGitHubProbe(client),
	} {
		set[probe.Category()] = probe
	}
	return set
}

// timedRequest issues the request under the endpoint timeout and returns
// the response, a bounded copy of its body, and the observed latency.
func timedRequest(ctx *executioncontext.ExecutionContext, client *http.Client, req *http.Request, timeout time.Duration) (*http.Response, []byte, time.Duration, error) {
	reqCtx, cancel := context.WithTimeout(ctx.Ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Do(req.WithContext(reqCtx))
	latency := time.Since(start)
	if err != nil {
		return nil, nil, latency, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	latency = time.Since(start)
	if err != nil {
		return resp, nil, latency, err
	}
	return resp, body, latency, nil
}

// networkFailure classifies a transport-level error into a check result.
// Timeouts get their own reason so the report distinguishes a slow
// endpoint from an unreachable one.
func networkFailure(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint, latency time.Duration, err error) api.CheckResult {
	reason := messages.GetErrorMesssage(messages.EndpointUnreachable, "URL", endpoint.URL, "Error", err.Error())
	if errors.Is(err, context.DeadlineExceeded) {
		reason = messages.GetErrorMesssage(messages.EndpointTimeout, "URL", endpoint.URL, "Timeout", endpoint.Timeout)
	}
	ctx.Logger.Warn("Endpoint check errored",
		constants.LOG_URL, endpoint.URL,
		constants.LOG_CATEGORY, endpoint.Category.String(),
		constants.LOG_ERROR, err.Error())
	return api.CheckResult{
		URL:      endpoint.URL,
		Category: endpoint.Category,
		Outcome:  api.OutcomeError,
		Latency:  latency,
		Reason:   reason,
	}
}
