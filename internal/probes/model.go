package probes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/PaesslerAG/jsonpath"

	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/pkg/api"
)

// predictionFields are the payload fields that mark a response as a
// recognizable prediction when no explicit predicate is configured.
var predictionFields = []string{"response", "prediction", "predictions", "outputs", "choices", "result"}

// maxTokens caps the completion size requested by test queries.
const maxTokens = 50

// ModelProbe checks model inference endpoints. The endpoint's health
// route must answer first, then every configured test query must come
// back inside the endpoint timeout and under the expected response
// time, and the body must carry a prediction payload.
type ModelProbe struct {
	client      *http.Client
	testQueries []string
	threshold   time.Duration
}

func NewModelProbe(client *http.Client, testQueries []string, threshold time.Duration) *ModelProbe {
	if len(testQueries) == 0 {
		testQueries = config.DefaultTestQueries()
	}
	return &ModelProbe{
		client:      client,
		testQueries: testQueries,
		threshold:   threshold,
	}
}

func (p *ModelProbe) Category() api.EndpointCategory {
	return api.CategoryModel
}

func (p *ModelProbe) Check(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint) api.CheckResult {
	worstLatency, lastStatus, result := p.checkHealthRoute(ctx, endpoint)
	if result != nil {
		return *result
	}

	for _, query := range p.testQueries {
		payload, err := json.Marshal(map[string]any{"query": query, "max_tokens": maxTokens})
		if err != nil {
			return networkFailure(ctx, endpoint, 0, err)
		}

		req, err := http.NewRequest(http.MethodPost, endpoint.URL, bytes.NewReader(payload))
		if err != nil {
			return networkFailure(ctx, endpoint, 0, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", UserAgent)
		if endpoint.AuthToken != "" {
			req.Header.Set("Authorization", "Bearer "+endpoint.AuthToken)
		}

		resp, body, latency, err := timedRequest(ctx, p.client, req, endpoint.Timeout)
		if err != nil {
			return networkFailure(ctx, endpoint, latency, err)
		}
		if latency > worstLatency {
			worstLatency = latency
		}
		lastStatus = resp.StatusCode

		if resp.StatusCode != constants.HTTPCodeOK {
			return p.failed(ctx, endpoint, worstLatency, resp.StatusCode,
				messages.GetErrorMesssage(messages.UnexpectedStatusCode, "URL", endpoint.URL, "Code", resp.StatusCode))
		}
		if latency > p.threshold {
			return p.failed(ctx, endpoint, worstLatency, resp.StatusCode,
				messages.GetErrorMesssage(messages.LatencyOverThreshold, "URL", endpoint.URL, "Latency", latency, "Threshold", p.threshold))
		}
		if reason := p.checkPayload(endpoint, body); reason != "" {
			return p.failed(ctx, endpoint, worstLatency, resp.StatusCode, reason)
		}
	}

	return api.CheckResult{
		URL:        endpoint.URL,
		Category:   api.CategoryModel,
		Outcome:    api.OutcomePass,
		HTTPStatus: lastStatus,
		Latency:    worstLatency,
	}
}

// checkHealthRoute asks the endpoint's health route before any
// prediction is attempted. A non-200 answer or a network error settles
// the check; otherwise the observed latency and status seed the query
// loop.
func (p *ModelProbe) checkHealthRoute(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint) (time.Duration, int, *api.CheckResult) {
	healthURL := strings.TrimRight(endpoint.URL, "/") + "/health"
	req, err := http.NewRequest(http.MethodGet, healthURL, nil)
	if err != nil {
		result := networkFailure(ctx, endpoint, 0, err)
		return 0, 0, &result
	}
	req.Header.Set("User-Agent", UserAgent)
	if endpoint.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+endpoint.AuthToken)
	}

	resp, _, latency, err := timedRequest(ctx, p.client, req, endpoint.Timeout)
	if err != nil {
		result := networkFailure(ctx, endpoint, latency, err)
		return 0, 0, &result
	}
	if resp.StatusCode != constants.HTTPCodeOK {
		result := p.failed(ctx, endpoint, latency, resp.StatusCode,
			messages.GetErrorMesssage(messages.UnexpectedStatusCode, "URL", healthURL, "Code", resp.StatusCode))
		return 0, 0, &result
	}
	if latency > p.threshold {
		result := p.failed(ctx, endpoint, latency, resp.StatusCode,
			messages.GetErrorMesssage(messages.LatencyOverThreshold, "URL", healthURL, "Latency", latency, "Threshold", p.threshold))
		return 0, 0, &result
	}
	return latency, resp.StatusCode, nil
}

// checkPayload verifies the response carries a prediction. With a
// configured predicate the JSONPath must resolve; otherwise any of the
// well-known prediction fields is accepted.
func (p *ModelProbe) checkPayload(endpoint api.Endpoint, body []byte) string {
	if endpoint.Predicate != "" {
		var document any
		if err := json.Unmarshal(body, &document); err != nil {
			return messages.GetErrorMesssage(messages.PredicateNotSatisfied, "URL", endpoint.URL, "Predicate", endpoint.Predicate, "Error", err.Error())
		}
		if _, err := jsonpath.Get(endpoint.Predicate, document); err != nil {
			return messages.GetErrorMesssage(messages.PredicateNotSatisfied, "URL", endpoint.URL, "Predicate", endpoint.Predicate, "Error", err.Error())
		}
		return ""
	}

	parsed, err := gabs.ParseJSON(body)
	if err != nil {
		return messages.GetErrorMesssage(messages.MissingPredictionPayload, "URL", endpoint.URL)
	}
	for _, field := range predictionFields {
		if parsed.ExistsP(field) {
			return ""
		}
	}
	return messages.GetErrorMesssage(messages.MissingPredictionPayload, "URL", endpoint.URL)
}

func (p *ModelProbe) failed(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint, latency time.Duration, status int, reason string) api.CheckResult {
	ctx.Logger.Warn("Model endpoint check failed",
		constants.LOG_URL, endpoint.URL,
		constants.LOG_RESP_CODE, status,
		constants.LOG_REASON, reason)
	return api.CheckResult{
		URL:        endpoint.URL,
		Category:   api.CategoryModel,
		Outcome:    api.OutcomeFail,
		HTTPStatus: status,
		Latency:    latency,
		Reason:     reason,
	}
}
