package probes

import (
	"net/http"

	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/pkg/api"
)

// PagesProbe checks published static-site endpoints. Rate-limiting
// responses (403, 429) are reported as throttled, not failed, so that
// transient provider limits do not raise false alarms.
type PagesProbe struct {
	client *http.Client
}

func NewPagesProbe(client *http.Client) *PagesProbe {
	return &PagesProbe{client: client}
}

func (p *PagesProbe) Category() api.EndpointCategory {
	return api.CategoryPages
}

func (p *PagesProbe) Check(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint) api.CheckResult {
	req, err := http.NewRequest(http.MethodGet, endpoint.URL, nil)
	if err != nil {
		return networkFailure(ctx, endpoint, 0, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, _, latency, err := timedRequest(ctx, p.client, req, endpoint.Timeout)
	if err != nil {
		return networkFailure(ctx, endpoint, latency, err)
	}

	result := api.CheckResult{
		URL:        endpoint.URL,
		Category:   api.CategoryPages,
		HTTPStatus: resp.StatusCode,
		Latency:    latency,
	}

	switch resp.StatusCode {
	case constants.HTTPCodeOK:
		result.Outcome = api.OutcomePass
	case constants.HTTPCodeForbidden, constants.HTTPCodeTooManyRequests:
		result.Outcome = api.OutcomeThrottled
		ctx.Logger.Info("Pages endpoint throttled",
			constants.LOG_URL, endpoint.URL,
			constants.LOG_RESP_CODE, resp.StatusCode)
	default:
		result.Outcome = api.OutcomeFail
		result.Reason = messages.GetErrorMesssage(messages.UnexpectedStatusCode, "URL", endpoint.URL, "Code", resp.StatusCode)
		ctx.Logger.Warn("Pages endpoint check failed",
			constants.LOG_URL, endpoint.URL,
			constants.LOG_RESP_CODE, resp.StatusCode)
	}
	return result
}
