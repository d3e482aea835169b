package probes

import (
	"net/http"

	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/pkg/api"
)

// GitHubProbe checks GitHub API endpoints with an authenticated request.
// A 404 means the monitored resource is optional and absent, which is
// not a failure. A 403 with an exhausted rate-limit budget is throttling;
// any other 401/403 is a hard authentication failure that flips the
// aggregate verdict on its own.
type GitHubProbe struct {
	client *http.Client
}

func NewGitHubProbe(client *http.Client) *GitHubProbe {
	return &GitHubProbe{client: client}
}

func (p *GitHubProbe) Category() api.EndpointCategory {
	return api.CategoryAPI
}

func (p *GitHubProbe) Check(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint) api.CheckResult {
	req, err := http.NewRequest(http.MethodGet, endpoint.URL, nil)
	if err != nil {
		return networkFailure(ctx, endpoint, 0, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if endpoint.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+endpoint.AuthToken)
	}

	resp, _, latency, err := timedRequest(ctx, p.client, req, endpoint.Timeout)
	if err != nil {
		return networkFailure(ctx, endpoint, latency, err)
	}

	result := api.CheckResult{
		URL:        endpoint.URL,
		Category:   api.CategoryAPI,
		HTTPStatus: resp.StatusCode,
		Latency:    latency,
	}

	switch {
	case resp.StatusCode == constants.HTTPCodeOK:
		result.Outcome = api.OutcomePass
	case resp.StatusCode == constants.HTTPCodeNotFound:
		// optional resource, absence is acceptable
		result.Outcome = api.OutcomeAbsent
	case resp.StatusCode == constants.HTTPCodeTooManyRequests,
		resp.StatusCode == constants.HTTPCodeForbidden && rateLimited(resp):
		result.Outcome = api.OutcomeThrottled
		ctx.Logger.Info("API endpoint throttled",
			constants.LOG_URL, endpoint.URL,
			constants.LOG_RESP_CODE, resp.StatusCode)
	case resp.StatusCode == constants.HTTPCodeUnauthorized || resp.StatusCode == constants.HTTPCodeForbidden:
		result.Outcome = api.OutcomeFail
		result.HardFailure = true
		result.Reason = messages.GetErrorMesssage(messages.AuthenticationFailed, "URL", endpoint.URL, "Code", resp.StatusCode)
		ctx.Logger.Warn("API endpoint authentication failed",
			constants.LOG_URL, endpoint.URL,
			constants.LOG_RESP_CODE, resp.StatusCode)
	default:
		result.Outcome = api.OutcomeFail
		result.Reason = messages.GetErrorMesssage(messages.UnexpectedStatusCode, "URL", endpoint.URL, "Code", resp.StatusCode)
		ctx.Logger.Warn("API endpoint check failed",
			constants.LOG_URL, endpoint.URL,
			constants.LOG_RESP_CODE, resp.StatusCode)
	}
	return result
}

// rateLimited reports whether a 403 is GitHub rate limiting rather than
// an authorization problem. GitHub signals exhaustion through the
// X-RateLimit-Remaining header.
func rateLimited(resp *http.Response) bool {
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}
