package checker

import (
	"net/http"
	"sync"
	"time"

	"github.com/model-health/model-health/internal/abstractions"
	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/probes"
	"github.com/model-health/model-health/pkg/api"
)

// Checker evaluates every configured endpoint and aggregates the Health
// Report for one run.
type Checker struct {
	cfg      *config.Config
	probeSet map[api.EndpointCategory]abstractions.Probe
}

func New(cfg *config.Config, client *http.Client) *Checker {
	return &Checker{
		cfg:      cfg,
		probeSet: probes.ForConfig(cfg, client),
	}
}

// NewWithProbes is the constructor used by tests to swap in probe fakes.
func NewWithProbes(cfg *config.Config, probeSet map[api.EndpointCategory]abstractions.Probe) *Checker {
	return &Checker{cfg: cfg, probeSet: probeSet}
}

// Run probes all endpoints with a bounded worker pool and aggregates the
// results. Endpoint checks are independent; a failing or unreachable
// endpoint never aborts the rest. Results keep the configured endpoint
// order regardless of completion order.
func (c *Checker) Run(ctx *executioncontext.ExecutionContext) (*api.HealthReport, error) {
	endpoints, err := c.cfg.Endpoints()
	if err != nil {
		return nil, err
	}

	ctx.Logger.Info("Starting check run",
		constants.LOG_MSG_CODE, constants.MESSAGE_CODE_CHECK_RUN_STARTED,
		constants.LOG_RUN_ID, ctx.RunID,
		"endpoints", len(endpoints),
		"concurrency", c.cfg.Concurrency)

	results := make([]api.CheckResult, len(endpoints))

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.cfg.Concurrency)
	for i, endpoint := range endpoints {
		wg.Add(1)
		go func(i int, endpoint api.Endpoint) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = c.checkOne(ctx, endpoint)
		}(i, endpoint)
	}
	wg.Wait()

	report := c.aggregate(ctx, results)
	messageCode := constants.MESSAGE_CODE_CHECK_RUN_COMPLETED
	if report.Verdict == api.VerdictFail {
		messageCode = constants.MESSAGE_CODE_CHECK_RUN_FAILED
	}
	ctx.Logger.Info("Check run completed",
		constants.LOG_MSG_CODE, messageCode,
		constants.LOG_RUN_ID, ctx.RunID,
		constants.LOG_VERDICT, report.Verdict.String(),
		"error_rate", report.Summary.ErrorRate,
		constants.LOG_ELAPSED, report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

func (c *Checker) checkOne(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint) api.CheckResult {
	probe, ok := c.probeSet[endpoint.Category]
	if !ok {
		// the config schema should make this unreachable
		return api.CheckResult{
			URL:      endpoint.URL,
			Category: endpoint.Category,
			Outcome:  api.OutcomeError,
			Reason:   "no probe registered for category " + endpoint.Category.String(),
		}
	}
	result := probe.Check(ctx, endpoint)
	ctx.Logger.Debug("Endpoint checked",
		constants.LOG_URL, result.URL,
		constants.LOG_CATEGORY, result.Category.String(),
		constants.LOG_OUTCOME, result.Outcome.String(),
		constants.LOG_LATENCY, result.Latency)
	return result
}

// aggregate computes the summary statistics and the overall verdict.
// The error rate is failed endpoints over total endpoints; throttled and
// absent outcomes are non-failures. A hard failure (rejected credentials
// on an API endpoint) flips the verdict regardless of the rate; anything
// else only flips it when the rate exceeds the configured maximum. An
// empty endpoint set passes vacuously.
func (c *Checker) aggregate(ctx *executioncontext.ExecutionContext, results []api.CheckResult) *api.HealthReport {
	summary := api.ReportSummary{Total: len(results)}
	hardFailure := false
	failures := 0
	var totalLatency time.Duration

	for _, result := range results {
		totalLatency += result.Latency
		if result.Outcome.CountsAsFailure() {
			failures++
		}
		switch result.Outcome {
		case api.OutcomePass:
			summary.Passed++
		case api.OutcomeFail:
			summary.Failed++
		case api.OutcomeError:
			summary.Errored++
		case api.OutcomeThrottled:
			summary.Throttled++
		case api.OutcomeAbsent:
			summary.Absent++
		}
		if result.HardFailure {
			hardFailure = true
		}
	}

	if summary.Total > 0 {
		summary.ErrorRate = float64(failures) / float64(summary.Total)
		summary.AvgLatency = totalLatency / time.Duration(summary.Total)
	}

	verdict := api.VerdictPass
	if hardFailure || summary.ErrorRate > c.cfg.MaxErrorRate {
		verdict = api.VerdictFail
	}

	return &api.HealthReport{
		RunID:      ctx.RunID,
		StartedAt:  ctx.StartedAt,
		FinishedAt: time.Now(),
		Verdict:    verdict,
		Summary:    summary,
		Results:    results,
	}
}
