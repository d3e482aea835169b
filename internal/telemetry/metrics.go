package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/pkg/api"
)

const defaultMetricsJob = "model_health_check"

// RunMetrics collects per-run check metrics on a private registry and
// pushes them to a Pushgateway at the end of the run. There is nothing
// to scrape in a run-to-completion job.
type RunMetrics struct {
	registry  *prometheus.Registry
	latency   *prometheus.HistogramVec
	outcomes  *prometheus.CounterVec
	errorRate prometheus.Gauge
	verdict   prometheus.Gauge
}

func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthcheck_endpoint_latency_seconds",
			Help:    "Observed latency per checked endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "healthcheck_endpoint_outcomes_total",
			Help: "Check outcomes by category and outcome.",
		}, []string{"category", "outcome"}),
		errorRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthcheck_error_rate",
			Help: "Failed endpoints over total endpoints for the run.",
		}),
		verdict: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthcheck_run_failed",
			Help: "1 when the run verdict is fail, 0 otherwise.",
		}),
	}
	m.registry.MustRegister(m.latency, m.outcomes, m.errorRate, m.verdict)
	return m
}

// Observe records one finished run.
func (m *RunMetrics) Observe(report *api.HealthReport) {
	for _, result := range report.Results {
		m.latency.WithLabelValues(result.Category.String()).Observe(result.Latency.Seconds())
		m.outcomes.WithLabelValues(result.Category.String(), result.Outcome.String()).Inc()
	}
	m.errorRate.Set(report.Summary.ErrorRate)
	if report.Verdict == api.VerdictFail {
		m.verdict.Set(1)
	} else {
		m.verdict.Set(0)
	}
}

// Push ships the run metrics to the configured Pushgateway.
func (m *RunMetrics) Push(ctx *executioncontext.ExecutionContext, cfg *config.MetricsConfig) error {
	job := cfg.Job
	if job == "" {
		job = defaultMetricsJob
	}
	err := push.New(cfg.PushgatewayURL, job).
		Gatherer(m.registry).
		Push()
	if err != nil {
		return serviceerrors.NewServiceError(messages.MetricsPushFailed, "Gateway", cfg.PushgatewayURL, "Error", err.Error())
	}
	ctx.Logger.Info("Pushed run metrics", "gateway", cfg.PushgatewayURL, "job", job)
	return nil
}
