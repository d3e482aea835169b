package api

import (
	"fmt"
	"time"
)

// Outcome represents the per-endpoint check outcome enum
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
	// OutcomeError marks a network-level problem (connection refused,
	// DNS failure, timeout) rather than an assertion failure.
	OutcomeError Outcome = "error"
	// OutcomeThrottled marks a rate-limited response. The target is not
	// considered unhealthy.
	OutcomeThrottled Outcome = "throttled"
	// OutcomeAbsent marks an optional resource that does not exist (404
	// on an API endpoint). Not a failure.
	OutcomeAbsent Outcome = "absent"
)

func (o Outcome) String() string {
	return string(o)
}

func GetOutcome(s string) (Outcome, error) {
	switch s {
	case string(OutcomePass):
		return OutcomePass, nil
	case string(OutcomeFail):
		return OutcomeFail, nil
	case string(OutcomeError):
		return OutcomeError, nil
	case string(OutcomeThrottled):
		return OutcomeThrottled, nil
	case string(OutcomeAbsent):
		return OutcomeAbsent, nil
	default:
		return Outcome(s), fmt.Errorf("invalid outcome: %s", s)
	}
}

// CountsAsFailure reports whether the outcome contributes to the
// aggregate error rate. Throttled and absent outcomes are explicitly
// non-failures.
func (o Outcome) CountsAsFailure() bool {
	return o == OutcomeFail || o == OutcomeError
}

// Verdict represents the aggregate run verdict
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

func (v Verdict) String() string {
	return string(v)
}

// CheckResult represents the outcome of probing a single endpoint
type CheckResult struct {
	URL        string           `json:"url" validate:"required"`
	Category   EndpointCategory `json:"category" validate:"required"`
	Outcome    Outcome          `json:"outcome" validate:"required"`
	HTTPStatus int              `json:"http_status,omitempty"`
	Latency    time.Duration    `json:"latency_ns"`
	Reason     string           `json:"reason,omitempty"`
	// HardFailure marks a failure that flips the aggregate verdict on
	// its own, independent of the error-rate threshold. Authentication
	// failures on API endpoints are hard.
	HardFailure bool `json:"hard_failure,omitempty"`
}

// ReportSummary represents aggregate statistics over one run
type ReportSummary struct {
	Total      int           `json:"total"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Errored    int           `json:"errored"`
	Throttled  int           `json:"throttled"`
	Absent     int           `json:"absent"`
	ErrorRate  float64       `json:"error_rate"`
	AvgLatency time.Duration `json:"avg_latency_ns"`
}

// HealthReport represents the aggregated result of one monitoring run
type HealthReport struct {
	RunID      string        `json:"run_id" validate:"required"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Verdict    Verdict       `json:"verdict" validate:"required,oneof=pass fail"`
	Summary    ReportSummary `json:"summary"`
	Results    []CheckResult `json:"results" validate:"omitempty,dive"`
}
