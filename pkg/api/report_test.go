package api_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/model-health/model-health/pkg/api"
)

func sampleReport() *api.HealthReport {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &api.HealthReport{
		RunID:      "run-123",
		StartedAt:  now,
		FinishedAt: now.Add(3 * time.Second),
		Verdict:    api.VerdictFail,
		Summary: api.ReportSummary{
			Total:     3,
			Passed:    1,
			Failed:    1,
			Throttled: 1,
			ErrorRate: 1.0 / 3.0,
		},
		Results: []api.CheckResult{
			{URL: "https://m.example.com", Category: api.CategoryModel, Outcome: api.OutcomePass, HTTPStatus: 200, Latency: 120 * time.Millisecond},
			{URL: "https://p.example.com", Category: api.CategoryPages, Outcome: api.OutcomeThrottled, HTTPStatus: 429},
			{URL: "https://a.example.com", Category: api.CategoryAPI, Outcome: api.OutcomeFail, HTTPStatus: 401, Reason: "rejected credentials", HardFailure: true},
		},
	}
}

func TestHealthReportRoundTripPreservesVerdictAndOutcomes(t *testing.T) {
	original := sampleReport()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}
	var reloaded api.HealthReport
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("failed to unmarshal report: %v", err)
	}

	if reloaded.Verdict != original.Verdict {
		t.Fatalf("expected verdict %s, got %s", original.Verdict, reloaded.Verdict)
	}
	if len(reloaded.Results) != len(original.Results) {
		t.Fatalf("expected %d results, got %d", len(original.Results), len(reloaded.Results))
	}
	for i, result := range original.Results {
		if reloaded.Results[i].Outcome != result.Outcome {
			t.Fatalf("result %d: expected outcome %s, got %s", i, result.Outcome, reloaded.Results[i].Outcome)
		}
		if reloaded.Results[i].HardFailure != result.HardFailure {
			t.Fatalf("result %d: hard failure flag not preserved", i)
		}
	}
}

func TestGetOutcomeRejectsUnknownValue(t *testing.T) {
	if _, err := api.GetOutcome("sideways"); err == nil {
		t.Fatal("expected an error for an unknown outcome")
	}
	outcome, err := api.GetOutcome("throttled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != api.OutcomeThrottled {
		t.Fatalf("expected throttled, got %s", outcome)
	}
}

func TestGetEndpointCategoryRejectsUnknownValue(t *testing.T) {
	if _, err := api.GetEndpointCategory("queue"); err == nil {
		t.Fatal("expected an error for an unknown category")
	}
}

func TestOutcomeFailureAccounting(t *testing.T) {
	failing := []api.Outcome{api.OutcomeFail, api.OutcomeError}
	for _, outcome := range failing {
		if !outcome.CountsAsFailure() {
			t.Fatalf("expected %s to count as failure", outcome)
		}
	}
	nonFailing := []api.Outcome{api.OutcomePass, api.OutcomeThrottled, api.OutcomeAbsent}
	for _, outcome := range nonFailing {
		if outcome.CountsAsFailure() {
			t.Fatalf("expected %s to not count as failure", outcome)
		}
	}
}
