package report_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/report"
	"github.com/model-health/model-health/internal/validation"
	"github.com/model-health/model-health/pkg/api"
)

func sampleReport() *api.HealthReport {
	now := time.Now().UTC()
	return &api.HealthReport{
		RunID:      "run-42",
		StartedAt:  now,
		FinishedAt: now.Add(time.Second),
		Verdict:    api.VerdictFail,
		Summary:    api.ReportSummary{Total: 2, Passed: 1, Failed: 1, ErrorRate: 0.5},
		Results: []api.CheckResult{
			{URL: "https://m.example.com", Category: api.CategoryModel, Outcome: api.OutcomePass, HTTPStatus: 200},
			{URL: "https://p.example.com", Category: api.CategoryPages, Outcome: api.OutcomeFail, HTTPStatus: 500, Reason: "unexpected status code 500"},
		},
	}
}

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	original := sampleReport()

	if err := report.WriteFile(path, original); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}

	validate, err := validation.NewValidator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}
	ctx := executioncontext.NewExecutionContext(context.Background(), "test-run", slog.Default())
	reloaded, err := report.ReadFile(validate, ctx, path)
	if err != nil {
		t.Fatalf("failed to read report back: %v", err)
	}

	if reloaded.Verdict != original.Verdict {
		t.Fatalf("expected verdict %s, got %s", original.Verdict, reloaded.Verdict)
	}
	for i, result := range original.Results {
		if reloaded.Results[i].Outcome != result.Outcome {
			t.Fatalf("result %d: expected outcome %s, got %s", i, result.Outcome, reloaded.Results[i].Outcome)
		}
	}
}

func TestReadFileRejectsInvalidReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	// verdict is required; an empty object must not round-trip
	if err := writeRaw(path, `{}`); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	validate, err := validation.NewValidator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}
	ctx := executioncontext.NewExecutionContext(context.Background(), "test-run", slog.Default())
	if _, err := report.ReadFile(validate, ctx, path); err == nil {
		t.Fatal("expected an error for a report without a verdict")
	}
}

func writeRaw(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestWriteSummaryListsEveryEndpoint(t *testing.T) {
	var sb strings.Builder
	report.WriteSummary(&sb, sampleReport())
	out := sb.String()

	if !strings.Contains(out, "fail") {
		t.Fatalf("expected the verdict in the summary, got:\n%s", out)
	}
	for _, url := range []string{"https://m.example.com", "https://p.example.com"} {
		if !strings.Contains(out, url) {
			t.Fatalf("expected %s in the summary, got:\n%s", url, out)
		}
	}
	if !strings.Contains(out, "unexpected status code 500") {
		t.Fatalf("expected the failure reason in the summary, got:\n%s", out)
	}
}
