package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/internal/serialization"
	"github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/pkg/api"
)

// WriteSummary prints the human-readable run summary. This always goes
// to standard output; automation reads the exit code or the JSON file.
func WriteSummary(w io.Writer, report *api.HealthReport) {
	fmt.Fprintf(w, "Health check run %s: %s\n", report.RunID, report.Verdict.String())
	fmt.Fprintf(w, "  started:   %s\n", report.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "  finished:  %s\n", report.FinishedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "  endpoints: %d total, %d passed, %d failed, %d errored, %d throttled, %d absent\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed,
		report.Summary.Errored, report.Summary.Throttled, report.Summary.Absent)
	fmt.Fprintf(w, "  error rate: %.2f, avg latency: %s\n", report.Summary.ErrorRate, report.Summary.AvgLatency)
	for _, result := range report.Results {
		line := fmt.Sprintf("  [%-9s] %-5s %s", result.Outcome.String(), result.Category.String(), result.URL)
		if result.Reason != "" {
			line += ": " + result.Reason
		}
		fmt.Fprintln(w, line)
	}
}

// WriteFile writes the machine-readable report to the given path.
func WriteFile(path string, report *api.HealthReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return serviceerrors.NewServiceError(messages.ReportWriteFailed, "Path", path, "Error", err.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return serviceerrors.NewServiceError(messages.ReportWriteFailed, "Path", path, "Error", err.Error())
	}
	return nil
}

// ReadFile loads a previously written report. A reloaded report carries
// the same verdict and per-endpoint outcomes as the run that produced it.
func ReadFile(validate *validator.Validate, ctx *executioncontext.ExecutionContext, path string) (*api.HealthReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serviceerrors.NewServiceError(messages.ReportParseFailed, "Error", err.Error())
	}
	var report api.HealthReport
	if err := serialization.Unmarshal(validate, ctx, data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
