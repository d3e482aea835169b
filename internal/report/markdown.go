package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/pkg/api"
)

// maxReasonLength keeps table cells readable in rendered issues.
const maxReasonLength = 100

// WriteMarkdown renders the report as a markdown document suitable for
// a tracking issue or a chat notification.
func WriteMarkdown(w io.Writer, report *api.HealthReport) error {
	var b strings.Builder

	b.WriteString("# Model Health Report\n\n")
	fmt.Fprintf(&b, "**Run:** %s\n", report.RunID)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.FinishedAt.UTC().Format(time.RFC3339))

	if report.Verdict == api.VerdictPass {
		b.WriteString("All endpoints are healthy.\n\n")
	} else {
		b.WriteString("Issues detected with one or more endpoints.\n\n")
	}

	fmt.Fprintf(&b, "**Summary:** %d checked, %d passed, %d failed, %d errored, %d throttled, %d absent\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed,
		report.Summary.Errored, report.Summary.Throttled, report.Summary.Absent)
	fmt.Fprintf(&b, "**Error rate:** %.1f%%, **average latency:** %s\n\n",
		report.Summary.ErrorRate*100, report.Summary.AvgLatency)

	b.WriteString("## Endpoint Details\n\n")
	b.WriteString("| Endpoint | Category | Outcome | Status | Latency | Details |\n")
	b.WriteString("|----------|----------|---------|--------|---------|---------|\n")
	for _, result := range report.Results {
		reason := result.Reason
		if len(reason) > maxReasonLength {
			reason = reason[:maxReasonLength] + "..."
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
			result.URL, result.Category.String(), result.Outcome.String(),
			result.HTTPStatus, result.Latency, strings.ReplaceAll(reason, "|", "\\|"))
	}
	b.WriteString("\n---\n\n*Generated automatically by model-health-check.*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMarkdownFile writes the markdown rendering to the given path.
func WriteMarkdownFile(path string, report *api.HealthReport) error {
	f, err := os.Create(path)
	if err != nil {
		return serviceerrors.NewServiceError(messages.ReportWriteFailed, "Path", path, "Error", err.Error())
	}
	if err := WriteMarkdown(f, report); err != nil {
		f.Close()
		return serviceerrors.NewServiceError(messages.ReportWriteFailed, "Path", path, "Error", err.Error())
	}
	if err := f.Close(); err != nil {
		return serviceerrors.NewServiceError(messages.ReportWriteFailed, "Path", path, "Error", err.Error())
	}
	return nil
}
