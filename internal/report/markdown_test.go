package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/model-health/model-health/internal/report"
)

func TestWriteMarkdownRendersEndpointTable(t *testing.T) {
	var sb strings.Builder
	if err := report.WriteMarkdown(&sb, sampleReport()); err != nil {
		t.Fatalf("failed to render markdown: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "# Model Health Report") {
		t.Fatalf("expected the report heading, got:\n%s", out)
	}
	if !strings.Contains(out, "Issues detected") {
		t.Fatalf("expected the failing verdict line, got:\n%s", out)
	}
	if !strings.Contains(out, "| https://p.example.com | pages | fail | 500 |") {
		t.Fatalf("expected a table row for the failed endpoint, got:\n%s", out)
	}
}

func TestWriteMarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	if err := report.WriteMarkdownFile(path, sampleReport()); err != nil {
		t.Fatalf("failed to write markdown file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read markdown file back: %v", err)
	}
	if !strings.Contains(string(data), "run-42") {
		t.Fatalf("expected the run id in the file, got:\n%s", data)
	}
}
