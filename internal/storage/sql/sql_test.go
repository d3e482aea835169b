package sql_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/model-health/model-health/internal/executioncontext"
	storagesql "github.com/model-health/model-health/internal/storage/sql"
	"github.com/model-health/model-health/pkg/api"
)

func createStore(t *testing.T) *storagesql.SQLHistoryStore {
	t.Helper()
	historyConfig := map[string]any{
		"enabled":        true,
		"driver":         "sqlite",
		"url":            ":memory:",
		"max_open_conns": 1, // in-memory sqlite is per connection
	}
	store, err := storagesql.NewStore(historyConfig, slog.Default())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createExecutionContext() *executioncontext.ExecutionContext {
	return executioncontext.NewExecutionContext(context.Background(), "test-run", slog.Default())
}

func report(runID string, finishedAt time.Time, verdict api.Verdict) *api.HealthReport {
	return &api.HealthReport{
		RunID:      runID,
		StartedAt:  finishedAt.Add(-time.Second),
		FinishedAt: finishedAt,
		Verdict:    verdict,
		Summary:    api.ReportSummary{Total: 1, Passed: 1},
		Results: []api.CheckResult{
			{URL: "https://m.example.com", Category: api.CategoryModel, Outcome: api.OutcomePass, HTTPStatus: 200},
		},
	}
}

func TestSaveAndListReports(t *testing.T) {
	store := createStore(t)
	ctx := createExecutionContext()
	now := time.Now().UTC()

	if err := store.SaveReport(ctx, report("run-1", now.Add(-2*time.Minute), api.VerdictPass)); err != nil {
		t.Fatalf("failed to save report: %v", err)
	}
	if err := store.SaveReport(ctx, report("run-2", now, api.VerdictFail)); err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	reports, err := store.RecentReports(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	// newest first
	if reports[0].RunID != "run-2" {
		t.Fatalf("expected run-2 first, got %s", reports[0].RunID)
	}
	if reports[0].Verdict != api.VerdictFail {
		t.Fatalf("expected verdict fail, got %s", reports[0].Verdict)
	}
	if reports[1].Results[0].Outcome != api.OutcomePass {
		t.Fatalf("expected stored result outcome pass, got %s", reports[1].Results[0].Outcome)
	}
}

func TestRecentReportsHonorsLimit(t *testing.T) {
	store := createStore(t)
	ctx := createExecutionContext()
	now := time.Now().UTC()

	for i, runID := range []string{"run-a", "run-b", "run-c"} {
		if err := store.SaveReport(ctx, report(runID, now.Add(time.Duration(i)*time.Minute), api.VerdictPass)); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
	}

	reports, err := store.RecentReports(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
}

func TestNewStoreRejectsUnsupportedDriver(t *testing.T) {
	historyConfig := map[string]any{
		"enabled": true,
		"driver":  "oracle",
		"url":     "whatever",
	}
	if _, err := storagesql.NewStore(historyConfig, slog.Default()); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}

func TestCheckConfigDefaultsTableName(t *testing.T) {
	historyConfig := &storagesql.HistoryConfig{Driver: "sqlite", URL: ":memory:"}
	if err := historyConfig.CheckConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if historyConfig.TableName != "health_reports" {
		t.Fatalf("expected default table name, got %q", historyConfig.TableName)
	}
}
