package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"github.com/model-health/model-health/internal/checker"
	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/probes"
	"github.com/model-health/model-health/internal/report"
	"github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/internal/storage"
	"github.com/model-health/model-health/internal/telemetry"
	"github.com/model-health/model-health/internal/watch"
	"github.com/model-health/model-health/pkg/api"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath   string
		outputPath   string
		markdownPath string
		verbose      bool
		interval     time.Duration
		showRecent   int
	)
	pflag.StringVarP(&configPath, "config", "c", "", "path to the monitoring configuration file (JSON)")
	pflag.StringVarP(&outputPath, "output", "o", "", "path the machine-readable report is written to")
	pflag.StringVar(&markdownPath, "markdown", "", "path a markdown rendering of the report is written to")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pflag.DurationVar(&interval, "interval", 0, "re-run the check on this cadence instead of exiting (0 runs once)")
	pflag.IntVar(&showRecent, "show-recent", 0, "print the N most recent reports from the history store and exit")
	pflag.Parse()

	logger, flush := newLogger(verbose)
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if interval > 0 {
		err := watch.Run(ctx, configPath, interval, logger, func(cfg *config.Config) {
			runOnce(ctx, cfg, logger, outputPath, markdownPath)
		})
		if err != nil {
			return reportFatal(err)
		}
		return constants.ExitOK
	}

	cfg, err := config.Load(configPath, logger)
	if err != nil {
		return reportFatal(err)
	}
	if showRecent > 0 {
		return showRecentReports(ctx, cfg, logger, showRecent)
	}
	return runOnce(ctx, cfg, logger, outputPath, markdownPath)
}

// showRecentReports prints a one-line verdict trend from the history
// store instead of running a check. Requires history to be configured.
func showRecentReports(ctx context.Context, cfg *config.Config, logger *slog.Logger, limit int) int {
	store, err := storage.NewHistoryStore(cfg, logger)
	if err != nil {
		return reportFatal(err)
	}
	if store == nil {
		fmt.Fprintln(os.Stderr, "no history store configured")
		return constants.ExitConfigError
	}
	defer store.Close()

	executionContext := executioncontext.NewExecutionContext(ctx, uuid.NewString(), logger)
	reports, err := store.RecentReports(executionContext, limit)
	if err != nil {
		return reportFatal(err)
	}
	for _, r := range reports {
		fmt.Printf("%s  %s  %-4s  error rate %.2f  (%d endpoints)\n",
			r.FinishedAt.UTC().Format(time.RFC3339), r.RunID, r.Verdict.String(),
			r.Summary.ErrorRate, r.Summary.Total)
	}
	return constants.ExitOK
}

// runOnce performs a single run-to-completion check and returns the
// process exit code: 0 when every check passed, 1 when the verdict is
// fail, 2 when setup failed before any endpoint was evaluated.
func runOnce(ctx context.Context, cfg *config.Config, logger *slog.Logger, outputPath, markdownPath string) int {
	var tracingCfg *config.TracingConfig
	var metricsCfg *config.MetricsConfig
	if cfg.Telemetry != nil {
		tracingCfg = cfg.Telemetry.Tracing
		metricsCfg = cfg.Telemetry.Metrics
	}

	shutdown, err := telemetry.SetupTracing(ctx, tracingCfg)
	if err != nil {
		return reportFatal(err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", constants.LOG_ERROR, err.Error())
		}
	}()

	runID := uuid.NewString()
	spanCtx, span := telemetry.Tracer().Start(ctx, "check-run")
	defer span.End()

	executionContext := executioncontext.NewExecutionContext(
		spanCtx, runID, logger.With(constants.LOG_RUN_ID, runID))

	healthReport, err := checker.New(cfg, probes.NewHTTPClient()).Run(executionContext)
	if err != nil {
		return reportFatal(err)
	}

	report.WriteSummary(os.Stdout, healthReport)

	if outputPath != "" {
		if err := report.WriteFile(outputPath, healthReport); err != nil {
			return reportFatal(err)
		}
		executionContext.Logger.Info("Report written",
			constants.LOG_MSG_CODE, constants.MESSAGE_CODE_REPORT_WRITTEN, "path", outputPath)
	}

	if markdownPath != "" {
		if err := report.WriteMarkdownFile(markdownPath, healthReport); err != nil {
			return reportFatal(err)
		}
		executionContext.Logger.Info("Markdown report written", "path", markdownPath)
	}

	// The side sinks below are best-effort: a broken sink is logged but
	// never masks the health verdict in the exit code.
	if cfg.Report != nil && cfg.Report.S3 != nil && cfg.Report.S3.Enabled {
		if err := report.UploadS3(executionContext, cfg.Report.S3, healthReport); err != nil {
			executionContext.Logger.Error("Report upload failed", constants.LOG_ERROR, err.Error())
		}
	}

	if store, err := storage.NewHistoryStore(cfg, executionContext.Logger); err != nil {
		executionContext.Logger.Error("History store unavailable", constants.LOG_ERROR, err.Error())
	} else if store != nil {
		if err := store.SaveReport(executionContext, healthReport); err != nil {
			executionContext.Logger.Error("History store write failed", constants.LOG_ERROR, err.Error())
		}
		if err := store.Close(); err != nil {
			executionContext.Logger.Warn("History store close failed", constants.LOG_ERROR, err.Error())
		}
	}

	if metricsCfg != nil && metricsCfg.Enabled {
		metrics := telemetry.NewRunMetrics()
		metrics.Observe(healthReport)
		if err := metrics.Push(executionContext, metricsCfg); err != nil {
			executionContext.Logger.Error("Metrics push failed", constants.LOG_ERROR, err.Error())
		}
	}

	if healthReport.Verdict == api.VerdictFail {
		return constants.ExitChecksFailed
	}
	return constants.ExitOK
}

// reportFatal prints a fatal setup error to standard error and maps it
// to an exit code.
func reportFatal(err error) int {
	fmt.Fprintln(os.Stderr, err.Error())
	var serviceError *serviceerrors.ServiceError
	if errors.As(err, &serviceError) {
		return serviceError.ExitCode()
	}
	return constants.ExitConfigError
}

// newLogger builds the process logger: slog in front, a zap core behind.
func newLogger(verbose bool) (*slog.Logger, func()) {
	zapConfig := zap.NewProductionConfig()
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zapLogger := zap.Must(zapConfig.Build())
	logger := slog.New(zapslog.NewHandler(zapLogger.Core()))
	return logger, func() { _ = zapLogger.Sync() }
}
