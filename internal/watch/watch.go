package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/model-health/model-health/internal/config"
)

// RunFunc performs one check run against the given configuration.
type RunFunc func(cfg *config.Config)

// Run re-runs the check on a fixed cadence for environments without an
// external scheduler. The configuration is reloaded when the file
// changes; a reload failure keeps the previous configuration so a bad
// edit never stops the loop.
func Run(ctx context.Context, configPath string, interval time.Duration, logger *slog.Logger, runOnce RunFunc) error {
	cfg, err := config.Load(configPath, logger)
	if err != nil {
		return err
	}

	reload := make(chan struct{}, 1)
	if configPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		if err := watcher.Add(configPath); err != nil {
			return err
		}
		go forwardWrites(watcher, reload, logger)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOnce(cfg)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			fresh, err := config.Load(configPath, logger)
			if err != nil {
				logger.Error("Configuration reload failed, keeping previous configuration", "error", err)
				continue
			}
			cfg = fresh
			logger.Info("Configuration reloaded", "path", configPath)
		case <-ticker.C:
			runOnce(cfg)
		}
	}
}

func forwardWrites(watcher *fsnotify.Watcher, reload chan<- struct{}, logger *slog.Logger) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				select {
				case reload <- struct{}{}:
				default:
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Configuration watcher error", "error", err)
		}
	}
}
