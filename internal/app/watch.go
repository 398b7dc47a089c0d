package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"

	"favicon-gen/internal/config"
	"favicon-gen/internal/logging"
)

const (
	defaultWatchDebounce  = 200 * time.Millisecond
	settingsRetryInitial  = 50 * time.Millisecond
	settingsRetryMaxDelay = 400 * time.Millisecond
	settingsRetryTries    = 5
)

type WatchOptions struct {
	SettingsPath string
	CLI          config.GenerateOptions
	Debounce     time.Duration
	Summary      io.Writer
	OnResult     func(Result)
}

// Watch generates once, then regenerates every time the settings file is
// written. Failed generations are logged and the watch continues. It
// returns nil when ctx is canceled.
func Watch(ctx context.Context, opts WatchOptions, logger *logging.Logger) error {
	if logger == nil {
		panic("app.Watch: logger must not be nil")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultWatchDebounce
	}
	target := filepath.Clean(opts.SettingsPath)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize fsnotify watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch settings directory %s: %w", dir, err)
	}
	logger.Info("watching settings", logging.Field("path", target))

	regenerate := func(reason string) {
		logger.Debug("regenerating icon", logging.Field("reason", reason))
		result, err := generateFromSettings(ctx, target, opts, logger)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("generation failed", logging.Field("error", err))
			return
		}
		if opts.OnResult != nil {
			opts.OnResult(result)
		}
	}
	regenerate("startup")

	debounce := time.NewTimer(opts.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("stopping settings watch: context canceled")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			logger.Debugf("fsnotify event: op=%s path=%s", event.Op.String(), event.Name)
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				debounce.Reset(opts.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.Field("error", err))
		case <-debounce.C:
			regenerate("settings changed")
		}
	}
}

func generateFromSettings(ctx context.Context, path string, opts WatchOptions, logger *logging.Logger) (Result, error) {
	saved, err := loadSettingsWithRetry(ctx, path, logger)
	if err != nil {
		return Result{}, fmt.Errorf("load settings: %w", err)
	}
	cfg, err := config.ResolveGenerate(opts.CLI, saved)
	if err != nil {
		return Result{}, err
	}
	gen, err := NewGenerator(cfg, logger, opts.Summary)
	if err != nil {
		return Result{}, err
	}
	return gen.Generate(ctx)
}

// loadSettingsWithRetry rereads the settings file, retrying while an editor
// may still be writing it. A file that stays missing means no settings.
func loadSettingsWithRetry(ctx context.Context, path string, logger *logging.Logger) (config.GeneratorSettings, error) {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = settingsRetryInitial
	retry.MaxInterval = settingsRetryMaxDelay
	retry.Reset()

	settings, err := backoff.Retry(ctx, func() (config.GeneratorSettings, error) {
		settings, err := config.LoadSettings(path)
		if errors.Is(err, fs.ErrNotExist) {
			return settings, backoff.Permanent(err)
		}
		return settings, err
	},
		backoff.WithBackOff(retry),
		backoff.WithMaxTries(settingsRetryTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Debug("retrying settings read",
				logging.Field("error", err),
				logging.Field("next_retry", next))
		}),
	)
	if errors.Is(err, fs.ErrNotExist) {
		return config.GeneratorSettings{}, nil
	}
	return settings, err
}
