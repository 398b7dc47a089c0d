package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"favicon-gen/internal/app"
	"favicon-gen/internal/config"
	"favicon-gen/internal/logging"

	flags "github.com/jessevdk/go-flags"
)

var BuildVersion = "dev"

func main() {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, err := config.ParseOptions(os.Args[1:])
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	logger := logging.New(opts.Debug)
	if opts.LogPersist {
		if err := logger.EnableFilePersistence(opts.LogDir, 0); err != nil {
			logger.Warn("log persistence unavailable", logging.Field("error", err))
		}
	}
	logger.Debug("favicon-gen starting", logging.Field("version", BuildVersion), logging.Field("command", opts.Command))

	var runErr error
	switch opts.Command {
	case config.CommandInspect:
		runErr = app.Inspect(opts.Inspect.Args.Path, os.Stdout, logger)
	default:
		runErr = runGenerate(rootCtx, opts, logger)
	}
	if runErr != nil {
		logger.Error("favicon-gen failed", logging.Field("error", runErr))
		_ = logger.Close()
		os.Exit(1)
	}
	_ = logger.Close()
}

func runGenerate(ctx context.Context, opts config.Options, logger *logging.Logger) error {
	settingsPath, err := config.SettingsPath(opts.Settings)
	if err != nil {
		return fmt.Errorf("resolve settings path: %w", err)
	}

	if opts.Generate.Watch {
		return app.Watch(ctx, app.WatchOptions{
			SettingsPath: settingsPath,
			CLI:          opts.Generate,
			Summary:      os.Stdout,
		}, logger)
	}

	saved, err := config.LoadSettings(settingsPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring unreadable settings", logging.Field("path", settingsPath), logging.Field("error", err))
		}
		saved = config.GeneratorSettings{}
	}
	cfg, err := config.ResolveGenerate(opts.Generate, saved)
	if err != nil {
		return err
	}
	logger.Debug("resolved generate options", logging.Field("settings", cfg))

	if opts.Generate.SaveSettings {
		if err := config.SaveSettings(settingsPath, config.SettingsFromConfig(cfg)); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		logger.Info("saved settings", logging.Field("path", settingsPath))
	}

	gen, err := app.NewGenerator(cfg, logger, os.Stdout)
	if err != nil {
		return err
	}
	_, err = gen.Generate(ctx)
	return err
}
