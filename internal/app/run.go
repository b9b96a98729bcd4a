package app

import (
	"context"
	"fmt"

	"cityscape/internal/buildmode"
	"cityscape/internal/config"
	"cityscape/internal/logger"
)

// Run is the process-level driver: it loads configuration, opens the log,
// builds the application and blocks until the host runtime shuts down.
func Run() error {
	cfg, err := config.Load(config.DefaultSearchPaths()...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return RunConfig(cfg, buildmode.Debug)
}

// RunConfig is Run with the configuration and build mode supplied. The log
// stays open until the application has written its last line.
func RunConfig(cfg *config.Config, debug bool, opts ...Option) error {
	log, closer, err := logger.Open(logOptions(cfg, debug))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	application, err := New(cfg, append([]Option{WithLogger(log)}, opts...)...)
	if err != nil {
		log.Error("Application", err, nil)
		return err
	}

	log.Info("Application", "starting", map[string]interface{}{
		"build":   buildmode.Name(),
		"title":   cfg.Title,
		"version": Version,
	})

	_, err = application.Run(context.Background())
	return err
}

// logOptions picks the console in debug builds and the log file otherwise;
// release builds have no console attached.
func logOptions(cfg *config.Config, debug bool) logger.Options {
	if debug {
		return logger.Options{
			Level:   cfg.Log.Level,
			Console: true,
			JSON:    cfg.Log.JSON,
		}
	}
	return logger.Options{
		Level: cfg.Log.Level,
		File:  cfg.LogFilePath(),
	}
}
