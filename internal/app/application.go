// Package app wires the native side of Cityscape together: configuration,
// logging, the command registry with exit_app, the shutdown manager and the
// host runtime that owns the event loop.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"cityscape/internal/buildmode"
	"cityscape/internal/command"
	"cityscape/internal/config"
	"cityscape/internal/host"
	"cityscape/internal/logger"
	"cityscape/internal/process"
	"cityscape/internal/shutdown"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

// Version is reported in the Fyne app metadata and the startup log line.
const Version = "1.0.0"

type Application struct {
	cfg      *config.Config
	logger   logger.Logger
	registry *command.Registry
	runtime  host.Runtime
	lifetime *process.Lifetime
	shutdown *shutdown.Manager
	running  atomic.Bool
}

type Option func(*Application)

// WithRuntime replaces the Fyne runtime.
func WithRuntime(rt host.Runtime) Option {
	return func(a *Application) { a.runtime = rt }
}

func WithLogger(log logger.Logger) Option {
	return func(a *Application) { a.logger = log }
}

func WithLifetime(l *process.Lifetime) Option {
	return func(a *Application) { a.lifetime = l }
}

func New(cfg *config.Config, opts ...Option) (*Application, error) {
	a := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logger.NoOp{}
	}
	if a.lifetime == nil {
		a.lifetime = process.NewLifetime(process.WithLogger(a.logger))
	}

	a.registry = command.NewRegistry(a.logger)
	if err := process.Register(a.registry, a.lifetime); err != nil {
		return nil, fmt.Errorf("register %s: %w", process.ExitCommand, err)
	}

	a.shutdown = shutdown.NewManager(a.logger, cfg.Shutdown.Timeout)

	if a.runtime == nil {
		fyneapp.SetMetadata(appMetadata(cfg))
		a.runtime = host.NewFyne(fyneapp.NewWithID(cfg.AppID), host.WindowOptions{
			Title:       cfg.Title,
			Width:       float32(cfg.Window.Width),
			Height:      float32(cfg.Window.Height),
			ExitCommand: process.ExitCommand,
		}, a.logger)
	}
	a.runtime.Bind(a.registry)

	a.logger.Info("Application", "initialized", map[string]interface{}{
		"app_id":   cfg.AppID,
		"commands": a.registry.Names(),
	})
	return a, nil
}

// Run hands control to the host runtime and blocks until it shuts down. The
// process is Terminated once Run returns. exit_app never lets Run return.
func (a *Application) Run(ctx context.Context) (host.Reason, error) {
	if !a.running.CompareAndSwap(false, true) {
		return 0, host.ErrAlreadyRunning
	}

	stopSignals := a.shutdown.Listen()
	defer stopSignals()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopRelay := context.AfterFunc(a.shutdown.Context(), cancel)
	defer stopRelay()

	a.logger.Info("Application", "handing control to host runtime", nil)
	reason, err := a.runtime.Run(runCtx)

	a.lifetime.Finish()

	if err != nil {
		a.logger.Error("Application", err, nil)
	} else {
		a.logger.Info("Application", "host runtime returned", map[string]interface{}{
			"reason": reason.String(),
		})
	}
	a.shutdown.Shutdown()

	if err != nil {
		return reason, fmt.Errorf("host runtime: %w", err)
	}
	return reason, nil
}

// Stop asks the runtime to shut down cooperatively.
func (a *Application) Stop() {
	a.shutdown.Cancel()
}

// OnShutdown registers a step for the graceful path. Steps run in reverse
// order after the runtime returns; exit_app skips them.
func (a *Application) OnShutdown(name string, fn func()) {
	a.shutdown.Register(name, shutdown.Func(fn))
}

func (a *Application) Commands() []string {
	return a.registry.Names()
}

func (a *Application) State() process.State {
	return a.lifetime.State()
}

func appMetadata(cfg *config.Config) fyne.AppMetadata {
	return fyne.AppMetadata{
		ID:      cfg.AppID,
		Name:    cfg.Title,
		Version: Version,
		Release: !buildmode.Debug,
	}
}
