// Package process tracks the lifetime of the native process and provides the
// exit_app command, which terminates it on request.
package process

import (
	"context"
	"os"
	"sync/atomic"

	"cityscape/internal/command"
	"cityscape/internal/logger"
)

// ExitCommand is the name the front-end uses to request termination.
const ExitCommand = "exit_app"

// ExitSuccess is the status exit_app terminates with.
const ExitSuccess = 0

type State int32

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Lifetime records whether the process is still running. Terminated is
// absorbing.
type Lifetime struct {
	state  atomic.Int32
	exit   func(code int)
	logger logger.Logger
}

type Option func(*Lifetime)

// WithExitFunc replaces os.Exit. The function must not return.
func WithExitFunc(exit func(code int)) Option {
	return func(l *Lifetime) { l.exit = exit }
}

func WithLogger(log logger.Logger) Option {
	return func(l *Lifetime) { l.logger = log }
}

func NewLifetime(opts ...Option) *Lifetime {
	l := &Lifetime{
		exit:   os.Exit,
		logger: logger.NoOp{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lifetime) State() State {
	return State(l.state.Load())
}

// Finish records a normal shutdown of the host runtime. It reports false if
// the process was already terminated.
func (l *Lifetime) Finish() bool {
	return l.state.CompareAndSwap(int32(Running), int32(Terminated))
}

// Exit terminates the process immediately with code. Deferred functions,
// window teardown and shutdown hooks do not run. Exit never returns.
func (l *Lifetime) Exit(code int) {
	l.state.Store(int32(Terminated))
	l.logger.Info("Process", "terminating", map[string]interface{}{
		"exit_code": code,
	})
	l.exit(code)
	panic("process: exit function returned")
}

// ExitHandler is the exit_app command.
func (l *Lifetime) ExitHandler() command.Handler {
	return func(context.Context) error {
		l.Exit(ExitSuccess)
		return nil
	}
}

// Register adds exit_app to the registry.
func Register(registry *command.Registry, l *Lifetime) error {
	return registry.Register(ExitCommand, l.ExitHandler())
}
