// Package host defines the application-shell runtime the native process hands
// control to, and the bridge the front-end uses to call native commands.
package host

import (
	"context"
	"errors"
)

var ErrAlreadyRunning = errors.New("host runtime already started")

// Reason says why Run returned.
type Reason int

const (
	// ReasonWindowClosed: the runtime shut down on its own, e.g. the main
	// window was closed.
	ReasonWindowClosed Reason = iota + 1
	// ReasonCanceled: the run context was cancelled.
	ReasonCanceled
)

func (r Reason) String() string {
	switch r {
	case ReasonWindowClosed:
		return "window_closed"
	case ReasonCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Invoker dispatches a named command. *command.Registry implements it.
type Invoker interface {
	Invoke(ctx context.Context, name string) error
}

// Runtime owns the event loop. Bind must be called before Run; Run blocks
// until the runtime shuts down and may be called once.
type Runtime interface {
	Bind(invoker Invoker)
	Run(ctx context.Context) (Reason, error)
}
