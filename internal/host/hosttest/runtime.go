// Package hosttest provides a scripted host.Runtime for tests.
package hosttest

import (
	"context"
	"sync"
	"sync/atomic"

	"cityscape/internal/host"
)

// Script is what a Runtime does while "running".
type Script func(ctx context.Context, invoker host.Invoker) (host.Reason, error)

type Runtime struct {
	script Script

	mu      sync.Mutex
	invoker host.Invoker
	runs    atomic.Int32
}

// New returns a runtime that executes script when Run is called. A nil
// script blocks until the context is cancelled.
func New(script Script) *Runtime {
	if script == nil {
		script = BlockUntilCanceled()
	}
	return &Runtime{script: script}
}

func (r *Runtime) Bind(invoker host.Invoker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoker = invoker
}

func (r *Runtime) Invoker() host.Invoker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invoker
}

func (r *Runtime) Run(ctx context.Context) (host.Reason, error) {
	if r.runs.Add(1) > 1 {
		return 0, host.ErrAlreadyRunning
	}
	return r.script(ctx, r.Invoker())
}

// Runs counts calls to Run, including rejected ones.
func (r *Runtime) Runs() int {
	return int(r.runs.Load())
}

func BlockUntilCanceled() Script {
	return func(ctx context.Context, _ host.Invoker) (host.Reason, error) {
		<-ctx.Done()
		return host.ReasonCanceled, nil
	}
}

// CloseWindow returns immediately as if the user closed the main window.
func CloseWindow() Script {
	return func(context.Context, host.Invoker) (host.Reason, error) {
		return host.ReasonWindowClosed, nil
	}
}

// Invoke calls the named command through the bound invoker, then behaves
// like CloseWindow if the command returns.
func Invoke(name string) Script {
	return func(ctx context.Context, invoker host.Invoker) (host.Reason, error) {
		if err := invoker.Invoke(ctx, name); err != nil {
			return 0, err
		}
		return host.ReasonWindowClosed, nil
	}
}

// Fail reports a startup failure.
func Fail(err error) Script {
	return func(context.Context, host.Invoker) (host.Reason, error) {
		return 0, err
	}
}
