// Package shutdown coordinates the cooperative shutdown path: OS signals
// cancel a context the host runtime observes, and registered components are
// released in reverse order once the runtime has returned.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cityscape/internal/logger"
)

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type component struct {
	name string
	impl Shutdownable
}

type Manager struct {
	components []component
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc

	notify   func(c chan<- os.Signal, sig ...os.Signal)
	unnotify func(c chan<- os.Signal)
}

func NewManager(log logger.Logger, timeout time.Duration) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		components: make([]component, 0),
		logger:     log,
		timeout:    timeout,
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		notify:     signal.Notify,
		unnotify:   signal.Stop,
	}
}

func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, impl: c})
}

// Listen cancels the manager context on the first SIGINT or SIGTERM and then
// restores default signal handling, so a second signal kills a hung runtime.
// The returned function stops listening.
func (m *Manager) Listen() (stop func()) {
	sigChan := make(chan os.Signal, 1)
	m.notify(sigChan, os.Interrupt, syscall.SIGTERM)

	quit := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			m.unnotify(sigChan)
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.cancel()
		case <-quit:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.unnotify(sigChan)
			close(quit)
		})
	}
}

// Cancel requests a cooperative shutdown without running components.
func (m *Manager) Cancel() {
	m.cancel()
}

// Shutdown releases components in reverse registration order. Later calls are
// no-ops.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			c.impl.Shutdown()
		}()

		timer := time.NewTimer(m.timeout)
		select {
		case <-finished:
			m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
				"component": c.name,
			})
		case <-timer.C:
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": c.name,
				"timeout":   m.timeout.String(),
			})
		}
		timer.Stop()
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
