// Package command holds the named native procedures the front-end may invoke
// through the host runtime's call bridge.
package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"cityscape/internal/logger"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrInvalidName      = errors.New("invalid command name")
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Handler runs a command. Handlers take no parameters and may never return
// (exit_app terminates the process).
type Handler func(ctx context.Context) error

// Registry is safe for concurrent use. Commands can be invoked from any
// goroutine the host runtime dispatches on.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NoOp{}
	}
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   log,
	}
}

func (r *Registry) Register(name string, handler Handler) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if handler == nil {
		return fmt.Errorf("%w: %q has no handler", ErrInvalidName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
	}
	r.handlers[name] = handler

	r.logger.Debug("Registry", "command registered", map[string]interface{}{
		"command": name,
	})
	return nil
}

// Invoke runs the named command on the calling goroutine.
func (r *Registry) Invoke(ctx context.Context, name string) error {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	r.logger.Debug("Registry", "command invoked", map[string]interface{}{
		"command": name,
	})
	if err := handler(ctx); err != nil {
		return fmt.Errorf("command %q: %w", name, err)
	}
	return nil
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
