package host

import (
	"context"
	"sync"

	"cityscape/internal/logger"
)

// Bridge is the front-end side of the command bridge. Calls are dispatched
// off the UI goroutine.
type Bridge struct {
	invoker Invoker
	logger  logger.Logger
	ctx     context.Context
	wg      sync.WaitGroup
}

func NewBridge(ctx context.Context, invoker Invoker, log logger.Logger) *Bridge {
	return &Bridge{
		invoker: invoker,
		logger:  log,
		ctx:     ctx,
	}
}

// Call dispatches the named command and returns without waiting for it.
func (b *Bridge) Call(name string) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		if err := b.invoker.Invoke(b.ctx, name); err != nil {
			b.logger.Error("Bridge", err, map[string]interface{}{
				"command": name,
			})
		}
	}()
}

// Wait blocks until every dispatched call has finished.
func (b *Bridge) Wait() {
	b.wg.Wait()
}
