package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/nativewindow/internal/domain/window"
)

// Pump runs one coordination cycle: drain the queue, let the platform apply
// every command and dispatch pending native events, then flush the events
// deferred meanwhile. A failing command is logged and the rest still run; the
// first failure is returned after the flush.
func (c *Coordinator) Pump(ctx context.Context) error {
	start := time.Now()

	t := c.g.acquire()
	if !c.initialized {
		c.g.release(t)
		return ErrNotInitialized
	}
	if c.registry.detached {
		c.g.release(t)
		return ErrPumpActive
	}
	cmds := c.queue.drain()
	platform := c.platform
	c.platform = nil
	table := c.registry.detach()
	c.g.release(t)

	reattached := false
	defer func() {
		if !reattached {
			t := c.g.acquire()
			c.platform = platform
			c.registry.attach(table)
			c.g.release(t)
		}
	}()

	var firstErr error
	for _, cmd := range cmds {
		if err := platform.ProcessCommand(ctx, cmd, table); err != nil {
			c.metrics.CommandFailed(cmd.Kind())
			c.logger.Error().
				Err(err).
				Str("kind", cmd.Kind()).
				Uint32("window_id", uint32(cmd.Target())).
				Msg("command failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("%s on window %d: %w", cmd.Kind(), cmd.Target(), err)
			}
		}
	}
	platform.PumpEvents(ctx, table)

	t = c.g.acquire()
	c.platform = platform
	c.registry.attach(table)
	reattached = true
	calls := c.collectLocked()
	live := c.registry.live()
	c.g.release(t)

	for _, call := range calls {
		c.invoke(call)
	}

	c.metrics.WindowsLive(live)
	c.metrics.CycleCompleted(time.Since(start), len(cmds))
	return firstErr
}

// collectLocked drains the deferred buffers in kind order and binds each
// event to its handler. Messages are checked against the current trusted
// origins. Windows whose close event was collected are removed after binding.
func (c *Coordinator) collectLocked() []boundEvent {
	var (
		calls  []boundEvent
		closed []window.ID
	)
	for _, events := range c.buffers.drain() {
		for _, ev := range events {
			if fn := c.bindLocked(ev); fn != nil {
				calls = append(calls, boundEvent{kind: ev.Kind(), id: ev.Window(), fn: fn})
			}
			if ev.Kind() == window.KindClose {
				closed = append(closed, ev.Window())
			}
		}
	}
	for _, id := range closed {
		c.registry.remove(id)
	}
	return calls
}
