package coordinator

import (
	"github.com/bnema/nativewindow/internal/domain/window"
)

type boundEvent struct {
	kind window.EventKind
	id   window.ID
	fn   func()
}

// Raise reports a native event. It is delivered at once when the window
// table is available and nothing is deferred; otherwise it is buffered until
// the end of the current cycle. Raise never blocks on the coordinator and may
// be called from any depth inside a platform call.
func (c *Coordinator) Raise(ev window.Event) {
	if msg, ok := ev.(window.MessageEvent); ok && len(msg.Text) > MaxMessageSize {
		c.metrics.MessageRejected()
		c.logger.Debug().
			Uint32("window_id", uint32(ev.Window())).
			Int("size", len(msg.Text)).
			Msg("dropping oversized message")
		return
	}

	if t, ok := c.g.tryAcquire(); ok {
		if !c.registry.detached && c.buffers.empty() {
			fn := c.bindLocked(ev)
			if ev.Kind() == window.KindClose {
				c.registry.remove(ev.Window())
			}
			c.g.release(t)
			if fn != nil {
				c.invoke(boundEvent{kind: ev.Kind(), id: ev.Window(), fn: fn})
			}
			return
		}
		c.g.release(t)
	}

	if c.buffers.push(ev, &c.logger) {
		c.metrics.EventDeferred(ev.Kind())
		return
	}
	c.metrics.EventDropped(ev.Kind())
}

// bindLocked resolves the handler for ev. Events for unknown windows and
// messages from untrusted origins resolve to nil.
func (c *Coordinator) bindLocked(ev window.Event) func() {
	entry := c.registry.lookup(ev.Window())
	if entry == nil {
		return nil
	}
	if msg, ok := ev.(window.MessageEvent); ok && !entry.Policy.IsTrusted(msg.SourceURL) {
		c.metrics.MessageRejected()
		c.logger.Debug().
			Uint32("window_id", uint32(ev.Window())).
			Str("source_url", msg.SourceURL).
			Msg("dropping message from untrusted origin")
		return nil
	}
	return entry.Handlers.Bind(ev)
}

// invoke runs a handler outside the guard. A panicking handler is logged and
// does not prevent the remaining handlers from running.
func (c *Coordinator) invoke(call boundEvent) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().
				Interface("panic", r).
				Str("kind", call.kind.String()).
				Uint32("window_id", uint32(call.id)).
				Msg("event handler panicked")
		}
	}()
	call.fn()
	c.metrics.EventDelivered(call.kind)
}
