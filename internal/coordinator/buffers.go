package coordinator

import (
	"sync"
	"time"

	"github.com/bnema/nativewindow/internal/domain/window"
	catrate "github.com/joeycumines/go-catrate"
	"github.com/rs/zerolog"
)

const (
	// DefaultBufferCapacity bounds each per-kind deferred event buffer.
	DefaultBufferCapacity = 10_000
	// DefaultWindowMessageLimit bounds the deferred messages of one window.
	DefaultWindowMessageLimit = 10_000
	// MaxMessageSize is the largest message body accepted from content.
	MaxMessageSize = 10 << 20
)

// eventBuffers hold events raised while the coordinator state was
// unavailable, one bounded buffer per kind. The buffers have their own lock so
// events can be deferred while the guard is held further up the stack.
type eventBuffers struct {
	mu       sync.Mutex
	pending  int
	byKind   [][]window.Event
	warned   []bool
	capacity int

	perWindowLimit int
	perWindow      map[window.ID]int
	dropLimiter    *catrate.Limiter
}

func newEventBuffers(capacity, perWindowLimit int) *eventBuffers {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	if perWindowLimit <= 0 {
		perWindowLimit = DefaultWindowMessageLimit
	}
	kinds := len(window.EventKinds())
	return &eventBuffers{
		byKind:         make([][]window.Event, kinds),
		warned:         make([]bool, kinds),
		capacity:       capacity,
		perWindowLimit: perWindowLimit,
		perWindow:      make(map[window.ID]int),
		dropLimiter: catrate.NewLimiter(map[time.Duration]int{
			time.Minute: 1,
		}),
	}
}

// push defers ev. It returns false when ev was dropped because its buffer or
// the window's message allowance is full.
func (b *eventBuffers) push(ev window.Event, log *zerolog.Logger) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	kind := ev.Kind()

	if kind == window.KindMessage && b.perWindow[ev.Window()] >= b.perWindowLimit {
		if _, ok := b.dropLimiter.Allow(ev.Window()); ok {
			log.Warn().
				Uint32("window_id", uint32(ev.Window())).
				Int("limit", b.perWindowLimit).
				Msg("too many pending messages for window, dropping")
		}
		return false
	}

	if len(b.byKind[kind]) >= b.capacity {
		if !b.warned[kind] {
			b.warned[kind] = true
			log.Warn().
				Str("kind", kind.String()).
				Int("capacity", b.capacity).
				Msg("deferred event buffer full, dropping events until the next flush")
		}
		return false
	}

	b.byKind[kind] = append(b.byKind[kind], ev)
	b.pending++
	if kind == window.KindMessage {
		b.perWindow[ev.Window()]++
	}
	return true
}

// drain empties every buffer and returns their contents in flush order.
func (b *eventBuffers) drain() [][]window.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([][]window.Event, len(b.byKind))
	for kind := range b.byKind {
		out[kind] = b.byKind[kind]
		b.byKind[kind] = nil
		b.warned[kind] = false
	}
	clear(b.perWindow)
	b.pending = 0
	return out
}

// empty reports whether no event is deferred.
func (b *eventBuffers) empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending == 0
}

func (b *eventBuffers) len(kind window.EventKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byKind[kind])
}
