// Package headless is a platform adapter without a display. Each window runs
// its document scripts in a sobek runtime, parses loaded HTML with goquery and
// keeps its geometry, focus and cookies in memory. User and OS activity is
// simulated through methods that queue native input for the next PumpEvents.
package headless

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/logging"
	"github.com/rs/zerolog"
)

// Name is the platform name reported by the headless adapter.
const Name = "headless"

const (
	defaultScriptTimeout = 5 * time.Second
	// maxInputRounds bounds how many times PumpEvents re-polls input queued
	// by the input it just handled.
	maxInputRounds = 16
)

// ErrClosed is returned for commands processed after Close.
var ErrClosed = errors.New("headless platform closed")

// Fetcher returns the HTML document served at an http or https URL.
type Fetcher func(ctx context.Context, url string) (string, error)

type input func(ctx context.Context)

// Platform implements port.Platform without native windows.
type Platform struct {
	sink   port.EventSink
	logger zerolog.Logger
	fetch  Fetcher

	scriptTimeout time.Duration

	mu      sync.Mutex
	windows map[window.ID]*view
	inputs  []input
	focused window.ID
	closed  bool
}

// Option configures a Platform.
type Option func(*Platform)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Platform) { p.logger = logger }
}

// WithFetcher serves http and https documents. Platforms built by New without
// it load an empty document for those URLs; Factory installs HTTPFetcher.
func WithFetcher(f Fetcher) Option {
	return func(p *Platform) { p.fetch = f }
}

// WithScriptTimeout bounds the run time of a single script.
func WithScriptTimeout(d time.Duration) Option {
	return func(p *Platform) {
		if d > 0 {
			p.scriptTimeout = d
		}
	}
}

// New creates a headless platform raising its events into sink.
func New(sink port.EventSink, opts ...Option) *Platform {
	p := &Platform{
		sink:          sink,
		logger:        zerolog.Nop(),
		scriptTimeout: defaultScriptTimeout,
		windows:       make(map[window.ID]*view),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With().Str("component", "headless-platform").Logger()
	return p
}

// Factory returns a port.PlatformFactory creating headless platforms that
// fetch http and https documents over the network. The logger attached to the
// initialization context is used unless opts set one.
func Factory(opts ...Option) port.PlatformFactory {
	return func(ctx context.Context, sink port.EventSink) (port.Platform, error) {
		all := append([]Option{WithLogger(*logging.FromContext(ctx)), WithFetcher(HTTPFetcher(nil))}, opts...)
		return New(sink, all...), nil
	}
}

// Name implements port.Platform.
func (p *Platform) Name() string { return Name }

// Close destroys every window.
func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, v := range p.windows {
		v.destroy()
		delete(p.windows, id)
	}
	p.inputs = nil
	p.closed = true
	return nil
}

// PumpEvents handles the queued native input. Input queued while handling it
// is handled in the same call, up to a fixed number of rounds.
func (p *Platform) PumpEvents(ctx context.Context, _ window.Table) {
	for range maxInputRounds {
		p.mu.Lock()
		batch := p.inputs
		p.inputs = nil
		p.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, in := range batch {
			in(ctx)
		}
	}
}

func (p *Platform) enqueue(in input) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.inputs = append(p.inputs, in)
}

// Pending reports the number of queued native inputs.
func (p *Platform) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inputs)
}

func (p *Platform) lookup(id window.ID) *view {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.windows[id]
}

func (p *Platform) mustLookup(id window.ID) (*view, error) {
	if v := p.lookup(id); v != nil {
		return v, nil
	}
	return nil, fmt.Errorf("window %d: %w", id, port.ErrWindowNotFound)
}

// Snapshot returns the current state of a window.
func (p *Platform) Snapshot(id window.ID) (State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.windows[id]
	if !ok {
		return State{}, false
	}
	s := v.State
	s.Focused = p.focused == id
	return s, true
}

func (p *Platform) raise(ev window.Event) {
	p.sink.Raise(ev)
}

// destroyWindow tears the window down and then reports its close.
func (p *Platform) destroyWindow(v *view) {
	p.mu.Lock()
	if p.windows[v.id] != v {
		p.mu.Unlock()
		return
	}
	delete(p.windows, v.id)
	if p.focused == v.id {
		p.focused = 0
	}
	v.destroy()
	p.mu.Unlock()

	p.logger.Debug().Uint32("window_id", uint32(v.id)).Msg("window destroyed")
	p.raise(window.CloseEvent{Source: window.From(v.id)})
}

// focus moves the focus to id, blurring the previously focused window.
func (p *Platform) focus(id window.ID) {
	p.mu.Lock()
	prev := p.focused
	if prev == id {
		p.mu.Unlock()
		return
	}
	p.focused = id
	_, prevLive := p.windows[prev]
	p.mu.Unlock()

	if prev != 0 && prevLive {
		p.raise(window.BlurEvent{Source: window.From(prev)})
	}
	p.raise(window.FocusEvent{Source: window.From(id)})
}

func (p *Platform) blur(id window.ID) {
	p.mu.Lock()
	if p.focused != id {
		p.mu.Unlock()
		return
	}
	p.focused = 0
	p.mu.Unlock()
	p.raise(window.BlurEvent{Source: window.From(id)})
}
