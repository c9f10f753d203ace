// Package coordinator serializes host commands and native events for a set of
// windows. The host enqueues commands at any time; Pump hands them to the
// platform, lets it dispatch native events, then delivers the events that
// were raised while the window table was lent out.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/logging"
	"github.com/rs/zerolog"
)

var (
	// ErrNotInitialized is returned by every operation before Init succeeds.
	ErrNotInitialized = errors.New("native window system not initialized, call Init first")
	// ErrPumpActive is returned when Pump is called while another cycle
	// holds the window table.
	ErrPumpActive = errors.New("pump cycle already in progress")
)

// Coordinator is the single owner of the window registry, the command queue
// and the deferred event buffers.
type Coordinator struct {
	g guard

	// guarded by g
	initialized bool
	platform    port.Platform
	registry    *registry
	queue       *commandQueue

	buffers *eventBuffers
	factory port.PlatformFactory
	logger  zerolog.Logger
	metrics port.CoordinatorMetrics

	queueCapacity  int
	bufferCapacity int
	messageLimit   int
	hasLogger      bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. Without it the logger attached to the context
// passed to Init is used.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
		c.hasLogger = true
	}
}

// WithMetrics records coordinator activity.
func WithMetrics(m port.CoordinatorMetrics) Option {
	return func(c *Coordinator) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithQueueCapacity bounds the command queue.
func WithQueueCapacity(n int) Option {
	return func(c *Coordinator) { c.queueCapacity = n }
}

// WithBufferCapacity bounds each deferred event buffer.
func WithBufferCapacity(n int) Option {
	return func(c *Coordinator) { c.bufferCapacity = n }
}

// WithWindowMessageLimit bounds the deferred messages of a single window.
func WithWindowMessageLimit(n int) Option {
	return func(c *Coordinator) { c.messageLimit = n }
}

// New creates a coordinator that will initialize its platform with factory.
func New(factory port.PlatformFactory, opts ...Option) *Coordinator {
	c := &Coordinator{
		factory: factory,
		logger:  zerolog.Nop(),
		metrics: port.NopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.registry = newRegistry()
	c.queue = newCommandQueue(c.queueCapacity)
	c.buffers = newEventBuffers(c.bufferCapacity, c.messageLimit)
	c.logger = c.logger.With().Str("component", "coordinator").Logger()
	return c
}

// Init creates the platform. Calling it again after success is a no-op.
func (c *Coordinator) Init(ctx context.Context) error {
	t := c.g.acquire()
	if c.initialized {
		c.g.release(t)
		return nil
	}
	if !c.hasLogger {
		c.logger = logging.FromContext(ctx).With().Str("component", "coordinator").Logger()
		c.hasLogger = true
	}
	c.g.release(t)

	if c.factory == nil {
		return fmt.Errorf("initialize platform: no platform factory")
	}
	platform, err := c.factory(ctx, c)
	if err != nil {
		return fmt.Errorf("initialize platform: %w", err)
	}

	t = c.g.acquire()
	if c.initialized {
		c.g.release(t)
		_ = platform.Close()
		return nil
	}
	c.platform = platform
	c.initialized = true
	c.g.release(t)

	c.logger.Info().Str("platform", platform.Name()).Msg("native window system initialized")
	return nil
}

// Initialized reports whether Init has succeeded.
func (c *Coordinator) Initialized() bool {
	t := c.g.acquire()
	defer c.g.release(t)
	return c.initialized
}

// CreateWindow allocates an id, registers the window's policy and empty
// handler set and enqueues its creation. The native window appears during the
// next Pump.
func (c *Coordinator) CreateWindow(opts window.Options) (window.ID, error) {
	t := c.g.acquire()
	defer c.g.release(t)

	if !c.initialized {
		return 0, ErrNotInitialized
	}

	id, err := c.registry.allocate(func(id window.ID) *window.Entry {
		return &window.Entry{
			ID:      id,
			Options: opts,
			Policy: security.NewPolicy(
				uint32(id), opts.TrustedOrigins, opts.AllowedHosts, opts.Permissions(), c.logger,
			),
		}
	})
	if err != nil {
		return 0, err
	}

	c.pushLocked(window.CreateWindow{Addr: window.At(id), Options: opts})
	return id, nil
}

// Submit enqueues cmd. A full queue drops the command and logs a warning.
func (c *Coordinator) Submit(cmd window.Command) error {
	t := c.g.acquire()
	defer c.g.release(t)

	if !c.initialized {
		return ErrNotInitialized
	}
	c.pushLocked(cmd)
	return nil
}

func (c *Coordinator) pushLocked(cmd window.Command) {
	if !c.queue.push(cmd, &c.logger) {
		c.metrics.CommandDropped()
		return
	}
	c.metrics.CommandQueued(c.queue.len())
}

// Update applies fn to the window's entry. While a cycle holds the table the
// change is applied when the table returns.
func (c *Coordinator) Update(id window.ID, fn func(*window.Entry)) error {
	t := c.g.acquire()
	defer c.g.release(t)

	if !c.initialized {
		return ErrNotInitialized
	}
	if !c.registry.detached && c.registry.lookup(id) == nil {
		return fmt.Errorf("window %d: %w", id, port.ErrWindowNotFound)
	}
	c.registry.mutate(func(tbl window.Table) {
		if e := tbl.Lookup(id); e != nil {
			fn(e)
		}
	})
	return nil
}

// SetHandlers edits the window's handler set.
func (c *Coordinator) SetHandlers(id window.ID, fn func(*window.Handlers)) error {
	return c.Update(id, func(e *window.Entry) { fn(&e.Handlers) })
}

// UpdatePolicy replaces the trusted origins and allowed hosts of a live
// window. Messages still deferred are checked against the new origins.
func (c *Coordinator) UpdatePolicy(id window.ID, trustedOrigins, allowedHosts []string) error {
	return c.Update(id, func(e *window.Entry) {
		e.Policy.Update(trustedOrigins, allowedHosts)
		e.Options.TrustedOrigins = trustedOrigins
		e.Options.AllowedHosts = allowedHosts
	})
}

// Windows returns the ids of the registered windows in ascending order.
func (c *Coordinator) Windows() []window.ID {
	t := c.g.acquire()
	defer c.g.release(t)

	if c.registry.detached {
		return nil
	}
	ids := make([]window.ID, 0, len(c.registry.table))
	for id := range c.registry.table {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// PlatformName returns the name of the initialized platform.
func (c *Coordinator) PlatformName() string {
	t := c.g.acquire()
	defer c.g.release(t)
	if c.platform == nil {
		return ""
	}
	return c.platform.Name()
}

// Shutdown closes the platform. The coordinator must be initialized again
// before further use.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	t := c.g.acquire()
	if c.registry.detached {
		c.g.release(t)
		return ErrPumpActive
	}
	platform := c.platform
	c.platform = nil
	c.initialized = false
	c.g.release(t)

	if platform == nil {
		return nil
	}
	logging.FromContext(ctx).Debug().Str("platform", platform.Name()).Msg("closing platform")
	if err := platform.Close(); err != nil {
		return fmt.Errorf("close platform: %w", err)
	}
	return nil
}
