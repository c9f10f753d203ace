// Package nativewindow is the host API for native windows embedding a web
// view. A Runtime owns the coordinator: the host creates windows, issues
// commands and registers handlers from one goroutine, and calls Pump
// periodically from that same goroutine to apply commands and deliver events.
package nativewindow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/application/usecase"
	"github.com/bnema/nativewindow/internal/coordinator"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/infrastructure/metrics"
	"github.com/bnema/nativewindow/internal/infrastructure/platform/gtk"
	"github.com/bnema/nativewindow/internal/infrastructure/platform/headless"
	"github.com/bnema/nativewindow/internal/logging"
	"github.com/bnema/nativewindow/internal/ui/mainloop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	BackendHeadless = headless.Name
	BackendGTK      = gtk.Name

	// DefaultSaveDelay is how long geometry changes settle before they are
	// written to the window store.
	DefaultSaveDelay = 500 * time.Millisecond
)

var (
	// ErrNotInitialized is returned by every operation before Init.
	ErrNotInitialized = coordinator.ErrNotInitialized
	// ErrSchemeNotAllowed is returned by LoadURL for a URL that is not http,
	// https or the internal nativewindow scheme.
	ErrSchemeNotAllowed = errors.New("url scheme not allowed")
	// ErrUnknownBackend is returned by Init for a backend name it does not know.
	ErrUnknownBackend = errors.New("unknown platform backend")
)

// Runtime drives the windows of one host process.
type Runtime struct {
	backend       string
	factory       port.PlatformFactory
	logger        *zerolog.Logger
	registerer    prometheus.Registerer
	store         port.WindowStateRepository
	saveDelay     time.Duration
	scriptTimeout time.Duration
	coordOpts     []coordinator.Option

	ctx      context.Context
	coord    *coordinator.Coordinator
	geometry *usecase.WindowGeometryUseCase
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithBackend selects the platform backend by name. Defaults to headless.
func WithBackend(name string) Option {
	return func(r *Runtime) { r.backend = name }
}

// WithPlatformFactory overrides the backend with a custom platform.
func WithPlatformFactory(factory port.PlatformFactory) Option {
	return func(r *Runtime) { r.factory = factory }
}

// WithLogger sets the logger. Without it the logger attached to the Init
// context is used.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runtime) { r.logger = &logger }
}

// WithMetrics registers the coordinator metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Runtime) { r.registerer = reg }
}

// WithWindowStore restores and persists the geometry of windows created with
// a StateKey.
func WithWindowStore(store port.WindowStateRepository) Option {
	return func(r *Runtime) { r.store = store }
}

// WithSaveDelay sets how long geometry changes settle before they are saved.
func WithSaveDelay(d time.Duration) Option {
	return func(r *Runtime) {
		if d >= 0 {
			r.saveDelay = d
		}
	}
}

// WithScriptTimeout bounds page scripts run by the headless backend.
func WithScriptTimeout(d time.Duration) Option {
	return func(r *Runtime) { r.scriptTimeout = d }
}

// WithQueueCapacity bounds the number of commands waiting for a Pump.
func WithQueueCapacity(n int) Option {
	return func(r *Runtime) { r.coordOpts = append(r.coordOpts, coordinator.WithQueueCapacity(n)) }
}

// WithBufferCapacity bounds each per-kind deferred event buffer.
func WithBufferCapacity(n int) Option {
	return func(r *Runtime) { r.coordOpts = append(r.coordOpts, coordinator.WithBufferCapacity(n)) }
}

// WithWindowMessageLimit bounds the messages deferred for a single window.
func WithWindowMessageLimit(n int) Option {
	return func(r *Runtime) { r.coordOpts = append(r.coordOpts, coordinator.WithWindowMessageLimit(n)) }
}

// New creates a runtime. Nothing is initialized until Init.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		backend:   BackendHeadless,
		saveDelay: DefaultSaveDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init initializes the platform backend. It must run on the goroutine that
// will call Pump; the GTK backend locks that goroutine to its OS thread.
func (r *Runtime) Init(ctx context.Context) error {
	if r.coord != nil && r.coord.Initialized() {
		return nil
	}

	logger := logging.FromContext(ctx)
	if r.logger != nil {
		logger = r.logger
	}
	ctx = logging.WithContext(ctx, *logger)

	factory, err := r.platformFactory()
	if err != nil {
		return err
	}

	opts := append([]coordinator.Option{coordinator.WithLogger(*logger)}, r.coordOpts...)
	if r.registerer != nil {
		opts = append(opts, coordinator.WithMetrics(metrics.New(r.registerer)))
	}
	coord := coordinator.New(factory, opts...)
	if err := coord.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize %s platform: %w", r.backend, err)
	}

	r.ctx = ctx
	r.coord = coord
	if r.store != nil && r.geometry == nil {
		debouncer := mainloop.NewCoalescer(mainloop.AfterFunc(r.saveDelay))
		r.geometry = usecase.NewWindowGeometryUseCase(r.store, debouncer)
	}
	logger.Debug().Str("platform", coord.PlatformName()).Msg("runtime initialized")
	return nil
}

func (r *Runtime) platformFactory() (port.PlatformFactory, error) {
	if r.factory != nil {
		return r.factory, nil
	}
	switch r.backend {
	case BackendHeadless, "":
		return headless.Factory(headless.WithScriptTimeout(r.scriptTimeout)), nil
	case BackendGTK:
		return gtk.Factory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, r.backend)
	}
}

// NewWindow registers a window and queues its creation; the native window
// appears during the next Pump. Options with a StateKey start with the
// geometry saved for that key when a window store is configured.
func (r *Runtime) NewWindow(opts Options) (*Window, error) {
	if r.coord == nil {
		return nil, ErrNotInitialized
	}

	if r.geometry != nil && opts.StateKey != "" {
		restored, err := r.geometry.Restore(r.ctx, opts)
		if err != nil {
			logging.FromContext(r.ctx).Warn().Err(err).Str("state_key", opts.StateKey).Msg("window geometry not restored")
		} else {
			opts = restored
		}
	}

	id, err := r.coord.CreateWindow(opts)
	if err != nil {
		return nil, err
	}

	w := &Window{id: id, rt: r, ctx: logging.WithWindowID(r.ctx, uint32(id)), stateKey: opts.StateKey}
	if r.geometry != nil && w.stateKey != "" {
		if err := r.coord.SetHandlers(id, func(h *window.Handlers) {
			h.OnResize = w.trackResize(nil)
			h.OnMove = w.trackMove(nil)
		}); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Pump runs one coordination cycle: queued commands are applied, native
// events are dispatched and deferred events reach their handlers. It returns
// the first command error; the cycle completes regardless.
func (r *Runtime) Pump(ctx context.Context) error {
	if r.coord == nil {
		return ErrNotInitialized
	}
	return r.coord.Pump(ctx)
}

// Run pumps every interval until ctx is done. Command errors are logged and
// do not stop the loop.
func (r *Runtime) Run(ctx context.Context, interval time.Duration) error {
	if r.coord == nil {
		return ErrNotInitialized
	}
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	log := logging.FromContext(r.ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.coord.Pump(ctx); err != nil {
				if errors.Is(err, ErrNotInitialized) {
					return err
				}
				log.Warn().Err(err).Msg("pump cycle reported a command failure")
			}
		}
	}
}

// Windows returns the ids of the live windows.
func (r *Runtime) Windows() []ID {
	if r.coord == nil {
		return nil
	}
	return r.coord.Windows()
}

// PlatformName returns the name of the initialized backend.
func (r *Runtime) PlatformName() string {
	if r.coord == nil {
		return ""
	}
	return r.coord.PlatformName()
}

// UpdatePolicy replaces the trusted origins and allowed hosts of a window.
func (r *Runtime) UpdatePolicy(id ID, trustedOrigins, allowedHosts []string) error {
	if r.coord == nil {
		return ErrNotInitialized
	}
	return r.coord.UpdatePolicy(id, trustedOrigins, allowedHosts)
}

// Shutdown saves pending window geometry and closes the backend.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r.coord == nil {
		return nil
	}
	if r.geometry != nil {
		r.geometry.Flush()
	}
	return r.coord.Shutdown(ctx)
}
