package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/nativewindow/internal/infrastructure/config"
	"github.com/bnema/nativewindow/internal/logging"
	"github.com/bnema/nativewindow/pkg/nativewindow"
)

const metricsShutdownTimeout = 5 * time.Second

// HostOptions configures Host.
type HostOptions struct {
	// Backend overrides platform.backend from the configuration.
	Backend string
	// Profiles limits the opened windows to these profile names.
	Profiles []string
	// URL opens an extra window on this address.
	URL string
	// Registry receives the coordinator metrics. A new registry is created
	// when nil.
	Registry *prometheus.Registry
	// Runtime is appended to the options derived from the configuration.
	Runtime []nativewindow.Option
}

type hostWindow struct {
	profile string
	window  *nativewindow.Window
}

// Host opens the configured windows and pumps them until ctx is done or the
// last window is closed. The calling goroutine becomes the host thread.
func (a *App) Host(ctx context.Context, opts HostOptions) error {
	log := logging.FromContext(a.ctx).With().Str("component", "host").Logger()
	cfg := a.Config

	profiles, err := selectProfiles(cfg, opts.Profiles)
	if err != nil {
		return err
	}
	if len(profiles) == 0 && opts.URL == "" {
		return errors.New("no window to open: add a [[windows]] profile or pass --url")
	}

	backend := opts.Backend
	if backend == "" {
		backend = string(cfg.Platform.Backend)
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	rtOpts := []nativewindow.Option{
		nativewindow.WithBackend(backend),
		nativewindow.WithLogger(log),
		nativewindow.WithMetrics(reg),
		nativewindow.WithWindowStore(a.WindowStates),
		nativewindow.WithScriptTimeout(time.Duration(cfg.Platform.ScriptTimeoutMilliseconds) * time.Millisecond),
		nativewindow.WithQueueCapacity(cfg.Pump.QueueCapacity),
		nativewindow.WithBufferCapacity(cfg.Pump.BufferCapacity),
		nativewindow.WithWindowMessageLimit(cfg.Pump.WindowMessageLimit),
	}
	rt := nativewindow.New(append(rtOpts, opts.Runtime...)...)
	if err := rt.Init(a.ctx); err != nil {
		return err
	}
	defer func() {
		if err := rt.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("runtime shutdown failed")
		}
	}()

	open := make(map[nativewindow.ID]hostWindow)
	closed := make(chan nativewindow.ID, len(profiles)+1)
	for _, p := range profiles {
		w, err := a.openWindow(rt, p, closed)
		if err != nil {
			return fmt.Errorf("open window %q: %w", p.Name, err)
		}
		open[w.ID()] = hostWindow{profile: p.Name, window: w}
	}
	if opts.URL != "" {
		p := config.WindowProfile{Name: "url", URL: opts.URL}
		w, err := a.openWindow(rt, p, closed)
		if err != nil {
			return fmt.Errorf("open %s: %w", opts.URL, err)
		}
		open[w.ID()] = hostWindow{profile: p.Name, window: w}
	}

	// Reloaded configurations reach the host thread through this channel;
	// only the latest one matters.
	reloads := make(chan *config.Config, 1)
	a.Manager.OnConfigChange(func(c *config.Config) {
		select {
		case <-reloads:
		default:
		}
		reloads <- c
	})
	if err := a.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watcher not started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	if cfg.Metrics.Listen != "" {
		reg.MustRegister(collectors.NewGoCollector())
		serveMetrics(gctx, g, cfg.Metrics.Listen, reg, log.With().Str("listen", cfg.Metrics.Listen).Logger())
	}

	interval := time.Duration(cfg.Pump.IntervalMilliseconds) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Str("platform", rt.PlatformName()).Int("windows", len(open)).Msg("host started")

loop:
	for {
		select {
		case <-gctx.Done():
			break loop
		case c := <-reloads:
			applyPolicies(rt, open, c, log)
		case id := <-closed:
			delete(open, id)
			if len(open) == 0 {
				log.Info().Msg("last window closed")
				break loop
			}
		case <-ticker.C:
			if err := rt.Pump(gctx); err != nil {
				log.Warn().Err(err).Msg("pump cycle reported a command failure")
			}
		}
	}

	cancel()
	stopErr := g.Wait()
	if ctx.Err() != nil {
		// cancellation is the normal way to stop
		return nil
	}
	return stopErr
}

func (a *App) openWindow(rt *nativewindow.Runtime, p config.WindowProfile, closed chan<- nativewindow.ID) (*nativewindow.Window, error) {
	log := logging.FromContext(a.ctx).With().Str("window", p.Name).Logger()

	opts := p.Options
	if opts.Title == "" {
		opts.Title = p.Name
	}
	w, err := rt.NewWindow(opts)
	if err != nil {
		return nil, err
	}

	id := w.ID()
	handlers := []error{
		w.OnClose(func() { closed <- id }),
		w.OnMessage(func(text, source string) {
			log.Info().Str("source", source).Str("message", text).Msg("message from page")
		}),
		w.OnNavigationBlocked(func(url string) {
			log.Warn().Str("url", url).Msg("navigation blocked")
		}),
		w.OnPageLoad(func(phase nativewindow.LoadPhase, url string) {
			log.Debug().Str("phase", string(phase)).Str("url", url).Msg("page load")
		}),
		w.OnTitleChanged(func(title string) {
			log.Debug().Str("title", title).Msg("title changed")
		}),
	}
	if err := errors.Join(handlers...); err != nil {
		return nil, err
	}

	switch {
	case p.URL != "":
		err = w.LoadURL(p.URL)
	case p.HTML != "":
		err = w.LoadHTML(p.HTML)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func selectProfiles(cfg *config.Config, names []string) ([]config.WindowProfile, error) {
	if len(names) == 0 {
		return cfg.Windows, nil
	}
	profiles := make([]config.WindowProfile, 0, len(names))
	for _, name := range names {
		p, ok := cfg.Profile(name)
		if !ok {
			return nil, fmt.Errorf("unknown window profile %q", name)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func applyPolicies(rt *nativewindow.Runtime, open map[nativewindow.ID]hostWindow, cfg *config.Config, log zerolog.Logger) {
	for id, hw := range open {
		p, ok := cfg.Profile(hw.profile)
		if !ok {
			continue
		}
		if err := rt.UpdatePolicy(id, p.TrustedOrigins, p.AllowedHosts); err != nil {
			log.Warn().Err(err).Str("window", hw.profile).Msg("policy update failed")
			continue
		}
		log.Info().Str("window", hw.profile).Msg("policy reloaded")
	}
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, reg *prometheus.Registry, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		log.Info().Msg("metrics endpoint listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}
