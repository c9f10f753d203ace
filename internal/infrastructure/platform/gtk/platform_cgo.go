//go:build webkit_cgo

package gtk

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/logging"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"
)

// Available reports whether this binary carries the GTK adapter.
func Available() bool { return true }

// Platform implements port.Platform on GTK4 and WebKitGTK 6. Every method
// must be called from the goroutine that ran the factory, which is locked to
// its OS thread.
type Platform struct {
	sink   port.EventSink
	logger zerolog.Logger

	mu      sync.Mutex
	windows map[window.ID]*nativeWindow
	byView  map[*webkit.WebView]*nativeWindow
	scheme  bool
}

// Factory returns a factory initializing GTK on the calling goroutine. The
// goroutine stays locked to its OS thread for the life of the process.
func Factory() port.PlatformFactory {
	return func(ctx context.Context, sink port.EventSink) (port.Platform, error) {
		runtime.LockOSThread()
		if !gtk.InitCheck() {
			return nil, fmt.Errorf("%w: cannot open display", ErrUnavailable)
		}
		p := &Platform{
			sink:    sink,
			logger:  logging.FromContext(ctx).With().Str("component", "gtk-platform").Logger(),
			windows: make(map[window.ID]*nativeWindow),
			byView:  make(map[*webkit.WebView]*nativeWindow),
		}
		p.logger.Debug().
			Uint("gtk_major", gtk.GetMajorVersion()).
			Uint("gtk_minor", gtk.GetMinorVersion()).
			Msg("gtk initialized")
		return p, nil
	}
}

// Name implements port.Platform.
func (p *Platform) Name() string { return Name }

// PumpEvents dispatches pending main context sources without blocking.
func (p *Platform) PumpEvents(context.Context, window.Table) {
	mc := glib.MainContextDefault()
	for i := 0; i < maxIterations && mc.Pending(); i++ {
		mc.Iteration(false)
	}
}

// Close destroys every window.
func (p *Platform) Close() error {
	p.mu.Lock()
	windows := make([]*nativeWindow, 0, len(p.windows))
	for _, nw := range p.windows {
		windows = append(windows, nw)
	}
	p.mu.Unlock()

	for _, nw := range windows {
		p.destroy(nw, false)
	}
	return nil
}

// ProcessCommand implements port.Platform.
func (p *Platform) ProcessCommand(ctx context.Context, cmd window.Command, table window.Table) error {
	if c, ok := cmd.(window.CreateWindow); ok {
		return p.create(ctx, c, table)
	}

	p.mu.Lock()
	nw := p.windows[cmd.Target()]
	p.mu.Unlock()
	if nw == nil {
		return fmt.Errorf("window %d: %w", cmd.Target(), port.ErrWindowNotFound)
	}
	log := p.logger.With().Uint32("window_id", uint32(nw.id)).Str("kind", cmd.Kind()).Logger()

	switch c := cmd.(type) {
	case window.LoadURL:
		nw.entry.ClearHTML()
		nw.entry.Policy.MarkInternalNavigation()
		nw.view.LoadURI(c.URL)
	case window.LoadHTML:
		nw.entry.SetHTML(c.HTML)
		nw.entry.Policy.MarkInternalNavigation()
		nw.view.LoadURI(security.InternalContentURL)
	case window.Reload:
		nw.entry.Policy.MarkInternalNavigation()
		nw.view.Reload()
	case window.EvaluateScript:
		p.evaluate(ctx, nw, c.Script)
	case window.SetTitle:
		nw.win.SetTitle(c.Title)
	case window.SetSize:
		nw.win.SetDefaultSize(int(c.Width), int(c.Height))
	case window.SetMinSize:
		nw.view.SetSizeRequest(int(c.Width), int(c.Height))
	case window.SetResizable:
		nw.win.SetResizable(c.Resizable)
	case window.SetDecorations:
		nw.win.SetDecorated(c.Decorations)
	case window.SetMaxSize, window.SetPosition, window.SetAlwaysOnTop, window.SetIcon:
		log.Warn().Msg("operation not supported by gtk4, ignoring")
	case window.Show:
		nw.win.SetVisible(true)
	case window.Hide:
		nw.win.SetVisible(false)
	case window.Focus:
		nw.win.Present()
	case window.Maximize:
		nw.win.Maximize()
	case window.Minimize:
		nw.win.Minimize()
	case window.Unmaximize:
		nw.win.Unmaximize()
	case window.Close:
		p.destroy(nw, true)
	case window.GetCookies:
		p.cookies(ctx, nw, c.URL)
	default:
		return fmt.Errorf("%s: %w", cmd.Kind(), port.ErrUnsupported)
	}
	return nil
}

func (p *Platform) evaluate(ctx context.Context, nw *nativeWindow, script string) {
	nw.view.EvaluateJavascript(ctx, script, -1, "", "", func(res gio.AsyncResulter) {
		if _, err := nw.view.EvaluateJavascriptFinish(res); err != nil {
			p.logger.Warn().Err(err).Uint32("window_id", uint32(nw.id)).Msg("script evaluation failed")
		}
	})
}

// destroy tears the native window down, then reports the close when notify
// is set.
func (p *Platform) destroy(nw *nativeWindow, notify bool) {
	p.mu.Lock()
	if p.windows[nw.id] != nw {
		p.mu.Unlock()
		return
	}
	delete(p.windows, nw.id)
	delete(p.byView, nw.view)
	p.mu.Unlock()

	nw.closing = true
	nw.win.Destroy()
	p.logger.Debug().Uint32("window_id", uint32(nw.id)).Msg("window destroyed")
	if notify {
		p.sink.Raise(window.CloseEvent{Source: window.From(nw.id)})
	}
}

// serveInternal answers requests for the internal content origin with the
// HTML stored for the requesting window.
func (p *Platform) serveInternal(req *webkit.URISchemeRequest) {
	p.mu.Lock()
	nw := p.byView[req.WebView()]
	p.mu.Unlock()

	var html string
	if nw != nil {
		html, _ = nw.entry.HTML()
	}
	data := glib.NewBytes([]byte(html))
	stream := gio.NewMemoryInputStreamFromBytes(data)
	req.Finish(stream, int64(len(html)), "text/html; charset=utf-8")
}
