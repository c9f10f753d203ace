//go:build webkit_cgo

package gtk

import (
	"context"
	"fmt"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/infrastructure/content"
	"github.com/diamondburned/gotk4-webkitgtk/pkg/javascriptcore/v6"
	"github.com/diamondburned/gotk4-webkitgtk/pkg/soup/v3"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

type nativeWindow struct {
	id    window.ID
	entry *window.Entry
	win   *gtk.Window
	view  *webkit.WebView

	closing bool
	width   int
	height  int
}

func (p *Platform) create(_ context.Context, c window.CreateWindow, table window.Table) error {
	entry := table.Lookup(c.ID)
	if entry == nil {
		return fmt.Errorf("window %d: %w", c.ID, port.ErrWindowNotFound)
	}
	opts := c.Options

	view := webkit.NewWebView()
	if view == nil {
		return fmt.Errorf("create webview for window %d", c.ID)
	}
	win := gtk.NewWindow()
	nw := &nativeWindow{id: c.ID, entry: entry, win: win, view: view}

	p.mu.Lock()
	if !p.scheme {
		view.Context().RegisterURIScheme(security.InternalScheme, p.serveInternal)
		p.scheme = true
	}
	p.windows[c.ID] = nw
	p.byView[view] = nw
	p.mu.Unlock()

	settings := view.Settings()
	settings.SetEnableDeveloperExtras(opts.DevTools)
	settings.SetJavascriptCanOpenWindowsAutomatically(false)

	ucm := view.UserContentManager()
	for _, src := range content.UserScripts(ipcHandlerExpr, opts.CSP) {
		ucm.AddScript(webkit.NewUserScript(
			src,
			webkit.UserContentInjectTopFrame,
			webkit.UserScriptInjectAtDocumentStart,
			nil,
			nil,
		))
	}
	ucm.RegisterScriptMessageHandler(content.MessageHandlerName, "")

	p.connectView(nw)
	p.connectWindow(nw)

	width, height := opts.Size()
	win.SetTitle(opts.Title)
	win.SetDefaultSize(int(width), int(height))
	win.SetResizable(opts.IsResizable())
	win.SetDecorated(opts.HasDecorations())
	if opts.MinWidth != nil && opts.MinHeight != nil {
		view.SetSizeRequest(int(*opts.MinWidth), int(*opts.MinHeight))
	}
	if opts.Transparent {
		bg := gdk.NewRGBA(0, 0, 0, 0)
		view.SetBackgroundColor(&bg)
	}
	win.SetChild(view)

	log := p.logger.With().Uint32("window_id", uint32(c.ID)).Logger()
	if _, _, ok := opts.Position(); ok {
		log.Warn().Msg("window positioning not supported by gtk4, ignoring")
	}
	if opts.AlwaysOnTop {
		log.Warn().Msg("always-on-top not supported by gtk4, ignoring")
	}
	if opts.IconPath != "" {
		log.Warn().Str("path", opts.IconPath).Msg("window icons from files not supported by gtk4, ignoring")
	}

	if opts.IsVisible() {
		win.Present()
	}
	log.Debug().Str("title", opts.Title).Msg("window created")
	return nil
}

// connectView wires the webview signals: navigation policy, page loads,
// titles, IPC messages, permissions and popups.
func (p *Platform) connectView(nw *nativeWindow) {
	view := nw.view
	policy := nw.entry.Policy
	src := window.From(nw.id)

	view.ConnectDecidePolicy(func(decision webkit.PolicyDecisioner, typ webkit.PolicyDecisionType) bool {
		switch typ {
		case webkit.PolicyDecisionTypeNewWindowAction:
			webkit.BasePolicyDecision(decision).Ignore()
			return true
		case webkit.PolicyDecisionTypeNavigationAction:
			nav, ok := decision.(*webkit.NavigationPolicyDecision)
			if !ok {
				return false
			}
			uri := nav.NavigationAction().Request().URI()
			switch policy.DecideNavigation(uri) {
			case security.NavigationBlock:
				nav.Ignore()
				return true
			case security.NavigationBlockAndNotify:
				nav.Ignore()
				p.sink.Raise(window.NavigationBlockedEvent{Source: src, URL: uri})
				return true
			}
		}
		return false
	})

	view.ConnectCreate(func(*webkit.NavigationAction) gtk.Widgetter {
		p.logger.Debug().Uint32("window_id", uint32(nw.id)).Msg("popup denied")
		return nil
	})

	view.ConnectLoadChanged(func(ev webkit.LoadEvent) {
		switch ev {
		case webkit.LoadStarted:
			p.sink.Raise(window.PageLoadEvent{Source: src, Phase: window.LoadStarted, URL: view.URI()})
		case webkit.LoadFinished:
			p.sink.Raise(window.PageLoadEvent{Source: src, Phase: window.LoadFinished, URL: view.URI()})
		}
	})

	view.Connect("notify::title", func() {
		p.sink.Raise(window.TitleChangedEvent{Source: src, Title: view.Title()})
	})

	view.UserContentManager().ConnectScriptMessageReceived(func(value *javascriptcore.Value) {
		source := view.URI()
		if !policy.IsTrusted(source) {
			p.logger.Debug().Uint32("window_id", uint32(nw.id)).Str("source_url", source).Msg("dropping message from untrusted origin")
			return
		}
		p.sink.Raise(window.MessageEvent{Source: src, Text: value.ToString(), SourceURL: source})
	})

	view.ConnectPermissionRequest(func(req webkit.PermissionRequester) bool {
		var allowed bool
		switch r := req.(type) {
		case *webkit.UserMediaPermissionRequest:
			audio := webkit.UserMediaPermissionIsForAudioDevice(r)
			video := webkit.UserMediaPermissionIsForVideoDevice(r)
			allowed = (!audio || policy.Allows(security.PermissionMicrophone)) &&
				(!video || policy.Allows(security.PermissionCamera))
		case *webkit.GeolocationPermissionRequest:
			allowed = policy.Allows(security.PermissionGeolocation)
		}
		if allowed {
			req.Allow()
		} else {
			req.Deny()
		}
		return true
	})

	view.ConnectRunFileChooser(func(req *webkit.FileChooserRequest) bool {
		if policy.Allows(security.PermissionFileSystem) {
			return false
		}
		req.Cancel()
		return true
	})
}

// connectWindow wires the toplevel: close requests, geometry, focus and the
// reload shortcut.
func (p *Platform) connectWindow(nw *nativeWindow) {
	win := nw.win
	src := window.From(nw.id)

	win.ConnectCloseRequest(func() bool {
		if nw.closing {
			return false
		}
		p.destroy(nw, true)
		return true
	})

	size := func() {
		w, h := win.DefaultSize()
		if w == nw.width && h == nw.height {
			return
		}
		nw.width, nw.height = w, h
		p.sink.Raise(window.ResizeEvent{Source: src, Width: float64(w), Height: float64(h)})
	}
	win.Connect("notify::default-width", size)
	win.Connect("notify::default-height", size)

	win.Connect("notify::is-active", func() {
		if win.IsActive() {
			p.sink.Raise(window.FocusEvent{Source: src})
		} else {
			p.sink.Raise(window.BlurEvent{Source: src})
		}
	})

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, _ uint, state gdk.ModifierType) bool {
		ctrl := state&gdk.ModifierMask == gdk.ControlMask
		if keyval != gdk.KEY_F5 && !(ctrl && (keyval == gdk.KEY_r || keyval == gdk.KEY_R)) {
			return false
		}
		nw.entry.Policy.MarkInternalNavigation()
		nw.view.Reload()
		p.sink.Raise(window.ReloadEvent{Source: src})
		return true
	})
	win.AddController(keys)
}

// cookies answers a cookie request asynchronously. Without a URL the cookies
// of the current page are returned.
func (p *Platform) cookies(ctx context.Context, nw *nativeWindow, target *string) {
	src := window.From(nw.id)
	uri := nw.view.URI()
	if target != nil {
		uri = *target
	}
	if uri == "" {
		p.sink.Raise(window.CookiesEvent{Source: src, JSON: window.EncodeCookies(nil)})
		return
	}

	manager := nw.view.NetworkSession().CookieManager()
	manager.Cookies(ctx, uri, func(res gio.AsyncResulter) {
		list, err := manager.CookiesFinish(res)
		if err != nil {
			p.logger.Warn().Err(err).Uint32("window_id", uint32(nw.id)).Msg("failed to read cookies")
			p.sink.Raise(window.CookiesEvent{Source: src, JSON: window.EncodeCookies(nil)})
			return
		}
		out := make([]window.Cookie, 0, len(list))
		for _, c := range list {
			out = append(out, convertCookie(c))
		}
		p.sink.Raise(window.CookiesEvent{Source: src, JSON: window.EncodeCookies(out)})
	})
}

func convertCookie(c *soup.Cookie) window.Cookie {
	out := window.Cookie{
		Name:     c.Name(),
		Value:    c.Value(),
		Domain:   c.Domain(),
		Path:     c.Path(),
		HTTPOnly: c.HTTPOnly(),
		Secure:   c.Secure(),
		Expires:  -1,
	}
	switch c.SameSitePolicy() {
	case soup.SameSitePolicyNone:
		out.SameSite = "None"
	case soup.SameSitePolicyLax:
		out.SameSite = "Lax"
	case soup.SameSitePolicyStrict:
		out.SameSite = "Strict"
	}
	if exp := c.Expires(); exp != nil {
		out.Expires = float64(exp.ToUnix())
	}
	return out
}
