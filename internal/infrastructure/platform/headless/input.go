package headless

import (
	"context"

	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
)

// The methods below simulate user and OS activity. They are safe to call from
// any goroutine; the input is handled during the next PumpEvents.

// UserClose simulates the user closing the window from its decorations.
func (p *Platform) UserClose(id window.ID) {
	p.onWindow(id, func(_ context.Context, v *view) {
		p.destroyWindow(v)
	})
}

// UserResize simulates an interactive resize. Non-resizable windows ignore it.
func (p *Platform) UserResize(id window.ID, width, height float64) {
	p.onWindow(id, func(_ context.Context, v *view) {
		p.mu.Lock()
		resizable := v.Resizable
		p.mu.Unlock()
		if !resizable {
			return
		}
		p.resize(v, width, height)
	})
}

// UserMove simulates the user dragging the window.
func (p *Platform) UserMove(id window.ID, x, y float64) {
	p.onWindow(id, func(_ context.Context, v *view) {
		p.move(v, x, y)
	})
}

// UserFocus simulates the window becoming active.
func (p *Platform) UserFocus(id window.ID) {
	p.onWindow(id, func(_ context.Context, v *view) {
		p.focus(v.id)
	})
}

// UserBlur simulates the window losing focus to another application.
func (p *Platform) UserBlur(id window.ID) {
	p.onWindow(id, func(_ context.Context, v *view) {
		p.blur(v.id)
	})
}

// UserReload simulates the reload keyboard shortcut: the page reloads and
// the host is notified.
func (p *Platform) UserReload(id window.ID) {
	p.onWindow(id, func(ctx context.Context, v *view) {
		if url := p.currentURL(v); url != "" {
			p.navigate(ctx, v, url, true)
		}
		p.raise(window.ReloadEvent{Source: window.From(v.id)})
	})
}

// RunPageScript runs src as page content, e.g. a script posting a message
// through window.ipc or assigning location.
func (p *Platform) RunPageScript(id window.ID, src string) {
	p.onWindow(id, func(_ context.Context, v *view) {
		p.evaluate(v, src)
	})
}

// Navigate simulates a navigation started by page content, such as a link
// click. It is subject to the navigation policy without the internal marker.
func (p *Platform) Navigate(id window.ID, url string) {
	p.onWindow(id, func(ctx context.Context, v *view) {
		p.navigate(ctx, v, url, false)
	})
}

// SetCookie stores a cookie as if set by a response. A cookie with the same
// name, domain and path is replaced.
func (p *Platform) SetCookie(id window.ID, c window.Cookie) {
	p.onWindow(id, func(_ context.Context, v *view) {
		p.mu.Lock()
		defer p.mu.Unlock()
		v.setCookie(c)
	})
}

// RequestPermission simulates page content requesting a capability. reply
// receives the decision taken from the window's permission flags.
func (p *Platform) RequestPermission(id window.ID, kind security.PermissionKind, reply func(granted bool)) {
	p.onWindow(id, func(_ context.Context, v *view) {
		granted := v.entry.Policy.Allows(kind)
		p.logger.Debug().
			Uint32("window_id", uint32(v.id)).
			Str("permission", kind.String()).
			Bool("granted", granted).
			Msg("permission request")
		if reply != nil {
			reply(granted)
		}
	})
}

func (p *Platform) onWindow(id window.ID, fn func(ctx context.Context, v *view)) {
	p.enqueue(func(ctx context.Context) {
		v := p.lookup(id)
		if v == nil {
			p.logger.Debug().Uint32("window_id", uint32(id)).Msg("input for unknown window ignored")
			return
		}
		fn(ctx, v)
	})
}
