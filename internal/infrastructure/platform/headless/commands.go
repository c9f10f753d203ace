package headless

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/infrastructure/content"
)

// ProcessCommand implements port.Platform.
func (p *Platform) ProcessCommand(ctx context.Context, cmd window.Command, table window.Table) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if c, ok := cmd.(window.CreateWindow); ok {
		return p.createWindow(c, table)
	}

	v, err := p.mustLookup(cmd.Target())
	if err != nil {
		return err
	}

	switch c := cmd.(type) {
	case window.LoadURL:
		v.entry.ClearHTML()
		p.navigate(ctx, v, c.URL, true)
	case window.LoadHTML:
		v.entry.SetHTML(c.HTML)
		p.navigate(ctx, v, security.InternalContentURL, true)
	case window.Reload:
		if url := p.currentURL(v); url != "" {
			p.navigate(ctx, v, url, true)
		}
	case window.EvaluateScript:
		p.evaluate(v, c.Script)
	case window.SetTitle:
		p.update(func() { v.WindowTitle = c.Title })
	case window.SetSize:
		p.resize(v, c.Width, c.Height)
	case window.SetMinSize:
		p.update(func() { v.MinWidth, v.MinHeight = c.Width, c.Height })
		p.reclamp(v)
	case window.SetMaxSize:
		p.update(func() { v.MaxWidth, v.MaxHeight = c.Width, c.Height })
		p.reclamp(v)
	case window.SetPosition:
		p.move(v, c.X, c.Y)
	case window.SetResizable:
		p.update(func() { v.Resizable = c.Resizable })
	case window.SetDecorations:
		p.update(func() { v.Decorations = c.Decorations })
	case window.SetAlwaysOnTop:
		p.update(func() { v.AlwaysOnTop = c.AlwaysOnTop })
	case window.SetIcon:
		if _, err := os.Stat(c.Path); err != nil {
			p.logger.Warn().Err(err).Uint32("window_id", uint32(v.id)).Str("path", c.Path).Msg("failed to load window icon")
			return nil
		}
		p.update(func() { v.Icon = c.Path })
	case window.Show:
		p.update(func() { v.Visible = true })
	case window.Hide:
		p.update(func() { v.Visible = false })
		p.blur(v.id)
	case window.Focus:
		p.update(func() { v.Visible, v.Minimized = true, false })
		p.focus(v.id)
	case window.Maximize:
		p.update(func() { v.Maximized, v.Minimized = true, false })
	case window.Minimize:
		p.update(func() { v.Minimized = true })
		p.blur(v.id)
	case window.Unmaximize:
		p.update(func() { v.Maximized = false })
	case window.Close:
		p.destroyWindow(v)
	case window.GetCookies:
		p.raise(window.CookiesEvent{Source: window.From(v.id), JSON: window.EncodeCookies(p.cookiesFor(v, c.URL))})
	default:
		return fmt.Errorf("%s: %w", cmd.Kind(), port.ErrUnsupported)
	}
	return nil
}

func (p *Platform) createWindow(c window.CreateWindow, table window.Table) error {
	entry := table.Lookup(c.ID)
	if entry == nil {
		return fmt.Errorf("window %d: %w", c.ID, port.ErrWindowNotFound)
	}
	if p.lookup(c.ID) != nil {
		return fmt.Errorf("window %d already exists", c.ID)
	}

	v := newView(c.ID, entry, c.Options)
	v.URL = "about:blank"
	v.scripts = content.UserScripts(ipcHandlerExpr, c.Options.CSP)
	p.mu.Lock()
	p.windows[c.ID] = v
	p.mu.Unlock()
	p.loadDocument(v, "")

	p.logger.Debug().
		Uint32("window_id", uint32(c.ID)).
		Str("title", c.Options.Title).
		Float64("width", v.Width).
		Float64("height", v.Height).
		Msg("window created")

	p.raise(window.ResizeEvent{Source: window.From(c.ID), Width: v.Width, Height: v.Height})
	if x, y, ok := c.Options.Position(); ok {
		p.raise(window.MoveEvent{Source: window.From(c.ID), X: x, Y: y})
	}
	return nil
}

func (p *Platform) update(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

// resize applies the size constraints and reports the resulting size if it
// changed.
func (p *Platform) resize(v *view, width, height float64) {
	p.mu.Lock()
	width, height = v.clamp(width, height)
	changed := width != v.Width || height != v.Height
	v.Width, v.Height = width, height
	p.mu.Unlock()

	if changed {
		p.raise(window.ResizeEvent{Source: window.From(v.id), Width: width, Height: height})
	}
}

func (p *Platform) reclamp(v *view) {
	p.mu.Lock()
	width, height := v.Width, v.Height
	p.mu.Unlock()
	p.resize(v, width, height)
}

func (p *Platform) move(v *view, x, y float64) {
	p.mu.Lock()
	changed := x != v.X || y != v.Y
	v.X, v.Y = x, y
	p.mu.Unlock()

	if changed {
		p.raise(window.MoveEvent{Source: window.From(v.id), X: x, Y: y})
	}
}

// clamp applies the min and max size. Zero bounds are unset.
func (v *view) clamp(width, height float64) (float64, float64) {
	width = math.Max(width, v.MinWidth)
	height = math.Max(height, v.MinHeight)
	if v.MaxWidth > 0 {
		width = math.Min(width, v.MaxWidth)
	}
	if v.MaxHeight > 0 {
		height = math.Min(height, v.MaxHeight)
	}
	return width, height
}
