package nativewindow

import (
	"context"
	"fmt"

	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/infrastructure/content"
)

// Window is the host handle of one window. Commands are queued and take
// effect during the next Pump; they may be issued before the native window
// exists.
type Window struct {
	id       ID
	rt       *Runtime
	ctx      context.Context
	stateKey string
}

// ID returns the window id.
func (w *Window) ID() ID { return w.id }

func (w *Window) submit(cmd window.Command) error {
	return w.rt.coord.Submit(cmd)
}

func (w *Window) at() window.Addr { return window.At(w.id) }

// LoadURL navigates to url. Only http, https and nativewindow URLs are
// accepted.
func (w *Window) LoadURL(url string) error {
	if !window.IsLoadableURL(url) {
		return fmt.Errorf("%w: %q", ErrSchemeNotAllowed, url)
	}
	return w.submit(window.LoadURL{Addr: w.at(), URL: url})
}

// LoadHTML shows html from the internal content origin. Reload serves the
// same content again.
func (w *Window) LoadHTML(html string) error {
	return w.submit(window.LoadHTML{Addr: w.at(), HTML: html})
}

// EvaluateScript runs script in the page.
func (w *Window) EvaluateScript(script string) error {
	return w.submit(window.EvaluateScript{Addr: w.at(), Script: script})
}

// PostMessage delivers text to the page's window.__native_message__
// listener. Pages without a listener ignore it.
func (w *Window) PostMessage(text string) error {
	return w.EvaluateScript(content.PostMessageScript(text))
}

func (w *Window) SetTitle(title string) error {
	return w.submit(window.SetTitle{Addr: w.at(), Title: title})
}

func (w *Window) SetSize(width, height float64) error {
	return w.submit(window.SetSize{Addr: w.at(), Width: width, Height: height})
}

func (w *Window) SetMinSize(width, height float64) error {
	return w.submit(window.SetMinSize{Addr: w.at(), Width: width, Height: height})
}

func (w *Window) SetMaxSize(width, height float64) error {
	return w.submit(window.SetMaxSize{Addr: w.at(), Width: width, Height: height})
}

func (w *Window) SetPosition(x, y float64) error {
	return w.submit(window.SetPosition{Addr: w.at(), X: x, Y: y})
}

func (w *Window) SetResizable(resizable bool) error {
	return w.submit(window.SetResizable{Addr: w.at(), Resizable: resizable})
}

func (w *Window) SetDecorations(decorations bool) error {
	return w.submit(window.SetDecorations{Addr: w.at(), Decorations: decorations})
}

func (w *Window) SetAlwaysOnTop(alwaysOnTop bool) error {
	return w.submit(window.SetAlwaysOnTop{Addr: w.at(), AlwaysOnTop: alwaysOnTop})
}

// SetIcon sets the window icon from an image file.
func (w *Window) SetIcon(path string) error {
	return w.submit(window.SetIcon{Addr: w.at(), Path: path})
}

func (w *Window) Show() error       { return w.submit(window.Show{Addr: w.at()}) }
func (w *Window) Hide() error       { return w.submit(window.Hide{Addr: w.at()}) }
func (w *Window) Close() error      { return w.submit(window.Close{Addr: w.at()}) }
func (w *Window) Focus() error      { return w.submit(window.Focus{Addr: w.at()}) }
func (w *Window) Maximize() error   { return w.submit(window.Maximize{Addr: w.at()}) }
func (w *Window) Minimize() error   { return w.submit(window.Minimize{Addr: w.at()}) }
func (w *Window) Unmaximize() error { return w.submit(window.Unmaximize{Addr: w.at()}) }
func (w *Window) Reload() error     { return w.submit(window.Reload{Addr: w.at()}) }

// GetCookies requests the cookies of the window's store, or only those sent
// to url when one is given. The answer arrives through OnCookies.
func (w *Window) GetCookies(url ...string) error {
	cmd := window.GetCookies{Addr: w.at()}
	if len(url) > 0 {
		u := url[0]
		cmd.URL = &u
	}
	return w.submit(cmd)
}

func (w *Window) handlers(fn func(h *window.Handlers)) error {
	return w.rt.coord.SetHandlers(w.id, fn)
}

// OnMessage receives messages posted by trusted page content through
// window.ipc.postMessage.
func (w *Window) OnMessage(fn func(text, sourceURL string)) error {
	return w.handlers(func(h *window.Handlers) { h.OnMessage = fn })
}

// OnClose is called once the window is gone. The id is not valid afterwards.
func (w *Window) OnClose(fn func()) error {
	return w.handlers(func(h *window.Handlers) { h.OnClose = fn })
}

func (w *Window) OnResize(fn func(width, height float64)) error {
	return w.handlers(func(h *window.Handlers) { h.OnResize = w.trackResize(fn) })
}

func (w *Window) OnMove(fn func(x, y float64)) error {
	return w.handlers(func(h *window.Handlers) { h.OnMove = w.trackMove(fn) })
}

func (w *Window) OnFocus(fn func()) error {
	return w.handlers(func(h *window.Handlers) { h.OnFocus = fn })
}

func (w *Window) OnBlur(fn func()) error {
	return w.handlers(func(h *window.Handlers) { h.OnBlur = fn })
}

func (w *Window) OnPageLoad(fn func(phase LoadPhase, url string)) error {
	return w.handlers(func(h *window.Handlers) { h.OnPageLoad = fn })
}

func (w *Window) OnTitleChanged(fn func(title string)) error {
	return w.handlers(func(h *window.Handlers) { h.OnTitleChanged = fn })
}

func (w *Window) OnReload(fn func()) error {
	return w.handlers(func(h *window.Handlers) { h.OnReload = fn })
}

// OnCookies receives the JSON array answering GetCookies.
func (w *Window) OnCookies(fn func(json string)) error {
	return w.handlers(func(h *window.Handlers) { h.OnCookies = fn })
}

// OnNavigationBlocked receives navigations refused by the allowed hosts.
func (w *Window) OnNavigationBlocked(fn func(url string)) error {
	return w.handlers(func(h *window.Handlers) { h.OnNavigationBlocked = fn })
}

// trackResize wraps fn so the window store sees every size change.
func (w *Window) trackResize(fn func(width, height float64)) func(width, height float64) {
	geometry := w.rt.geometry
	if geometry == nil || w.stateKey == "" {
		return fn
	}
	ctx, key := w.ctx, w.stateKey
	return func(width, height float64) {
		geometry.Resized(ctx, key, width, height)
		if fn != nil {
			fn(width, height)
		}
	}
}

func (w *Window) trackMove(fn func(x, y float64)) func(x, y float64) {
	geometry := w.rt.geometry
	if geometry == nil || w.stateKey == "" {
		return fn
	}
	ctx, key := w.ctx, w.stateKey
	return func(x, y float64) {
		geometry.Moved(ctx, key, x, y)
		if fn != nil {
			fn(x, y)
		}
	}
}
