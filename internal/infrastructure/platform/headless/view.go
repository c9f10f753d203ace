package headless

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/grafana/sobek"
	"github.com/rs/zerolog"
)

// ipcHandlerExpr names the native handler object the IPC bridge wraps.
const ipcHandlerExpr = "window.__nativewindow_ipc"

// State is the observable state of a headless window.
type State struct {
	URL         string
	Title       string
	WindowTitle string

	Width, Height       float64
	X, Y                float64
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64

	Visible     bool
	Focused     bool
	Maximized   bool
	Minimized   bool
	Resizable   bool
	Decorations bool
	AlwaysOnTop bool
	Transparent bool
	DevTools    bool
	Icon        string
}

type view struct {
	State

	id      window.ID
	entry   *window.Entry
	vm      *sobek.Runtime
	scripts []string
	cookies []window.Cookie
}

func newView(id window.ID, entry *window.Entry, opts window.Options) *view {
	v := &view{
		id:    id,
		entry: entry,
		State: State{
			WindowTitle: opts.Title,
			Visible:     opts.IsVisible(),
			Resizable:   opts.IsResizable(),
			Decorations: opts.HasDecorations(),
			AlwaysOnTop: opts.AlwaysOnTop,
			Transparent: opts.Transparent,
			DevTools:    opts.DevTools,
			Icon:        opts.IconPath,
		},
	}
	if opts.MinWidth != nil && opts.MinHeight != nil {
		v.MinWidth, v.MinHeight = *opts.MinWidth, *opts.MinHeight
	}
	if opts.MaxWidth != nil && opts.MaxHeight != nil {
		v.MaxWidth, v.MaxHeight = *opts.MaxWidth, *opts.MaxHeight
	}
	v.Width, v.Height = v.clamp(opts.Size())
	if x, y, ok := opts.Position(); ok {
		v.X, v.Y = x, y
	}
	return v
}

func (v *view) destroy() {
	if v.vm != nil {
		v.vm.Interrupt("window destroyed")
	}
}

func (p *Platform) currentURL(v *view) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return v.URL
}

func (p *Platform) live(v *view) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.windows[v.id] == v
}

// navigate runs the navigation-start policy check and loads target. internal
// marks navigations issued on the host's behalf.
func (p *Platform) navigate(ctx context.Context, v *view, target string, internal bool) {
	log := p.logger.With().Uint32("window_id", uint32(v.id)).Str("url", target).Logger()
	if internal {
		v.entry.Policy.MarkInternalNavigation()
	}

	switch v.entry.Policy.DecideNavigation(target) {
	case security.NavigationBlock:
		log.Debug().Msg("navigation cancelled")
		return
	case security.NavigationBlockAndNotify:
		log.Debug().Msg("navigation blocked")
		p.raise(window.NavigationBlockedEvent{Source: window.From(v.id), URL: target})
		return
	}

	p.raise(window.PageLoadEvent{Source: window.From(v.id), Phase: window.LoadStarted, URL: target})
	html := p.documentFor(ctx, v, target)
	p.update(func() { v.URL = target })
	p.loadDocument(v, html)
	log.Debug().Msg("document loaded")
	p.raise(window.PageLoadEvent{Source: window.From(v.id), Phase: window.LoadFinished, URL: target})
}

func (p *Platform) documentFor(ctx context.Context, v *view, target string) string {
	lower := strings.ToLower(strings.TrimSpace(target))
	switch {
	case strings.HasPrefix(lower, "about:"):
		return ""
	case security.IsInternalURL(lower):
		html, _ := v.entry.HTML()
		return html
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		if p.fetch == nil {
			return ""
		}
		html, err := p.fetch(ctx, target)
		if err != nil {
			p.logger.Warn().Err(err).Uint32("window_id", uint32(v.id)).Str("url", target).Msg("failed to fetch document")
			return ""
		}
		return html
	default:
		return ""
	}
}

// loadDocument replaces the window's runtime, runs the document-start
// scripts, then the inline scripts of html in document order.
func (p *Platform) loadDocument(v *view, html string) {
	title, scripts := parseDocument(html)

	vm := p.newRuntime(v, title)
	p.update(func() { v.vm = vm })

	for _, src := range v.scripts {
		if err := p.run(vm, src); err != nil {
			p.logger.Warn().Err(err).Uint32("window_id", uint32(v.id)).Msg("user script failed")
		}
	}
	for _, src := range scripts {
		if err := p.run(vm, src); err != nil {
			p.logger.Warn().Err(err).Uint32("window_id", uint32(v.id)).Msg("page script failed")
		}
	}
	p.syncTitle(v)
}

// parseDocument extracts the title and the inline classic scripts.
func parseDocument(html string) (string, []string) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		switch strings.ToLower(strings.TrimSpace(s.AttrOr("type", ""))) {
		case "", "text/javascript", "application/javascript":
			scripts = append(scripts, s.Text())
		}
	})
	return title, scripts
}

func (p *Platform) evaluate(v *view, script string) {
	p.mu.Lock()
	vm := v.vm
	p.mu.Unlock()
	if vm == nil {
		return
	}
	if err := p.run(vm, script); err != nil {
		p.logger.Warn().Err(err).Uint32("window_id", uint32(v.id)).Msg("script evaluation failed")
	}
	p.syncTitle(v)
}

// run executes src, interrupting it after the script timeout.
func (p *Platform) run(vm *sobek.Runtime, src string) error {
	timer := time.AfterFunc(p.scriptTimeout, func() {
		vm.Interrupt("script timeout exceeded")
	})
	_, err := vm.RunString(src)
	timer.Stop()
	vm.ClearInterrupt()
	return err
}

// syncTitle reports a document title change.
func (p *Platform) syncTitle(v *view) {
	p.mu.Lock()
	vm := v.vm
	p.mu.Unlock()
	if vm == nil {
		return
	}

	title := ""
	if doc := vm.GlobalObject().Get("document"); doc != nil && !sobek.IsUndefined(doc) && !sobek.IsNull(doc) {
		if t := doc.ToObject(vm).Get("title"); t != nil && !sobek.IsUndefined(t) && !sobek.IsNull(t) {
			title = t.String()
		}
	}

	p.mu.Lock()
	changed := title != v.Title
	v.Title = title
	p.mu.Unlock()

	if changed {
		p.raise(window.TitleChangedEvent{Source: window.From(v.id), Title: title})
	}
}

// newRuntime builds the global scope of a document: window, console,
// document, location, the native IPC handler and a popup-denying open.
func (p *Platform) newRuntime(v *view, title string) *sobek.Runtime {
	vm := sobek.New()
	g := vm.GlobalObject()
	_ = g.Set("window", g)
	_ = g.Set("self", g)

	console := vm.NewObject()
	_ = console.Set("log", p.consoleFunc(v, zerolog.DebugLevel))
	_ = console.Set("info", p.consoleFunc(v, zerolog.InfoLevel))
	_ = console.Set("warn", p.consoleFunc(v, zerolog.WarnLevel))
	_ = console.Set("error", p.consoleFunc(v, zerolog.ErrorLevel))
	_ = g.Set("console", console)

	ipc := vm.NewObject()
	_ = ipc.Set("postMessage", func(call sobek.FunctionCall) sobek.Value {
		p.post(v, call.Argument(0).String())
		return sobek.Undefined()
	})
	_ = g.Set("__nativewindow_ipc", ipc)

	document := vm.NewObject()
	_ = document.Set("title", title)
	_ = g.Set("document", document)

	_ = g.Set("location", p.newLocation(vm, v))

	_ = g.Set("close", func(sobek.FunctionCall) sobek.Value {
		p.enqueue(func(context.Context) {
			if p.live(v) {
				p.destroyWindow(v)
			}
		})
		return sobek.Undefined()
	})
	_ = g.Set("open", func(call sobek.FunctionCall) sobek.Value {
		p.logger.Debug().Uint32("window_id", uint32(v.id)).Str("url", call.Argument(0).String()).Msg("popup denied")
		return sobek.Null()
	})
	return vm
}

func (p *Platform) newLocation(vm *sobek.Runtime, v *view) *sobek.Object {
	location := vm.NewObject()
	href := func(sobek.FunctionCall) sobek.Value {
		return vm.ToValue(p.currentURL(v))
	}
	assign := func(call sobek.FunctionCall) sobek.Value {
		p.requestNavigation(v, call.Argument(0).String())
		return sobek.Undefined()
	}
	_ = location.DefineAccessorProperty("href", vm.ToValue(href), vm.ToValue(assign), sobek.FLAG_FALSE, sobek.FLAG_TRUE)
	_ = location.Set("assign", assign)
	_ = location.Set("replace", assign)
	_ = location.Set("toString", href)
	_ = location.Set("reload", func(sobek.FunctionCall) sobek.Value {
		p.requestNavigation(v, p.currentURL(v))
		return sobek.Undefined()
	})
	return location
}

// requestNavigation queues a navigation started by page content. Relative
// references resolve against the current URL.
func (p *Platform) requestNavigation(v *view, ref string) {
	target := ref
	if base, err := url.Parse(p.currentURL(v)); err == nil && !security.IsDangerousScheme(ref) {
		if r, err := url.Parse(strings.TrimSpace(ref)); err == nil {
			target = base.ResolveReference(r).String()
		}
	}
	p.enqueue(func(ctx context.Context) {
		if p.live(v) {
			p.navigate(ctx, v, target, false)
		}
	})
}

// post delivers a message sent through window.ipc.postMessage.
func (p *Platform) post(v *view, text string) {
	p.mu.Lock()
	live := p.windows[v.id] == v
	source := v.URL
	p.mu.Unlock()
	if !live {
		return
	}
	if !v.entry.Policy.IsTrusted(source) {
		p.logger.Debug().Uint32("window_id", uint32(v.id)).Str("source_url", source).Msg("dropping message from untrusted origin")
		return
	}
	p.raise(window.MessageEvent{Source: window.From(v.id), Text: text, SourceURL: source})
}

func (p *Platform) consoleFunc(v *view, level zerolog.Level) func(sobek.FunctionCall) sobek.Value {
	return func(call sobek.FunctionCall) sobek.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		p.logger.WithLevel(level).
			Uint32("window_id", uint32(v.id)).
			Str("source", "console").
			Msg(strings.Join(parts, " "))
		return sobek.Undefined()
	}
}
