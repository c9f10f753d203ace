package headless_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/coordinator"
	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/infrastructure/content"
	"github.com/bnema/nativewindow/internal/infrastructure/platform/headless"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t    *testing.T
	c    *coordinator.Coordinator
	p    *headless.Platform
	logs *bytes.Buffer

	mu     sync.Mutex
	events []string
}

func newHarness(t *testing.T, opts ...headless.Option) *harness {
	t.Helper()
	h := &harness{t: t, logs: &bytes.Buffer{}}
	logger := zerolog.New(h.logs)
	factory := func(_ context.Context, sink port.EventSink) (port.Platform, error) {
		h.p = headless.New(sink, append([]headless.Option{headless.WithLogger(logger)}, opts...)...)
		return h.p, nil
	}
	h.c = coordinator.New(factory, coordinator.WithLogger(logger))
	require.NoError(t, h.c.Init(context.Background()))
	return h
}

func pages(docs map[string]string) headless.Option {
	return headless.WithFetcher(func(_ context.Context, url string) (string, error) {
		if html, ok := docs[url]; ok {
			return html, nil
		}
		return "", fmt.Errorf("no document at %s", url)
	})
}

func (h *harness) record(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, fmt.Sprintf(format, args...))
}

// open creates a window recording every event, pumps once and discards the
// creation events.
func (h *harness) open(opts window.Options) window.ID {
	h.t.Helper()
	id, err := h.c.CreateWindow(opts)
	require.NoError(h.t, err)
	require.NoError(h.t, h.c.SetHandlers(id, func(hs *window.Handlers) {
		hs.OnMessage = func(text, src string) { h.record("%d:message:%s@%s", id, text, src) }
		hs.OnClose = func() { h.record("%d:close", id) }
		hs.OnReload = func() { h.record("%d:reload", id) }
		hs.OnResize = func(w, ht float64) { h.record("%d:resize:%gx%g", id, w, ht) }
		hs.OnMove = func(x, y float64) { h.record("%d:move:%g,%g", id, x, y) }
		hs.OnFocus = func() { h.record("%d:focus", id) }
		hs.OnBlur = func() { h.record("%d:blur", id) }
		hs.OnPageLoad = func(phase window.LoadPhase, url string) { h.record("%d:page-load:%s:%s", id, phase, url) }
		hs.OnNavigationBlocked = func(url string) { h.record("%d:blocked:%s", id, url) }
		hs.OnTitleChanged = func(title string) { h.record("%d:title:%s", id, title) }
		hs.OnCookies = func(js string) { h.record("%d:cookies:%s", id, js) }
	}))
	h.pump()
	h.take()
	return id
}

func (h *harness) submit(cmds ...window.Command) {
	h.t.Helper()
	for _, cmd := range cmds {
		require.NoError(h.t, h.c.Submit(cmd))
	}
}

func (h *harness) pump() {
	h.t.Helper()
	require.NoError(h.t, h.c.Pump(context.Background()))
}

func (h *harness) take() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.events
	h.events = nil
	return out
}

func TestCreateWindowReportsInitialGeometry(t *testing.T) {
	h := newHarness(t)
	id, err := h.c.CreateWindow(window.Options{Title: "main", X: window.Float(10), Y: window.Float(20)})
	require.NoError(t, err)

	var got []string
	require.NoError(t, h.c.SetHandlers(id, func(hs *window.Handlers) {
		hs.OnResize = func(w, ht float64) { got = append(got, fmt.Sprintf("resize:%gx%g", w, ht)) }
		hs.OnMove = func(x, y float64) { got = append(got, fmt.Sprintf("move:%g,%g", x, y)) }
	}))
	h.pump()

	assert.Equal(t, []string{"resize:800x600", "move:10,20"}, got)
	state, ok := h.p.Snapshot(id)
	require.True(t, ok)
	assert.Equal(t, "main", state.WindowTitle)
	assert.True(t, state.Visible)
	assert.True(t, state.Resizable)
	assert.True(t, state.Decorations)
}

func TestCreateWindowAppliesSizeBounds(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{
		Width:     window.Float(100),
		Height:    window.Float(5000),
		MinWidth:  window.Float(300),
		MinHeight: window.Float(200),
		MaxWidth:  window.Float(1920),
		MaxHeight: window.Float(1080),
	})

	state, _ := h.p.Snapshot(id)
	assert.Equal(t, 300.0, state.Width)
	assert.Equal(t, 1080.0, state.Height)
}

func TestLoadHTML(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(window.LoadHTML{Addr: window.At(id), HTML: `<html><head><title> Hello </title></head>
<body><script>window.ipc.postMessage('ready:' + document.title)</script></body></html>`})
	h.pump()

	url := security.InternalContentURL
	assert.Equal(t, []string{
		fmt.Sprintf("%d:message:ready:Hello@%s", id, url),
		fmt.Sprintf("%d:page-load:started:%s", id, url),
		fmt.Sprintf("%d:page-load:finished:%s", id, url),
		fmt.Sprintf("%d:title:Hello", id),
	}, h.take())

	state, _ := h.p.Snapshot(id)
	assert.Equal(t, url, state.URL)
	assert.Equal(t, "Hello", state.Title)
}

func TestReloadServesStoredHTML(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(window.LoadHTML{Addr: window.At(id), HTML: `<script>window.ipc.postMessage('loaded')</script>`})
	h.pump()
	h.take()

	h.submit(window.Reload{Addr: window.At(id)})
	h.pump()

	assert.Contains(t, h.take(), fmt.Sprintf("%d:message:loaded@%s", id, security.InternalContentURL))
}

func TestLoadURLClearsStoredHTML(t *testing.T) {
	h := newHarness(t, pages(map[string]string{
		"https://app.example/": `<title>App</title>`,
	}))
	id := h.open(window.Options{})

	h.submit(
		window.LoadHTML{Addr: window.At(id), HTML: `<title>Local</title>`},
		window.LoadURL{Addr: window.At(id), URL: "https://app.example/"},
		window.LoadURL{Addr: window.At(id), URL: security.InternalContentURL},
	)
	h.pump()

	events := h.take()
	assert.Equal(t, []string{
		fmt.Sprintf("%d:title:Local", id),
		fmt.Sprintf("%d:title:App", id),
		fmt.Sprintf("%d:title:", id),
	}, filter(events, ":title:"))
}

func TestScriptsSeeTheBridgeAndCSP(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{CSP: "default-src 'self'"})

	h.submit(window.LoadHTML{Addr: window.At(id), HTML: `<script>
window.ipc.postMessage(String(Object.isFrozen(window.ipc)));
window.ipc = null;
window.ipc.postMessage('still here');
window.ipc.postMessage(String(window.open('https://popup.example/')));
</script>`})
	h.pump()

	messages := filter(h.take(), ":message:")
	require.Len(t, messages, 3)
	assert.Contains(t, messages[0], ":message:true@")
	assert.Contains(t, messages[1], ":message:still here@")
	assert.Contains(t, messages[2], ":message:null@")
}

func TestExternalAndNonClassicScriptsAreSkipped(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(window.LoadHTML{Addr: window.At(id), HTML: `
<script src="https://cdn.example/lib.js">window.ipc.postMessage('src')</script>
<script type="application/json">{"a": 1}</script>
<script type="text/javascript">window.ipc.postMessage('classic')</script>`})
	h.pump()

	assert.Equal(t, []string{fmt.Sprintf("%d:message:classic@%s", id, security.InternalContentURL)}, filter(h.take(), ":message:"))
}

func TestAllowedHosts(t *testing.T) {
	h := newHarness(t, pages(map[string]string{"https://docs.example.com/": "<title>Docs</title>"}))
	id := h.open(window.Options{AllowedHosts: []string{"*.example.com"}})

	h.submit(
		window.LoadURL{Addr: window.At(id), URL: "https://evil.test/"},
		window.LoadURL{Addr: window.At(id), URL: "https://docs.example.com/"},
	)
	h.pump()

	assert.Equal(t, []string{
		fmt.Sprintf("%d:page-load:started:https://docs.example.com/", id),
		fmt.Sprintf("%d:page-load:finished:https://docs.example.com/", id),
		fmt.Sprintf("%d:blocked:https://evil.test/", id),
		fmt.Sprintf("%d:title:Docs", id),
	}, h.take())
}

func TestContentNavigation(t *testing.T) {
	h := newHarness(t, pages(map[string]string{
		"https://app.example/":     `<title>Home</title>`,
		"https://app.example/next": `<title>Next</title>`,
		"https://other.example/":   `<title>Other</title>`,
	}))
	id := h.open(window.Options{AllowedHosts: []string{"app.example"}})
	h.submit(window.LoadURL{Addr: window.At(id), URL: "https://app.example/"})
	h.pump()
	h.take()

	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{
			name:   "relative reference",
			script: `location.assign('next')`,
			want: []string{
				fmt.Sprintf("%d:page-load:started:https://app.example/next", id),
				fmt.Sprintf("%d:page-load:finished:https://app.example/next", id),
				fmt.Sprintf("%d:title:Next", id),
			},
		},
		{
			name:   "dangerous scheme is cancelled silently",
			script: `location.href = 'javascript:alert(1)'`,
			want:   nil,
		},
		{
			name:   "disallowed host is reported",
			script: `location.replace('https://other.example/')`,
			want:   []string{fmt.Sprintf("%d:blocked:https://other.example/", id)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.p.RunPageScript(id, tt.script)
			h.pump()
			assert.Equal(t, tt.want, h.take())
		})
	}
}

func TestNavigateDataURLFromContentIsCancelled(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.p.Navigate(id, " DATA:text/html,<script>alert(1)</script>")
	h.p.Navigate(id, "file:///etc/passwd")
	h.pump()

	assert.Empty(t, h.take())
	state, _ := h.p.Snapshot(id)
	assert.Equal(t, "about:blank", state.URL)
}

func TestTrustedOrigins(t *testing.T) {
	page := `<script>window.ipc.postMessage('hi')</script>`
	h := newHarness(t, pages(map[string]string{
		"https://app.example/":   page,
		"https://other.example/": page,
	}))
	id := h.open(window.Options{TrustedOrigins: []string{"https://APP.example:443"}})

	h.submit(
		window.LoadURL{Addr: window.At(id), URL: "https://app.example/"},
		window.LoadURL{Addr: window.At(id), URL: "https://other.example/"},
	)
	h.pump()

	assert.Equal(t, []string{fmt.Sprintf("%d:message:hi@https://app.example/", id)}, filter(h.take(), ":message:"))
}

func TestPolicyUpdateAppliesToLiveWindow(t *testing.T) {
	h := newHarness(t, pages(map[string]string{"https://app.example/": `<title>App</title>`}))
	id := h.open(window.Options{})
	h.submit(window.LoadURL{Addr: window.At(id), URL: "https://app.example/"})
	h.pump()
	h.take()

	h.p.RunPageScript(id, `window.ipc.postMessage('queued')`)
	h.pump()
	assert.Equal(t, []string{fmt.Sprintf("%d:message:queued@https://app.example/", id)}, h.take())

	require.NoError(t, h.c.UpdatePolicy(id, []string{"https://elsewhere.example"}, nil))
	h.p.RunPageScript(id, `window.ipc.postMessage('rejected')`)
	h.pump()
	assert.Empty(t, h.take())
}

func TestEvaluateScript(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(
		window.EvaluateScript{Addr: window.At(id), Script: `document.title = 'Changed'`},
		window.EvaluateScript{Addr: window.At(id), Script: `throw new Error('boom')`},
		window.EvaluateScript{Addr: window.At(id), Script: `window.ipc.postMessage('after error')`},
	)
	require.NoError(t, h.c.Pump(context.Background()))

	assert.Equal(t, []string{
		fmt.Sprintf("%d:message:after error@about:blank", id),
		fmt.Sprintf("%d:title:Changed", id),
	}, h.take())
	assert.Contains(t, h.logs.String(), "script evaluation failed")
}

func TestPostMessageRoundTrip(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})
	h.submit(window.LoadHTML{Addr: window.At(id), HTML: `<script>
window.__native_message__ = function(msg) { window.ipc.postMessage('echo:' + msg); };
</script>`})
	h.pump()
	h.take()

	text := "</script>'\" \n"
	h.submit(window.EvaluateScript{Addr: window.At(id), Script: content.PostMessageScript(text)})
	h.pump()

	assert.Equal(t, []string{fmt.Sprintf("%d:message:echo:%s@%s", id, text, security.InternalContentURL)}, h.take())
}

func TestScriptTimeout(t *testing.T) {
	h := newHarness(t, headless.WithScriptTimeout(50*time.Millisecond))
	id := h.open(window.Options{})

	h.submit(
		window.EvaluateScript{Addr: window.At(id), Script: `for (;;) {}`},
		window.EvaluateScript{Addr: window.At(id), Script: `window.ipc.postMessage('alive')`},
	)
	h.pump()

	assert.Equal(t, []string{fmt.Sprintf("%d:message:alive@about:blank", id)}, h.take())
	assert.Contains(t, h.logs.String(), "script evaluation failed")
}

func TestCloseDestroysBeforeHandler(t *testing.T) {
	tests := []struct {
		name  string
		close func(h *harness, id window.ID)
	}{
		{name: "command", close: func(h *harness, id window.ID) { h.submit(window.Close{Addr: window.At(id)}) }},
		{name: "user", close: func(h *harness, id window.ID) { h.p.UserClose(id) }},
		{name: "page", close: func(h *harness, id window.ID) {
			h.submit(window.EvaluateScript{Addr: window.At(id), Script: "window.close()"})
			h.pump()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			id := h.open(window.Options{})

			var nativeAlive, called bool
			require.NoError(t, h.c.SetHandlers(id, func(hs *window.Handlers) {
				hs.OnClose = func() {
					called = true
					_, nativeAlive = h.p.Snapshot(id)
				}
			}))

			tt.close(h, id)
			h.pump()

			assert.True(t, called)
			assert.False(t, nativeAlive)
			assert.NotContains(t, h.c.Windows(), id)
		})
	}
}

func TestCommandForUnknownWindow(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(
		window.Show{Addr: window.At(999)},
		window.SetTitle{Addr: window.At(id), Title: "renamed"},
	)
	err := h.c.Pump(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrWindowNotFound))
	state, _ := h.p.Snapshot(id)
	assert.Equal(t, "renamed", state.WindowTitle)
}

func TestGeometryCommands(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(
		window.SetMinSize{Addr: window.At(id), Width: 400, Height: 300},
		window.SetMaxSize{Addr: window.At(id), Width: 1000, Height: 700},
		window.SetSize{Addr: window.At(id), Width: 1200, Height: 100},
		window.SetSize{Addr: window.At(id), Width: 1000, Height: 300},
		window.SetPosition{Addr: window.At(id), X: 5, Y: 6},
		window.SetPosition{Addr: window.At(id), X: 5, Y: 6},
	)
	h.pump()

	assert.Equal(t, []string{
		fmt.Sprintf("%d:resize:1000x300", id),
		fmt.Sprintf("%d:move:5,6", id),
	}, h.take())
}

func TestUserGeometry(t *testing.T) {
	h := newHarness(t)
	resizable := h.open(window.Options{})
	fixed := h.open(window.Options{Resizable: window.Bool(false)})

	h.p.UserResize(resizable, 640, 480)
	h.p.UserResize(fixed, 640, 480)
	h.p.UserMove(fixed, 1, 2)
	h.pump()

	assert.Equal(t, []string{
		fmt.Sprintf("%d:resize:640x480", resizable),
		fmt.Sprintf("%d:move:1,2", fixed),
	}, h.take())
}

func TestWindowStateCommands(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(
		window.Hide{Addr: window.At(id)},
		window.SetResizable{Addr: window.At(id), Resizable: false},
		window.SetDecorations{Addr: window.At(id), Decorations: false},
		window.SetAlwaysOnTop{Addr: window.At(id), AlwaysOnTop: true},
		window.Maximize{Addr: window.At(id)},
	)
	h.pump()

	state, _ := h.p.Snapshot(id)
	assert.False(t, state.Visible)
	assert.False(t, state.Resizable)
	assert.False(t, state.Decorations)
	assert.True(t, state.AlwaysOnTop)
	assert.True(t, state.Maximized)

	h.submit(window.Unmaximize{Addr: window.At(id)}, window.Show{Addr: window.At(id)})
	h.pump()
	state, _ = h.p.Snapshot(id)
	assert.True(t, state.Visible)
	assert.False(t, state.Maximized)
}

func TestSetIcon(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})

	h.submit(window.SetIcon{Addr: window.At(id), Path: "/definitely/missing.png"})
	h.pump()

	state, _ := h.p.Snapshot(id)
	assert.Empty(t, state.Icon)
	assert.Contains(t, h.logs.String(), "failed to load window icon")
}

func TestFocusMovesBetweenWindows(t *testing.T) {
	h := newHarness(t)
	a := h.open(window.Options{})
	b := h.open(window.Options{})

	h.submit(window.Focus{Addr: window.At(a)}, window.Focus{Addr: window.At(b)})
	h.pump()

	assert.Equal(t, []string{
		fmt.Sprintf("%d:focus", a),
		fmt.Sprintf("%d:focus", b),
		fmt.Sprintf("%d:blur", a),
	}, h.take())

	sa, _ := h.p.Snapshot(a)
	sb, _ := h.p.Snapshot(b)
	assert.False(t, sa.Focused)
	assert.True(t, sb.Focused)

	h.p.UserBlur(b)
	h.pump()
	assert.Equal(t, []string{fmt.Sprintf("%d:blur", b)}, h.take())
}

func TestUserReload(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})
	h.submit(window.LoadHTML{Addr: window.At(id), HTML: `<title>Page</title>`})
	h.pump()
	h.take()

	h.p.UserReload(id)
	h.pump()

	assert.Equal(t, []string{
		fmt.Sprintf("%d:reload", id),
		fmt.Sprintf("%d:page-load:started:%s", id, security.InternalContentURL),
		fmt.Sprintf("%d:page-load:finished:%s", id, security.InternalContentURL),
	}, h.take())
}

func TestGetCookies(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{})
	future := float64(time.Now().Add(time.Hour).Unix())

	h.p.SetCookie(id, window.Cookie{Name: "session", Value: "a", Domain: "app.example", Path: "/", Expires: -1})
	h.p.SetCookie(id, window.Cookie{Name: "pref", Value: "b", Domain: ".example", Path: "/settings", Secure: true, Expires: future})
	h.p.SetCookie(id, window.Cookie{Name: "old", Value: "c", Domain: "app.example", Path: "/", Expires: 1})
	h.p.SetCookie(id, window.Cookie{Name: "session", Value: "updated", Domain: "app.example", Path: "/", Expires: -1})
	h.pump()

	tests := []struct {
		name string
		url  *string
		want []string
	}{
		{name: "all", url: nil, want: []string{"session=updated", "pref=b"}},
		{name: "secure path", url: ptr("https://app.example/settings/x"), want: []string{"session=updated", "pref=b"}},
		{name: "insecure", url: ptr("http://app.example/settings"), want: []string{"session=updated"}},
		{name: "path boundary", url: ptr("https://app.example/settingsx"), want: []string{"session=updated"}},
		{name: "other host", url: ptr("https://other.test/"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.submit(window.GetCookies{Addr: window.At(id), URL: tt.url})
			h.pump()

			events := h.take()
			require.Len(t, events, 1)
			prefix := fmt.Sprintf("%d:cookies:", id)
			require.Contains(t, events[0], prefix)

			var cookies []window.Cookie
			require.NoError(t, json.Unmarshal([]byte(events[0][len(prefix):]), &cookies))
			got := []string{}
			for _, c := range cookies {
				got = append(got, c.Name+"="+c.Value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestPermission(t *testing.T) {
	h := newHarness(t)
	id := h.open(window.Options{AllowCamera: true})

	got := map[security.PermissionKind]bool{}
	for _, kind := range []security.PermissionKind{
		security.PermissionCamera,
		security.PermissionMicrophone,
		security.PermissionGeolocation,
		security.PermissionFileSystem,
	} {
		h.p.RequestPermission(id, kind, func(granted bool) { got[kind] = granted })
	}
	h.pump()

	assert.Equal(t, map[security.PermissionKind]bool{
		security.PermissionCamera:      true,
		security.PermissionMicrophone:  false,
		security.PermissionGeolocation: false,
		security.PermissionFileSystem:  false,
	}, got)
}

func TestInputForUnknownWindowIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.p.UserClose(42)
	h.p.RunPageScript(42, `window.ipc.postMessage('x')`)
	h.pump()
	assert.Zero(t, h.p.Pending())
}

func TestClosedPlatformRejectsCommands(t *testing.T) {
	p := headless.New(nil)
	require.NoError(t, p.Close())

	err := p.ProcessCommand(context.Background(), window.Show{Addr: window.At(1)}, window.Table{})
	assert.ErrorIs(t, err, headless.ErrClosed)
	assert.Equal(t, headless.Name, p.Name())
}

func filter(events []string, substr string) []string {
	var out []string
	for _, ev := range events {
		if bytes.Contains([]byte(ev), []byte(substr)) {
			out = append(out, ev)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
