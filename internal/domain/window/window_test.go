package window_test

import (
	"encoding/json"
	"testing"

	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Defaults(t *testing.T) {
	var o window.Options

	w, h := o.Size()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 600.0, h)
	assert.True(t, o.IsResizable())
	assert.True(t, o.HasDecorations())
	assert.True(t, o.IsVisible())
	assert.False(t, o.DevTools)
	_, _, ok := o.Position()
	assert.False(t, ok)
	assert.Equal(t, window.Options{}.Permissions(), o.Permissions())
	assert.False(t, o.Permissions().Camera)
}

func TestOptions_Overrides(t *testing.T) {
	o := window.Options{
		Width:       window.Float(1024),
		Height:      window.Float(768),
		X:           window.Float(10),
		Y:           window.Float(20),
		Resizable:   window.Bool(false),
		Decorations: window.Bool(false),
		Visible:     window.Bool(false),
		AllowCamera: true,
	}

	w, h := o.Size()
	assert.Equal(t, 1024.0, w)
	assert.Equal(t, 768.0, h)
	x, y, ok := o.Position()
	assert.True(t, ok)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	assert.False(t, o.IsResizable())
	assert.False(t, o.HasDecorations())
	assert.False(t, o.IsVisible())
	assert.True(t, o.Permissions().Camera)
}

func TestIsLoadableURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"  HTTP://example.com  ", true},
		{"nativewindow://localhost/", true},
		{"javascript:alert(1)", false},
		{"file:///etc/passwd", false},
		{"data:text/html,hi", false},
		{"about:blank", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, window.IsLoadableURL(tt.url))
		})
	}
}

func TestCommand_Target(t *testing.T) {
	cmds := []window.Command{
		window.CreateWindow{Addr: window.At(3)},
		window.LoadURL{Addr: window.At(3), URL: "https://example.com"},
		window.Close{Addr: window.At(3)},
		window.GetCookies{Addr: window.At(3)},
	}
	for _, cmd := range cmds {
		assert.Equal(t, window.ID(3), cmd.Target(), cmd.Kind())
	}
}

func TestEventKinds_FlushOrder(t *testing.T) {
	kinds := window.EventKinds()
	require.Len(t, kinds, 11)
	assert.Equal(t, window.KindMessage, kinds[0])
	assert.Equal(t, window.KindClose, kinds[1])
	assert.Equal(t, window.KindCookies, kinds[len(kinds)-1])
	for _, k := range kinds {
		assert.NotEqual(t, "unknown", k.String())
	}
}

func TestHandlers_Bind(t *testing.T) {
	var got []string
	h := &window.Handlers{
		OnMessage: func(text, src string) { got = append(got, "message:"+text+"@"+src) },
		OnClose:   func() { got = append(got, "close") },
		OnPageLoad: func(phase window.LoadPhase, url string) {
			got = append(got, "load:"+string(phase)+":"+url)
		},
	}

	fn := h.Bind(window.MessageEvent{Source: window.From(1), Text: "hi", SourceURL: "https://a"})
	require.NotNil(t, fn)
	fn()

	// Replacing after bind does not affect the bound closure.
	bound := h.Bind(window.CloseEvent{Source: window.From(1)})
	h.OnClose = func() { got = append(got, "replaced") }
	bound()

	h.Bind(window.PageLoadEvent{Source: window.From(1), Phase: window.LoadFinished, URL: "u"})()

	assert.Nil(t, h.Bind(window.ResizeEvent{Source: window.From(1)}))
	assert.Nil(t, h.Bind(window.FocusEvent{Source: window.From(1)}))
	var nilHandlers *window.Handlers
	assert.Nil(t, nilHandlers.Bind(window.CloseEvent{}))

	assert.Equal(t, []string{"message:hi@https://a", "close", "load:finished:u"}, got)
}

func TestEntry_HTML(t *testing.T) {
	e := &window.Entry{ID: 1}
	_, ok := e.HTML()
	assert.False(t, ok)

	e.SetHTML("<p>hi</p>")
	html, ok := e.HTML()
	assert.True(t, ok)
	assert.Equal(t, "<p>hi</p>", html)

	table := window.Table{1: e}
	assert.Same(t, e, table.Lookup(1))
	assert.Nil(t, table.Lookup(2))
	assert.Nil(t, window.Table(nil).Lookup(1))
}

func TestEncodeCookies(t *testing.T) {
	assert.Equal(t, "[]", window.EncodeCookies(nil))

	out := window.EncodeCookies([]window.Cookie{{
		Name: "sid", Value: "abc", Domain: "example.com", Path: "/",
		HTTPOnly: true, Secure: true, SameSite: "Lax", Expires: -1,
	}})

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "sid", decoded[0]["name"])
	assert.Equal(t, true, decoded[0]["httpOnly"])
	assert.Equal(t, "Lax", decoded[0]["sameSite"])
	assert.Equal(t, -1.0, decoded[0]["expires"])
}
