package window

import (
	"strings"
)

// Command is an instruction for one window, processed during a pump cycle.
// Commands are immutable once enqueued.
type Command interface {
	Target() ID
	Kind() string
	command()
}

// Addr addresses a command to one window.
type Addr struct{ ID ID }

// At addresses a command to id.
func At(id ID) Addr { return Addr{ID: id} }

func (a Addr) Target() ID { return a.ID }
func (Addr) command()     {}

type (
	CreateWindow struct {
		Addr
		Options Options
	}
	LoadURL struct {
		Addr
		URL string
	}
	// LoadHTML shows HTML served from the internal content origin.
	LoadHTML struct {
		Addr
		HTML string
	}
	EvaluateScript struct {
		Addr
		Script string
	}
	SetTitle struct {
		Addr
		Title string
	}
	SetSize struct {
		Addr
		Width, Height float64
	}
	SetMinSize struct {
		Addr
		Width, Height float64
	}
	SetMaxSize struct {
		Addr
		Width, Height float64
	}
	SetPosition struct {
		Addr
		X, Y float64
	}
	SetResizable struct {
		Addr
		Resizable bool
	}
	SetDecorations struct {
		Addr
		Decorations bool
	}
	SetAlwaysOnTop struct {
		Addr
		AlwaysOnTop bool
	}
	SetIcon struct {
		Addr
		Path string
	}
	Show       struct{ Addr }
	Hide       struct{ Addr }
	Close      struct{ Addr }
	Focus      struct{ Addr }
	Maximize   struct{ Addr }
	Minimize   struct{ Addr }
	Unmaximize struct{ Addr }
	Reload     struct{ Addr }
	// GetCookies answers with a cookies event. A nil URL requests every
	// cookie in the window's store.
	GetCookies struct {
		Addr
		URL *string
	}
)

func (CreateWindow) Kind() string   { return "create-window" }
func (LoadURL) Kind() string        { return "load-url" }
func (LoadHTML) Kind() string       { return "load-html" }
func (EvaluateScript) Kind() string { return "evaluate-script" }
func (SetTitle) Kind() string       { return "set-title" }
func (SetSize) Kind() string        { return "set-size" }
func (SetMinSize) Kind() string     { return "set-min-size" }
func (SetMaxSize) Kind() string     { return "set-max-size" }
func (SetPosition) Kind() string    { return "set-position" }
func (SetResizable) Kind() string   { return "set-resizable" }
func (SetDecorations) Kind() string { return "set-decorations" }
func (SetAlwaysOnTop) Kind() string { return "set-always-on-top" }
func (SetIcon) Kind() string        { return "set-icon" }
func (Show) Kind() string           { return "show" }
func (Hide) Kind() string           { return "hide" }
func (Close) Kind() string          { return "close" }
func (Focus) Kind() string          { return "focus" }
func (Maximize) Kind() string       { return "maximize" }
func (Minimize) Kind() string       { return "minimize" }
func (Unmaximize) Kind() string     { return "unmaximize" }
func (Reload) Kind() string         { return "reload" }
func (GetCookies) Kind() string     { return "get-cookies" }

// IsLoadableURL reports whether url may be passed to LoadURL: only http,
// https and the internal nativewindow scheme are accepted.
func IsLoadableURL(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "nativewindow:")
}
