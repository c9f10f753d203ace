package window

// EventKind names an event family. Kinds are declared in flush order.
type EventKind int

const (
	KindMessage EventKind = iota
	KindClose
	KindReload
	KindResize
	KindMove
	KindFocus
	KindBlur
	KindPageLoad
	KindNavigationBlocked
	KindTitleChanged
	KindCookies

	kindCount
)

// EventKinds lists every kind in flush order.
func EventKinds() []EventKind {
	kinds := make([]EventKind, kindCount)
	for i := range kinds {
		kinds[i] = EventKind(i)
	}
	return kinds
}

func (k EventKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindClose:
		return "close"
	case KindReload:
		return "reload"
	case KindResize:
		return "resize"
	case KindMove:
		return "move"
	case KindFocus:
		return "focus"
	case KindBlur:
		return "blur"
	case KindPageLoad:
		return "page-load"
	case KindNavigationBlocked:
		return "navigation-blocked"
	case KindTitleChanged:
		return "title-changed"
	case KindCookies:
		return "cookies"
	default:
		return "unknown"
	}
}

// LoadPhase is the payload of a page-load event.
type LoadPhase string

const (
	LoadStarted  LoadPhase = "started"
	LoadFinished LoadPhase = "finished"
)

// Event is a native occurrence reported by a platform adapter.
type Event interface {
	Window() ID
	Kind() EventKind
}

// Source is embedded by every event to carry the originating window.
type Source struct{ ID ID }

// From builds the source of an event raised for id.
func From(id ID) Source { return Source{ID: id} }

func (s Source) Window() ID { return s.ID }

type (
	MessageEvent struct {
		Source
		Text      string
		SourceURL string
	}
	CloseEvent  struct{ Source }
	ReloadEvent struct{ Source }
	ResizeEvent struct {
		Source
		Width, Height float64
	}
	MoveEvent struct {
		Source
		X, Y float64
	}
	FocusEvent    struct{ Source }
	BlurEvent     struct{ Source }
	PageLoadEvent struct {
		Source
		Phase LoadPhase
		URL   string
	}
	NavigationBlockedEvent struct {
		Source
		URL string
	}
	TitleChangedEvent struct {
		Source
		Title string
	}
	// CookiesEvent carries the JSON array produced by EncodeCookies.
	CookiesEvent struct {
		Source
		JSON string
	}
)

func (MessageEvent) Kind() EventKind           { return KindMessage }
func (CloseEvent) Kind() EventKind             { return KindClose }
func (ReloadEvent) Kind() EventKind            { return KindReload }
func (ResizeEvent) Kind() EventKind            { return KindResize }
func (MoveEvent) Kind() EventKind              { return KindMove }
func (FocusEvent) Kind() EventKind             { return KindFocus }
func (BlurEvent) Kind() EventKind              { return KindBlur }
func (PageLoadEvent) Kind() EventKind          { return KindPageLoad }
func (NavigationBlockedEvent) Kind() EventKind { return KindNavigationBlocked }
func (TitleChangedEvent) Kind() EventKind      { return KindTitleChanged }
func (CookiesEvent) Kind() EventKind           { return KindCookies }
