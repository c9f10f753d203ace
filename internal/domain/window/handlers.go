package window

// Handlers holds at most one callback per event kind for a window.
// Assigning a field replaces the previous callback.
type Handlers struct {
	OnMessage           func(text, sourceURL string)
	OnClose             func()
	OnReload            func()
	OnResize            func(width, height float64)
	OnMove              func(x, y float64)
	OnFocus             func()
	OnBlur              func()
	OnPageLoad          func(phase LoadPhase, url string)
	OnNavigationBlocked func(url string)
	OnTitleChanged      func(title string)
	OnCookies           func(json string)
}

// Bind resolves the callback for ev and returns a closure delivering it, or
// nil when no callback is registered. The closure captures the callback at
// bind time, so later replacement does not affect it.
func (h *Handlers) Bind(ev Event) func() {
	if h == nil {
		return nil
	}
	switch e := ev.(type) {
	case MessageEvent:
		if fn := h.OnMessage; fn != nil {
			return func() { fn(e.Text, e.SourceURL) }
		}
	case CloseEvent:
		return h.OnClose
	case ReloadEvent:
		return h.OnReload
	case ResizeEvent:
		if fn := h.OnResize; fn != nil {
			return func() { fn(e.Width, e.Height) }
		}
	case MoveEvent:
		if fn := h.OnMove; fn != nil {
			return func() { fn(e.X, e.Y) }
		}
	case FocusEvent:
		return h.OnFocus
	case BlurEvent:
		return h.OnBlur
	case PageLoadEvent:
		if fn := h.OnPageLoad; fn != nil {
			return func() { fn(e.Phase, e.URL) }
		}
	case NavigationBlockedEvent:
		if fn := h.OnNavigationBlocked; fn != nil {
			return func() { fn(e.URL) }
		}
	case TitleChangedEvent:
		if fn := h.OnTitleChanged; fn != nil {
			return func() { fn(e.Title) }
		}
	case CookiesEvent:
		if fn := h.OnCookies; fn != nil {
			return func() { fn(e.JSON) }
		}
	}
	return nil
}
