package window

import "github.com/bnema/nativewindow/internal/domain/security"

// Entry is the coordinator's record of one live window.
type Entry struct {
	ID       ID
	Handlers Handlers
	Policy   *security.Policy
	Options  Options

	// html is served from the internal content origin after LoadHTML.
	html    string
	hasHTML bool
}

// SetHTML stores the content served from the internal origin.
func (e *Entry) SetHTML(html string) {
	e.html = html
	e.hasHTML = true
}

// ClearHTML forgets the stored content.
func (e *Entry) ClearHTML() {
	e.html = ""
	e.hasHTML = false
}

// HTML returns the stored content, if any.
func (e *Entry) HTML() (string, bool) {
	return e.html, e.hasHTML
}

// Table maps live window ids to their entries.
type Table map[ID]*Entry

// Lookup returns the entry for id or nil.
func (t Table) Lookup(id ID) *Entry {
	if t == nil {
		return nil
	}
	return t[id]
}
