package nativewindow

import "github.com/bnema/nativewindow/internal/domain/window"

type (
	// ID identifies a window for the life of the process.
	ID = window.ID
	// Options configures a window at creation.
	Options = window.Options
	// LoadPhase is reported by OnPageLoad.
	LoadPhase = window.LoadPhase
	// Cookie is one element of the JSON array passed to OnCookies.
	Cookie = window.Cookie
)

const (
	LoadStarted  = window.LoadStarted
	LoadFinished = window.LoadFinished
)

// Float returns a pointer to v, for optional Options fields.
func Float(v float64) *float64 { return window.Float(v) }

// Bool returns a pointer to v, for optional Options fields.
func Bool(v bool) *bool { return window.Bool(v) }
