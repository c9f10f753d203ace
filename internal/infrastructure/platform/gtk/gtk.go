// Package gtk is the GTK4/WebKitGTK 6 platform adapter. It is compiled with
// the webkit_cgo build tag; other builds get a factory reporting
// ErrUnavailable.
package gtk

import "errors"

// Name is the platform name reported by the GTK adapter.
const Name = "gtk"

// ErrUnavailable is returned by Factory when the binary was built without
// WebKitGTK support or no display can be opened.
var ErrUnavailable = errors.New("gtk platform unavailable")

const (
	// maxIterations bounds the main context iterations of one PumpEvents.
	maxIterations = 256
	// ipcHandlerExpr is the native message handler the IPC bridge wraps.
	ipcHandlerExpr = "window.webkit.messageHandlers.ipc"
)
