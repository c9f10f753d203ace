//go:build !webkit_cgo

package gtk

import (
	"context"
	"fmt"

	"github.com/bnema/nativewindow/internal/application/port"
)

// Available reports whether this binary carries the GTK adapter.
func Available() bool { return false }

// Factory returns a factory that always fails: the binary was built without
// the webkit_cgo tag.
func Factory() port.PlatformFactory {
	return func(context.Context, port.EventSink) (port.Platform, error) {
		return nil, fmt.Errorf("%w: built without webkit_cgo", ErrUnavailable)
	}
}
