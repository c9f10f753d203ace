// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the coordinator to remain
// independent of the windowing toolkit that backs it.
package port

import (
	"context"
	"errors"

	"github.com/bnema/nativewindow/internal/domain/window"
)

// ErrWindowNotFound is returned by a platform when a command targets a window
// it holds no native resources for.
var ErrWindowNotFound = errors.New("window not found")

// ErrUnsupported is returned by a platform for an operation it cannot perform.
var ErrUnsupported = errors.New("operation not supported by platform")

// EventSink receives events raised by a platform. Raise may be called from
// inside ProcessCommand or PumpEvents, including from nested native callbacks.
type EventSink interface {
	Raise(ev window.Event)
}

// Platform owns the native windows and webviews. All methods are called from
// the coordinator goroutine with the entry table detached from the
// coordinator, so the platform may read policies and stored content from it.
type Platform interface {
	// Name identifies the platform in logs, e.g. "gtk" or "headless".
	Name() string

	// ProcessCommand applies one command. A command for an unknown window
	// returns ErrWindowNotFound; it never aborts the remaining batch.
	ProcessCommand(ctx context.Context, cmd window.Command, table window.Table) error

	// PumpEvents dispatches pending native events until none is
	// immediately available. It never blocks.
	PumpEvents(ctx context.Context, table window.Table)

	// Close releases every native resource.
	Close() error
}

// PlatformFactory initializes a platform bound to sink.
type PlatformFactory func(ctx context.Context, sink EventSink) (Platform, error)
