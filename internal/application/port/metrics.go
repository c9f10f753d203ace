package port

import (
	"time"

	"github.com/bnema/nativewindow/internal/domain/window"
)

// CoordinatorMetrics records coordinator activity.
type CoordinatorMetrics interface {
	CommandQueued(depth int)
	CommandDropped()
	CommandFailed(kind string)
	EventDeferred(kind window.EventKind)
	EventDropped(kind window.EventKind)
	EventDelivered(kind window.EventKind)
	MessageRejected()
	CycleCompleted(d time.Duration, commands int)
	WindowsLive(n int)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) CommandQueued(int)                 {}
func (NopMetrics) CommandDropped()                   {}
func (NopMetrics) CommandFailed(string)              {}
func (NopMetrics) EventDeferred(window.EventKind)    {}
func (NopMetrics) EventDropped(window.EventKind)     {}
func (NopMetrics) EventDelivered(window.EventKind)   {}
func (NopMetrics) MessageRejected()                  {}
func (NopMetrics) CycleCompleted(time.Duration, int) {}
func (NopMetrics) WindowsLive(int)                   {}
