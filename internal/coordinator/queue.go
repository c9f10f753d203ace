package coordinator

import (
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/rs/zerolog"
)

// DefaultQueueCapacity bounds the number of pending commands.
const DefaultQueueCapacity = 10_000

// commandQueue is a bounded FIFO. It is only touched while the guard is held.
type commandQueue struct {
	items    []window.Command
	capacity int
	warned   bool
	dropped  uint64
}

func newCommandQueue(capacity int) *commandQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &commandQueue{capacity: capacity}
}

// push appends cmd. When the queue is full the command is dropped and a
// warning is logged once until the queue is drained.
func (q *commandQueue) push(cmd window.Command, log *zerolog.Logger) bool {
	if len(q.items) >= q.capacity {
		q.dropped++
		if !q.warned {
			q.warned = true
			log.Warn().
				Int("capacity", q.capacity).
				Str("kind", cmd.Kind()).
				Uint32("window_id", uint32(cmd.Target())).
				Msg("command queue full, dropping new commands until the next pump")
		}
		return false
	}
	q.items = append(q.items, cmd)
	return true
}

// drain empties the queue and returns its previous contents in FIFO order.
func (q *commandQueue) drain() []window.Command {
	items := q.items
	q.items = nil
	q.warned = false
	return items
}

func (q *commandQueue) len() int {
	return len(q.items)
}
