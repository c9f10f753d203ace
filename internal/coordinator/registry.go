package coordinator

import (
	"math"

	"github.com/bnema/nativewindow/internal/domain/window"
)

// registry allocates window ids and owns the entry table. While the table is
// lent to the platform for a cycle, mutations are queued and replayed when it
// comes back. Only touched under the guard.
type registry struct {
	nextID   window.ID
	table    window.Table
	detached bool
	deferred []func(window.Table)
}

func newRegistry() *registry {
	return &registry{
		nextID: 1,
		table:  make(window.Table),
	}
}

// allocate reserves the next id. The entry is created immediately when the
// table is attached, otherwise when it is reattached.
func (r *registry) allocate(newEntry func(window.ID) *window.Entry) (window.ID, error) {
	if r.nextID == math.MaxUint32 {
		return 0, window.ErrIDExhausted
	}
	id := r.nextID
	r.nextID++

	entry := newEntry(id)
	r.mutate(func(t window.Table) { t[id] = entry })
	return id, nil
}

// mutate applies fn to the table now, or after reattachment.
func (r *registry) mutate(fn func(window.Table)) {
	if r.detached {
		r.deferred = append(r.deferred, fn)
		return
	}
	fn(r.table)
}

func (r *registry) remove(id window.ID) {
	delete(r.table, id)
}

// detach hands the table to the caller.
func (r *registry) detach() window.Table {
	t := r.table
	r.table = nil
	r.detached = true
	return t
}

// attach takes the table back and replays deferred mutations in order.
func (r *registry) attach(t window.Table) {
	r.table = t
	r.detached = false
	deferred := r.deferred
	r.deferred = nil
	for _, fn := range deferred {
		fn(r.table)
	}
}

func (r *registry) lookup(id window.ID) *window.Entry {
	if r.detached {
		return nil
	}
	return r.table.Lookup(id)
}

func (r *registry) live() int {
	return len(r.table)
}
