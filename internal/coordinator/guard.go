package coordinator

import "sync"

// guard serializes access to the coordinator state. Every acquisition gets a
// fresh token; releasing with any other token is a programming error.
type guard struct {
	mu    sync.Mutex
	owner uint64
	next  uint64
}

type token uint64

func (g *guard) acquire() token {
	g.mu.Lock()
	return g.claim()
}

// tryAcquire never blocks. It fails while any other holder, including the
// same goroutine further up the stack, owns the guard.
func (g *guard) tryAcquire() (token, bool) {
	if !g.mu.TryLock() {
		return 0, false
	}
	return g.claim(), true
}

func (g *guard) claim() token {
	g.next++
	g.owner = g.next
	return token(g.owner)
}

func (g *guard) release(t token) {
	if t == 0 || uint64(t) != g.owner {
		panic("coordinator: guard released with a stale token")
	}
	g.owner = 0
	g.mu.Unlock()
}
