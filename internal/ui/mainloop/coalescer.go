// Package mainloop schedules deferred work for the host loop.
package mainloop

import (
	"sort"
	"sync"
	"time"
)

// Coalescer merges bursts of same-key tasks: only the latest callback posted
// for a key runs, once, when the scheduled slot fires or on Flush.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string]bool
	callbacks map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer schedules merged callbacks with post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		pending:   make(map[string]bool),
		callbacks: make(map[string]func()),
		post:      post,
	}
}

// AfterFunc returns a post function that runs callbacks on their own
// goroutine once delay has elapsed.
func AfterFunc(delay time.Duration) func(func()) {
	return func(fn func()) { time.AfterFunc(delay, fn) }
}

// Post records fn as the latest callback for key and schedules a run unless
// one is already pending.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.callbacks[key] = fn
	if c.pending[key] {
		c.mu.Unlock()
		return
	}
	c.pending[key] = true
	post := c.post
	c.mu.Unlock()

	post(func() { c.run(key) })
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	if c.destroyed {
		delete(c.pending, key)
		delete(c.callbacks, key)
		c.mu.Unlock()
		return
	}
	fn := c.callbacks[key]
	delete(c.pending, key)
	delete(c.callbacks, key)
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs every pending callback now, in key order. Slots already
// scheduled for them become no-ops.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.callbacks))
	fns := make(map[string]func(), len(c.callbacks))
	for key, fn := range c.callbacks {
		keys = append(keys, key)
		fns[key] = fn
	}
	// pending stays set until the scheduled slot fires so a Post in between
	// does not schedule a second slot
	clear(c.callbacks)
	c.mu.Unlock()

	sort.Strings(keys)
	for _, key := range keys {
		fns[key]()
	}
}

// Pending reports how many keys wait for their callback.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.callbacks)
}

// Destroy drops pending work and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.pending = map[string]bool{}
	c.callbacks = map[string]func(){}
	c.mu.Unlock()
}
