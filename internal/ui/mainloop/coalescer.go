package mainloop

import "sync"

// Coalescer merges bursts of same-key UI tasks: only the latest task posted
// for a key before the loop gets to it runs.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	post      func(func())
	destroyed bool
}

func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post schedules fn under key. It reports whether a new loop task was
// scheduled; false means fn replaced a task that is still pending.
func (c *Coalescer) Post(key string, fn func()) bool {
	if fn == nil || key == "" {
		return false
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return false
	}
	_, pending := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()

	if pending {
		return false
	}

	c.post(func() { c.run(key) })
	return true
}

// Pending reports whether a task is waiting for key.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.latest[key]
	return ok
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn, ok := c.latest[key]
	delete(c.latest, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if ok && !destroyed {
		fn()
	}
}

// Destroy drops pending tasks and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.latest = map[string]func(){}
	c.mu.Unlock()
}
