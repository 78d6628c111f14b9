// Package mainloop provides the single UI goroutine every bridge call runs on.
package mainloop

import (
	"context"
	"sync"
)

// Loop is a task queue drained by one goroutine. Post is safe from any
// goroutine; tasks run in posting order.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	quit   chan struct{}
	waker  func()
	closed bool
}

func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

// SetWaker installs a function called after every Post. Platform hosts use
// it to schedule RunPending on their own event loop.
func (l *Loop) SetWaker(fn func()) {
	l.mu.Lock()
	l.waker = fn
	l.mu.Unlock()
}

// Post queues fn. Tasks posted after Quit are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	waker := l.waker
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	if waker != nil {
		waker()
	}
}

// RunPending runs queued tasks, including tasks they post, until the queue
// is empty. It returns the number of tasks run.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
			n++
		}
	}
}

// Run drains the queue until ctx is done or Quit is called. It returns
// ctx.Err() when the context ended the loop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			l.RunPending()
			return nil
		case <-l.wake:
		}
	}
}

// Quit stops Run after the tasks already queued. Safe to call twice.
func (l *Loop) Quit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.quit)
}

// Done is closed once Quit has been called.
func (l *Loop) Done() <-chan struct{} {
	return l.quit
}
