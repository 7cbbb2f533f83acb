// Package observable provides a single-writer, multi-reader value cell.
//
// Writes are queued on a channel and applied by one goroutine (Run), so the
// last write to reach the queue wins. Readers take snapshots and may
// subscribe to changes.
package observable

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when writing to a cell whose Run loop has exited.
var ErrClosed = errors.New("observable: cell closed")

type write[T any] struct {
	value T
	done  chan struct{}
}

// Cell holds the latest value of T.
type Cell[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool

	writes chan write[T]
	closed chan struct{}

	subsMu sync.Mutex
	subs   map[chan T]struct{}
}

// NewCell creates a cell whose write queue holds up to buffer pending writes.
func NewCell[T any](buffer int) *Cell[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Cell[T]{
		writes: make(chan write[T], buffer),
		closed: make(chan struct{}),
		subs:   make(map[chan T]struct{}),
	}
}

// Run applies queued writes until ctx is cancelled. It must be started once.
func (c *Cell[T]) Run(ctx context.Context) {
	defer func() {
		close(c.closed)
		c.closeSubscribers()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case w := <-c.writes:
			c.apply(w.value)
			close(w.done)
		}
	}
}

// Update queues v and waits until the writer goroutine has applied it.
func (c *Cell[T]) Update(ctx context.Context, v T) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	done := make(chan struct{})
	select {
	case c.writes <- write[T]{value: v, done: done}:
	case <-c.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get returns the current value and whether any value was ever written.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.set
}

// Subscribe returns a channel receiving every applied value. Slow
// subscribers miss values rather than block the writer. The returned
// func releases the subscription.
func (c *Cell[T]) Subscribe(buffer int) (<-chan T, func()) {
	ch := make(chan T, buffer)

	c.subsMu.Lock()
	select {
	case <-c.closed:
		c.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	default:
	}
	c.subs[ch] = struct{}{}
	c.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subsMu.Lock()
			defer c.subsMu.Unlock()
			if _, ok := c.subs[ch]; ok {
				delete(c.subs, ch)
				close(ch)
			}
		})
	}
}

func (c *Cell[T]) apply(v T) {
	c.mu.Lock()
	c.value = v
	c.set = true
	c.mu.Unlock()

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for ch := range c.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

func (c *Cell[T]) closeSubscribers() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
}
