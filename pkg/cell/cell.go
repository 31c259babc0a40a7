// Package cell provides a single-slot, thread-safe value container. The
// sampling goroutine puts the latest voltage in, HTTP handlers read it out;
// neither side ever blocks the other for longer than the lock hold.
package cell

import "sync"

// Cell holds one value of type T. The zero Cell is not usable; create one
// with New so the initial value is defined.
type Cell[T any] struct {
	mu sync.RWMutex
	v  T
}

// New returns a Cell holding initial.
func New[T any](initial T) *Cell[T] {
	return &Cell[T]{v: initial}
}

// Put unconditionally replaces the stored value. Last writer wins.
func (c *Cell[T]) Put(v T) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// Get returns the most recently stored value, or the initial value if Put
// has never been called. Multiple concurrent readers are fine.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v
}
