package events

import (
	"sync"
	"time"
)

// DefaultBatchWindow is how long the batcher waits for the burst to go
// quiet before releasing the final target.
const DefaultBatchWindow = 50 * time.Millisecond

// NavBatcher coalesces a burst of navigation intents into the last one
// added. Each Add overwrites the pending target; Take releases it only
// once the window has elapsed with no further Add, and consumes it.
// Safe for concurrent use.
type NavBatcher[T any] struct {
	mu      sync.Mutex
	window  time.Duration
	target  T
	lastAdd time.Time
	pending bool

	now func() time.Time
}

// NewNavBatcher creates a batcher. A non-positive window falls back to
// the default.
func NewNavBatcher[T any](window time.Duration) *NavBatcher[T] {
	if window <= 0 {
		window = DefaultBatchWindow
	}
	return &NavBatcher[T]{window: window, now: time.Now}
}

// Add records a navigation intent, replacing any unconsumed one.
func (b *NavBatcher[T]) Add(target T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.target = target
	b.lastAdd = b.now()
	b.pending = true
}

// Peek returns the unconsumed target without consuming it or waiting
// for the window, so a caller can chain further intents onto it.
func (b *NavBatcher[T]) Peek() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.pending {
		var zero T
		return zero, false
	}
	return b.target, true
}

// Take returns the batched target once the burst has gone quiet for a
// full window, consuming it. It returns ok=false while events keep
// arriving or when nothing is pending.
func (b *NavBatcher[T]) Take() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if !b.pending {
		return zero, false
	}
	if b.now().Sub(b.lastAdd) < b.window {
		return zero, false
	}
	b.pending = false
	target := b.target
	b.target = zero
	return target, true
}
