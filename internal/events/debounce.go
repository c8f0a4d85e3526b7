package events

import (
	"sync"
	"time"
)

// DefaultDebounceInterval guards operation re-triggers: a second press
// of the same action key within this window is dropped.
const DefaultDebounceInterval = 200 * time.Millisecond

// Debouncer suppresses events arriving faster than a minimum
// interval. Safe for concurrent use.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now func() time.Time
}

// NewDebouncer creates a debouncer. A non-positive interval falls back
// to the default.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debouncer{interval: interval, now: time.Now}
}

// ShouldProcess reports whether enough time has passed since the last
// accepted event, and stamps acceptance when it has.
func (d *Debouncer) ShouldProcess() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.now()
	if !d.last.IsZero() && current.Sub(d.last) < d.interval {
		return false
	}
	d.last = current
	return true
}

// Reset clears the acceptance stamp so the next call passes regardless
// of elapsed time.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = time.Time{}
}
