package cart

import (
	"sync"
	"time"
)

// Debouncer runs a function once calls have stopped for the given window.
//
// Every Debounce call gets a sequence number. A timer that already fired
// but whose callback has not taken effect yet can be told apart from the
// latest one with Current, so Cancel also invalidates callbacks in flight.
type Debouncer struct {
	timer  *time.Timer
	mu     sync.Mutex
	window time.Duration
	seq    uint64
}

// NewDebouncer creates a debouncer with the given quiescence window
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Debounce (пере)запускает таймер. fn получает номер запуска.
func (d *Debouncer) Debounce(fn func(seq uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.window, func() { fn(seq) })
}

// Cancel stops the pending timer and invalidates a callback that already fired
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Current reports whether seq belongs to the latest Debounce call that was
// neither restarted nor cancelled.
func (d *Debouncer) Current(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil && seq == d.seq
}
