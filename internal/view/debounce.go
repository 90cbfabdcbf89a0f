package view

import (
	"sync"
	"time"
)

// Debouncer commits a rapidly-changing value only after it has been
// stable for a fixed quiet period. Each Trigger cancels the pending
// timer and schedules a new one; only the fire of an uncancelled timer
// reaches the callback. The timer is single-shot and reset-on-new-input.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func(value string)
	timer *time.Timer
}

// NewDebouncer creates a Debouncer that calls fn with the settled value
// after delay of quiet. fn runs on a timer goroutine.
func NewDebouncer(delay time.Duration, fn func(value string)) *Debouncer {
	return &Debouncer{
		delay: delay,
		fn:    fn,
	}
}

// Trigger records a new value, cancelling any pending commit.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(value)
	})
}

// Stop cancels any pending commit. A later Trigger re-arms the debouncer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
