package debounce

import (
	"sync"
	"time"
)

// Timer coalesces rapid Schedule calls into a single callback run after a
// quiescence window. Scheduling while a run is pending replaces it, so only
// the last callback fires. The zero value is ready to use.
type Timer struct {
	mu      sync.Mutex
	pending *time.Timer
}

// Schedule arranges fn to run after window, replacing any pending run.
// A window <= 0 cancels the pending run and invokes fn synchronously.
func (d *Timer) Schedule(window time.Duration, fn func()) {
	if fn == nil {
		return
	}

	d.mu.Lock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	if window <= 0 {
		d.mu.Unlock()
		fn()
		return
	}

	var t *time.Timer
	t = time.AfterFunc(window, func() {
		d.mu.Lock()
		if d.pending == t {
			d.pending = nil
		}
		d.mu.Unlock()
		fn()
	})
	d.pending = t
	d.mu.Unlock()
}

// Cancel drops the pending run if one exists. It reports whether a run was
// pending and had not started firing yet.
func (d *Timer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}
	stopped := d.pending.Stop()
	d.pending = nil
	return stopped
}

// Pending reports whether a run is currently scheduled.
func (d *Timer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
