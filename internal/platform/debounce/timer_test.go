package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitForCount(t *testing.T, counter *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if counter.Load() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("counter stuck at %d, want %d", counter.Load(), want)
}

func TestTimer_CoalescesRapidSchedules(t *testing.T) {
	var d Timer
	var fired atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		i := int32(i)
		d.Schedule(30*time.Millisecond, func() {
			fired.Add(1)
			last.Store(i)
		})
	}

	waitForCount(t, &fired, 1)
	if got := last.Load(); got != 5 {
		t.Fatalf("expected last scheduled callback to win, got %d", got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("expected exactly one run, got %d", got)
	}
}

func TestTimer_ZeroWindowRunsSynchronously(t *testing.T) {
	var d Timer
	var fired atomic.Int32

	d.Schedule(0, func() { fired.Add(1) })

	if got := fired.Load(); got != 1 {
		t.Fatalf("expected synchronous run, got %d", got)
	}
	if d.Pending() {
		t.Fatal("expected no pending run after synchronous fire")
	}
}

func TestTimer_Cancel(t *testing.T) {
	var d Timer
	var fired atomic.Int32

	d.Schedule(50*time.Millisecond, func() { fired.Add(1) })
	if !d.Pending() {
		t.Fatal("expected a pending run")
	}
	if !d.Cancel() {
		t.Fatal("expected cancel to report a pending run")
	}
	if d.Cancel() {
		t.Fatal("expected second cancel to be a no-op")
	}

	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("expected cancelled run not to fire, got %d", got)
	}
}
