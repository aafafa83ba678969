package utils

import (
	"sync"
	"time"
)

// Watch measures a run and the laps inside it (e.g. one lap per synchronous round).
type Watch struct {
	mu        sync.Mutex
	startTime time.Time
	lapTime   time.Time
	stopped   time.Duration
	running   bool
}

func (w *Watch) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		panic("watch already started")
	}
	w.startTime = time.Now()
	w.lapTime = w.startTime
	w.running = true
}

// Elapsed since Start, or the final duration once stopped.
func (w *Watch) Elapsed() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return w.stopped
	}
	return time.Since(w.startTime)
}

// Lap returns the time since the previous lap (or Start) and begins a new one.
func (w *Watch) Lap() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	lap := now.Sub(w.lapTime)
	w.lapTime = now
	return lap
}

// Stop freezes the watch and returns the total elapsed time.
func (w *Watch) Stop() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		panic("watch wasn't started")
	}
	w.stopped = time.Since(w.startTime)
	w.running = false
	return w.stopped
}
