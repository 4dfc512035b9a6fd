package worker

import (
	"log"
	"sync"
	"time"
)

// SessionReaper is the part of the session store the reaper needs.
type SessionReaper interface {
	ReapIdle(ttl time.Duration, now time.Time) int
}

type SessionReaperWorker struct {
	store     SessionReaper
	ttl       time.Duration
	interval  time.Duration
	stopChan  chan struct{}
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
}

const (
	defaultReapTTL      = 30 * time.Minute
	defaultReapInterval = time.Minute
)

// NewSessionReaperWorker falls back to the defaults for a non-positive ttl or
// interval.
func NewSessionReaperWorker(store SessionReaper, ttl, interval time.Duration) *SessionReaperWorker {
	if ttl <= 0 {
		ttl = defaultReapTTL
	}
	if interval <= 0 {
		interval = defaultReapInterval
	}
	return &SessionReaperWorker{
		store:    store,
		ttl:      ttl,
		interval: interval,
	}
}

// Start launches the reap loop. A stopped worker can be started again.
func (w *SessionReaperWorker) Start() {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = true
	stop := make(chan struct{})
	done := make(chan struct{})
	w.stopChan = stop
	w.done = done
	w.mu.Unlock()

	log.Printf("Session reaper started (ttl %v, interval %v)", w.ttl, w.interval)

	go w.run(stop, done)
}

// Stop halts the worker and waits for the loop to exit.
func (w *SessionReaperWorker) Stop() {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = false
	stop, done := w.stopChan, w.done
	w.mu.Unlock()

	close(stop)
	<-done
	log.Println("Session reaper stopped")
}

func (w *SessionReaperWorker) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			w.reap(now)
		case <-stop:
			return
		}
	}
}

func (w *SessionReaperWorker) reap(now time.Time) {
	if n := w.store.ReapIdle(w.ttl, now); n > 0 {
		log.Printf("Session reaper: removed %d idle sessions", n)
	}
}
