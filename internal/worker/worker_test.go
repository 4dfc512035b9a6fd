package worker

import (
	"sync"
	"testing"
	"time"
)

type fakeStore struct {
	mu    sync.Mutex
	calls int
	ttl   time.Duration
}

func (f *fakeStore) ReapIdle(ttl time.Duration, now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.ttl = ttl
	return 1
}

func (f *fakeStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSessionReaperRunsUntilStopped(t *testing.T) {
	store := &fakeStore{}
	w := NewSessionReaperWorker(store, time.Minute, 5*time.Millisecond)

	w.Start()
	w.Start() // second start is a no-op

	deadline := time.Now().Add(2 * time.Second)
	for store.Calls() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("reaper ran %d times, want at least 2", store.Calls())
		}
		time.Sleep(time.Millisecond)
	}

	w.Stop()
	stopped := store.Calls()
	time.Sleep(20 * time.Millisecond)
	if got := store.Calls(); got != stopped {
		t.Errorf("reaper kept running after Stop: %d calls, want %d", got, stopped)
	}
	if store.ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", store.ttl)
	}

	w.Stop() // second stop is a no-op
}

type recordingWorker struct {
	name string
	log  *[]string
}

func (r recordingWorker) Start() { *r.log = append(*r.log, "start "+r.name) }
func (r recordingWorker) Stop()  { *r.log = append(*r.log, "stop "+r.name) }

func TestSchedulerOrdering(t *testing.T) {
	var events []string
	s := NewScheduler()
	s.AddWorker(recordingWorker{"a", &events})
	s.AddWorker(recordingWorker{"b", &events})

	s.Start()
	s.Start()
	if !s.IsRunning() {
		t.Fatal("scheduler should be running")
	}
	s.AddWorker(recordingWorker{"c", &events})
	s.Stop()
	s.Stop()

	want := []string{"start a", "start b", "start c", "stop c", "stop b", "stop a"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
	if s.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}

func waitForCalls(t *testing.T, store *fakeStore, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for store.Calls() < n {
		if time.Now().After(deadline) {
			t.Fatalf("reaper ran %d times, want at least %d", store.Calls(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSchedulerRestartsSessionReaper(t *testing.T) {
	store := &fakeStore{}
	s := NewScheduler()
	s.AddWorker(NewSessionReaperWorker(store, time.Minute, time.Millisecond))

	s.Start()
	waitForCalls(t, store, 1)
	s.Stop()

	s.Start()
	waitForCalls(t, store, store.Calls()+1)
	s.Stop()

	if s.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}

func TestSessionReaperNonPositiveDurations(t *testing.T) {
	tests := []struct {
		name         string
		ttl          time.Duration
		interval     time.Duration
		wantTTL      time.Duration
		wantInterval time.Duration
	}{
		{"zero interval", time.Minute, 0, time.Minute, defaultReapInterval},
		{"negative interval", time.Minute, -time.Second, time.Minute, defaultReapInterval},
		{"zero ttl", 0, time.Second, defaultReapTTL, time.Second},
		{"negative ttl", -time.Hour, time.Second, defaultReapTTL, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewSessionReaperWorker(&fakeStore{}, tt.ttl, tt.interval)
			if w.ttl != tt.wantTTL || w.interval != tt.wantInterval {
				t.Errorf("ttl, interval = %v, %v, want %v, %v", w.ttl, w.interval, tt.wantTTL, tt.wantInterval)
			}
			w.Start()
			w.Stop()
		})
	}
}
