package worker

import (
	"log"
	"sync"
)

// Worker is a background loop. Start must not block.
type Worker interface {
	Start()
	Stop()
}

type Scheduler struct {
	mu      sync.Mutex
	workers []Worker
	running bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AddWorker(worker Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workers = append(s.workers, worker)
	if s.running {
		worker.Start()
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	log.Println("Starting scheduler with", len(s.workers), "workers")
	for _, w := range s.workers {
		w.Start()
	}
}

// Stop stops workers in reverse order of registration.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	log.Println("Stopping scheduler...")
	for i := len(s.workers) - 1; i >= 0; i-- {
		s.workers[i].Stop()
	}
	log.Println("Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
