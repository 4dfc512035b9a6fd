package session

import (
	"sync"
	"time"

	"skypass/internal/metrics"
	"skypass/internal/service"

	"github.com/google/uuid"
)

// Store keeps sessions in memory only; nothing survives a restart.
type Store struct {
	coords service.CoordinateService
	passes service.PassService

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(coords service.CoordinateService, passes service.PassService) *Store {
	return &Store{
		coords:   coords,
		passes:   passes,
		sessions: make(map[string]*Session),
	}
}

func (st *Store) Create() *Session {
	s := New(uuid.NewString(), st.coords, st.passes)

	st.mu.Lock()
	st.sessions[s.ID()] = s
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.SetActiveSessions(n)
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.SetActiveSessions(n)
	return ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// ReapIdle removes sessions inactive since before now-ttl. Sessions with a
// request outstanding are kept.
func (st *Store) ReapIdle(ttl time.Duration, now time.Time) int {
	cutoff := now.Add(-ttl)

	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		if s.Busy() || s.LastActive().After(cutoff) {
			continue
		}
		delete(st.sessions, id)
		removed++
	}
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.SetActiveSessions(n)
	return removed
}
