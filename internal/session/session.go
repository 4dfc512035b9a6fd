package session

import (
	"context"
	"sync"
	"time"

	"skypass/internal/models"
	"skypass/internal/service"
)

// Session is the state of one user's screen: the coordinate text, the last
// fetched passes, the fetch state and the pending alert. Prediction and
// location requests are each limited to one in flight.
type Session struct {
	id     string
	coords service.CoordinateService
	passes service.PassService
	now    func() time.Time

	mu           sync.Mutex
	coordinate   models.Coordinate
	records      []models.PassRecord
	state        models.RequestState
	locating     bool
	notification *models.Notification
	lastActive   time.Time
}

func New(id string, coords service.CoordinateService, passes service.PassService) *Session {
	s := &Session{
		id:     id,
		coords: coords,
		passes: passes,
		now:    time.Now,
		state:  models.StateIdle,
	}
	s.lastActive = s.now()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// SetField stores text verbatim. Editing returns a settled session to idle.
func (s *Session) SetField(field models.Field, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coordinate.SetField(field, text)
	s.settleIdle()
	s.touch()
}

// UseDeviceLocation replaces both coordinate fields with the device position.
// On failure the fields are left as they were and an alert is recorded.
// The lookup is not cancelled if ctx is.
func (s *Session) UseDeviceLocation(ctx context.Context) error {
	s.mu.Lock()
	if s.locating {
		s.mu.Unlock()
		return models.ErrRequestInFlight
	}
	s.locating = true
	s.touch()
	s.mu.Unlock()

	coord, err := s.coords.RequestDeviceLocation(context.WithoutCancel(ctx))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.locating = false
	s.touch()

	if err != nil {
		s.notify(err)
		return err
	}

	s.coordinate = coord
	s.settleIdle()
	return nil
}

// Predict validates the coordinate and, if valid, fetches passes. A second
// call while one is loading returns models.ErrRequestInFlight without
// issuing a request. Any failure leaves the pass list empty.
func (s *Session) Predict(ctx context.Context) error {
	s.mu.Lock()
	if s.state == models.StateLoading {
		s.mu.Unlock()
		return models.ErrRequestInFlight
	}
	s.touch()

	valid, err := s.coords.Validate(s.coordinate)
	if err != nil {
		s.records = nil
		s.state = models.StateFailed
		s.notify(err)
		s.mu.Unlock()
		return err
	}

	s.records = nil
	s.state = models.StateLoading
	s.notification = nil
	s.mu.Unlock()

	passes, err := s.passes.PredictPasses(context.WithoutCancel(ctx), valid)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err != nil {
		s.state = models.StateFailed
		s.notify(err)
		return err
	}

	s.records = passes
	s.state = models.StateSucceeded
	return nil
}

// ExportData returns the coordinate text and a copy of the passes from one
// locked read.
func (s *Session) ExportData() (models.Coordinate, []models.PassRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]models.PassRecord, len(s.records))
	copy(records, s.records)
	return s.coordinate, records
}

func (s *Session) Snapshot(loc *time.Location) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.Snapshot{
		ID:              s.id,
		Coordinate:      s.coordinate,
		State:           s.state,
		Locating:        s.locating,
		PredictDisabled: s.state == models.StateLoading,
		Passes:          models.NewPassViews(s.records, loc),
	}
	if s.notification != nil {
		n := *s.notification
		snap.Notification = &n
	}
	return snap
}

// Busy reports whether a prediction or location request is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locating || s.state == models.StateLoading
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// settleIdle must be called with mu held.
func (s *Session) settleIdle() {
	if s.state != models.StateLoading {
		s.state = models.StateIdle
		s.notification = nil
	}
}

func (s *Session) touch() {
	s.lastActive = s.now()
}

func (s *Session) notify(err error) {
	if n, ok := service.NotificationFor(err); ok {
		s.notification = &n
	}
}
