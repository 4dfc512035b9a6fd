package models

import (
	"fmt"
	"strings"
)

type RequestState int

const (
	StateIdle RequestState = iota
	StateLoading
	StateSucceeded
	StateFailed
)

func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("RequestState(%d)", int(s))
}

func (s RequestState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RequestState) UnmarshalText(text []byte) error {
	for _, candidate := range []RequestState{StateIdle, StateLoading, StateSucceeded, StateFailed} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown request state %q", text)
}

// Notification is a modal alert shown to the user.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Contains reports whether s appears in the title or the message.
func (n Notification) Contains(s string) bool {
	return strings.Contains(n.Title, s) || strings.Contains(n.Message, s)
}

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	ID              string        `json:"id"`
	Coordinate      Coordinate    `json:"coordinate"`
	State           RequestState  `json:"state"`
	Locating        bool          `json:"locating"`
	PredictDisabled bool          `json:"predictDisabled"`
	Passes          []PassView    `json:"passes"`
	Notification    *Notification `json:"notification,omitempty"`
}
