package models

import (
	"fmt"
	"math"
	"time"
)

const DisplayTimeFormat = "Jan 2, 2006 3:04:05 PM MST"

// PassView holds the display strings derived from a PassRecord.
type PassView struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	MaxElevation string `json:"maxElevation"`
	Duration     string `json:"duration"`
	AzimuthStart string `json:"azimuthStart"`
	AzimuthEnd   string `json:"azimuthEnd"`
}

// FormatDegrees renders an angle as whole degrees with a degree sign.
func FormatDegrees(deg float64) string {
	return fmt.Sprintf("%d°", int(math.Round(deg)))
}

// FormatDuration renders seconds as whole minutes, rounded to nearest.
func FormatDuration(seconds float64) string {
	return fmt.Sprintf("%d minutes", int(math.Round(seconds/60)))
}

func FormatLocalTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayTimeFormat)
}

func NewPassView(p PassRecord, loc *time.Location) PassView {
	return PassView{
		Start:        FormatLocalTime(p.StartTime, loc),
		End:          FormatLocalTime(p.EndTime, loc),
		MaxElevation: FormatDegrees(p.MaxElevation),
		Duration:     FormatDuration(p.DurationSeconds),
		AzimuthStart: FormatDegrees(p.AzimuthStart),
		AzimuthEnd:   FormatDegrees(p.AzimuthEnd),
	}
}

func NewPassViews(passes []PassRecord, loc *time.Location) []PassView {
	views := make([]PassView, 0, len(passes))
	for _, p := range passes {
		views = append(views, NewPassView(p, loc))
	}
	return views
}
