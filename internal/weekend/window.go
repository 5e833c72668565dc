// Package weekend computes the Friday evening to Sunday night window used by "this weekend"
// discovery queries. Everything here is pure: callers pass the reference instant explicitly.
package weekend

import "time"

const (
	startHour = 18

	// Length is the span from Friday 18:00 to Sunday 23:59. It is intentionally one minute short
	// of midnight.
	Length = 2*24*time.Hour + 5*time.Hour + 59*time.Minute

	week = 7 * 24 * time.Hour
)

// Window is the half-open interval [Start, End) of one weekend, in UTC.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Next returns the weekend starting at the first Friday 18:00 UTC after ref. A ref that is already
// Friday 18:00 or later moves on to the following Friday.
func Next(ref time.Time) Window {
	ref = ref.UTC()
	days := (int(time.Friday) - int(ref.Weekday()) + 7) % 7
	start := time.Date(ref.Year(), ref.Month(), ref.Day()+days, startHour, 0, 0, 0, time.UTC)
	if !start.After(ref) {
		start = start.Add(week)
	}
	return Window{Start: start, End: start.Add(Length)}
}

// IsWithin reports whether t falls inside the weekend returned by Next(ref).
func IsWithin(t, ref time.Time) bool {
	return Next(ref).Contains(t.UTC())
}

// Info describes the upcoming weekend relative to a reference instant.
type Info struct {
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	DurationHours      float64   `json:"duration_hours"`
	DurationDays       float64   `json:"duration_days"`
	IsCurrentlyWeekend bool      `json:"is_currently_weekend"`
}

// Describe returns the upcoming window for ref and whether ref itself sits inside the weekend that
// started most recently.
func Describe(ref time.Time) Info {
	w := Next(ref)
	previous := Window{Start: w.Start.Add(-week), End: w.End.Add(-week)}
	return Info{
		Start:              w.Start,
		End:                w.End,
		DurationHours:      Length.Hours(),
		DurationDays:       Length.Hours() / 24,
		IsCurrentlyWeekend: previous.Contains(ref.UTC()),
	}
}
