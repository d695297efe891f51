// Package scheduler computes availability-aware study-slot recommendations
// and keyword-driven study plans. It performs no I/O: busy intervals arrive
// already aggregated, and results are recomputed on every call because
// calendar state changes outside the service.
package scheduler

import "time"

// IntervalSource identifies which kind of calendar source produced a busy
// interval.
type IntervalSource string

const (
	SourceCalendarAPI      IntervalSource = "calendar_api"
	SourceSubscriptionFeed IntervalSource = "subscription_feed"
)

// BusyInterval is a time range already occupied by an existing commitment.
// Intervals from different sources may overlap; the conflict check treats
// them independently.
type BusyInterval struct {
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Source IntervalSource `json:"source"`
}

// CandidateSlot is a generated study window before conflict filtering.
type CandidateSlot struct {
	Start           time.Time `json:"start_time"`
	End             time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Overlaps reports whether the slot collides with the busy interval.
// Ranges are half-open, so a slot ending exactly when an interval starts
// does not conflict.
func (s CandidateSlot) Overlaps(b BusyInterval) bool {
	return s.Start.Before(b.End) && s.End.After(b.Start)
}

// ScoredSlot is a candidate slot that survived conflict filtering, annotated
// with its confidence score and a rotating subject suggestion.
type ScoredSlot struct {
	CandidateSlot
	ConfidenceScore  float64 `json:"confidence_score"`
	SuggestedSubject string  `json:"suggested_subject"`
}

// weekdayIndex maps t's weekday onto the preference numbering, Monday = 0
// through Sunday = 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// atHour returns t's calendar day at the given hour with minutes and seconds
// zeroed.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
