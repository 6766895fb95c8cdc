package domain

import "time"

// TimeSlot represents one fixed-width unit of bookable calendar time.
// Start and End are absolute timestamps in the schedule's location, so slots of a
// window crossing midnight (or a DST transition day) compare correctly.
// Immutable once generated for a given day; Index is the 0-based ordinal position
// in the day's slot sequence.
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Index     int
	Available bool
}

// Duration returns the width of the slot
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Contains returns true if the instant t falls within the slot's [Start, End) range
func (s TimeSlot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}
