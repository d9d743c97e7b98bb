package model

import "time"

// RecurrenceRule describes a monthly schedule.
type RecurrenceRule struct {
	// Interval is the number of months between occurrences, at least 1.
	Interval int
	// DayOfMonth is the target day 1..31, or 0 to use the anchor's day.
	DayOfMonth int
	// Anchor is the first possible occurrence. Zero means unset.
	Anchor time.Time
}

// HasAnchor reports whether the rule has an explicit start.
func (r RecurrenceRule) HasAnchor() bool {
	return !r.Anchor.IsZero()
}
