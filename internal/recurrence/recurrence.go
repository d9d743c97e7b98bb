// Package recurrence expands monthly recurrence rules into concrete dates.
package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/inab-dev/inab/internal/model"
)

// DefaultHorizon is the length of the default projection window.
const DefaultHorizon = 120 * 24 * time.Hour

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow returns the window starting the day after today and
// spanning DefaultHorizon. Today is already reflected in the balance.
func DefaultWindow(today time.Time) Window {
	return HorizonWindow(today, DefaultHorizon)
}

// HorizonWindow is like DefaultWindow with a custom horizon.
func HorizonWindow(today time.Time, horizon time.Duration) Window {
	start := model.Day(today).AddDate(0, 0, 1)
	return Window{Start: start, End: start.Add(horizon)}
}

// Contains reports whether d falls within the window, bounds included.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Validate checks that the window is not inverted.
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return errors.New("window bounds must be set")
	}
	if w.End.Before(w.Start) {
		return fmt.Errorf("window end %s is before start %s",
			w.End.Format(model.DateFormat), w.Start.Format(model.DateFormat))
	}
	return nil
}

// NewRule builds a validated RecurrenceRule. A zero dayOfMonth means the
// day of the anchor is used.
func NewRule(interval, dayOfMonth int, anchor time.Time) (model.RecurrenceRule, error) {
	rule := model.RecurrenceRule{
		Interval:   interval,
		DayOfMonth: dayOfMonth,
		Anchor:     anchor,
	}
	if err := ValidateRule(rule); err != nil {
		return model.RecurrenceRule{}, err
	}
	return rule, nil
}

// ValidateRule reports a descriptive error for rules that cannot be expanded.
func ValidateRule(r model.RecurrenceRule) error {
	if r.Interval < 1 {
		return fmt.Errorf("interval must be at least 1, got %d", r.Interval)
	}
	if r.DayOfMonth < 0 || r.DayOfMonth > 31 {
		return fmt.Errorf("day_of_month must be between 1 and 31, got %d", r.DayOfMonth)
	}
	return nil
}

// Expand returns the dates on which rule falls within w, in ascending order.
//
// Candidates start at the rule's anchor (or w.Start when unset) and step by
// rule.Interval months. Each lands on rule.DayOfMonth, clamped to the last
// day of shorter months. Candidates before the anchor are never produced.
func Expand(rule model.RecurrenceRule, w Window) []time.Time {
	w = Window{Start: model.Day(w.Start), End: model.Day(w.End)}
	start := w.Start
	if rule.HasAnchor() {
		start = model.Day(rule.Anchor)
	}
	day := rule.DayOfMonth
	if day == 0 {
		day = start.Day()
	}
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	// Skip whole intervals that end before the window's month.
	step := 0
	if gap := monthsBetween(start, w.Start); gap > 0 {
		step = gap / interval
	}

	var dates []time.Time
	for ; ; step++ {
		d := landOn(start, step*interval, day)
		if d.After(w.End) {
			break
		}
		if d.Before(start) || d.Before(w.Start) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// Occurrences expands every transaction's rule within w and returns the
// resulting entries sorted by date. Entries on the same date keep the
// order of txns.
func Occurrences(txns []model.RecurringTransaction, w Window) []model.Entry {
	var entries []model.Entry
	for _, txn := range txns {
		for _, d := range Expand(txn.Rule, w) {
			entries = append(entries, model.Entry{Date: d, Transaction: txn})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}

// landOn returns day of the month that is months after base's month.
func landOn(base time.Time, months, day int) time.Time {
	first := time.Date(base.Year(), base.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := model.DaysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return model.Date(first.Year(), first.Month(), day)
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
