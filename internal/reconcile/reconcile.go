// Package reconcile merges recurring occurrences with manually scheduled
// transactions.
package reconcile

import (
	"time"

	"github.com/inab-dev/inab/internal/model"
)

// Matches reports whether scheduled represents the same real-world event
// as the occurrence: same calendar month and identical description.
func Matches(occurrence model.Entry, scheduled model.ScheduledTransaction) bool {
	return model.SameMonth(occurrence.Date, scheduled.Date) &&
		occurrence.Transaction.Label() == scheduled.Description
}

// Reconcile replaces each occurrence by the first unconsumed scheduled
// transaction that matches it, taking the scheduled date and amount.
// Scheduled transactions that replaced nothing are appended in their given
// order. Entries dated before windowStart are dropped.
//
// The result is not sorted.
func Reconcile(occurrences []model.Entry, scheduled []model.ScheduledTransaction, windowStart time.Time) []model.Entry {
	windowStart = model.Day(windowStart)
	consumed := make([]bool, len(scheduled))
	merged := make([]model.Entry, 0, len(occurrences)+len(scheduled))

	for _, occ := range occurrences {
		entry := occ
		for i, s := range scheduled {
			if consumed[i] || !Matches(occ, s) {
				continue
			}
			consumed[i] = true
			entry = model.Entry{Date: model.Day(s.Date), Transaction: s}
			break
		}
		merged = append(merged, entry)
	}

	for i, s := range scheduled {
		if !consumed[i] {
			merged = append(merged, model.Entry{Date: model.Day(s.Date), Transaction: s})
		}
	}

	result := merged[:0]
	for _, e := range merged {
		if e.Date.Before(windowStart) {
			continue
		}
		result = append(result, e)
	}
	return result
}
