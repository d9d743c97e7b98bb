// Package balance folds a merged transaction list into running totals.
package balance

import (
	"sort"
	"time"

	"github.com/inab-dev/inab/internal/model"
)

// StartingBalanceLabel is the description of the synthetic starting row.
const StartingBalanceLabel = "Starting Balance"

// Accumulate sorts entries by date and returns the balance after each one,
// starting from startingCents. Entries sharing a date keep their input order.
// The input slice is not modified.
func Accumulate(entries []model.Entry, startingCents int64) []model.BalanceRow {
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	rows := make([]model.BalanceRow, 0, len(sorted))
	total := startingCents
	for _, e := range sorted {
		total += e.Transaction.Amount()
		rows = append(rows, model.BalanceRow{
			Date:         e.Date,
			Transaction:  e.Transaction,
			BalanceCents: total,
		})
	}
	return rows
}

// StartingRow returns the display-only row anchoring a projection at
// startingCents. A zero date renders blank.
func StartingRow(date time.Time, startingCents int64) model.BalanceRow {
	return model.BalanceRow{Date: date, BalanceCents: startingCents}
}

// WithStartingRow prepends StartingRow to rows.
func WithStartingRow(rows []model.BalanceRow, date time.Time, startingCents int64) []model.BalanceRow {
	out := make([]model.BalanceRow, 0, len(rows)+1)
	out = append(out, StartingRow(date, startingCents))
	return append(out, rows...)
}

// Final returns the balance after the last row, or startingCents when
// there are no rows.
func Final(rows []model.BalanceRow, startingCents int64) int64 {
	if len(rows) == 0 {
		return startingCents
	}
	return rows[len(rows)-1].BalanceCents
}

// Lowest returns the row with the smallest balance and false if rows holds
// no transaction rows. Ties resolve to the earliest row.
func Lowest(rows []model.BalanceRow) (model.BalanceRow, bool) {
	var low model.BalanceRow
	found := false
	for _, r := range rows {
		if r.IsStartingRow() {
			continue
		}
		if !found || r.BalanceCents < low.BalanceCents {
			low = r
			found = true
		}
	}
	return low, found
}
