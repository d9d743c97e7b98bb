// Package projection runs the full balance forecast: expand recurring
// rules, reconcile them with scheduled transactions and accumulate.
package projection

import (
	"errors"
	"fmt"
	"time"

	"github.com/inab-dev/inab/internal/balance"
	"github.com/inab-dev/inab/internal/model"
	"github.com/inab-dev/inab/internal/reconcile"
	"github.com/inab-dev/inab/internal/recurrence"
)

// Input is everything a projection is computed from.
type Input struct {
	Recurring []model.RecurringTransaction
	State     model.AccountState
}

// Options controls the projection window. Zero values fall back to the
// default window computed from the state's as-of date.
type Options struct {
	// From and To override the window bounds.
	From time.Time
	To   time.Time
	// Horizon is the window length used when To is unset.
	Horizon time.Duration
}

// Result is a computed projection.
type Result struct {
	Window        recurrence.Window
	StartingCents int64
	Occurrences   []model.Entry
	Merged        []model.Entry
	Rows          []model.BalanceRow
}

// Window resolves the projection window for a state as of asOf.
func (o Options) Window(asOf time.Time) recurrence.Window {
	horizon := o.Horizon
	if horizon <= 0 {
		horizon = recurrence.DefaultHorizon
	}
	w := recurrence.HorizonWindow(asOf, horizon)
	if !o.From.IsZero() {
		w.Start = model.Day(o.From)
		w.End = w.Start.Add(horizon)
	}
	if !o.To.IsZero() {
		w.End = model.Day(o.To)
	}
	return w
}

// Project computes the running balance of in.State projected over the
// window described by opts.
func Project(in Input, opts Options) (Result, error) {
	if in.State.AsOf.IsZero() && opts.From.IsZero() {
		return Result{}, errors.New("projection needs an as-of date or an explicit start")
	}
	w := opts.Window(in.State.AsOf)
	if err := w.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid window: %w", err)
	}
	for i, txn := range in.Recurring {
		if err := recurrence.ValidateRule(txn.Rule); err != nil {
			return Result{}, fmt.Errorf("recurring transaction %d (%s): %w", i+1, txn.Description, err)
		}
	}

	occurrences := recurrence.Occurrences(in.Recurring, w)
	merged := reconcile.Reconcile(occurrences, in.State.Scheduled, w.Start)
	rows := balance.Accumulate(merged, in.State.BalanceCents)

	return Result{
		Window:        w,
		StartingCents: in.State.BalanceCents,
		Occurrences:   occurrences,
		Merged:        merged,
		Rows:          rows,
	}, nil
}

// StartDate is the date shown on the synthetic starting-balance row.
func (r Result) StartDate() time.Time {
	return r.Window.Start
}

// RowsWithStart returns the rows prefixed by the starting-balance row.
func (r Result) RowsWithStart() []model.BalanceRow {
	return balance.WithStartingRow(r.Rows, r.StartDate(), r.StartingCents)
}

// FinalCents is the balance at the end of the projection.
func (r Result) FinalCents() int64 {
	return balance.Final(r.Rows, r.StartingCents)
}
