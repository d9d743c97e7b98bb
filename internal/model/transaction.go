package model

import "time"

// Source tags which input a transaction came from.
type Source string

const (
	SourceRecurring Source = "recurring"
	SourceScheduled Source = "scheduled"
)

// Transaction is either a RecurringTransaction or a ScheduledTransaction.
type Transaction interface {
	// Amount is the signed change in cents.
	Amount() int64
	// Label is the description shown to the user and used for matching.
	Label() string
	Source() Source
}

// RecurringTransaction is a monthly repeating cash movement (rent, salary, ...).
type RecurringTransaction struct {
	AmountCents  int64
	Description  string
	Counterparty string
	Rule         RecurrenceRule
}

func (t RecurringTransaction) Amount() int64  { return t.AmountCents }
func (t RecurringTransaction) Label() string  { return t.Description }
func (t RecurringTransaction) Source() Source { return SourceRecurring }

// ScheduledTransaction is a one-off transaction entered by hand, either a
// pending transfer or a correction of a recurring occurrence.
type ScheduledTransaction struct {
	Date        time.Time
	AmountCents int64
	Description string
}

func (t ScheduledTransaction) Amount() int64  { return t.AmountCents }
func (t ScheduledTransaction) Label() string  { return t.Description }
func (t ScheduledTransaction) Source() Source { return SourceScheduled }

// AccountState is the known balance of the account plus the transactions
// already scheduled against it.
type AccountState struct {
	BalanceCents int64
	AsOf         time.Time
	Scheduled    []ScheduledTransaction
}

// Entry pairs a date with the transaction falling on it.
type Entry struct {
	Date        time.Time
	Transaction Transaction
}

// BalanceRow is one line of a projection: a transaction and the balance
// after applying it. A nil Transaction marks the synthetic starting row.
type BalanceRow struct {
	Date         time.Time
	Transaction  Transaction
	BalanceCents int64
}

// IsStartingRow reports whether r is the synthetic starting-balance row.
func (r BalanceRow) IsStartingRow() bool {
	return r.Transaction == nil
}
