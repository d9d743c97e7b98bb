package ledger

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/inab-dev/inab/internal/model"
)

// ScheduledRecord is one scheduled transaction in actual.yaml.
type ScheduledRecord struct {
	Date        Date   `yaml:"date" json:"date"`
	AmountCents *int64 `yaml:"amount_cents" json:"amount_cents"`
	Description string `yaml:"description" json:"description"`
}

// ActualRecord is the on-disk form of the account state.
type ActualRecord struct {
	BalanceCents *int64            `yaml:"balance_cents" json:"balance_cents"`
	AsOfDate     Date              `yaml:"as_of_date" json:"as_of_date"`
	Scheduled    []ScheduledRecord `yaml:"scheduled_transactions,omitempty" json:"scheduled_transactions,omitempty"`
}

// ScheduledRecordFrom converts a scheduled transaction to its record form.
func ScheduledRecordFrom(t model.ScheduledTransaction) ScheduledRecord {
	amount := t.AmountCents
	return ScheduledRecord{
		Date:        NewDate(t.Date),
		AmountCents: &amount,
		Description: t.Description,
	}
}

// ReadActual decodes and validates an account-state document.
func ReadActual(r io.Reader) (model.AccountState, error) {
	var rec ActualRecord
	if err := decodeStrict(r, &rec); err != nil {
		return model.AccountState{}, fmt.Errorf("parsing account state: %w", err)
	}

	var verrs ValidationErrors
	if rec.BalanceCents == nil {
		verrs = append(verrs, ValidationError{Record: "actual", Field: "balance_cents", Problem: "is required"})
	}
	if rec.AsOfDate.IsZero() {
		verrs = append(verrs, ValidationError{Record: "actual", Field: "as_of_date", Problem: "is required"})
	}

	state := model.AccountState{AsOf: model.Day(rec.AsOfDate.Time)}
	if rec.BalanceCents != nil {
		state.BalanceCents = *rec.BalanceCents
	}
	for i, s := range rec.Scheduled {
		name := fmt.Sprintf("scheduled_transactions[%d]", i)
		if s.Date.IsZero() {
			verrs = append(verrs, ValidationError{Record: name, Field: "date", Problem: "is required"})
		}
		if s.Description == "" {
			verrs = append(verrs, ValidationError{Record: name, Field: "description", Problem: "is required"})
		} else {
			name = fmt.Sprintf("%s (%s)", name, s.Description)
		}
		if s.AmountCents == nil {
			verrs = append(verrs, ValidationError{Record: name, Field: "amount_cents", Problem: "is required"})
		}
		txn := model.ScheduledTransaction{
			Date:        model.Day(s.Date.Time),
			Description: s.Description,
		}
		if s.AmountCents != nil {
			txn.AmountCents = *s.AmountCents
		}
		state.Scheduled = append(state.Scheduled, txn)
	}

	if err := verrs.orNil(); err != nil {
		return model.AccountState{}, err
	}
	return state, nil
}

// LoadActual reads the account state from a YAML file.
func LoadActual(path string) (model.AccountState, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.AccountState{}, fmt.Errorf("opening account state: %w", err)
	}
	defer f.Close()

	state, err := ReadActual(f)
	if err != nil {
		return model.AccountState{}, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

// WriteActual encodes an account-state record as YAML.
func WriteActual(w io.Writer, rec ActualRecord) error {
	return encode(w, rec)
}

// SaveActual writes an account-state record to a YAML file.
func SaveActual(path string, rec ActualRecord) error {
	var buf bytes.Buffer
	if err := WriteActual(&buf, rec); err != nil {
		return fmt.Errorf("marshaling account state: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing account state: %w", err)
	}
	return nil
}

// ScheduledDocument is a standalone list of scheduled transactions, in the
// same shape as the scheduled_transactions key of the account state.
type ScheduledDocument struct {
	Scheduled []ScheduledRecord `yaml:"scheduled_transactions" json:"scheduled_transactions"`
}

// ScheduledDocumentFrom builds a document from scheduled transactions.
func ScheduledDocumentFrom(txns []model.ScheduledTransaction) ScheduledDocument {
	doc := ScheduledDocument{Scheduled: make([]ScheduledRecord, len(txns))}
	for i, t := range txns {
		doc.Scheduled[i] = ScheduledRecordFrom(t)
	}
	return doc
}

// WriteScheduled encodes a scheduled-transaction document as YAML.
func WriteScheduled(w io.Writer, doc ScheduledDocument) error {
	return encode(w, doc)
}
