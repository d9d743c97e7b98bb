// Package ledger loads and validates the projection input files.
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inab-dev/inab/internal/model"
	"github.com/inab-dev/inab/internal/recurrence"
)

// RecurrenceRecord is the on-disk form of a recurrence rule.
type RecurrenceRecord struct {
	Interval   *int  `yaml:"interval,omitempty" json:"interval,omitempty"`
	DayOfMonth *int  `yaml:"day_of_month,omitempty" json:"day_of_month,omitempty"`
	AnchorDate *Date `yaml:"anchor_date,omitempty" json:"anchor_date,omitempty"`
}

// RecurringRecord is one entry of recurring.yaml.
type RecurringRecord struct {
	AmountCents  *int64           `yaml:"amount_cents" json:"amount_cents"`
	Description  string           `yaml:"description" json:"description"`
	Counterparty string           `yaml:"counterparty" json:"counterparty"`
	Recurrence   RecurrenceRecord `yaml:"recurrence" json:"recurrence"`
}

// ReadRecurring decodes and validates a recurring-transactions document.
func ReadRecurring(r io.Reader) ([]model.RecurringTransaction, error) {
	var records []RecurringRecord
	if err := decodeStrict(r, &records); err != nil {
		return nil, fmt.Errorf("parsing recurring transactions: %w", err)
	}

	var verrs ValidationErrors
	txns := make([]model.RecurringTransaction, 0, len(records))
	for i, rec := range records {
		txn, errs := rec.toModel(fmt.Sprintf("recurring[%d]", i))
		verrs = append(verrs, errs...)
		txns = append(txns, txn)
	}
	if err := verrs.orNil(); err != nil {
		return nil, err
	}
	return txns, nil
}

// LoadRecurring reads recurring transactions from a YAML file.
func LoadRecurring(path string) ([]model.RecurringTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recurring transactions: %w", err)
	}
	defer f.Close()

	txns, err := ReadRecurring(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txns, nil
}

// WriteRecurring encodes recurring records as YAML.
func WriteRecurring(w io.Writer, records []RecurringRecord) error {
	return encode(w, records)
}

// SaveRecurring writes recurring records to a YAML file.
func SaveRecurring(path string, records []RecurringRecord) error {
	var buf bytes.Buffer
	if err := WriteRecurring(&buf, records); err != nil {
		return fmt.Errorf("marshaling recurring transactions: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing recurring transactions: %w", err)
	}
	return nil
}

func (rec RecurringRecord) toModel(name string) (model.RecurringTransaction, []ValidationError) {
	var errs []ValidationError
	if rec.Description == "" {
		errs = append(errs, ValidationError{Record: name, Field: "description", Problem: "is required"})
	} else {
		name = fmt.Sprintf("%s (%s)", name, rec.Description)
	}
	if rec.AmountCents == nil {
		errs = append(errs, ValidationError{Record: name, Field: "amount_cents", Problem: "is required"})
	}

	rule := model.RecurrenceRule{Interval: 1}
	if rec.Recurrence.Interval != nil {
		rule.Interval = *rec.Recurrence.Interval
	}
	if rec.Recurrence.DayOfMonth != nil {
		rule.DayOfMonth = *rec.Recurrence.DayOfMonth
		if rule.DayOfMonth == 0 {
			errs = append(errs, ValidationError{Record: name, Field: "recurrence.day_of_month", Problem: "must be between 1 and 31, got 0"})
		}
	}
	if rec.Recurrence.AnchorDate != nil {
		rule.Anchor = rec.Recurrence.AnchorDate.Time
	}
	if err := recurrence.ValidateRule(rule); err != nil {
		errs = append(errs, ValidationError{Record: name, Field: "recurrence", Problem: err.Error()})
	}

	txn := model.RecurringTransaction{
		Description:  rec.Description,
		Counterparty: rec.Counterparty,
		Rule:         rule,
	}
	if rec.AmountCents != nil {
		txn.AmountCents = *rec.AmountCents
	}
	return txn, errs
}

// decodeStrict decodes a single YAML document, rejecting unknown fields.
// An empty document leaves v untouched.
func decodeStrict(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
