// Package statement scrapes credit card transactions out of statement text
// copied from the Nordea web bank.
package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inab-dev/inab/internal/model"
	"github.com/inab-dev/inab/internal/money"
)

// Minus is the sign the bank prints in front of debits. It is U+2212, not
// the ASCII hyphen.
const Minus = "−"

const statementDateFormat = "2.1.2006"

var (
	dateLine = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)
	sumLine  = regexp.MustCompile(`^(` + Minus + `)?(\d+),(\d{2})$`)
	// amountish matches lines made only of signs, digits and separators.
	amountish = regexp.MustCompile(`^[-+\x{2212}\x{2013}]?[\d\s.,]*\d[\d\s.,]*$`)
)

// Phase is what the scanner expects next within a transaction block.
type Phase int

const (
	// AwaitDate waits for the first date line of a block.
	AwaitDate Phase = iota
	// AwaitDescription has a date and waits for the type and description.
	AwaitDescription
	// AwaitSum has a description and waits for the amount.
	AwaitSum
)

func (p Phase) String() string {
	switch p {
	case AwaitDate:
		return "date"
	case AwaitDescription:
		return "description"
	case AwaitSum:
		return "sum"
	default:
		return "unknown"
	}
}

// State is the scanner state between lines of a statement.
type State struct {
	Phase       Phase
	Date        time.Time
	Type        model.CardTransactionType
	Description string
}

// Start is the state before any line has been read.
func Start() State {
	return State{Phase: AwaitDate, Type: model.CardUnknown}
}

// Step consumes one line. It returns the next state and, when the line
// completes a block, the finished transaction. Lines that do not fit the
// current phase are skipped. Blank lines never change the state.
func Step(s State, line string) (State, *model.CardTransaction, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return s, nil, nil
	}

	switch s.Phase {
	case AwaitDate:
		if !dateLine.MatchString(line) {
			return s, nil, nil
		}
		return withDate(line)

	case AwaitDescription:
		if dateLine.MatchString(line) {
			// Only the last of consecutive date lines counts.
			return withDate(line)
		}
		if amountish.MatchString(line) {
			// Amount without a description: drop the block.
			return Start(), nil, nil
		}
		kind, desc := splitTitle(line)
		return State{Phase: AwaitSum, Date: s.Date, Type: kind, Description: desc}, nil, nil

	case AwaitSum:
		if dateLine.MatchString(line) {
			// The block never got its amount; start over from this date.
			return withDate(line)
		}
		if !amountish.MatchString(line) {
			return s, nil, nil
		}
		cents, err := ParseSum(line)
		if err != nil {
			return s, nil, err
		}
		txn := &model.CardTransaction{
			Type:        s.Type,
			Date:        s.Date,
			Description: s.Description,
			Cents:       cents,
		}
		return Start(), txn, nil
	}
	return s, nil, nil
}

func withDate(line string) (State, *model.CardTransaction, error) {
	d, err := ParseDate(line)
	if err != nil {
		return Start(), nil, err
	}
	return State{Phase: AwaitDescription, Date: d, Type: model.CardUnknown}, nil, nil
}

// ParseDate parses a statement date such as "5.3.2024".
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(statementDateFormat, s)
	if err != nil {
		return time.Time{}, &ParseError{Text: s, Reason: "invalid date"}
	}
	return t, nil
}

// ParseSum parses a statement amount such as "12,34" or "−12,34" into cents.
func ParseSum(s string) (int64, error) {
	m := sumLine.FindStringSubmatch(s)
	if m == nil {
		return 0, &ParseError{Text: s, Reason: "invalid sum"}
	}
	d, err := decimal.NewFromString(m[2] + "." + m[3])
	if err != nil {
		return 0, &ParseError{Text: s, Reason: "invalid sum"}
	}
	if m[1] != "" {
		d = d.Neg()
	}
	return money.Cents(d), nil
}

// splitTitle splits "Osto K-Market" into its type and description. When
// the first word is not a known type the whole line is the description.
func splitTitle(title string) (model.CardTransactionType, string) {
	token, rest, found := strings.Cut(title, " ")
	kind, known := model.ParseCardTransactionType(token)
	if !known || !found {
		return kind, title
	}
	return kind, strings.TrimSpace(rest)
}

// splitBrowserTitle splits a browser export title on its first space. The
// first word is always the type token, known or not; a title without a
// space is its own description.
func splitBrowserTitle(title string) (model.CardTransactionType, string) {
	token, rest, found := strings.Cut(title, " ")
	kind, _ := model.ParseCardTransactionType(token)
	if !found {
		return kind, title
	}
	return kind, strings.TrimSpace(rest)
}
