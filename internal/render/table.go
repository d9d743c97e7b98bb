// Package render formats projection rows for the terminal and for export.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/inab-dev/inab/internal/balance"
	"github.com/inab-dev/inab/internal/model"
	"github.com/inab-dev/inab/internal/money"
)

// Ellipsis marks truncated descriptions.
const Ellipsis = "…"

// Headers are the column titles of the balance table.
var Headers = []string{"Date", "Description", "Change", "Total"}

type align int

const (
	alignLeft align = iota
	alignRight
)

var columnAlign = []align{alignLeft, alignLeft, alignRight, alignRight}

// Options tune how rows are rendered.
type Options struct {
	// Symbol is the currency symbol; empty means money.DefaultSymbol.
	Symbol string
	// DescriptionWidth truncates descriptions longer than this many
	// characters. Zero disables truncation.
	DescriptionWidth int
}

func (o Options) symbol() string {
	if o.Symbol == "" {
		return money.DefaultSymbol
	}
	return o.Symbol
}

// Money formats cents with the options' currency symbol.
func (o Options) Money(cents int64) string {
	return money.FormatWith(cents, o.symbol())
}

// Cells returns the display cells of a row: date, description, change
// and total. The starting row has a blank change.
func Cells(row model.BalanceRow, opts Options) []string {
	date := ""
	if !row.Date.IsZero() {
		date = row.Date.Format(model.DateFormat)
	}
	if row.IsStartingRow() {
		return []string{date, balance.StartingBalanceLabel, "", opts.Money(row.BalanceCents)}
	}
	desc := row.Transaction.Label()
	if opts.DescriptionWidth > 0 {
		desc = Truncate(desc, opts.DescriptionWidth, Ellipsis)
	}
	return []string{
		date,
		desc,
		opts.Money(row.Transaction.Amount()),
		opts.Money(row.BalanceCents),
	}
}

// Table writes rows as an aligned plain-text table: text columns
// left-aligned, money columns right-aligned.
func Table(w io.Writer, rows []model.BalanceRow, opts Options) error {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = Cells(r, opts)
	}
	return writeTable(w, Headers, columnAlign, cells)
}

// CardHeaders are the column titles of the card transaction table.
var CardHeaders = []string{"Date", "Type", "Description", "Amount"}

var cardAlign = []align{alignLeft, alignLeft, alignLeft, alignRight}

// Cards writes scraped card transactions as an aligned table.
func Cards(w io.Writer, txns []model.CardTransaction, opts Options) error {
	cells := make([][]string, len(txns))
	for i, t := range txns {
		desc := t.Description
		if opts.DescriptionWidth > 0 {
			desc = Truncate(desc, opts.DescriptionWidth, Ellipsis)
		}
		cells[i] = []string{
			t.Date.Format(model.DateFormat),
			string(t.Type),
			desc,
			opts.Money(t.Cents),
		}
	}
	return writeTable(w, CardHeaders, cardAlign, cells)
}

func writeTable(w io.Writer, headers []string, aligns []align, cells [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}

	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}

	lines := append([][]string{headers, rule}, cells...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, formatLine(line, widths, aligns)); err != nil {
			return fmt.Errorf("writing table: %w", err)
		}
	}
	return nil
}

func formatLine(cells []string, widths []int, aligns []align) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = pad(c, widths[i], aligns[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func pad(s string, width int, a align) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// Truncate shortens s to at most maxWidth characters, replacing the tail
// with ellipsis when it does not fit.
func Truncate(s string, maxWidth int, ellipsis string) string {
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	keep := maxWidth - utf8.RuneCountInString(ellipsis)
	if keep <= 0 {
		return string([]rune(ellipsis)[:maxWidth])
	}
	return string([]rune(s)[:keep]) + ellipsis
}
