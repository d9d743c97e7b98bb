package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inab-dev/inab/internal/balance"
	"github.com/inab-dev/inab/internal/model"
)

// CSVHeader is the header row of CSV output.
const CSVHeader = "date,description,source,change_cents,balance_cents"

const sourceStart = "start"

// CSV writes rows with raw cent amounts, one row per balance row.
func CSV(w io.Writer, rows []model.BalanceRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(csvRecord(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(r model.BalanceRow) []string {
	date := ""
	if !r.Date.IsZero() {
		date = r.Date.Format(model.DateFormat)
	}
	if r.IsStartingRow() {
		return []string{date, balance.StartingBalanceLabel, sourceStart, "", strconv.FormatInt(r.BalanceCents, 10)}
	}
	return []string{
		date,
		r.Transaction.Label(),
		string(r.Transaction.Source()),
		strconv.FormatInt(r.Transaction.Amount(), 10),
		strconv.FormatInt(r.BalanceCents, 10),
	}
}
