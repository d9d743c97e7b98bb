package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inab-dev/inab/internal/ledger"
	"github.com/inab-dev/inab/internal/logger"
	"github.com/inab-dev/inab/internal/model"
	"github.com/inab-dev/inab/internal/render"
	"github.com/inab-dev/inab/internal/statement"
)

// Output formats for scraped transactions.
const (
	scrapeYAML  = "yaml"
	scrapeJSON  = "json"
	scrapeTable = "table"
)

// cardRecord is the JSON form of a scraped card transaction.
type cardRecord struct {
	Type        model.CardTransactionType `json:"type"`
	Date        ledger.Date               `json:"date"`
	Description string                    `json:"description"`
	AmountCents int64                     `json:"amount_cents"`
}

func newScrapeCommand() *cobra.Command {
	var inputFormat string
	var outputFormat string

	registry := statement.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "scrape [file]",
		Short: "Convert a credit card statement into scheduled transactions",
		Long: "Reads a credit card statement pasted from the web bank (or the JSON\n" +
			"written by the browser console script) and prints the transactions.\n" +
			"With no file, or when file is -, the statement is read from stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := registry.Lookup(inputFormat)
			if err != nil {
				return err
			}
			switch outputFormat {
			case scrapeYAML, scrapeJSON, scrapeTable:
			default:
				return fmt.Errorf("unknown output format %q (available: %s, %s, %s)", outputFormat, scrapeYAML, scrapeJSON, scrapeTable)
			}

			in := cmd.InOrStdin()
			if len(args) > 0 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening statement: %w", err)
				}
				defer f.Close()
				in = f
			}

			return runScrape(cmd, parser, in, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "nordea", "statement format ("+strings.Join(registry.Formats(), ", ")+")")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", scrapeYAML, "output format (yaml, json, table)")

	return cmd
}

func runScrape(cmd *cobra.Command, parser statement.Parser, in io.Reader, format string) error {
	log := logger.FromContext(cmd.Context())

	txns, err := parser.Parse(in)
	if err != nil {
		return fmt.Errorf("scraping statement: %w", err)
	}

	unknown := 0
	for _, t := range txns {
		if t.Type == model.CardUnknown {
			unknown++
			log.Warn().
				Str("date", t.Date.Format(model.DateFormat)).
				Str("description", t.Description).
				Msg("unrecognized transaction type")
		}
	}
	log.Debug().
		Str("format", parser.Format()).
		Int("transactions", len(txns)).
		Int("unknown_types", unknown).
		Msg("statement scraped")

	out := cmd.OutOrStdout()
	switch format {
	case scrapeJSON:
		records := make([]cardRecord, len(txns))
		for i, t := range txns {
			records[i] = cardRecord{
				Type:        t.Type,
				Date:        ledger.NewDate(t.Date),
				Description: t.Description,
				AmountCents: t.Cents,
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding transactions: %w", err)
		}
		return nil
	case scrapeTable:
		return render.Cards(out, txns, render.Options{})
	default:
		doc := ledger.ScheduledDocumentFrom(statement.Scheduled(txns))
		if err := ledger.WriteScheduled(out, doc); err != nil {
			return fmt.Errorf("encoding transactions: %w", err)
		}
		return nil
	}
}
