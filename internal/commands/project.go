package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/inab-dev/inab/internal/balance"
	"github.com/inab-dev/inab/internal/config"
	"github.com/inab-dev/inab/internal/ledger"
	"github.com/inab-dev/inab/internal/logger"
	"github.com/inab-dev/inab/internal/model"
	"github.com/inab-dev/inab/internal/projection"
	"github.com/inab-dev/inab/internal/render"
)

type projectOptions struct {
	from      string
	to        string
	horizon   int
	csv       bool
	noStart   bool
	recurring string
	actual    string
}

func newProjectCommand(g *globals) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the projected running balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, cfg, err := g.resolveConfig(cmd)
			if err != nil {
				return err
			}
			return runProject(cmd, configPath, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.from, "from", "", "first projected day (YYYY-MM-DD); defaults to the day after as_of_date")
	flags.StringVar(&opts.to, "to", "", "last projected day (YYYY-MM-DD)")
	flags.IntVar(&opts.horizon, "horizon", 0, "projection length in days; overrides projection.horizon_days")
	flags.BoolVar(&opts.csv, "csv", false, "write CSV with raw cents instead of a table")
	flags.BoolVar(&opts.noStart, "no-start", false, "omit the starting balance row")
	flags.StringVar(&opts.recurring, "recurring", "", "recurring transactions file; overrides data.recurring")
	flags.StringVar(&opts.actual, "actual", "", "account state file; overrides data.actual")

	return cmd
}

func runProject(cmd *cobra.Command, configPath string, cfg *config.Config, opts *projectOptions) error {
	log := logger.FromContext(cmd.Context())

	window, err := opts.window(cfg)
	if err != nil {
		return err
	}

	recurringPath := config.Resolve(configPath, cfg.Data.Recurring)
	if opts.recurring != "" {
		recurringPath = opts.recurring
	}
	actualPath := config.Resolve(configPath, cfg.Data.Actual)
	if opts.actual != "" {
		actualPath = opts.actual
	}

	recurring, err := ledger.LoadRecurring(recurringPath)
	if err != nil {
		return err
	}
	state, err := ledger.LoadActual(actualPath)
	if err != nil {
		return err
	}
	log.Debug().
		Str("recurring", recurringPath).
		Str("actual", actualPath).
		Int("recurring_count", len(recurring)).
		Int("scheduled_count", len(state.Scheduled)).
		Msg("loaded ledger")

	result, err := projection.Project(projection.Input{Recurring: recurring, State: state}, window)
	if err != nil {
		return err
	}
	log.Debug().
		Str("start", result.Window.Start.Format(model.DateFormat)).
		Str("end", result.Window.End.Format(model.DateFormat)).
		Int("occurrences", len(result.Occurrences)).
		Int("rows", len(result.Rows)).
		Msg("projection computed")

	rows := result.Rows
	if cfg.Projection.ShowStartingBalance && !opts.noStart {
		rows = result.RowsWithStart()
	}

	format := cfg.Output.Format
	if opts.csv {
		format = config.FormatCSV
	}
	renderOpts := render.Options{
		Symbol:           cfg.Output.Currency,
		DescriptionWidth: cfg.Output.DescriptionWidth,
	}
	if err := writeRows(cmd.OutOrStdout(), format, rows, renderOpts); err != nil {
		return err
	}

	if low, ok := balance.Lowest(result.Rows); ok {
		log.Info().
			Str("final", renderOpts.Money(result.FinalCents())).
			Str("lowest", renderOpts.Money(low.BalanceCents)).
			Str("lowest_date", low.Date.Format(model.DateFormat)).
			Msg("projection summary")
	}
	return nil
}

func (o *projectOptions) window(cfg *config.Config) (projection.Options, error) {
	out := projection.Options{Horizon: cfg.Projection.Horizon()}
	if o.horizon < 0 {
		return out, fmt.Errorf("--horizon must not be negative, got %d", o.horizon)
	}
	if o.horizon > 0 {
		out.Horizon = time.Duration(o.horizon) * 24 * time.Hour
	}
	if o.from != "" {
		d, err := ledger.ParseDate(o.from)
		if err != nil {
			return out, fmt.Errorf("--from: %w", err)
		}
		out.From = d.Time
	}
	if o.to != "" {
		d, err := ledger.ParseDate(o.to)
		if err != nil {
			return out, fmt.Errorf("--to: %w", err)
		}
		out.To = d.Time
	}
	return out, nil
}

func writeRows(w io.Writer, format string, rows []model.BalanceRow, opts render.Options) error {
	switch format {
	case config.FormatCSV:
		return render.CSV(w, rows)
	default:
		return render.Table(w, rows, opts)
	}
}
