package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/inab-dev/inab/internal/config"
	"github.com/inab-dev/inab/internal/ledger"
	"github.com/inab-dev/inab/internal/logger"
	"github.com/inab-dev/inab/internal/model"
)

func newInitCommand() *cobra.Command {
	var balanceCents int64
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create inab.yaml and sample data files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, balanceCents, model.Day(time.Now()), force); err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())
			log.Debug().Str("dir", absDir).Msg("project initialized")
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized inab project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().Int64Var(&balanceCents, "balance", 0, "current account balance in cents")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func runInit(dir string, balanceCents int64, today time.Time, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	cfg := config.Default()
	if err := os.MkdirAll(filepath.Dir(config.Resolve(cfgPath, cfg.Data.Recurring)), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(config.Resolve(cfgPath, cfg.Data.Actual)), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	if err := ledger.SaveRecurring(config.Resolve(cfgPath, cfg.Data.Recurring), sampleRecurring(today)); err != nil {
		return err
	}
	actual := ledger.ActualRecord{
		BalanceCents: &balanceCents,
		AsOfDate:     ledger.NewDate(today),
	}
	if err := ledger.SaveActual(config.Resolve(cfgPath, cfg.Data.Actual), actual); err != nil {
		return err
	}
	return nil
}

// sampleRecurring is a starter set of recurring transactions anchored on
// the current month.
func sampleRecurring(today time.Time) []ledger.RecurringRecord {
	anchor := ledger.NewDate(model.Date(today.Year(), today.Month(), 1))
	return []ledger.RecurringRecord{
		{
			AmountCents:  ptr[int64](300000),
			Description:  "Salary",
			Counterparty: "Employer",
			Recurrence:   ledger.RecurrenceRecord{DayOfMonth: ptr(31)},
		},
		{
			AmountCents:  ptr[int64](-85000),
			Description:  "Rent",
			Counterparty: "Landlord",
			Recurrence:   ledger.RecurrenceRecord{DayOfMonth: ptr(1)},
		},
		{
			AmountCents:  ptr[int64](-6000),
			Description:  "Electricity",
			Counterparty: "Utility",
			Recurrence: ledger.RecurrenceRecord{
				Interval:   ptr(2),
				DayOfMonth: ptr(15),
				AnchorDate: &anchor,
			},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
