package commands_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectRecurring = `
- amount_cents: -85000
  description: Rent
  counterparty: Landlord
  recurrence:
    day_of_month: 1
- amount_cents: 338200
  description: Salary
  counterparty: Employer
  recurrence:
    day_of_month: 25
`

const projectActual = `
balance_cents: 100000
as_of_date: 2024-01-31
scheduled_transactions:
  - date: 2024-02-03
    amount_cents: -90000
    description: Rent
  - date: 2024-02-10
    amount_cents: -5000
    description: Dentist
`

func projectFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "inab.yaml"), "projection:\n  horizon_days: 59\n")
	writeFile(t, filepath.Join(dir, "data", "recurring.yaml"), projectRecurring)
	writeFile(t, filepath.Join(dir, "data", "actual.yaml"), projectActual)
	return filepath.Join(dir, "inab.yaml")
}

func TestProject_CSV(t *testing.T) {
	cfg := projectFixture(t)
	res, err := runInab(t, "", "project", "--config", cfg, "--csv")
	require.NoError(t, err)

	want := strings.Join([]string{
		"date,description,source,change_cents,balance_cents",
		"2024-02-01,Starting Balance,start,,100000",
		"2024-02-03,Rent,scheduled,-90000,10000",
		"2024-02-10,Dentist,scheduled,-5000,5000",
		"2024-02-25,Salary,recurring,338200,343200",
		"2024-03-01,Rent,recurring,-85000,258200",
		"2024-03-25,Salary,recurring,338200,596400",
		"",
	}, "\n")
	assert.Equal(t, want, res.stdout)
}

func TestProject_NoStart(t *testing.T) {
	cfg := projectFixture(t)
	res, err := runInab(t, "", "project", "--config", cfg, "--csv", "--no-start")
	require.NoError(t, err)
	assert.NotContains(t, res.stdout, "Starting Balance")
	assert.Contains(t, res.stdout, "2024-03-25,Salary,recurring,338200,596400")
}

func TestProject_Table(t *testing.T) {
	cfg := projectFixture(t)
	res, err := runInab(t, "", "project", "--config", cfg)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "Date"))
	assert.Contains(t, lines[2], "Starting Balance")
	assert.Contains(t, lines[2], "1000,00 €")
	assert.Contains(t, lines[7], "5964,00 €")
}

func TestProject_Window(t *testing.T) {
	cfg := projectFixture(t)
	res, err := runInab(t, "", "project", "--config", cfg, "--csv", "--from", "2024-02-20", "--to", "2024-03-10")
	require.NoError(t, err)

	// The February rent and dentist predate the window and are dropped.
	want := strings.Join([]string{
		"date,description,source,change_cents,balance_cents",
		"2024-02-20,Starting Balance,start,,100000",
		"2024-02-25,Salary,recurring,338200,438200",
		"2024-03-01,Rent,recurring,-85000,353200",
		"",
	}, "\n")
	assert.Equal(t, want, res.stdout)
}

func TestProject_Summary(t *testing.T) {
	cfg := projectFixture(t)
	res, err := runInab(t, "", "project", "--config", cfg, "--csv")
	require.NoError(t, err)
	assert.Contains(t, res.stderr, "projection summary")
	assert.Contains(t, res.stderr, "lowest_date=2024-02-10")
}

func TestProject_VerboseLogsRunID(t *testing.T) {
	cfg := projectFixture(t)
	res, err := runInab(t, "", "--verbose", "project", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, res.stderr, "loaded ledger")
	assert.Contains(t, res.stderr, "run_id=")
}

func TestProject_MissingExplicitConfig(t *testing.T) {
	_, err := runInab(t, "", "project", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestProject_InvalidRecurring(t *testing.T) {
	cfg := projectFixture(t)
	writeFile(t, filepath.Join(filepath.Dir(cfg), "data", "recurring.yaml"), "- description: Broken\n  recurrence:\n    interval: 0\n")
	_, err := runInab(t, "", "project", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount_cents")
}

func TestProject_BadFlagDate(t *testing.T) {
	cfg := projectFixture(t)
	_, err := runInab(t, "", "project", "--config", cfg, "--from", "02/20/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}

func TestProject_EmptyCurrencyMatchesTable(t *testing.T) {
	cfg := projectFixture(t)
	writeFile(t, cfg, "projection:\n  horizon_days: 59\noutput:\n  currency: \"\"\n")
	res, err := runInab(t, "", "project", "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, res.stdout, "5964,00 €")
	assert.Contains(t, res.stderr, "5964,00 €")
	assert.Contains(t, res.stderr, "50,00 €")
}

func TestProject_ScheduledWithoutAmount(t *testing.T) {
	cfg := projectFixture(t)
	writeFile(t, filepath.Join(filepath.Dir(cfg), "data", "actual.yaml"),
		"balance_cents: 100000\nas_of_date: 2024-01-31\nscheduled_transactions:\n  - date: 2024-02-01\n    description: Rent\n")
	_, err := runInab(t, "", "project", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduled_transactions[0] (Rent): amount_cents: is required")
}
