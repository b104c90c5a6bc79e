package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/talentops/agency-ledger/internal/config"
	"github.com/talentops/agency-ledger/internal/ledger"
	"github.com/talentops/agency-ledger/internal/model"
	"github.com/talentops/agency-ledger/internal/rates"
	"github.com/talentops/agency-ledger/internal/recon"
	"github.com/talentops/agency-ledger/internal/sheet"
)

// newLedgerService builds the reconciliation service and performs the
// initial refresh. With --demo the service runs against the built-in
// dataset instead of the live spreadsheet.
func newLedgerService(ctx context.Context) (*recon.Service, error) {
	var store sheet.Store
	if viper.GetBool("demo") {
		store = demoStore()
	} else {
		sheetConfig, err := config.LoadSheetConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load sheet configuration: %w", err)
		}
		client, err := sheet.NewClient(ctx, sheetConfig, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sheet store: %w", err)
		}
		store = client
	}

	svc := recon.New(store, ledger.NewStore(), config.LoadLedgerConfig(), slog.Default())
	if err := svc.Refresh(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// openRegistry opens the local rates database.
func openRegistry() (*rates.Registry, error) {
	registry, err := rates.Open(config.RegistryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open rate registry: %w", err)
	}
	return registry, nil
}

// serviceAndRow builds the ledger service and parses a row argument in
// one step, for the commands addressing a single record.
func serviceAndRow(cmd *cobra.Command, arg string) (*recon.Service, int, error) {
	row, err := strconv.Atoi(arg)
	if err != nil || row < 2 {
		return nil, 0, fmt.Errorf("invalid sheet row %q", arg)
	}
	svc, err := newLedgerService(cmd.Context())
	if err != nil {
		return nil, 0, err
	}
	return svc, row, nil
}

// findIncomeByRow resolves a sheet row number to the cached record.
func findIncomeByRow(svc *recon.Service, row int) (model.IncomeTransaction, error) {
	for _, t := range svc.Ledger().AllIncome() {
		if t.SourceRow == row {
			return t, nil
		}
	}
	return model.IncomeTransaction{}, fmt.Errorf("no income record at sheet row %d", row)
}

// findExpenseByRow resolves a sheet row number to the cached expense.
func findExpenseByRow(svc *recon.Service, row int) (model.Expense, error) {
	for _, e := range svc.Ledger().AllExpenses() {
		if e.SourceRow == row {
			return e, nil
		}
	}
	return model.Expense{}, fmt.Errorf("no expense record at sheet row %d", row)
}

// parseMonth parses a YYYY-MM month argument, defaulting to the
// current month when empty.
func parseMonth(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	month, err := time.Parse(rates.MonthKey, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", value)
	}
	return month, nil
}

// incomeForMonth filters income records to the given month. Records
// with an unparseable date carry a zero time and match no month.
func incomeForMonth(records []model.IncomeTransaction, month time.Time) []model.IncomeTransaction {
	var out []model.IncomeTransaction
	for _, t := range records {
		if t.Date.Year() == month.Year() && t.Date.Month() == month.Month() {
			out = append(out, t)
		}
	}
	return out
}

// expensesForMonth filters expenses to the given month.
func expensesForMonth(records []model.Expense, month time.Time) []model.Expense {
	var out []model.Expense
	for _, e := range records {
		if e.Date.Year() == month.Year() && e.Date.Month() == month.Month() {
			out = append(out, e)
		}
	}
	return out
}
