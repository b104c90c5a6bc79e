// Package recon orchestrates record state transitions against the
// remote sheet store and the local ledger cache. It is the single
// logical writer: the presentation layer issues one mutation at a time
// and awaits completion before the next.
//
// Commit ordering is deliberately asymmetric, mirroring how the books
// are actually run: financially consequential transitions (toggle-paid,
// cancel) commit locally only after the remote write is acknowledged,
// while approval and rejection are locally authoritative and commit
// even when the remote write fails (the failure is logged and the next
// full refresh converges). Records without a backing sheet row mutate
// local state only.
package recon

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/talentops/agency-ledger/internal/common"
	"github.com/talentops/agency-ledger/internal/ledger"
	"github.com/talentops/agency-ledger/internal/mapper"
	"github.com/talentops/agency-ledger/internal/model"
	"github.com/talentops/agency-ledger/internal/sheet"
)

// Config holds the sheet names and defaults the service writes with.
type Config struct {
	IncomeSheet    string
	ExpenseSheet   string
	DefaultUSDRate float64
}

// DefaultConfig returns the standard sheet layout.
func DefaultConfig() Config {
	return Config{
		IncomeSheet:    "sales_report",
		ExpenseSheet:   "expenses",
		DefaultUSDRate: 3.6,
	}
}

// Service reconciles the local ledger cache with the remote sheet
// store.
type Service struct {
	store  sheet.Store
	cache  *ledger.Store
	logger *slog.Logger
	config Config
}

// New creates a reconciliation service.
func New(store sheet.Store, cache *ledger.Store, config Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Ledger exposes the cache for read-only consumers (reports, CLI).
func (s *Service) Ledger() *ledger.Store {
	return s.cache
}

// Refresh replaces the whole cache from the remote store. The income
// sheet is required; a missing expense sheet degrades to an empty
// expense set so the rest of the ledger stays usable.
func (s *Service) Refresh(ctx context.Context) error {
	rows, err := s.store.Read(ctx, s.config.IncomeSheet)
	if err != nil {
		return fmt.Errorf("failed to read income sheet: %w", err)
	}

	income := make([]model.IncomeTransaction, 0, len(rows))
	for i, row := range skipHeader(rows) {
		t := mapper.MapIncomeRow(row, i)
		// Rows with no money are formatting artifacts.
		if t.OriginalAmount <= 0 && t.AmountUSD <= 0 {
			continue
		}
		income = append(income, t)
	}
	s.cache.ReplaceIncome(income)
	s.logger.Info("income refreshed", "rows", len(income))

	expRows, err := s.store.Read(ctx, s.config.ExpenseSheet)
	if err != nil {
		s.logger.Warn("expense sheet not available", "error", err)
		s.cache.ReplaceExpenses(nil)
		return nil
	}

	expenses := make([]model.Expense, 0, len(expRows))
	for i, row := range skipHeader(expRows) {
		expenses = append(expenses, mapper.MapExpenseRow(row, i))
	}
	s.cache.ReplaceExpenses(expenses)
	s.logger.Info("expenses refreshed", "rows", len(expenses))

	return nil
}

// SubmitIncome validates and records a new income transaction on
// behalf of an agent. The row is appended remotely first; the local
// copy carries no source row until the next full refresh assigns one.
func (s *Service) SubmitIncome(ctx context.Context, draft model.IncomeTransaction) (model.IncomeTransaction, error) {
	if draft.ClientName == "" {
		return model.IncomeTransaction{}, common.NewUserError("a client must be selected", common.ErrValidation)
	}
	if draft.AmountILS <= 0 && draft.AmountUSD <= 0 {
		return model.IncomeTransaction{}, common.NewUserError("an amount is required", common.ErrValidation)
	}

	t := draft
	t.ID = model.NewRecordID()
	t.SourceRow = 0
	t.Verified = false
	t.Cancelled = false
	if t.USDRate <= 0 {
		t.USDRate = s.config.DefaultUSDRate
	}
	if t.AmountILS <= 0 {
		t.AmountILS = math.Round(t.AmountUSD * t.USDRate)
	}
	t.OriginalAmount = t.AmountILS

	if err := s.store.Append(ctx, s.config.IncomeSheet, [][]any{mapper.IncomeRow(t)}); err != nil {
		return model.IncomeTransaction{}, fmt.Errorf("failed to submit income: %w", err)
	}

	s.cache.PutIncome(t)
	s.logger.Info("income submitted",
		"agent", t.AgentName, "client", t.ClientName, "amount_ils", t.AmountILS)
	return t, nil
}

// ToggleDirectPayment flips the paid-to-client flag. The remote store
// only takes whole-row writes, so the full row is reconstructed; the
// local flag changes only after the write is acknowledged.
func (s *Service) ToggleDirectPayment(ctx context.Context, id string) (model.IncomeTransaction, error) {
	t, ok := s.cache.Income(id)
	if !ok {
		return model.IncomeTransaction{}, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	updated := t
	updated.PaidToClientDirectly = !t.PaidToClientDirectly

	if updated.Remote() {
		if err := s.store.Update(ctx, s.config.IncomeSheet, updated.SourceRow, mapper.IncomeRow(updated)); err != nil {
			return model.IncomeTransaction{}, fmt.Errorf("failed to update direct-payment flag: %w", err)
		}
	}

	s.cache.PutIncome(updated)
	return updated, nil
}

// Cancel marks a transaction cancelled: the sheet row keeps every field
// plus the cancellation marker (the ILS cell carries the original
// amount for the audit trail), and the local amounts are zeroed.
// Cancelling an already-cancelled transaction is a no-op.
func (s *Service) Cancel(ctx context.Context, id string) (model.IncomeTransaction, error) {
	t, ok := s.cache.Income(id)
	if !ok {
		return model.IncomeTransaction{}, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if t.Cancelled {
		return t, nil
	}

	updated := t
	updated.Cancelled = true

	if updated.Remote() {
		if err := s.store.Update(ctx, s.config.IncomeSheet, updated.SourceRow, mapper.IncomeRow(updated)); err != nil {
			return model.IncomeTransaction{}, fmt.Errorf("failed to cancel transaction: %w", err)
		}
	}

	updated.AmountILS = 0
	updated.AmountUSD = 0
	s.cache.PutIncome(updated)
	s.logger.Info("transaction cancelled", "id", id, "original_amount", updated.OriginalAmount)
	return updated, nil
}

// Approve marks a pending transaction verified. Only the verification
// cell is written — every other cell goes up as a nil placeholder so
// the store leaves it untouched. Approval is locally authoritative: a
// failed remote write is logged and the local state commits anyway.
// Approving an approved transaction is a no-op.
func (s *Service) Approve(ctx context.Context, id string) (model.IncomeTransaction, error) {
	t, ok := s.cache.Income(id)
	if !ok {
		return model.IncomeTransaction{}, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if t.Verified {
		return t, nil
	}
	if t.Cancelled {
		return model.IncomeTransaction{}, common.NewUserError("cannot approve a cancelled transaction", common.ErrValidation)
	}

	if t.Remote() {
		if err := s.store.Update(ctx, s.config.IncomeSheet, t.SourceRow, mapper.ApprovalRow()); err != nil {
			s.logger.Error("remote approval write failed, committing locally",
				"id", id, "row", t.SourceRow, "error", err)
		}
	}

	t.Verified = true
	s.cache.PutIncome(t)
	return t, nil
}

// ApproveAllResult summarizes a bulk approval pass.
type ApproveAllResult struct {
	Approved       int
	RemoteFailures int
}

// ApproveAll approves every pending transaction sequentially. Remote
// failures never block the remaining approvals; every record ends up
// approved locally. onProgress, when non-nil, is called after each
// record for long-running progress display.
func (s *Service) ApproveAll(ctx context.Context, onProgress func(model.IncomeTransaction)) (ApproveAllResult, error) {
	var result ApproveAllResult
	for _, t := range s.cache.Pending() {
		if t.Remote() {
			if err := s.store.Update(ctx, s.config.IncomeSheet, t.SourceRow, mapper.ApprovalRow()); err != nil {
				s.logger.Error("remote approval write failed, committing locally",
					"id", t.ID, "row", t.SourceRow, "error", err)
				result.RemoteFailures++
			}
		}
		t.Verified = true
		s.cache.PutIncome(t)
		result.Approved++
		if onProgress != nil {
			onProgress(t)
		}
	}
	return result, nil
}

// Reject deletes a still-pending transaction: the remote row is
// removed and the local record dropped. The remote delete is
// best-effort — a failure is logged and the local removal proceeds.
func (s *Service) Reject(ctx context.Context, id string) error {
	t, ok := s.cache.Income(id)
	if !ok {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if t.Verified {
		return common.NewUserError("cannot reject an approved transaction", common.ErrValidation)
	}

	if t.Remote() {
		if err := s.store.Delete(ctx, s.config.IncomeSheet, t.SourceRow); err != nil {
			s.logger.Error("remote delete failed, removing locally anyway",
				"id", id, "row", t.SourceRow, "error", err)
		} else {
			// The sheet shifted every later row up by one.
			s.cache.ShiftIncomeRows(t.SourceRow)
		}
	}

	s.cache.RemoveIncome(id)
	s.logger.Info("transaction rejected", "id", id, "agent", t.AgentName)
	return nil
}

// AddExpense validates and records a new expense.
func (s *Service) AddExpense(ctx context.Context, draft model.Expense) (model.Expense, error) {
	if err := validateExpense(draft); err != nil {
		return model.Expense{}, err
	}

	e := draft
	e.ID = model.NewRecordID()
	e.SourceRow = 0
	if e.EntryMethod == "" {
		e.EntryMethod = model.EntryManual
	}

	if err := s.store.Append(ctx, s.config.ExpenseSheet, [][]any{mapper.ExpenseRow(e)}); err != nil {
		return model.Expense{}, fmt.Errorf("failed to add expense: %w", err)
	}

	s.cache.PutExpense(e)
	s.logger.Info("expense added", "category", e.Category, "amount", e.Amount, "payer", e.Payer)
	return e, nil
}

// UpdateExpense rewrites an expense row in full (classification
// re-tagging and field edits). Local-only records mutate the cache
// directly.
func (s *Service) UpdateExpense(ctx context.Context, e model.Expense) error {
	if _, ok := s.cache.Expense(e.ID); !ok {
		return fmt.Errorf("%w: expense %s", common.ErrNotFound, e.ID)
	}
	if err := validateExpense(e); err != nil {
		return err
	}

	if e.SourceRow > 0 {
		if err := s.store.Update(ctx, s.config.ExpenseSheet, e.SourceRow, mapper.ExpenseRow(e)); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
	}

	s.cache.PutExpense(e)
	return nil
}

// DeleteExpense removes an expense remotely and locally. Unlike income
// rejection this is confirm-first: a failed remote delete leaves the
// local record in place so the operator can retry.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	e, ok := s.cache.Expense(id)
	if !ok {
		return fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}

	if e.SourceRow > 0 {
		if err := s.store.Delete(ctx, s.config.ExpenseSheet, e.SourceRow); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		s.cache.ShiftExpenseRows(e.SourceRow)
	}

	s.cache.RemoveExpense(id)
	return nil
}

func validateExpense(e model.Expense) error {
	if e.Amount <= 0 {
		return common.NewUserError("expense amount must be positive", common.ErrValidation)
	}
	if !model.ValidCategory(e.Category) {
		return common.NewUserError(fmt.Sprintf("unknown expense category %q", e.Category), common.ErrValidation)
	}
	if e.Payer == "" {
		return common.NewUserError("a payer is required", common.ErrValidation)
	}
	return nil
}

func skipHeader(rows [][]any) [][]any {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}
