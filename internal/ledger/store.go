// Package ledger holds the in-memory cache of mapped records for the
// active dataset. The store performs no locking of its own: mutations
// are serialized by the reconciliation service, which is the single
// logical writer.
package ledger

import (
	"github.com/talentops/agency-ledger/internal/model"
)

// collection is an ordered record set with O(1) id lookup.
type collection[T any] struct {
	index map[string]int
	items []T
	key   func(T) string
}

func newCollection[T any](key func(T) string) *collection[T] {
	return &collection[T]{
		index: make(map[string]int),
		key:   key,
	}
}

// ReplaceAll swaps the whole collection, typically after a full fetch.
func (c *collection[T]) ReplaceAll(items []T) {
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.index = make(map[string]int, len(items))
	for i, item := range items {
		c.index[c.key(item)] = i
	}
}

// Put replaces the record with the same id, or appends a new one.
func (c *collection[T]) Put(item T) {
	id := c.key(item)
	if i, ok := c.index[id]; ok {
		c.items[i] = item
		return
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
}

// Remove drops a record by id. Unknown ids are a no-op.
func (c *collection[T]) Remove(id string) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.key(c.items[j])] = j
	}
}

// Get looks a record up by id.
func (c *collection[T]) Get(id string) (T, bool) {
	if i, ok := c.index[id]; ok {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// All returns a copy of the records in insertion order. Presentation
// imposes its own sort.
func (c *collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) Len() int {
	return len(c.items)
}

// Store caches the income and expense records of the active dataset.
type Store struct {
	income   *collection[model.IncomeTransaction]
	expenses *collection[model.Expense]
}

// NewStore returns an empty ledger store.
func NewStore() *Store {
	return &Store{
		income:   newCollection(func(t model.IncomeTransaction) string { return t.ID }),
		expenses: newCollection(func(e model.Expense) string { return e.ID }),
	}
}

// ReplaceIncome swaps the whole income dataset after a full fetch.
func (s *Store) ReplaceIncome(items []model.IncomeTransaction) { s.income.ReplaceAll(items) }

// PutIncome inserts or replaces a single income transaction.
func (s *Store) PutIncome(t model.IncomeTransaction) { s.income.Put(t) }

// RemoveIncome drops an income transaction by id.
func (s *Store) RemoveIncome(id string) { s.income.Remove(id) }

// Income looks up a single income transaction.
func (s *Store) Income(id string) (model.IncomeTransaction, bool) { return s.income.Get(id) }

// AllIncome returns every cached income transaction.
func (s *Store) AllIncome() []model.IncomeTransaction { return s.income.All() }

// IncomeCount reports the number of cached income transactions.
func (s *Store) IncomeCount() int { return s.income.Len() }

// ReplaceExpenses swaps the whole expense dataset after a full fetch.
func (s *Store) ReplaceExpenses(items []model.Expense) { s.expenses.ReplaceAll(items) }

// PutExpense inserts or replaces a single expense.
func (s *Store) PutExpense(e model.Expense) { s.expenses.Put(e) }

// RemoveExpense drops an expense by id.
func (s *Store) RemoveExpense(id string) { s.expenses.Remove(id) }

// Expense looks up a single expense.
func (s *Store) Expense(id string) (model.Expense, bool) { return s.expenses.Get(id) }

// AllExpenses returns every cached expense.
func (s *Store) AllExpenses() []model.Expense { return s.expenses.All() }

// ShiftIncomeRows adjusts the remote back-references after a sheet row
// was deleted: every record below the removed position moves up one.
func (s *Store) ShiftIncomeRows(deletedRow int) {
	for i, t := range s.income.items {
		if t.SourceRow > deletedRow {
			t.SourceRow--
			s.income.items[i] = t
		}
	}
}

// ShiftExpenseRows is the expense-side counterpart of ShiftIncomeRows.
func (s *Store) ShiftExpenseRows(deletedRow int) {
	for i, e := range s.expenses.items {
		if e.SourceRow > deletedRow {
			e.SourceRow--
			s.expenses.items[i] = e
		}
	}
}

// Pending returns income transactions awaiting approval, in order.
// Records without an agent are ingestion artifacts and are skipped.
func (s *Store) Pending() []model.IncomeTransaction {
	var out []model.IncomeTransaction
	for _, t := range s.income.items {
		if t.Status() == model.StatusPending && t.AgentName != "" {
			out = append(out, t)
		}
	}
	return out
}
