package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/agency-ledger/internal/model"
)

func txn(id string, row int) model.IncomeTransaction {
	return model.IncomeTransaction{ID: id, SourceRow: row, AgentName: "noa", AmountILS: 100}
}

func TestStore_ReplaceAndLookup(t *testing.T) {
	s := NewStore()
	s.ReplaceIncome([]model.IncomeTransaction{txn("a", 2), txn("b", 3)})

	got, ok := s.Income("b")
	require.True(t, ok)
	assert.Equal(t, 3, got.SourceRow)
	assert.Equal(t, 2, s.IncomeCount())

	s.ReplaceIncome([]model.IncomeTransaction{txn("c", 2)})
	_, ok = s.Income("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.IncomeCount())
}

func TestStore_PutReplacesInPlace(t *testing.T) {
	s := NewStore()
	s.ReplaceIncome([]model.IncomeTransaction{txn("a", 2), txn("b", 3)})

	updated := txn("a", 2)
	updated.Verified = true
	s.PutIncome(updated)

	all := s.AllIncome()
	require.Len(t, all, 2)
	assert.True(t, all[0].Verified, "replacement keeps position")

	s.PutIncome(txn("new", 0))
	assert.Equal(t, 3, s.IncomeCount())
}

func TestStore_RemoveReindexes(t *testing.T) {
	s := NewStore()
	s.ReplaceIncome([]model.IncomeTransaction{txn("a", 2), txn("b", 3), txn("c", 4)})

	s.RemoveIncome("b")
	assert.Equal(t, 2, s.IncomeCount())

	got, ok := s.Income("c")
	require.True(t, ok)
	assert.Equal(t, 4, got.SourceRow)

	s.RemoveIncome("missing") // no-op
	assert.Equal(t, 2, s.IncomeCount())
}

func TestStore_ShiftIncomeRows(t *testing.T) {
	s := NewStore()
	local := txn("local", 0)
	s.ReplaceIncome([]model.IncomeTransaction{txn("a", 2), txn("b", 5), local})

	s.ShiftIncomeRows(3)

	a, _ := s.Income("a")
	b, _ := s.Income("b")
	l, _ := s.Income("local")
	assert.Equal(t, 2, a.SourceRow)
	assert.Equal(t, 4, b.SourceRow)
	assert.Equal(t, 0, l.SourceRow, "local-only records keep no back-reference")
}

func TestStore_Pending(t *testing.T) {
	s := NewStore()
	approved := txn("a", 2)
	approved.Verified = true
	cancelled := txn("b", 3)
	cancelled.Cancelled = true
	noAgent := txn("c", 4)
	noAgent.AgentName = ""

	s.ReplaceIncome([]model.IncomeTransaction{approved, cancelled, noAgent, txn("d", 5)})

	pending := s.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "d", pending[0].ID)
}

func TestStore_Expenses(t *testing.T) {
	s := NewStore()
	s.ReplaceExpenses([]model.Expense{{ID: "e1", Amount: 50}, {ID: "e2", Amount: 70}})

	s.RemoveExpense("e1")
	all := s.AllExpenses()
	require.Len(t, all, 1)
	assert.Equal(t, "e2", all[0].ID)

	s.PutExpense(model.Expense{ID: "e2", Amount: 90})
	got, ok := s.Expense("e2")
	require.True(t, ok)
	assert.InDelta(t, 90, got.Amount, 0.001)
}
