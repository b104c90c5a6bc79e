package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/talentops/agency-ledger/internal/model"
)

func income(client, location string, ils float64) model.IncomeTransaction {
	return model.IncomeTransaction{
		ID:            model.NewRecordID(),
		ClientName:    client,
		ShiftLocation: location,
		AmountILS:     ils,
	}
}

func TestPayroll_OfficeRate(t *testing.T) {
	records := []model.IncomeTransaction{
		income("maya", model.LocationOffice, 600),
		income("maya", model.LocationOffice, 400),
	}

	split := Payroll(records)
	assert.InDelta(t, 1000, split.OfficeSales, 0.001)
	assert.InDelta(t, 170, split.OfficeSalary, 0.001)
	assert.InDelta(t, 170, split.Total, 0.001)
}

func TestPayroll_RemoteRate(t *testing.T) {
	records := []model.IncomeTransaction{
		income("maya", model.LocationRemote, 1000),
	}

	split := Payroll(records)
	assert.InDelta(t, 150, split.Total, 0.001)
}

func TestPayroll_UnknownLocationCountsAsRemote(t *testing.T) {
	records := []model.IncomeTransaction{
		income("maya", "", 200),
		income("maya", "couch", 300),
	}

	split := Payroll(records)
	assert.InDelta(t, 500, split.RemoteSales, 0.001)
	assert.Zero(t, split.OfficeSales)
}

func TestPayroll_CancelledContributesNothing(t *testing.T) {
	cancelled := income("maya", model.LocationOffice, 0)
	cancelled.Cancelled = true
	cancelled.OriginalAmount = 900

	split := Payroll([]model.IncomeTransaction{cancelled})
	assert.Zero(t, split.Total)
}

func TestPayroll_Empty(t *testing.T) {
	assert.Zero(t, Payroll(nil).Total)
}

func TestBalance(t *testing.T) {
	direct := income("maya", "", 300)
	direct.IncomeType = "maya"
	paidDirect := income("maya", "", 200)
	paidDirect.PaidToClientDirectly = true

	records := []model.IncomeTransaction{
		income("maya", "", 500),
		direct,
		paidDirect,
		income("other", "", 9999), // unrelated client
	}

	b := Balance(records, "maya", 40)
	assert.InDelta(t, 1000, b.TotalIncome, 0.001)
	assert.InDelta(t, 500, b.Direct, 0.001)
	assert.InDelta(t, 500, b.ThroughAgency, 0.001)
	assert.InDelta(t, 400, b.Entitlement, 0.001)
	assert.InDelta(t, -100, b.Balance, 0.001, "client owes the agency")
}

func TestBalance_ZeroPercentDefault(t *testing.T) {
	b := Balance([]model.IncomeTransaction{income("maya", "", 1000)}, "maya", 0)
	assert.Zero(t, b.Entitlement)
	assert.InDelta(t, 0, b.Balance, 0.001)
}

func TestBalance_Empty(t *testing.T) {
	b := Balance(nil, "maya", 30)
	assert.Zero(t, b.TotalIncome)
	assert.Zero(t, b.Balance)
}

func TestExpenseOffset(t *testing.T) {
	expenses := []model.Expense{
		{Payer: "Dor", Amount: 700},
		{Payer: "Dor", Amount: 500},
		{Payer: "Yurai", Amount: 800},
		{Payer: "someone else", Amount: 999},
	}

	o := ExpenseOffset(expenses, "Dor", "Yurai")
	assert.InDelta(t, 1200, o.PaidA, 0.001)
	assert.InDelta(t, 800, o.PaidB, 0.001)
	assert.InDelta(t, 200, o.Amount, 0.001)
	assert.Equal(t, "Yurai", o.Owes)
	assert.Equal(t, "Dor", o.OwedTo)
}

func TestExpenseOffset_Balanced(t *testing.T) {
	expenses := []model.Expense{
		{Payer: "Dor", Amount: 400},
		{Payer: "Yurai", Amount: 400},
	}

	o := ExpenseOffset(expenses, "Dor", "Yurai")
	assert.Zero(t, o.Amount)
}

func TestExpenseOffset_Empty(t *testing.T) {
	assert.Zero(t, ExpenseOffset(nil, "Dor", "Yurai").Amount)
}

func TestProfit(t *testing.T) {
	p := Profit(
		[]model.IncomeTransaction{income("maya", "", 5000)},
		[]model.Expense{{Amount: 1800}},
	)
	assert.InDelta(t, 3200, p.Profit, 0.001)
}

func TestProfit_Empty(t *testing.T) {
	assert.Zero(t, Profit(nil, nil).Profit)
}

func TestGrowthTargets(t *testing.T) {
	targets := GrowthTargets(3000, 30, 31)
	assert.InDelta(t, 100, targets.DailyAverage, 0.001)
	assert.InDelta(t, 3255, targets.Target1, 0.001)
	assert.InDelta(t, 3410, targets.Target2, 0.001)
	assert.InDelta(t, 3565, targets.Target3, 0.001)
}

func TestGrowthTargets_NoBaseline(t *testing.T) {
	assert.Equal(t, Targets{}, GrowthTargets(3000, 0, 31))
	assert.Equal(t, Targets{}, GrowthTargets(0, 30, 31))
	assert.Equal(t, Targets{}, GrowthTargets(3000, 30, 0))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, DaysInMonth(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, DaysInMonth(time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)))
}
