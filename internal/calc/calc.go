// Package calc implements the pure aggregate functions of the ledger:
// payroll splits, client commission balances, expense offsetting,
// profit and growth targets. Every function treats an empty input as a
// zero-valued result, never an error.
package calc

import (
	"math"
	"time"

	"github.com/talentops/agency-ledger/internal/model"
)

// Payroll percentages by shift location.
const (
	OfficeRate = 0.17
	RemoteRate = 0.15
)

// PayrollSplit is the salary owed to an agent for a set of income
// transactions, partitioned by shift location.
type PayrollSplit struct {
	OfficeSales  float64
	RemoteSales  float64
	OfficeSalary float64
	RemoteSalary float64
	Total        float64
}

// Payroll partitions income by shift location and applies the location
// rate. Records with an unrecognized location count as remote.
func Payroll(records []model.IncomeTransaction) PayrollSplit {
	var split PayrollSplit
	for _, t := range records {
		if t.ShiftLocation == model.LocationOffice {
			split.OfficeSales += t.EffectiveILS()
		} else {
			split.RemoteSales += t.EffectiveILS()
		}
	}
	split.OfficeSalary = split.OfficeSales * OfficeRate
	split.RemoteSalary = split.RemoteSales * RemoteRate
	split.Total = split.OfficeSalary + split.RemoteSalary
	return split
}

// ClientBalance is the commission settlement state for one client.
// A positive Balance means the agency owes the client; negative means
// the client owes the agency.
type ClientBalance struct {
	TotalIncome   float64
	Direct        float64 // paid straight to the client, outside the agency
	ThroughAgency float64
	Percent       float64
	Entitlement   float64
	Balance       float64
}

// Balance computes the commission balance for client across records.
// pct is the commission percentage for the period, typically read from
// the rate registry (0 when never set).
func Balance(records []model.IncomeTransaction, client string, pct float64) ClientBalance {
	b := ClientBalance{Percent: pct}
	for _, t := range records {
		if t.ClientName != client {
			continue
		}
		amount := t.EffectiveILS()
		b.TotalIncome += amount
		if t.IncomeType == client || t.PaidToClientDirectly {
			b.Direct += amount
		}
	}
	b.ThroughAgency = b.TotalIncome - b.Direct
	b.Entitlement = b.TotalIncome * pct / 100
	b.Balance = b.Entitlement - b.Direct
	return b
}

// Offset is the equal-split reconciliation of shared expenses between
// the two named cost-bearers: whoever paid more is owed half the
// difference by the other.
type Offset struct {
	Owes   string // the bearer who owes
	OwedTo string // the bearer who overpaid
	PaidA  float64
	PaidB  float64
	Amount float64
}

// ExpenseOffset sums the expenses each cost-bearer paid and reports the
// settling transfer. With equal totals the amount is zero and the
// direction defaults to "A owes B" for stable output.
func ExpenseOffset(expenses []model.Expense, bearerA, bearerB string) Offset {
	o := Offset{Owes: bearerA, OwedTo: bearerB}
	for _, e := range expenses {
		switch e.Payer {
		case bearerA:
			o.PaidA += e.Amount
		case bearerB:
			o.PaidB += e.Amount
		}
	}
	o.Amount = math.Abs(o.PaidA-o.PaidB) / 2
	if o.PaidA > o.PaidB {
		o.Owes, o.OwedTo = bearerB, bearerA
	}
	return o
}

// ProfitSummary is income minus expenses over a period slice, with no
// tax adjustment.
type ProfitSummary struct {
	Income   float64
	Expenses float64
	Profit   float64
}

// Profit totals effective income and expenses.
func Profit(income []model.IncomeTransaction, expenses []model.Expense) ProfitSummary {
	var p ProfitSummary
	for _, t := range income {
		p.Income += t.EffectiveILS()
	}
	for _, e := range expenses {
		p.Expenses += e.Amount
	}
	p.Profit = p.Income - p.Expenses
	return p
}

// Targets are the escalating income goals for the current period,
// derived from the prior period's daily average.
type Targets struct {
	DailyAverage float64
	Target1      float64 // +5%
	Target2      float64 // +10%
	Target3      float64 // +15%
}

// GrowthTargets projects the prior period's daily average over the
// current period at +5/+10/+15%. Without a baseline (zero prior total
// or day count) every target is zero.
func GrowthTargets(priorTotal float64, priorDays, currentDays int) Targets {
	if priorTotal <= 0 || priorDays <= 0 || currentDays <= 0 {
		return Targets{}
	}
	daily := priorTotal / float64(priorDays)
	days := float64(currentDays)
	return Targets{
		DailyAverage: daily,
		Target1:      daily * 1.05 * days,
		Target2:      daily * 1.10 * days,
		Target3:      daily * 1.15 * days,
	}
}

// DaysInMonth reports how many days the month containing t has, for
// prorating targets across periods of unequal length.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
