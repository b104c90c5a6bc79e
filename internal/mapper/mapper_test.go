package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/agency-ledger/internal/model"
)

func incomeRow() []any {
	return []any{
		"2024-03-15T09:30:00", // timestamp, ignored
		"noa",                 // agent
		"maya",                // client
		"acme ltd",            // payer
		3.6,                   // usd rate
		100.0,                 // amount usd
		0.0,                   // amount ils (derived)
		"tip",                 // income type
		"OnlyFans",            // platform
		"15/03/2024",          // date
		"21:30",               // hour
		"late shift",          // notes
		"",                    // verified
		"office",              // shift location
		"",                    // paid direct
		"",                    // cancelled
	}
}

func TestMapIncomeRow_DerivesILSFromUSD(t *testing.T) {
	got := MapIncomeRow(incomeRow(), 0)

	assert.Equal(t, 2, got.SourceRow)
	assert.Equal(t, "noa", got.AgentName)
	assert.Equal(t, "maya", got.ClientName)
	assert.Equal(t, "acme ltd", got.PayerName)
	assert.InDelta(t, 360, got.AmountILS, 0.001)
	assert.InDelta(t, 360, got.OriginalAmount, 0.001)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, model.StatusPending, got.Status())
}

func TestMapIncomeRow_ExplicitILSWins(t *testing.T) {
	row := incomeRow()
	row[6] = 500.0

	got := MapIncomeRow(row, 3)
	assert.InDelta(t, 500, got.AmountILS, 0.001)
	assert.Equal(t, 5, got.SourceRow)
}

func TestMapIncomeRow_DerivedILSRounds(t *testing.T) {
	row := incomeRow()
	row[4] = 3.55
	row[5] = 33.0

	got := MapIncomeRow(row, 0)
	// 33 * 3.55 = 117.15, rounded
	assert.InDelta(t, 117, got.AmountILS, 0.001)
}

func TestMapIncomeRow_CancelledZeroesAmounts(t *testing.T) {
	row := incomeRow()
	row[6] = 750.0
	row[15] = "V"

	got := MapIncomeRow(row, 0)
	assert.True(t, got.Cancelled)
	assert.Zero(t, got.AmountILS)
	assert.Zero(t, got.AmountUSD)
	assert.InDelta(t, 750, got.OriginalAmount, 0.001)
	assert.Equal(t, model.StatusCancelled, got.Status())
	assert.Zero(t, got.EffectiveILS())
}

func TestMapIncomeRow_MissingCellsDegradeToDefaults(t *testing.T) {
	got := MapIncomeRow([]any{}, 7)

	assert.Equal(t, 9, got.SourceRow)
	assert.Empty(t, got.AgentName)
	assert.Zero(t, got.AmountILS)
	assert.True(t, got.Date.IsZero())
	assert.False(t, got.Verified)
	assert.False(t, got.Cancelled)
}

func TestMapIncomeRow_TypeSniffing(t *testing.T) {
	tests := []struct {
		cell any
		name string
		want string
	}{
		{name: "plain text kept", cell: "tip", want: "tip"},
		{name: "numeric artifact dropped", cell: 1.0, want: ""},
		{name: "zero artifact dropped", cell: 0.0, want: ""},
		{name: "large number kept", cell: 45.0, want: "45"},
		{name: "stray date dropped", cell: "15/03/2024", want: ""},
		{name: "stray iso timestamp dropped", cell: "2024-03-15T09:30:00", want: ""},
		{name: "native date dropped", cell: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), want: ""},
		{name: "boolean dropped", cell: true, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := incomeRow()
			row[7] = tt.cell
			assert.Equal(t, tt.want, MapIncomeRow(row, 0).IncomeType)
		})
	}
}

func TestMapIncomeRow_DateCoercion(t *testing.T) {
	tests := []struct {
		cell any
		want time.Time
		name string
	}{
		{name: "dd/mm/yyyy", cell: "15/03/2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "two digit year", cell: "15/03/26", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "dotted separators", cell: "15.03.2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso date", cell: "2024-03-15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso timestamp", cell: "2024-03-15T09:30:00Z", want: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		{name: "spreadsheet serial", cell: 45366.0, want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "native date", cell: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", cell: "not a date", want: time.Time{}},
		{name: "absent", cell: nil, want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := incomeRow()
			row[9] = tt.cell
			got := MapIncomeRow(row, 0)
			assert.True(t, tt.want.Equal(got.Date), "got %v, want %v", got.Date, tt.want)
		})
	}
}

func TestMapIncomeRow_HourFromLeakedTimestamp(t *testing.T) {
	row := incomeRow()
	row[10] = "2024-03-15T21:45:00"

	assert.Equal(t, "21:45", MapIncomeRow(row, 0).Hour)
}

func TestMapIncomeRow_NonNumericAmountsCoerceToZero(t *testing.T) {
	row := incomeRow()
	row[4] = "n/a"
	row[5] = "pending"
	row[6] = "?"

	got := MapIncomeRow(row, 0)
	assert.Zero(t, got.USDRate)
	assert.Zero(t, got.AmountUSD)
	assert.Zero(t, got.AmountILS)
}

func TestIncomeRow_RoundTrip(t *testing.T) {
	orig := MapIncomeRow(incomeRow(), 4)
	orig.Verified = true
	orig.PaidToClientDirectly = true

	again := MapIncomeRow(IncomeRow(orig), 4)

	// Synthetic ids differ by design; everything else must survive.
	again.ID = orig.ID
	assert.Equal(t, orig, again)
}

func TestIncomeRow_RoundTripCancelled(t *testing.T) {
	row := incomeRow()
	row[6] = 420.0
	row[15] = "V"
	orig := MapIncomeRow(row, 4)

	again := MapIncomeRow(IncomeRow(orig), 4)
	again.ID = orig.ID
	assert.Equal(t, orig, again)
	assert.InDelta(t, 420, again.OriginalAmount, 0.001)
}

func TestApprovalRow_OnlyVerifiedCellSet(t *testing.T) {
	row := ApprovalRow()
	require.Len(t, row, IncomeRowWidth)

	for i, cell := range row {
		if i == 12 {
			assert.Equal(t, MarkerChecked, cell)
			continue
		}
		assert.Nil(t, cell, "cell %d must be a placeholder", i)
	}
}

func TestMapExpenseRow(t *testing.T) {
	row := []any{
		"01/02/2024", "invoice", "hosting", 240.5, "yes", "no",
		"Software", "Dor", "10:00", "rcpt-17", "", "", "automatic",
	}

	got := MapExpenseRow(row, 1)
	assert.Equal(t, 3, got.SourceRow)
	assert.Equal(t, "Software", got.Category)
	assert.Equal(t, "hosting", got.Description)
	assert.InDelta(t, 240.5, got.Amount, 0.001)
	assert.True(t, got.VATEligible)
	assert.False(t, got.TaxEligible)
	assert.Equal(t, "Dor", got.Payer)
	assert.Equal(t, "rcpt-17", got.ReceiptReference)
	assert.Equal(t, model.EntryAutomatic, got.EntryMethod)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestMapExpenseRow_EmptyRowIsManualEntry(t *testing.T) {
	got := MapExpenseRow(nil, 0)
	assert.Equal(t, model.EntryManual, got.EntryMethod)
	assert.Zero(t, got.Amount)
	assert.True(t, got.Date.IsZero())
}

func TestExpenseRow_RoundTrip(t *testing.T) {
	orig := model.Expense{
		ID:               model.NewRecordID(),
		SourceRow:        5,
		Date:             time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		DocumentType:     "invoice",
		Description:      "hosting",
		Amount:           240.5,
		VATEligible:      true,
		Category:         "Software",
		Payer:            "Dor",
		Hour:             "10:00",
		ReceiptReference: "rcpt-17",
		Classification:   "infra",
		EntryMethod:      model.EntryManual,
	}

	again := MapExpenseRow(ExpenseRow(orig), 3)
	again.ID = orig.ID
	again.SourceRow = orig.SourceRow
	assert.Equal(t, orig, again)
}
