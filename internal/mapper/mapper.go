// Package mapper converts raw positional sheet rows into typed ledger
// records and back. All knowledge of the fixed column layouts lives
// here; every function is pure and total — malformed cells degrade to
// zero values, never errors.
package mapper

import (
	"math"

	"github.com/talentops/agency-ledger/internal/model"
)

// MarkerChecked is the value a marker cell holds when set.
const MarkerChecked = "V"

// Income sheet column layout. Writes must always cover the full width
// or sibling cells are silently lost (the store replaces whole rows).
const (
	colTimestamp = iota
	colAgent
	colClient
	colPayer
	colUSDRate
	colAmountUSD
	colAmountILS
	colIncomeType
	colPlatform
	colDate
	colHour
	colNotes
	colVerified
	colLocation
	colPaidDirect
	colCancelled

	// IncomeRowWidth is the full width of an income row.
	IncomeRowWidth = 16
)

// Expense sheet column layout.
const (
	expColDate = iota
	expColDocType
	expColDescription
	expColAmount
	expColVAT
	expColTax
	expColCategory
	expColPayer
	expColHour
	expColReceipt
	expColSpare1
	expColSpare2
	expColClassification

	// ExpenseRowWidth is the full width of an expense row.
	ExpenseRowWidth = 13
)

// MapIncomeRow converts one positional income row into a canonical
// transaction. seq is the 0-based position below the header, so the
// backing sheet row is seq+2.
func MapIncomeRow(row []any, seq int) model.IncomeTransaction {
	cancelled := cellChecked(row, colCancelled)

	rate := cellFloat(row, colUSDRate)
	rawUSD := cellFloat(row, colAmountUSD)
	rawILS := cellFloat(row, colAmountILS)

	// The ILS amount is canonical; derive it from USD when absent.
	ils := rawILS
	if ils <= 0 && rawUSD > 0 && rate > 0 {
		ils = math.Round(rawUSD * rate)
	}

	t := model.IncomeTransaction{
		ID:                   model.NewRecordID(),
		SourceRow:            seq + 2,
		AgentName:            cellString(row, colAgent),
		ClientName:           cellString(row, colClient),
		PayerName:            cellString(row, colPayer),
		USDRate:              rate,
		AmountUSD:            rawUSD,
		AmountILS:            ils,
		OriginalAmount:       ils,
		IncomeType:           cellFreeText(row, colIncomeType),
		Platform:             cellString(row, colPlatform),
		Date:                 cellDate(row, colDate),
		Hour:                 cellHour(row, colHour),
		Notes:                cellString(row, colNotes),
		Verified:             cellChecked(row, colVerified),
		ShiftLocation:        cellString(row, colLocation),
		PaidToClientDirectly: cellChecked(row, colPaidDirect),
		Cancelled:            cancelled,
	}

	// A cancelled transaction contributes nothing; the original amount
	// survives for audit display.
	if cancelled {
		t.AmountUSD = 0
		t.AmountILS = 0
	}

	return t
}

// IncomeRow serializes a transaction back into the full 16-column row.
// The timestamp placeholder stays empty; the sheet owns it. For a
// cancelled record the ILS cell carries the original amount so that
// re-mapping reproduces the audit value.
func IncomeRow(t model.IncomeTransaction) []any {
	ils := t.AmountILS
	if t.Cancelled {
		ils = t.OriginalAmount
	}

	row := make([]any, IncomeRowWidth)
	row[colTimestamp] = ""
	row[colAgent] = t.AgentName
	row[colClient] = t.ClientName
	row[colPayer] = t.PayerName
	row[colUSDRate] = t.USDRate
	row[colAmountUSD] = t.AmountUSD
	row[colAmountILS] = ils
	row[colIncomeType] = t.IncomeType
	row[colPlatform] = t.Platform
	row[colDate] = FormatDate(t.Date)
	row[colHour] = t.Hour
	row[colNotes] = t.Notes
	row[colVerified] = marker(t.Verified)
	row[colLocation] = t.ShiftLocation
	row[colPaidDirect] = marker(t.PaidToClientDirectly)
	row[colCancelled] = marker(t.Cancelled)
	return row
}

// ApprovalRow builds the sparse update that flips only the verified
// marker. Every other cell is nil so the store leaves it untouched;
// the row must still be submitted at full width.
func ApprovalRow() []any {
	row := make([]any, IncomeRowWidth)
	row[colVerified] = MarkerChecked
	return row
}

// MapExpenseRow converts one positional expense row into a canonical
// expense. seq is the 0-based position below the header.
func MapExpenseRow(row []any, seq int) model.Expense {
	classification := cellString(row, expColClassification)
	entry := model.EntryManual
	if classification == model.EntryAutomatic {
		entry = model.EntryAutomatic
	}

	return model.Expense{
		ID:               model.NewRecordID(),
		SourceRow:        seq + 2,
		Date:             cellDate(row, expColDate),
		DocumentType:     cellString(row, expColDocType),
		Description:      cellString(row, expColDescription),
		Amount:           cellFloat(row, expColAmount),
		VATEligible:      cellString(row, expColVAT) == "yes",
		TaxEligible:      cellString(row, expColTax) == "yes",
		Category:         cellString(row, expColCategory),
		Payer:            cellString(row, expColPayer),
		Hour:             cellString(row, expColHour),
		ReceiptReference: cellString(row, expColReceipt),
		Classification:   classification,
		EntryMethod:      entry,
	}
}

// ExpenseRow serializes an expense back into the full 13-column row.
func ExpenseRow(e model.Expense) []any {
	docType := e.DocumentType
	if docType == "" {
		docType = "invoice"
	}

	row := make([]any, ExpenseRowWidth)
	row[expColDate] = FormatDate(e.Date)
	row[expColDocType] = docType
	row[expColDescription] = e.Description
	row[expColAmount] = e.Amount
	row[expColVAT] = yesNo(e.VATEligible)
	row[expColTax] = yesNo(e.TaxEligible)
	row[expColCategory] = e.Category
	row[expColPayer] = e.Payer
	row[expColHour] = e.Hour
	row[expColReceipt] = e.ReceiptReference
	row[expColSpare1] = ""
	row[expColSpare2] = ""
	row[expColClassification] = e.Classification
	return row
}

func marker(set bool) string {
	if set {
		return MarkerChecked
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
