package model

import "time"

// Expense entry methods.
const (
	EntryManual    = "manual"
	EntryAutomatic = "automatic"
)

// ExpenseCategories is the fixed set of allowed expense categories.
var ExpenseCategories = []string{
	"Accounting",
	"Bank Fees",
	"Directors Pay",
	"Financing Costs",
	"Insurance",
	"Rent",
	"Electricity",
	"Water",
	"Property Tax",
	"Site Costs",
	"Marketing",
	"Office Supplies",
	"Software",
	"Staffing",
	"Vehicle & Fuel",
	"Online Orders",
	"Clothing",
	"Other",
}

// Expense is the canonical form of one expense row.
type Expense struct {
	Date             time.Time
	ID               string
	Category         string
	Description      string
	DocumentType     string
	Payer            string // one of the two named cost-bearers
	Hour             string
	Classification   string // secondary free-text tag, distinct from Category
	EntryMethod      string // manual vs automatic provenance
	ReceiptReference string
	Amount           float64
	SourceRow        int
	VATEligible      bool
	TaxEligible      bool
}

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}
