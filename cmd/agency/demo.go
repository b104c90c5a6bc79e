package main

import (
	"github.com/talentops/agency-ledger/internal/sheet"
)

// demoStore seeds an in-memory sheet store with a small realistic
// dataset so every command can be exercised without credentials.
func demoStore() *sheet.Mock {
	store := sheet.NewMock()

	store.Seed("sales_report", [][]any{
		{"timestamp", "agent", "client", "payer", "usd_rate", "amount_usd", "amount_ils",
			"income_type", "platform", "date", "hour", "notes", "verified", "location", "paid_direct", "cancelled"},
		{"", "noa", "maya", "subscriber", 3.65, 120.0, 0.0, "", "OnlyFans",
			"03/06/2025", "21:00", "", "V", "office", "", ""},
		{"", "noa", "maya", "subscriber", 3.65, 0.0, 800.0, "", "OnlyFans",
			"05/06/2025", "14:30", "tip", "", "remote", "", ""},
		{"", "dana", "roni", "subscriber", 3.65, 250.0, 0.0, "", "Fansly",
			"07/06/2025", "19:00", "", "", "office", "V", ""},
		{"", "dana", "roni", "subscriber", 3.65, 0.0, 400.0, "roni", "Fansly",
			"12/06/2025", "11:00", "paid on her own account", "V", "remote", "", ""},
		{"", "gal", "tamar", "subscriber", 3.6, 0.0, 1500.0, "", "OnlyFans",
			"15/06/2025", "20:00", "", "", "office", "", ""},
		{"", "gal", "tamar", "subscriber", 3.6, 0.0, 600.0, "", "OnlyFans",
			"18/06/2025", "22:00", "double booking", "", "remote", "", "V"},
		{"", "noa", "maya", "subscriber", 3.62, 90.0, 0.0, "", "OnlyFans",
			"10/05/2025", "16:00", "", "V", "office", "", ""},
	})

	store.Seed("expenses", [][]any{
		{"date", "doc_type", "description", "amount", "vat", "tax", "category",
			"payer", "hour", "receipt", "", "", "classification"},
		{"02/06/2025", "invoice", "studio rent", 4200.0, "yes", "yes", "Rent",
			"Dor", "", "R-1031", "", "", ""},
		{"04/06/2025", "invoice", "content hosting", 320.0, "yes", "no", "Software",
			"Yurai", "", "", "", "", "infra"},
		{"09/06/2025", "receipt", "ring lights", 780.0, "yes", "no", "Office Supplies",
			"Yurai", "", "R-1044", "", "", ""},
		{"20/06/2025", "invoice", "bookkeeping", 950.0, "no", "yes", "Accounting",
			"Dor", "", "", "", "", ""},
	})

	return store
}
