// Package sheet provides the row-oriented persistence collaborator
// backing the ledger: a Google Sheets implementation and an in-memory
// mock for tests.
package sheet

import "context"

// Store is the remote row store the reconciliation engine writes
// through. Positions are 1-based and include the header row. The store
// offers no transactions and no partial-write atomicity: an update
// replaces a whole row, except that nil cells leave the existing
// remote cell untouched.
type Store interface {
	// Read returns every row of the named sheet, header included.
	Read(ctx context.Context, sheetName string) ([][]any, error)

	// Append adds rows at the end of the named sheet.
	Append(ctx context.Context, sheetName string, rows [][]any) error

	// Update replaces the row at position. nil cells are preserved.
	Update(ctx context.Context, sheetName string, position int, row []any) error

	// Delete removes the row at position, shifting later rows up.
	Delete(ctx context.Context, sheetName string, position int) error

	// SheetNames lists the sheets of the backing spreadsheet.
	SheetNames(ctx context.Context) ([]string, error)
}
