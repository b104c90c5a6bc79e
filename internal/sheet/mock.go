package sheet

import (
	"context"
	"fmt"
	"sync"

	"github.com/talentops/agency-ledger/internal/common"
)

// Call records a single mutation issued against the mock store.
type Call struct {
	Method   string
	Sheet    string
	Position int
	Rows     [][]any
}

// Mock is an in-memory Store for tests. It mimics the remote store's
// semantics: whole-row updates with nil cells preserved, and deletes
// that shift later rows up.
type Mock struct {
	mu     sync.Mutex
	sheets map[string][][]any
	calls  []Call

	ReadErr   error
	AppendErr error
	UpdateErr error
	DeleteErr error
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{sheets: make(map[string][][]any)}
}

// Seed replaces the named sheet's rows, header included.
func (m *Mock) Seed(sheetName string, rows [][]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheetName] = rows
}

// Rows returns the current content of the named sheet.
func (m *Mock) Rows(sheetName string) [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sheets[sheetName]
}

// Calls returns every recorded mutation in order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Read implements Store.
func (m *Mock) Read(_ context.Context, sheetName string) ([][]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	rows, ok := m.sheets[sheetName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrSheetNotFound, sheetName)
	}
	return rows, nil
}

// Append implements Store.
func (m *Mock) Append(_ context.Context, sheetName string, rows [][]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: "append", Sheet: sheetName, Rows: rows})
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.sheets[sheetName] = append(m.sheets[sheetName], rows...)
	return nil
}

// Update implements Store. nil cells leave the existing value alone.
func (m *Mock) Update(_ context.Context, sheetName string, position int, row []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: "update", Sheet: sheetName, Position: position, Rows: [][]any{row}})
	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	rows := m.sheets[sheetName]
	if position < 1 || position > len(rows) {
		return fmt.Errorf("row %d out of range for %s", position, sheetName)
	}

	existing := rows[position-1]
	width := len(existing)
	if len(row) > width {
		width = len(row)
	}
	merged := make([]any, width)
	copy(merged, existing)
	for i, cell := range row {
		if cell != nil {
			merged[i] = cell
		}
	}
	rows[position-1] = merged
	return nil
}

// Delete implements Store, shifting later rows up.
func (m *Mock) Delete(_ context.Context, sheetName string, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: "delete", Sheet: sheetName, Position: position})
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	rows := m.sheets[sheetName]
	if position < 1 || position > len(rows) {
		return fmt.Errorf("row %d out of range for %s", position, sheetName)
	}
	m.sheets[sheetName] = append(rows[:position-1], rows[position:]...)
	return nil
}

// SheetNames implements Store.
func (m *Mock) SheetNames(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.sheets))
	for name := range m.sheets {
		names = append(names, name)
	}
	return names, nil
}
