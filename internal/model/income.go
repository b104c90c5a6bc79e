// Package model defines the core record types for the agency ledger.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift locations recognized by the payroll split. Anything else is
// treated as remote.
const (
	LocationOffice = "office"
	LocationRemote = "remote"
)

// Status describes where an income transaction sits in its lifecycle.
type Status string

// Income transaction lifecycle states.
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

// IncomeTransaction is the canonical form of one income row.
type IncomeTransaction struct {
	Date                 time.Time
	ID                   string
	AgentName            string // chatter who recorded the sale
	ClientName           string // model the income is attributed to
	PayerName            string // optional third-party payer
	IncomeType           string
	Platform             string
	ShiftLocation        string
	Hour                 string // clock time "HH:MM", optional
	Notes                string
	USDRate              float64
	AmountUSD            float64
	AmountILS            float64
	OriginalAmount       float64 // pre-cancellation ILS value, kept for audit display
	SourceRow            int     // 1-based sheet position; 0 for local-only records
	Verified             bool
	PaidToClientDirectly bool
	Cancelled            bool
}

// NewRecordID returns a fresh synthetic id, stable for the session.
func NewRecordID() string {
	return uuid.NewString()
}

// Remote reports whether the record is backed by a sheet row.
func (t *IncomeTransaction) Remote() bool {
	return t.SourceRow > 0
}

// Status derives the lifecycle state from the workflow flags.
func (t *IncomeTransaction) Status() Status {
	switch {
	case t.Cancelled:
		return StatusCancelled
	case t.Verified:
		return StatusApproved
	default:
		return StatusPending
	}
}

// EffectiveILS is the amount a transaction contributes to aggregates.
// Cancelled transactions contribute nothing.
func (t *IncomeTransaction) EffectiveILS() float64 {
	if t.Cancelled {
		return 0
	}
	return t.AmountILS
}
