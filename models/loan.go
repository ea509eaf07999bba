package models

import "time"

// Loan lifecycle states. A pending request can be fulfilled, rejected or
// cancelled; a fulfilled loan can only be returned. Overdue is derived
// from the due date, never set by a client.
const (
	LoanPending   = "pending"
	LoanFulfilled = "fulfilled"
	LoanRejected  = "rejected"
	LoanCancelled = "cancelled"
	LoanReturned  = "returned"
	LoanOverdue   = "overdue"
)

// Loan is a borrowing transaction against a tool's available stock. While
// the loan is fulfilled (or overdue) it owns Quantity units of the tool's
// StockAvailable; the units come back when the loan is returned.
type Loan struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	ToolID          uint       `json:"tool_id" gorm:"index;not null"`
	Quantity        int        `json:"quantity" gorm:"not null"`
	RequestedAt     time.Time  `json:"requested_at" gorm:"not null"`
	FulfilledAt     *time.Time `json:"fulfilled_at,omitempty"`
	DueAt           time.Time  `json:"due_at" gorm:"not null"`
	ReturnedAt      *time.Time `json:"returned_at,omitempty"`
	State           string     `json:"state" gorm:"index;not null;default:'pending'"`
	RejectionReason string     `json:"rejection_reason" gorm:"default:''"`
	Observations    string     `json:"observations" gorm:"default:''"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Tool *Tool `json:"tool,omitempty" gorm:"foreignKey:ToolID"`
}

// DeriveState computes the display state of a loan at a given instant.
// A fulfilled loan past its due date and not yet returned is overdue.
// Pure with respect to the loan; callers persist the transition if they
// want it durable.
func DeriveState(l *Loan, now time.Time) string {
	if l.State == LoanFulfilled && l.ReturnedAt == nil && l.DueAt.Before(now) {
		return LoanOverdue
	}
	return l.State
}

// TerminalLoanState reports whether state admits no further transitions.
func TerminalLoanState(state string) bool {
	switch state {
	case LoanRejected, LoanCancelled, LoanReturned:
		return true
	}
	return false
}
