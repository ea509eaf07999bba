package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveState(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)
	returned := now.Add(-time.Hour)

	cases := []struct {
		name string
		loan Loan
		want string
	}{
		{"pending stays pending past due", Loan{State: LoanPending, DueAt: past}, LoanPending},
		{"fulfilled before due", Loan{State: LoanFulfilled, DueAt: future}, LoanFulfilled},
		{"fulfilled past due", Loan{State: LoanFulfilled, DueAt: past}, LoanOverdue},
		{"returned past due stays returned", Loan{State: LoanReturned, DueAt: past, ReturnedAt: &returned}, LoanReturned},
		{"fulfilled past due but already handed back", Loan{State: LoanFulfilled, DueAt: past, ReturnedAt: &returned}, LoanFulfilled},
		{"due exactly now is not yet overdue", Loan{State: LoanFulfilled, DueAt: now}, LoanFulfilled},
		{"rejected unaffected", Loan{State: LoanRejected, DueAt: past}, LoanRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveState(&tc.loan, now))
		})
	}
}

func TestTerminalLoanState(t *testing.T) {
	assert.True(t, TerminalLoanState(LoanRejected))
	assert.True(t, TerminalLoanState(LoanCancelled))
	assert.True(t, TerminalLoanState(LoanReturned))
	assert.False(t, TerminalLoanState(LoanPending))
	assert.False(t, TerminalLoanState(LoanFulfilled))
	assert.False(t, TerminalLoanState(LoanOverdue))
}

func TestValidTimeOfDay(t *testing.T) {
	for _, s := range []string{"00:00", "09:30", "13:05", "23:59"} {
		assert.True(t, ValidTimeOfDay(s), s)
	}
	for _, s := range []string{"24:00", "9:30", "09:60", "0930", "09:3", "", "noon"} {
		assert.False(t, ValidTimeOfDay(s), s)
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-09-15"))
	assert.False(t, ValidDate("2026-02-30"))
	assert.False(t, ValidDate("15/09/2026"))
	assert.False(t, ValidDate(""))
}
