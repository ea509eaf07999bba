package services

import (
	"errors"
	"fmt"
	"time"

	"campus-backend/models"

	"gorm.io/gorm"
)

// LoanService drives the loan lifecycle. Stock is debited only when an
// admin approves a request and credited back on return; a pending request
// holds no claim on inventory, so the request-time availability check is
// an early rejection, not a reservation.
type LoanService struct {
	DB *gorm.DB
}

func NewLoanService(db *gorm.DB) *LoanService {
	return &LoanService{DB: db}
}

// Request creates a pending loan request. Availability is checked so
// hopeless requests fail fast, but no stock moves until approval.
func (s *LoanService) Request(userID, toolID uint, quantity, days int, observations string) (*models.Loan, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if days < 1 {
		return nil, fmt.Errorf("%w: loan days must be at least 1", ErrValidation)
	}

	var tool models.Tool
	if err := s.DB.First(&tool, toolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if quantity > tool.StockAvailable {
		return nil, ErrInsufficientStock
	}

	now := time.Now()
	loan := models.Loan{
		UserID:       userID,
		ToolID:       toolID,
		Quantity:     quantity,
		RequestedAt:  now,
		DueAt:        now.AddDate(0, 0, days),
		State:        models.LoanPending,
		Observations: observations,
	}

	if err := s.DB.Create(&loan).Error; err != nil {
		return nil, err
	}

	return s.Get(loan.ID)
}

// transitionLoan flips a loan between states as one conditional update.
// Racing writers cannot both claim the same transition: the loser matches
// zero rows and gets ErrInvalidState, which also rolls its transaction
// back.
func transitionLoan(tx *gorm.DB, loanID uint, from []string, updates map[string]interface{}) error {
	res := tx.Model(&models.Loan{}).
		Where("id = ? AND state IN ?", loanID, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}

// Approve fulfills a pending loan. The state flip and the stock debit are
// both conditional updates inside one transaction, so when two approvals
// race only one claims the pending state, and it still fails cleanly with
// ErrInsufficientStock when the units are gone.
func (s *LoanService) Approve(loanID uint) (*models.Loan, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := transitionLoan(tx, loanID, []string{models.LoanPending}, map[string]interface{}{
			"state":        models.LoanFulfilled,
			"fulfilled_at": time.Now(),
		}); err != nil {
			return err
		}

		return DebitStock(tx, loan.ToolID, loan.Quantity)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(loanID)
}

// Reject turns down a pending loan request. No stock was held, so only
// the state and the reason change.
func (s *LoanService) Reject(loanID uint, reason string) (*models.Loan, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		return transitionLoan(tx, loanID, []string{models.LoanPending}, map[string]interface{}{
			"state":            models.LoanRejected,
			"rejection_reason": reason,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Get(loanID)
}

// Return closes out a fulfilled (or overdue) loan and credits the units
// back to the tool. Returning an already-returned loan is refused before
// any stock moves.
func (s *LoanService) Return(loanID uint) (*models.Loan, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// The stored state is fulfilled or overdue while units are out;
		// either may be handed back.
		if err := transitionLoan(tx, loanID,
			[]string{models.LoanFulfilled, models.LoanOverdue},
			map[string]interface{}{
				"state":       models.LoanReturned,
				"returned_at": time.Now(),
			}); err != nil {
			return err
		}

		return CreditStock(tx, loan.ToolID, loan.Quantity)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(loanID)
}

// Cancel withdraws a pending request. Only the owner or an admin may
// cancel, and only while the request is still pending; no stock was ever
// debited, so none moves.
func (s *LoanService) Cancel(loanID, actorID uint, actorRole string) (*models.Loan, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if loan.UserID != actorID && actorRole != models.RoleAdmin {
			return ErrForbidden
		}

		return transitionLoan(tx, loanID, []string{models.LoanPending}, map[string]interface{}{
			"state": models.LoanCancelled,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Get(loanID)
}

// Get loads a loan with its user and tool, refreshing the overdue
// derivation.
func (s *LoanService) Get(loanID uint) (*models.Loan, error) {
	var loan models.Loan
	if err := s.DB.Preload("User").Preload("Tool").First(&loan, loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.refreshDerivedState(&loan)
	return &loan, nil
}

// List returns all loans, newest request first, optionally filtered by
// state.
func (s *LoanService) List(state string) ([]models.Loan, error) {
	q := s.DB.Preload("User").Preload("Tool").Order("requested_at DESC")
	if state != "" {
		q = q.Where("state = ?", state)
	}
	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		return nil, err
	}
	for i := range loans {
		s.refreshDerivedState(&loans[i])
	}
	return loans, nil
}

// ListByUser returns the loans requested by one user, newest first.
func (s *LoanService) ListByUser(userID uint) ([]models.Loan, error) {
	var loans []models.Loan
	if err := s.DB.Preload("Tool").
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	for i := range loans {
		s.refreshDerivedState(&loans[i])
	}
	return loans, nil
}

// HasActiveLoans reports whether any loan for the tool still holds stock.
func (s *LoanService) HasActiveLoans(toolID uint) (bool, error) {
	var n int64
	err := s.DB.Model(&models.Loan{}).
		Where("tool_id = ? AND state IN ?", toolID, []string{models.LoanFulfilled, models.LoanOverdue}).
		Count(&n).Error
	return n > 0, err
}

// refreshDerivedState persists the fulfilled-to-overdue transition the
// moment it is observed, so stored state and served state agree.
func (s *LoanService) refreshDerivedState(loan *models.Loan) {
	derived := models.DeriveState(loan, time.Now())
	if derived == loan.State {
		return
	}
	if err := s.DB.Model(&models.Loan{}).
		Where("id = ? AND state = ?", loan.ID, loan.State).
		Update("state", derived).Error; err == nil {
		loan.State = derived
	}
}
