package services

import (
	"errors"
	"fmt"

	"campus-backend/models"

	"gorm.io/gorm"
)

// Stock operations accepted by AdjustStock.
const (
	StockIncrease = "increase"
	StockDecrease = "decrease"
)

// InventoryService owns the stock counters of tools. All mutations are
// single conditional statements, so concurrent writers serialize on the
// tool row and a failed precondition leaves the counters untouched.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// AdjustStock applies a manual admin stock correction. Increase bumps both
// counters; decrease removes units that are currently available, so it is
// refused when amount exceeds StockAvailable. Available never exceeds
// total afterwards.
func (s *InventoryService) AdjustStock(toolID uint, operation string, amount int) (*models.Tool, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var tool models.Tool
	if err := s.DB.First(&tool, toolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch operation {
	case StockIncrease:
		res := s.DB.Model(&models.Tool{}).
			Where("id = ?", toolID).
			Updates(map[string]interface{}{
				"stock_total":     gorm.Expr("stock_total + ?", amount),
				"stock_available": gorm.Expr("stock_available + ?", amount),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		// The tool may have been deleted since the read above.
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	case StockDecrease:
		// Removing units takes them out of circulation entirely, so only
		// currently-available units may be removed.
		res := s.DB.Model(&models.Tool{}).
			Where("id = ? AND stock_available >= ?", toolID, amount).
			Updates(map[string]interface{}{
				"stock_total":     gorm.Expr("stock_total - ?", amount),
				"stock_available": gorm.Expr("stock_available - ?", amount),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrInsufficientStock
		}
	default:
		return nil, fmt.Errorf("%w: operation must be %q or %q", ErrValidation, StockIncrease, StockDecrease)
	}

	if err := s.DB.First(&tool, toolID).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

// SetStockTotal rewrites a tool's total stock. The difference is applied
// to the available counter as well, floored at zero and capped at the new
// total, so lowering the total while units are out on loan cannot drive
// availability negative.
func (s *InventoryService) SetStockTotal(toolID uint, newTotal int) (*models.Tool, error) {
	if newTotal < 0 {
		return nil, fmt.Errorf("%w: stock total cannot be negative", ErrValidation)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var tool models.Tool
		if err := tx.First(&tool, toolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		diff := newTotal - tool.StockTotal
		available := tool.StockAvailable + diff
		if available < 0 {
			available = 0
		}
		if available > newTotal {
			available = newTotal
		}

		return tx.Model(&tool).Updates(map[string]interface{}{
			"stock_total":     newTotal,
			"stock_available": available,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	var tool models.Tool
	if err := s.DB.First(&tool, toolID).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

// DebitStock takes qty units out of a tool's available stock. The guard
// on stock_available makes the decrement atomic: under concurrent debits
// only writers that still fit succeed, the rest get ErrInsufficientStock.
func DebitStock(tx *gorm.DB, toolID uint, qty int) error {
	res := tx.Model(&models.Tool{}).
		Where("id = ? AND stock_available >= ?", toolID, qty).
		UpdateColumn("stock_available", gorm.Expr("stock_available - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// CreditStock returns qty units to a tool's available stock, clamped to
// the total so a double credit can never push availability past it.
func CreditStock(tx *gorm.DB, toolID uint, qty int) error {
	return tx.Exec(`
		UPDATE tools
		SET stock_available = CASE
			WHEN stock_available + ? > stock_total THEN stock_total
			ELSE stock_available + ?
		END
		WHERE id = ?
	`, qty, qty, toolID).Error
}
