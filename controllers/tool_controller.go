package controllers

import (
	"errors"
	"strings"

	"campus-backend/models"
	"campus-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ToolController exposes the tool catalog and the stock endpoint. Stock
// mutation goes through the inventory service; everything else is plain
// CRUD.
type ToolController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
	Loans     *services.LoanService
}

func NewToolController(db *gorm.DB, inventory *services.InventoryService, loans *services.LoanService) *ToolController {
	return &ToolController{DB: db, Inventory: inventory, Loans: loans}
}

// CreateToolRequest is the admin tool-creation payload. All stock starts
// available.
type CreateToolRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	StockTotal  int    `json:"stock_total"`
	Location    string `json:"location"`
}

// UpdateToolRequest is a partial update. Changing StockTotal shifts the
// available counter by the same difference, within the ledger's bounds.
type UpdateToolRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	StockTotal  *int    `json:"stock_total"`
	Location    *string `json:"location"`
}

// StockRequest is the manual stock adjustment payload.
type StockRequest struct {
	Operation string `json:"operation"`
	Amount    int    `json:"amount"`
}

// List returns the full tool catalog ordered by name.
func (tc *ToolController) List(c *fiber.Ctx) error {
	var tools []models.Tool
	if err := tc.DB.Order("name ASC").Find(&tools).Error; err != nil {
		return serviceError(c, err, "could not list tools")
	}
	return ok(c, 200, "", tools)
}

// Get returns one tool by id.
func (tc *ToolController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid tool id")
	}

	var tool models.Tool
	if err := tc.DB.First(&tool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "tool not found")
		}
		return serviceError(c, err, "could not load tool")
	}
	return ok(c, 200, "", tool)
}

// Create adds a tool to the catalog.
func (tc *ToolController) Create(c *fiber.Ctx) error {
	var req CreateToolRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" {
		return fail(c, 400, "name and category are required")
	}
	if req.StockTotal < 0 {
		return fail(c, 400, "stock total cannot be negative")
	}

	tool := models.Tool{
		Name:           strings.TrimSpace(req.Name),
		Category:       strings.TrimSpace(req.Category),
		Description:    req.Description,
		StockTotal:     req.StockTotal,
		StockAvailable: req.StockTotal,
		Location:       req.Location,
	}
	if err := tc.DB.Create(&tool).Error; err != nil {
		return serviceError(c, err, "could not create tool")
	}

	return ok(c, 201, "tool created", tool)
}

// Update applies a partial update to one tool.
func (tc *ToolController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid tool id")
	}

	var req UpdateToolRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	var tool models.Tool
	if err := tc.DB.First(&tool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "tool not found")
		}
		return serviceError(c, err, "could not load tool")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return fail(c, 400, "name cannot be empty")
		}
		tool.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			return fail(c, 400, "category cannot be empty")
		}
		tool.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.Location != nil {
		tool.Location = *req.Location
	}

	if err := tc.DB.Save(&tool).Error; err != nil {
		return serviceError(c, err, "could not update tool")
	}

	if req.StockTotal != nil {
		updated, err := tc.Inventory.SetStockTotal(tool.ID, *req.StockTotal)
		if err != nil {
			return serviceError(c, err, "could not update stock")
		}
		tool = *updated
	}

	return ok(c, 200, "tool updated", tool)
}

// Delete removes a tool, unless a loan still holds its units.
func (tc *ToolController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid tool id")
	}

	active, err := tc.Loans.HasActiveLoans(id)
	if err != nil {
		return serviceError(c, err, "could not delete tool")
	}
	if active {
		return fail(c, 400, "tool has active loans and cannot be deleted")
	}

	res := tc.DB.Delete(&models.Tool{}, id)
	if res.Error != nil {
		return serviceError(c, res.Error, "could not delete tool")
	}
	if res.RowsAffected == 0 {
		return fail(c, 404, "tool not found")
	}

	return ok(c, 200, "tool deleted", nil)
}

// ManageStock handles PATCH /tools/:id/stock.
func (tc *ToolController) ManageStock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid tool id")
	}

	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	tool, err := tc.Inventory.AdjustStock(id, req.Operation, req.Amount)
	if err != nil {
		return serviceError(c, err, "could not adjust stock")
	}

	return ok(c, 200, "stock "+req.Operation+"d", tool)
}
