package controllers

import (
	"campus-backend/services"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// LoanController is the HTTP surface of the loan workflow. Decisions made
// here are pushed to the requester through the notification hub.
type LoanController struct {
	Loans *services.LoanService
	Hub   *services.NotifyHub
}

func NewLoanController(loans *services.LoanService, hub *services.NotifyHub) *LoanController {
	return &LoanController{Loans: loans, Hub: hub}
}

// CreateLoanRequest is the loan request payload.
type CreateLoanRequest struct {
	ToolID       uint   `json:"tool_id"`
	Quantity     int    `json:"quantity"`
	DaysToLoan   int    `json:"days_to_loan"`
	Observations string `json:"observations"`
}

// RejectLoanRequest carries the rejection reason.
type RejectLoanRequest struct {
	Reason string `json:"reason"`
}

// Create files a loan request on behalf of the caller.
func (lc *LoanController) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if req.ToolID == 0 || req.Quantity == 0 || req.DaysToLoan == 0 {
		return fail(c, 400, "tool_id, quantity and days_to_loan are required")
	}

	loan, err := lc.Loans.Request(utils.UserID(c), req.ToolID, req.Quantity, req.DaysToLoan, req.Observations)
	if err != nil {
		return serviceError(c, err, "could not create loan request")
	}

	return ok(c, 201, "loan request created, awaiting approval", loan)
}

// List returns all loans (admin), optionally filtered by ?state=.
func (lc *LoanController) List(c *fiber.Ctx) error {
	loans, err := lc.Loans.List(c.Query("state"))
	if err != nil {
		return serviceError(c, err, "could not list loans")
	}
	return ok(c, 200, "", loans)
}

// Mine returns the caller's own loans.
func (lc *LoanController) Mine(c *fiber.Ctx) error {
	loans, err := lc.Loans.ListByUser(utils.UserID(c))
	if err != nil {
		return serviceError(c, err, "could not list loans")
	}
	return ok(c, 200, "", loans)
}

// Approve fulfills a pending loan and debits the stock.
func (lc *LoanController) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid loan id")
	}

	loan, err := lc.Loans.Approve(id)
	if err != nil {
		return serviceError(c, err, "could not approve loan")
	}

	lc.Hub.NotifyLoanDecision(loan)
	return ok(c, 200, "loan approved and handed out", loan)
}

// Reject turns down a pending loan.
func (lc *LoanController) Reject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid loan id")
	}

	var req RejectLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	loan, err := lc.Loans.Reject(id, req.Reason)
	if err != nil {
		return serviceError(c, err, "could not reject loan")
	}

	lc.Hub.NotifyLoanDecision(loan)
	return ok(c, 200, "loan rejected", loan)
}

// Return closes a fulfilled or overdue loan and credits the stock back.
func (lc *LoanController) Return(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid loan id")
	}

	loan, err := lc.Loans.Return(id)
	if err != nil {
		return serviceError(c, err, "could not return loan")
	}

	return ok(c, 200, "loan returned", loan)
}

// Cancel withdraws a pending loan; owner or admin only.
func (lc *LoanController) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid loan id")
	}

	loan, err := lc.Loans.Cancel(id, utils.UserID(c), utils.UserRole(c))
	if err != nil {
		return serviceError(c, err, "could not cancel loan")
	}

	return ok(c, 200, "loan cancelled", loan)
}
