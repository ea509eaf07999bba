package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"campus-backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createTool(db *gorm.DB, name string, stock int) models.Tool {
	tool := models.Tool{
		Name:           name,
		Category:       "hand tools",
		StockTotal:     stock,
		StockAvailable: stock,
		Location:       "warehouse",
	}
	db.Create(&tool)
	return tool
}

func reloadTool(t *testing.T, db *gorm.DB, id uint) models.Tool {
	t.Helper()
	var tool models.Tool
	if err := db.First(&tool, id).Error; err != nil {
		t.Fatalf("reload tool %d: %v", id, err)
	}
	return tool
}

func TestLoanLifecycleRestoresStock(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)
	tool := createTool(db, "Multimeter", 5)

	// Request: pending, no stock movement yet.
	resp := doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id":      tool.ID,
		"quantity":     3,
		"days_to_loan": 7,
	}, tokenFor(student))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.True(t, body["success"].(bool))
	loan := body["data"].(map[string]interface{})
	assert.Equal(t, models.LoanPending, loan["state"])
	loanID := uint(loan["id"].(float64))

	assert.Equal(t, 5, reloadTool(t, db, tool.ID).StockAvailable)

	// Approve: stock debited, loan fulfilled.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/approve", loanID), nil, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, models.LoanFulfilled, body["data"].(map[string]interface{})["state"])
	assert.NotNil(t, body["data"].(map[string]interface{})["fulfilled_at"])
	assert.Equal(t, 2, reloadTool(t, db, tool.ID).StockAvailable)

	// Return: stock credited back in full.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/return", loanID), nil, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, models.LoanReturned, body["data"].(map[string]interface{})["state"])

	final := reloadTool(t, db, tool.ID)
	assert.Equal(t, 5, final.StockAvailable)
	assert.Equal(t, 5, final.StockTotal)
}

func TestReturnAlreadyReturnedLoan(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)
	tool := createTool(db, "Soldering iron", 4)

	resp := doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 2, "days_to_loan": 3,
	}, tokenFor(student))
	loanID := uint(decodeBody(t, resp)["data"].(map[string]interface{})["id"].(float64))

	doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/approve", loanID), nil, tokenFor(admin))
	doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/return", loanID), nil, tokenFor(admin))
	assert.Equal(t, 4, reloadTool(t, db, tool.ID).StockAvailable)

	// Second return is refused and must not credit stock again.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/return", loanID), nil, tokenFor(admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 4, reloadTool(t, db, tool.ID).StockAvailable)
}

func TestRequestExceedingAvailability(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)
	tool := createTool(db, "Oscilloscope", 2)

	resp := doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 3, "days_to_loan": 1,
	}, tokenFor(student))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, decodeBody(t, resp)["success"].(bool))
}

func TestApproveAfterAvailabilityDropped(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	alice := createUser(db, "Alice", "alice@campus.test", models.RoleStudent)
	bob := createUser(db, "Bob", "bob@campus.test", models.RoleStudent)
	tool := createTool(db, "Drill", 5)

	// Both requests pass the optimistic check while 5 units are free.
	resp := doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 4, "days_to_loan": 2,
	}, tokenFor(alice))
	loanA := uint(decodeBody(t, resp)["data"].(map[string]interface{})["id"].(float64))

	resp = doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 4, "days_to_loan": 2,
	}, tokenFor(bob))
	loanB := uint(decodeBody(t, resp)["data"].(map[string]interface{})["id"].(float64))

	// First approval wins.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/approve", loanA), nil, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, reloadTool(t, db, tool.ID).StockAvailable)

	// Second approval re-checks and fails; the loan stays pending and no
	// stock moves.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/approve", loanB), nil, tokenFor(admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, reloadTool(t, db, tool.ID).StockAvailable)

	var pending models.Loan
	db.First(&pending, loanB)
	assert.Equal(t, models.LoanPending, pending.State)
}

func TestApproveNonPendingLoan(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)
	tool := createTool(db, "Caliper", 3)

	resp := doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 1, "days_to_loan": 1,
	}, tokenFor(student))
	loanID := uint(decodeBody(t, resp)["data"].(map[string]interface{})["id"].(float64))

	doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/approve", loanID), nil, tokenFor(admin))

	// Approving twice must not debit twice.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/approve", loanID), nil, tokenFor(admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 2, reloadTool(t, db, tool.ID).StockAvailable)
}

func TestRejectLoan(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)
	tool := createTool(db, "Wrench set", 3)

	resp := doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 2, "days_to_loan": 2,
	}, tokenFor(student))
	loanID := uint(decodeBody(t, resp)["data"].(map[string]interface{})["id"].(float64))

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/reject", loanID), map[string]interface{}{
		"reason": "inventory count in progress",
	}, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, models.LoanRejected, data["state"])
	assert.Equal(t, "inventory count in progress", data["rejection_reason"])
	assert.Equal(t, 3, reloadTool(t, db, tool.ID).StockAvailable)

	// Rejected is terminal.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/reject", loanID), map[string]interface{}{
		"reason": "again",
	}, tokenFor(admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCancelLoanRules(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	owner := createUser(db, "Owner", "owner@campus.test", models.RoleStudent)
	other := createUser(db, "Other", "other@campus.test", models.RoleStudent)
	tool := createTool(db, "Hammer", 5)

	resp := doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 1, "days_to_loan": 1,
	}, tokenFor(owner))
	loanID := uint(decodeBody(t, resp)["data"].(map[string]interface{})["id"].(float64))

	// A stranger cannot cancel someone else's request.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/cancel", loanID), nil, tokenFor(other))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The owner can.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/cancel", loanID), nil, tokenFor(owner))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.LoanCancelled, decodeBody(t, resp)["data"].(map[string]interface{})["state"])

	// A fulfilled loan cannot be cancelled, not even by an admin.
	resp = doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
		"tool_id": tool.ID, "quantity": 1, "days_to_loan": 1,
	}, tokenFor(owner))
	fulfilledID := uint(decodeBody(t, resp)["data"].(map[string]interface{})["id"].(float64))
	doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/approve", fulfilledID), nil, tokenFor(admin))

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/loans/%d/cancel", fulfilledID), nil, tokenFor(admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOverdueDerivation(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)
	tool := createTool(db, "Ladder", 2)

	// A fulfilled loan whose due date has passed.
	fulfilledAt := time.Now().Add(-72 * time.Hour)
	loan := models.Loan{
		UserID:      student.ID,
		ToolID:      tool.ID,
		Quantity:    1,
		RequestedAt: fulfilledAt,
		FulfilledAt: &fulfilledAt,
		DueAt:       time.Now().Add(-24 * time.Hour),
		State:       models.LoanFulfilled,
	}
	db.Create(&loan)

	resp := doJSON(t, app, "GET", "/api/loans/mine", nil, tokenFor(student))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	loans := decodeBody(t, resp)["data"].([]interface{})
	assert.Len(t, loans, 1)
	assert.Equal(t, models.LoanOverdue, loans[0].(map[string]interface{})["state"])

	// The lazy transition is persisted.
	var stored models.Loan
	db.First(&stored, loan.ID)
	assert.Equal(t, models.LoanOverdue, stored.State)
}

func TestLoanListFilterAndPermissions(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)
	tool := createTool(db, "Glue gun", 10)

	for i := 0; i < 3; i++ {
		doJSON(t, app, "POST", "/api/loans", map[string]interface{}{
			"tool_id": tool.ID, "quantity": 1, "days_to_loan": 1,
		}, tokenFor(student))
	}

	// Students cannot see the global list.
	resp := doJSON(t, app, "GET", "/api/loans", nil, tokenFor(student))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/loans?state=pending", nil, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["data"].([]interface{}), 3)

	resp = doJSON(t, app, "GET", "/api/loans?state=returned", nil, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody(t, resp)["data"])
}
