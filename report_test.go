package main

import (
	"fmt"
	"net/http"
	"testing"

	"campus-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestReportLifecycle(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	teacher := createUser(db, "Teacher", "teacher@campus.test", models.RoleTeacher)

	resp := doJSON(t, app, "POST", "/api/reports", map[string]interface{}{
		"machine_number": "PC-14",
		"title":          "No video output",
		"description":    "Monitor stays black after power on",
		"priority":       models.PriorityHigh,
		"category":       models.CategoryHardware,
	}, tokenFor(teacher))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	reportID := uint(data["id"].(float64))
	assert.NotEmpty(t, data["folio"])
	assert.Equal(t, models.ReportPending, data["state"])
	assert.Nil(t, data["resolved_at"])

	// Triage to in_progress, then resolve; resolving stamps the time.
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/reports/%d/state", reportID), map[string]interface{}{
		"state": models.ReportInProgress, "tech_comment": "swapping the cable",
	}, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, models.ReportInProgress, data["state"])
	assert.Nil(t, data["resolved_at"])

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/reports/%d/state", reportID), map[string]interface{}{
		"state": models.ReportResolved, "tech_comment": "cable replaced",
	}, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, models.ReportResolved, data["state"])
	assert.NotNil(t, data["resolved_at"])
	assert.Equal(t, "cable replaced", data["tech_comment"])
}

func TestReportDefaultsAndValidation(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	teacher := createUser(db, "Teacher", "teacher@campus.test", models.RoleTeacher)

	resp := doJSON(t, app, "POST", "/api/reports", map[string]interface{}{
		"machine_number": "PC-02",
		"title":          "Sticky keys",
		"description":    "Keyboard needs cleaning",
	}, tokenFor(teacher))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, models.PriorityMedium, data["priority"])
	assert.Equal(t, models.CategoryOther, data["category"])

	cases := []map[string]interface{}{
		{"machine_number": "", "title": "x", "description": "y"},
		{"machine_number": "PC-02", "title": "x", "description": "y", "priority": "urgent"},
		{"machine_number": "PC-02", "title": "x", "description": "y", "category": "plumbing"},
	}
	for _, body := range cases {
		resp := doJSON(t, app, "POST", "/api/reports", body, tokenFor(teacher))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %v", body)
	}
}

func TestReportVisibilityAndRoles(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin := createUser(db, "Admin", "admin@campus.test", models.RoleAdmin)
	teacherA := createUser(db, "Teacher A", "a@campus.test", models.RoleTeacher)
	teacherB := createUser(db, "Teacher B", "b@campus.test", models.RoleTeacher)
	student := createUser(db, "Student", "student@campus.test", models.RoleStudent)

	for i, teacher := range []models.User{teacherA, teacherA, teacherB} {
		doJSON(t, app, "POST", "/api/reports", map[string]interface{}{
			"machine_number": fmt.Sprintf("PC-%02d", i),
			"title":          "issue",
			"description":    "details",
		}, tokenFor(teacher))
	}

	// Students cannot file reports.
	resp := doJSON(t, app, "POST", "/api/reports", map[string]interface{}{
		"machine_number": "PC-99", "title": "x", "description": "y",
	}, tokenFor(student))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Mine sees only the caller's reports; the global list is admin only.
	resp = doJSON(t, app, "GET", "/api/reports/mine", nil, tokenFor(teacherA))
	assert.Len(t, decodeBody(t, resp)["data"].([]interface{}), 2)

	resp = doJSON(t, app, "GET", "/api/reports", nil, tokenFor(teacherA))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/reports?state=pending", nil, tokenFor(admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["data"].([]interface{}), 3)
}
