package controllers

import (
	"errors"
	"strings"
	"time"

	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportController handles incident report ticketing.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// CreateReportRequest is the incident report payload.
type CreateReportRequest struct {
	MachineNumber string `json:"machine_number"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	Category      string `json:"category"`
}

// SetReportStateRequest is the admin ticket-update payload.
type SetReportStateRequest struct {
	State       string `json:"state"`
	TechComment string `json:"tech_comment"`
}

// Create files an incident report and hands back its folio.
func (rc *ReportController) Create(c *fiber.Ctx) error {
	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if strings.TrimSpace(req.MachineNumber) == "" ||
		strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return fail(c, 400, "machine_number, title and description are required")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return fail(c, 400, "priority must be low, medium or high")
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		return fail(c, 400, "unknown category")
	}

	report := models.Report{
		Folio:         uuid.NewString(),
		MachineNumber: strings.TrimSpace(req.MachineNumber),
		UserID:        utils.UserID(c),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Priority:      priority,
		Category:      category,
		State:         models.ReportPending,
	}
	if err := rc.DB.Create(&report).Error; err != nil {
		return serviceError(c, err, "could not create report")
	}

	if err := rc.DB.Preload("User").First(&report, report.ID).Error; err != nil {
		return serviceError(c, err, "could not create report")
	}

	return ok(c, 201, "report created", report)
}

// Mine returns the caller's own reports, newest first.
func (rc *ReportController) Mine(c *fiber.Ctx) error {
	var reports []models.Report
	if err := rc.DB.
		Where("user_id = ?", utils.UserID(c)).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return serviceError(c, err, "could not list reports")
	}
	return ok(c, 200, "", reports)
}

// List returns all reports (admin), optionally filtered by ?state=.
func (rc *ReportController) List(c *fiber.Ctx) error {
	q := rc.DB.Preload("User").Order("created_at DESC")
	if state := c.Query("state"); state != "" {
		q = q.Where("state = ?", state)
	}

	var reports []models.Report
	if err := q.Find(&reports).Error; err != nil {
		return serviceError(c, err, "could not list reports")
	}
	return ok(c, 200, "", reports)
}

// SetState moves a report through its workflow; resolving stamps
// ResolvedAt.
func (rc *ReportController) SetState(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid report id")
	}

	var req SetReportStateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if !models.ValidReportState(req.State) {
		return fail(c, 400, "state must be pending, in_progress or resolved")
	}

	var report models.Report
	if err := rc.DB.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "report not found")
		}
		return serviceError(c, err, "could not load report")
	}

	updates := map[string]interface{}{
		"state":        req.State,
		"tech_comment": req.TechComment,
	}
	if req.State == models.ReportResolved {
		updates["resolved_at"] = time.Now()
	}

	if err := rc.DB.Model(&report).Updates(updates).Error; err != nil {
		return serviceError(c, err, "could not update report")
	}

	if err := rc.DB.Preload("User").First(&report, id).Error; err != nil {
		return serviceError(c, err, "could not load report")
	}

	return ok(c, 200, "report updated", report)
}
