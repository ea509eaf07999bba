package routes

import (
	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupReportRoutes wires incident report ticketing. Filing is limited
// to admins and teachers; triage is admin only.
func SetupReportRoutes(app *fiber.App, reportController *controllers.ReportController) {
	reports := app.Group("/api/reports", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleAdmin)

	reports.Post("/", utils.RequireRole(models.RoleAdmin, models.RoleTeacher), reportController.Create)
	reports.Get("/", adminOnly, reportController.List)
	reports.Get("/mine", reportController.Mine)
	reports.Patch("/:id/state", adminOnly, reportController.SetState)
}
