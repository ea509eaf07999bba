package routes

import (
	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupLoanRoutes wires the loan workflow. Anyone authenticated can
// request and see their own loans; approval, rejection and returns are
// admin decisions; cancellation is checked against the owner in the
// controller.
func SetupLoanRoutes(app *fiber.App, loanController *controllers.LoanController) {
	loans := app.Group("/api/loans", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleAdmin)

	loans.Post("/", loanController.Create)
	loans.Get("/", adminOnly, loanController.List)
	loans.Get("/mine", loanController.Mine)
	loans.Patch("/:id/approve", adminOnly, loanController.Approve)
	loans.Patch("/:id/reject", adminOnly, loanController.Reject)
	loans.Patch("/:id/return", adminOnly, loanController.Return)
	loans.Patch("/:id/cancel", loanController.Cancel)
}
