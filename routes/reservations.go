package routes

import (
	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupReservationRoutes wires the reservation workflow. Requesting a
// slot is limited to admins and teachers; decisions are admin only.
func SetupReservationRoutes(app *fiber.App, reservationController *controllers.ReservationController) {
	reservations := app.Group("/api/reservations", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleAdmin)

	reservations.Post("/", utils.RequireRole(models.RoleAdmin, models.RoleTeacher), reservationController.Create)
	reservations.Get("/", adminOnly, reservationController.List)
	reservations.Get("/mine", reservationController.Mine)
	reservations.Patch("/:id/state", adminOnly, reservationController.SetState)
	reservations.Patch("/:id/cancel", reservationController.Cancel)
}
