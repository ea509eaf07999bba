package routes

import (
	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupRoomRoutes wires the room catalog. Listing and availability are
// public so the booking UI works before login; management is admin only.
func SetupRoomRoutes(app *fiber.App, roomController *controllers.RoomController) {
	rooms := app.Group("/api/rooms")
	adminOnly := utils.RequireRole(models.RoleAdmin)

	rooms.Get("/", roomController.List)
	rooms.Post("/", utils.AuthMiddleware, adminOnly, roomController.Create)
	rooms.Get("/:id/availability", roomController.Availability)
	rooms.Get("/:id", roomController.Get)
	rooms.Put("/:id", utils.AuthMiddleware, adminOnly, roomController.Update)
}
