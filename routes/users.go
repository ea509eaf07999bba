package routes

import (
	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires the admin-only user management endpoints.
func SetupUserRoutes(app *fiber.App, userController *controllers.UserController) {
	users := app.Group("/api/users", utils.AuthMiddleware, utils.RequireRole(models.RoleAdmin))

	users.Get("/", userController.List)
	users.Post("/", userController.Create)
	users.Get("/:id", userController.Get)
	users.Put("/:id", userController.Update)
	users.Delete("/:id", userController.Delete)
}
