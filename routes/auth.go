package routes

import (
	"campus-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the public authentication endpoints.
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/api/auth")

	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
}
