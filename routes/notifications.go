package routes

import (
	"campus-backend/controllers"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes wires push-token bookkeeping.
func SetupNotificationRoutes(app *fiber.App, notificationController *controllers.NotificationController) {
	notifications := app.Group("/api/notifications", utils.AuthMiddleware)

	notifications.Post("/token", notificationController.RegisterToken)
	notifications.Delete("/token", notificationController.RemoveToken)
}
