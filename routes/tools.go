package routes

import (
	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupToolRoutes wires the tool catalog. Reading is open to any
// authenticated user; writing and stock management are admin only.
func SetupToolRoutes(app *fiber.App, toolController *controllers.ToolController) {
	tools := app.Group("/api/tools", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleAdmin)

	tools.Get("/", toolController.List)
	tools.Post("/", adminOnly, toolController.Create)
	tools.Get("/:id", toolController.Get)
	tools.Put("/:id", adminOnly, toolController.Update)
	tools.Delete("/:id", adminOnly, toolController.Delete)
	tools.Patch("/:id/stock", adminOnly, toolController.ManageStock)
}
