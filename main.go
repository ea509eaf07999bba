package main

import (
	"log"
	"os"

	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/routes"
	"campus-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedDefaultRooms(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))

	// Core services
	inventoryService := services.NewInventoryService(db)
	loanService := services.NewLoanService(db)
	reservationService := services.NewReservationService(db)

	// Notification hub for workflow decision events
	hub := services.NewNotifyHub()
	go hub.Run()

	// Controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	toolController := controllers.NewToolController(db, inventoryService, loanService)
	loanController := controllers.NewLoanController(loanService, hub)
	roomController := controllers.NewRoomController(db, reservationService)
	reservationController := controllers.NewReservationController(reservationService, hub)
	reportController := controllers.NewReportController(db)
	notificationController := controllers.NewNotificationController(db)

	// Routes
	routes.SetupAuthRoutes(app, authController)
	routes.SetupUserRoutes(app, userController)
	routes.SetupToolRoutes(app, toolController)
	routes.SetupLoanRoutes(app, loanController)
	routes.SetupRoomRoutes(app, roomController)
	routes.SetupReservationRoutes(app, reservationController)
	routes.SetupReportRoutes(app, reportController)
	routes.SetupNotificationRoutes(app, notificationController)

	// WebSocket endpoint for decision notifications
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.HandleWebSocket))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Campus backend is running",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("listening on :%s", port)
	log.Fatal(app.Listen(":" + port))
}

// seedDefaultRooms makes sure the three bookable rooms exist on a fresh
// database.
func seedDefaultRooms(db *gorm.DB) {
	defaults := []models.Room{
		{Name: "A", Description: "Computer lab A", Capacity: 30, Location: "Building 1"},
		{Name: "B", Description: "Computer lab B", Capacity: 30, Location: "Building 1"},
		{Name: "C", Description: "Multipurpose room C", Capacity: 45, Location: "Building 2"},
	}

	for _, room := range defaults {
		var existing models.Room
		if err := db.Where("name = ?", room.Name).First(&existing).Error; err != nil {
			room.IsActive = true
			if err := db.Create(&room).Error; err != nil {
				log.Printf("seed room %s: %v", room.Name, err)
			}
		}
	}
}
