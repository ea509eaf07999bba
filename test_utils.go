package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"campus-backend/controllers"
	"campus-backend/models"
	"campus-backend/routes"
	"campus-backend/services"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory database with the full schema,
// including the partial unique slot index.
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to open test database")
	}
	if err := models.Migrate(db); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}
	return db
}

// createTestApp wires the application the way main does, minus the
// websocket endpoint and request logging.
func createTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	inventoryService := services.NewInventoryService(db)
	loanService := services.NewLoanService(db)
	reservationService := services.NewReservationService(db)

	hub := services.NewNotifyHub()
	go hub.Run()

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupUserRoutes(app, controllers.NewUserController(db))
	routes.SetupToolRoutes(app, controllers.NewToolController(db, inventoryService, loanService))
	routes.SetupLoanRoutes(app, controllers.NewLoanController(loanService, hub))
	routes.SetupRoomRoutes(app, controllers.NewRoomController(db, reservationService))
	routes.SetupReservationRoutes(app, controllers.NewReservationController(reservationService, hub))
	routes.SetupReportRoutes(app, controllers.NewReportController(db))
	routes.SetupNotificationRoutes(app, controllers.NewNotificationController(db))

	return app
}

var (
	testHashOnce sync.Once
	testHash     string
)

// testPasswordHash hashes the shared test password once; bcrypt is slow
// enough that per-user hashing would dominate the suite.
func testPasswordHash() string {
	testHashOnce.Do(func() {
		var err error
		testHash, err = utils.HashPassword("secret123")
		if err != nil {
			panic(err)
		}
	})
	return testHash
}

// createUser inserts an active user with the given role. Its password is
// always "secret123".
func createUser(db *gorm.DB, name, email, role string) models.User {
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: testPasswordHash(),
		Role:         role,
		IsActive:     true,
	}
	db.Create(&user)
	return user
}

// tokenFor returns a valid bearer token for the user.
func tokenFor(user models.User) string {
	token, _ := utils.GenerateJWT(user.ID, user.Email, user.Role)
	return token
}

// doJSON performs a request against the app with an optional JSON body
// and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// decodeBody parses the response envelope into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return out
}
