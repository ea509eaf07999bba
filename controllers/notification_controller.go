package controllers

import (
	"strings"
	"time"

	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController keeps the push-token books. Actual delivery is
// an external concern; the backend only records which device tokens
// belong to which user.
type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// TokenRequest registers or removes a device token. On removal an empty
// token means "all my tokens" (logout from everywhere).
type TokenRequest struct {
	Token    string `json:"token"`
	Device   string `json:"device"`
	Platform string `json:"platform"`
}

// RegisterToken stores a device token for the caller. Re-registering an
// existing token re-binds it to the caller and reactivates it.
func (nc *NotificationController) RegisterToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if strings.TrimSpace(req.Token) == "" {
		return fail(c, 400, "token is required")
	}

	device := req.Device
	if device == "" {
		device = "unknown"
	}
	platform := req.Platform
	if platform == "" {
		platform = "unknown"
	}

	token := models.PushToken{
		UserID:       utils.UserID(c),
		Token:        req.Token,
		Device:       device,
		Platform:     platform,
		IsActive:     true,
		LastActiveAt: time.Now(),
	}

	var existing models.PushToken
	err := nc.DB.Where("token = ?", req.Token).First(&existing).Error
	if err == nil {
		existing.UserID = token.UserID
		existing.Device = device
		existing.Platform = platform
		existing.IsActive = true
		existing.LastActiveAt = token.LastActiveAt
		if err := nc.DB.Save(&existing).Error; err != nil {
			return serviceError(c, err, "could not register token")
		}
		return ok(c, 200, "token registered", existing)
	}

	if err := nc.DB.Create(&token).Error; err != nil {
		return serviceError(c, err, "could not register token")
	}

	return ok(c, 200, "token registered", token)
}

// RemoveToken deletes one token, or every token of the caller when the
// body names none.
func (nc *NotificationController) RemoveToken(c *fiber.Ctx) error {
	var req TokenRequest
	// An empty body is fine here.
	_ = c.BodyParser(&req)

	q := nc.DB.Where("user_id = ?", utils.UserID(c))
	if req.Token != "" {
		q = q.Where("token = ?", req.Token)
	}

	if err := q.Delete(&models.PushToken{}).Error; err != nil {
		return serviceError(c, err, "could not remove token")
	}

	if req.Token != "" {
		return ok(c, 200, "token removed", nil)
	}
	return ok(c, 200, "all tokens removed", nil)
}
