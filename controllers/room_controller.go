package controllers

import (
	"errors"
	"strings"

	"campus-backend/models"
	"campus-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoomController exposes the room catalog and the public per-day
// availability view.
type RoomController struct {
	DB           *gorm.DB
	Reservations *services.ReservationService
}

func NewRoomController(db *gorm.DB, reservations *services.ReservationService) *RoomController {
	return &RoomController{DB: db, Reservations: reservations}
}

// CreateRoomRequest is the admin room-creation payload.
type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

// UpdateRoomRequest is a partial update; toggling IsActive takes a room
// out of circulation without touching its history.
type UpdateRoomRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// List returns the active rooms.
func (rc *RoomController) List(c *fiber.Ctx) error {
	var rooms []models.Room
	if err := rc.DB.Where("is_active = ?", true).Order("name ASC").Find(&rooms).Error; err != nil {
		return serviceError(c, err, "could not list rooms")
	}
	return ok(c, 200, "", rooms)
}

// Get returns one room by id.
func (rc *RoomController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid room id")
	}

	var room models.Room
	if err := rc.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "room not found")
		}
		return serviceError(c, err, "could not load room")
	}
	return ok(c, 200, "", room)
}

// Availability lists the live reservations of a room on a given day so
// clients can render the free slots.
func (rc *RoomController) Availability(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid room id")
	}

	date := c.Query("date")
	if !models.ValidDate(date) {
		return fail(c, 400, "date query parameter must be YYYY-MM-DD")
	}

	var room models.Room
	if err := rc.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "room not found")
		}
		return serviceError(c, err, "could not load room")
	}

	reservations, err := rc.Reservations.ListForRoomDate(id, date)
	if err != nil {
		return serviceError(c, err, "could not load availability")
	}

	return ok(c, 200, "", reservations)
}

// Create adds a room.
func (rc *RoomController) Create(c *fiber.Ctx) error {
	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		return fail(c, 400, "name and description are required")
	}
	if req.Capacity <= 0 {
		return fail(c, 400, "capacity must be positive")
	}

	room := models.Room{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Capacity:    req.Capacity,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := rc.DB.Create(&room).Error; err != nil {
		return serviceError(c, err, "could not create room")
	}

	return ok(c, 201, "room created", room)
}

// Update applies a partial update to one room.
func (rc *RoomController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid room id")
	}

	var req UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	var room models.Room
	if err := rc.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "room not found")
		}
		return serviceError(c, err, "could not load room")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return fail(c, 400, "name cannot be empty")
		}
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return fail(c, 400, "capacity must be positive")
		}
		room.Capacity = *req.Capacity
	}
	if req.Location != nil {
		room.Location = *req.Location
	}
	if req.ImageURL != nil {
		room.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := rc.DB.Save(&room).Error; err != nil {
		return serviceError(c, err, "could not update room")
	}

	return ok(c, 200, "room updated", room)
}
