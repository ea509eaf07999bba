package controllers

import (
	"campus-backend/services"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ReservationController is the HTTP surface of the reservation workflow.
type ReservationController struct {
	Reservations *services.ReservationService
	Hub          *services.NotifyHub
}

func NewReservationController(reservations *services.ReservationService, hub *services.NotifyHub) *ReservationController {
	return &ReservationController{Reservations: reservations, Hub: hub}
}

// CreateReservationRequest is the reservation request payload.
type CreateReservationRequest struct {
	RoomID    uint   `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
	Group     string `json:"group"`
	Subject   string `json:"subject"`
}

// SetReservationStateRequest is the admin decision payload.
type SetReservationStateRequest struct {
	State        string `json:"state"`
	AdminComment string `json:"admin_comment"`
}

// Create requests a room slot for the caller.
func (rc *ReservationController) Create(c *fiber.Ctx) error {
	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if req.RoomID == 0 || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return fail(c, 400, "room_id, date, start_time and end_time are required")
	}

	reservation, err := rc.Reservations.Create(
		utils.UserID(c), req.RoomID,
		req.Date, req.StartTime, req.EndTime,
		req.Reason, req.Group, req.Subject,
	)
	if err != nil {
		return serviceError(c, err, "could not create reservation")
	}

	return ok(c, 201, "reservation request submitted", reservation)
}

// List returns all reservations (admin), optionally filtered by ?state=.
func (rc *ReservationController) List(c *fiber.Ctx) error {
	reservations, err := rc.Reservations.List(c.Query("state"))
	if err != nil {
		return serviceError(c, err, "could not list reservations")
	}
	return ok(c, 200, "", reservations)
}

// Mine returns the caller's own reservations.
func (rc *ReservationController) Mine(c *fiber.Ctx) error {
	reservations, err := rc.Reservations.ListByUser(utils.UserID(c))
	if err != nil {
		return serviceError(c, err, "could not list reservations")
	}
	return ok(c, 200, "", reservations)
}

// SetState applies an admin decision to a reservation.
func (rc *ReservationController) SetState(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid reservation id")
	}

	var req SetReservationStateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	reservation, err := rc.Reservations.SetState(id, req.State, req.AdminComment)
	if err != nil {
		return serviceError(c, err, "could not update reservation")
	}

	rc.Hub.NotifyReservationDecision(reservation)
	return ok(c, 200, "reservation "+req.State, reservation)
}

// Cancel withdraws a pending reservation; owner or admin only.
func (rc *ReservationController) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid reservation id")
	}

	reservation, err := rc.Reservations.Cancel(id, utils.UserID(c), utils.UserRole(c))
	if err != nil {
		return serviceError(c, err, "could not cancel reservation")
	}

	return ok(c, 200, "reservation cancelled", reservation)
}
