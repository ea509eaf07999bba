package controllers

import (
	"errors"
	"log"
	"os"
	"strconv"

	"campus-backend/services"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
	})
}

// serviceError maps a service failure to the HTTP taxonomy. Business
// failures carry their own message; anything unexpected is logged in full
// and reported as a bare 500 unless APP_ENV=development.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fail(c, 404, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return fail(c, 403, err.Error())
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrValidation):
		return fail(c, 400, err.Error())
	}

	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	resp := Response{Success: false, Message: fallback}
	if os.Getenv("APP_ENV") == "development" {
		resp.Error = err.Error()
	}
	return c.Status(500).JSON(resp)
}

// parseID reads the :id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
