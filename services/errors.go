package services

import "errors"

// Business-rule failures surfaced by the services. Controllers map these
// to HTTP statuses; anything else is treated as an internal error.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidState      = errors.New("invalid state for this operation")
	ErrConflict          = errors.New("time slot conflicts with an existing reservation")
	ErrForbidden         = errors.New("not allowed to perform this operation")
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("invalid input")
)
