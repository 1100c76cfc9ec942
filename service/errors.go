package service

import "errors"

var (
	// ErrValidation wraps malformed-input failures. Use
	// fmt.Errorf("...: %w", ErrValidation) to attach field detail.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden is returned when the actor is not the owner of the
	// car an order refers to.
	ErrForbidden = errors.New("actor is not the owner of this car")

	// ErrInvalidTransition is returned when the requested status change
	// is not allowed from the order's current status.
	ErrInvalidTransition = errors.New("status transition not allowed")
)
