package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/store"
)

// storeError translates a store domain error into an HTTP error. Unknown
// errors pass through to the app-level error handler as 500s.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNoSession):
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateReview):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrBadState):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrMethodDisabled):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
