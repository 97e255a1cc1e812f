package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/store"
)

// AuthHandler serves session lifecycle and self-service profile routes.
type AuthHandler struct {
	store *store.Store
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(s *store.Store) *AuthHandler {
	return &AuthHandler{store: s}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// Login authenticates by email or phone and fills the session slot.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload loginRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Identifier == "" || payload.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "identifier and password are required")
	}

	switch h.store.Login(payload.Identifier, payload.Password, payload.RememberMe) {
	case store.LoginNotFound:
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	case store.LoginWrongPassword:
		return fiber.NewError(fiber.StatusUnauthorized, "wrong password")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.CurrentUser()})
}

type registerRequest struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Register creates a student account and logs it in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload registerRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Name == "" || payload.Identifier == "" || payload.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, identifier and password are required")
	}

	if !h.store.Register(payload.Name, payload.Identifier, payload.Password) {
		return fiber.NewError(fiber.StatusConflict, "account already exists")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": h.store.CurrentUser()})
}

// Logout clears the session slot and the remembered snapshot.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout()
	return c.JSON(fiber.Map{"success": true})
}

// GetProfile returns the active session projection.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := h.store.CurrentUser()
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// UpdateProfile merges a partial update into the caller's own record.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var payload store.UserUpdate
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.UpdateUser(payload); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.CurrentUser()})
}
