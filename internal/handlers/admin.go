package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/store"
)

// AdminHandler serves user management, coupons, notifications and settings.
type AdminHandler struct {
	store *store.Store
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(s *store.Store) *AdminHandler {
	return &AdminHandler{store: s}
}

// ListUsers returns every user with credentials redacted.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.store.Users()})
}

// UpdateUser applies a privileged partial update to any user.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var payload store.AdminUserUpdate
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.AdminUpdateUser(c.Params("id"), payload); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteUser removes a user record.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.store.DeleteUser(c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type bulkDeleteRequest struct {
	UserIDs []string `json:"user_ids"`
}

// BulkDeleteUsers removes several users; missing ids are skipped.
func (h *AdminHandler) BulkDeleteUsers(c *fiber.Ctx) error {
	var payload bulkDeleteRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	h.store.BulkDeleteUsers(payload.UserIDs)
	return c.JSON(fiber.Map{"success": true})
}

// Impersonate switches the session to the target user without credentials.
func (h *AdminHandler) Impersonate(c *fiber.Ctx) error {
	if err := h.store.LoginAsUser(c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": h.store.CurrentUser()})
}

type manageEnrollmentRequest struct {
	CourseID string `json:"course_id"`
	Enroll   bool   `json:"enroll"`
}

// ManageEnrollment grants or revokes a user's access to a course.
func (h *AdminHandler) ManageEnrollment(c *fiber.Ctx) error {
	var payload manageEnrollmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.AdminManageEnrollment(c.Params("id"), payload.CourseID, payload.Enroll); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ExportUsers streams the user list as a CSV download.
func (h *AdminHandler) ExportUsers(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="users.csv"`)
	return c.SendString(h.store.ExportUsersCSV())
}

// ListCoupons returns the coupon set.
func (h *AdminHandler) ListCoupons(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.store.Coupons()})
}

// CreateCoupon registers a discount code.
func (h *AdminHandler) CreateCoupon(c *fiber.Ctx) error {
	var payload models.Coupon
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.AddCoupon(payload); err != nil {
		return storeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// DeleteCoupon removes a discount code.
func (h *AdminHandler) DeleteCoupon(c *fiber.Ctx) error {
	if err := h.store.DeleteCoupon(c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListNotifications returns broadcasts, newest first.
func (h *AdminHandler) ListNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.store.Notifications()})
}

type notificationRequest struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    models.NotificationType `json:"type"`
}

// CreateNotification publishes a broadcast notice.
func (h *AdminHandler) CreateNotification(c *fiber.Ctx) error {
	var payload notificationRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title is required")
	}
	if payload.Type == "" {
		payload.Type = models.NoticeInfo
	}

	notification := h.store.SendNotification(payload.Title, payload.Message, payload.Type)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": notification})
}

// DeleteNotification dismisses a broadcast notice.
func (h *AdminHandler) DeleteNotification(c *fiber.Ctx) error {
	h.store.RemoveNotification(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSettings returns the site settings singleton.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.store.Settings()})
}

// UpdateSettings replaces the site settings singleton.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var payload models.SiteSettings
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	h.store.UpdateSettings(payload)
	return c.JSON(fiber.Map{"success": true, "data": h.store.Settings()})
}
