package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/store"
)

// CatalogHandler serves course browsing, learning progress and reviews.
type CatalogHandler struct {
	store *store.Store
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(s *store.Store) *CatalogHandler {
	return &CatalogHandler{store: s}
}

// ListCourses returns the whole catalog.
func (h *CatalogHandler) ListCourses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.store.Courses()})
}

// GetCourse returns a single course by id.
func (h *CatalogHandler) GetCourse(c *fiber.Ctx) error {
	course, ok := h.store.Course(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": course})
}

// CreateCourse adds a catalog entry.
func (h *CatalogHandler) CreateCourse(c *fiber.Ctx) error {
	var payload models.Course
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.store.AddCourse(payload)
	if err != nil {
		return storeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// UpdateCourse replaces a course's editable fields.
func (h *CatalogHandler) UpdateCourse(c *fiber.Ctx) error {
	var payload models.Course
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payload.ID = c.Params("id")

	if err := h.store.UpdateCourse(payload); err != nil {
		return storeError(err)
	}

	course, _ := h.store.Course(payload.ID)
	return c.JSON(fiber.Map{"success": true, "data": course})
}

// DeleteCourse removes a course.
func (h *CatalogHandler) DeleteCourse(c *fiber.Ctx) error {
	if err := h.store.DeleteCourse(c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type enrollRequest struct {
	CourseIDs []string `json:"course_ids"`
}

// Enroll adds courses to the current user's enrollment set.
func (h *CatalogHandler) Enroll(c *fiber.Ctx) error {
	var payload enrollRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.store.EnrollInCourses(payload.CourseIDs); err != nil {
		return storeError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": h.store.CurrentUser()})
}

// CompleteLesson records lesson completion for the current user.
func (h *CatalogHandler) CompleteLesson(c *fiber.Ctx) error {
	if err := h.store.MarkLessonCompleted(c.Params("id"), c.Params("lessonId")); err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": h.store.CurrentUser()})
}

// GetProgress returns the current user's completion percentage for a course.
func (h *CatalogHandler) GetProgress(c *fiber.Ctx) error {
	progress, err := h.store.CourseProgress(c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"progress": progress}})
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview appends a review and returns the recomputed course.
func (h *CatalogHandler) CreateReview(c *fiber.Ctx) error {
	var payload reviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	review, err := h.store.AddReview(c.Params("id"), payload.Rating, payload.Comment)
	if err != nil {
		return storeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}
