package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/albaz/internal/services"
	"github.com/example/albaz/internal/store"
)

// AIHandler serves the assistant routes. Responses degrade to a fallback
// message when the upstream model is unreachable; these routes never fail.
type AIHandler struct {
	store *store.Store
	ai    *services.AIService
}

// NewAIHandler constructs AIHandler.
func NewAIHandler(s *store.Store, ai *services.AIService) *AIHandler {
	return &AIHandler{store: s, ai: ai}
}

// SummarizeCourse generates a short marketing summary for a course.
func (h *AIHandler) SummarizeCourse(c *fiber.Ctx) error {
	course, ok := h.store.Course(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}

	summary := h.ai.GenerateCourseSummary(c.Context(), course.Title, course.Description)
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"summary": summary}})
}

type askRequest struct {
	Question string `json:"question"`
	CourseID string `json:"course_id"`
}

// Ask answers a free-form question, optionally grounded in a course.
func (h *AIHandler) Ask(c *fiber.Ctx) error {
	var payload askRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Question == "" {
		return fiber.NewError(fiber.StatusBadRequest, "question is required")
	}

	courseContext := ""
	if payload.CourseID != "" {
		if course, ok := h.store.Course(payload.CourseID); ok {
			courseContext = course.Title + ": " + course.Description
		}
	}

	answer := h.ai.AskAssistant(c.Context(), payload.Question, courseContext)
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"answer": answer}})
}
