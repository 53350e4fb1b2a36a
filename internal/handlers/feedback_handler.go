package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-api/internal/middleware"
	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type FeedbackHandler struct {
	interviewService services.InterviewService
}

func NewFeedbackHandler(interviewService services.InterviewService) *FeedbackHandler {
	return &FeedbackHandler{
		interviewService: interviewService,
	}
}

// HandleGenerate handles POST /interviews/:id/feedback
func (h *FeedbackHandler) HandleGenerate(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No token provided",
		})
	}

	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	feedback, err := h.interviewService.GenerateFeedback(c.Context(), interviewID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.FeedbackResponse{
		Success:   true,
		Feedback:  feedback,
		Finalized: true,
	})
}

// HandleGet handles GET /interviews/:id/feedback
func (h *FeedbackHandler) HandleGet(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No token provided",
		})
	}

	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	feedback, finalized, err := h.interviewService.GetFeedback(interviewID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(models.FeedbackResponse{
		Success:   true,
		Feedback:  feedback,
		Finalized: finalized,
	})
}
