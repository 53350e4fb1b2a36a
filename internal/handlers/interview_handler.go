package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-api/internal/middleware"
	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// HandleCreate handles POST /interviews
func (h *InterviewHandler) HandleCreate(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No token provided",
		})
	}

	var req models.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.NumQuestions == 0 {
		req.NumQuestions = models.DefaultNumQuestions
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	interview, err := h.interviewService.CreateInterview(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateInterviewResponse{
		Success:     true,
		InterviewID: interview.ID.String(),
	})
}

// HandleList handles GET /interviews
func (h *InterviewHandler) HandleList(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No token provided",
		})
	}

	interviews, err := h.interviewService.ListInterviews(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if interviews == nil {
		interviews = []models.Interview{}
	}

	return c.JSON(models.InterviewListResponse{
		Success:    true,
		Interviews: interviews,
	})
}

// HandleGet handles GET /interviews/:id
func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No token provided",
		})
	}

	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// An unparseable id is indistinguishable from a nonexistent one.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	interview, err := h.interviewService.GetInterview(interviewID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(models.InterviewResponse{
		Success:   true,
		Interview: interview,
	})
}

// HandleDelete handles DELETE /interviews/:id
func (h *InterviewHandler) HandleDelete(c *fiber.Ctx) error {
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

	if err := h.interviewService.DeleteInterview(interviewID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(models.DeleteInterviewResponse{
		Success: true,
		Message: "Interview deleted",
	})
}

// HandleSaveTranscript handles PATCH /interviews/:id/transcript
func (h *InterviewHandler) HandleSaveTranscript(c *fiber.Ctx) error {
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

	var req models.SaveTranscriptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	interview, err := h.interviewService.SaveTranscript(interviewID, userID, req.Transcript)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(models.InterviewResponse{
		Success:   true,
		Interview: interview,
	})
}
