package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
)

var validate = validator.New()

// respondServiceError maps service and repository errors to HTTP statuses.
// Internal detail is logged, never returned to the caller.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	case errors.Is(err, services.ErrEmptyTranscript):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Transcript must not be empty",
		})
	case errors.Is(err, services.ErrFeedbackFinalized):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Feedback has already been generated for this interview",
		})
	case errors.Is(err, repositories.ErrVersionConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Interview was modified by a concurrent request",
		})
	default:
		log.Printf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}
}

// validationMessage turns the first validator error into a caller-facing
// message without leaking struct internals.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		switch fieldErr.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fieldErr.Field())
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
		case "gt":
			return fmt.Sprintf("%s must be greater than %s", fieldErr.Field(), fieldErr.Param())
		case "lte":
			return fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "min":
			return fmt.Sprintf("%s must contain at least %s item(s)", fieldErr.Field(), fieldErr.Param())
		default:
			return fmt.Sprintf("%s is invalid", fieldErr.Field())
		}
	}
	return "Invalid request payload"
}
