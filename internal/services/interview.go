package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
)

// InterviewService governs the interview lifecycle: question generation,
// transcript recording and feedback generation.
type InterviewService interface {
	CreateInterview(ctx context.Context, userID uuid.UUID, req *models.CreateInterviewRequest) (*models.Interview, error)
	ListInterviews(userID uuid.UUID) ([]models.Interview, error)
	GetInterview(id, userID uuid.UUID) (*models.Interview, error)
	DeleteInterview(id, userID uuid.UUID) error
	SaveTranscript(id, userID uuid.UUID, turns []models.TranscriptTurnInput) (*models.Interview, error)
	GenerateFeedback(ctx context.Context, id, userID uuid.UUID) (*models.Feedback, error)
	GetFeedback(id, userID uuid.UUID) (*models.Feedback, bool, error)
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	validate      *validator.Validate
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	geminiService GeminiService,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		validate:      validator.New(),
	}
}

// feedbackSchema constrains the provider to the feedback shape. Bounds are
// still re-checked server-side after parsing.
var feedbackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"totalScore": {Type: genai.TypeNumber},
		"categoryScores": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":    {Type: genai.TypeString},
					"score":   {Type: genai.TypeNumber},
					"comment": {Type: genai.TypeString},
				},
				Required: []string{"name", "score", "comment"},
			},
		},
		"strengths":           {Type: genai.TypeString},
		"areasForImprovement": {Type: genai.TypeString},
		"finalAssessment":     {Type: genai.TypeString},
	},
	Required: []string{"totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
}

// CreateInterview implements InterviewService.
func (s *interviewService) CreateInterview(ctx context.Context, userID uuid.UUID, req *models.CreateInterviewRequest) (*models.Interview, error) {
	prompt := s.promptBuilder.BuildQuestionPrompt(req.Role, req.ExperienceLevel, req.InterviewType, req.NumQuestions)

	response, err := s.geminiService.GenerateText(ctx, prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	questions, err := extractQuestionArray(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	// Truncate anything beyond the requested count. Fewer than requested is
	// accepted but logged.
	if len(questions) > req.NumQuestions {
		questions = questions[:req.NumQuestions]
	}
	if len(questions) < req.NumQuestions {
		log.Printf("⚠️  Model returned %d questions, %d requested", len(questions), req.NumQuestions)
	}

	now := time.Now()
	formatted := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		formatted = append(formatted, models.Question{Q: q, GeneratedAt: now})
	}

	interview := &models.Interview{
		ID:              uuid.New(),
		UserID:          userID,
		Role:            req.Role,
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		InterviewType:   models.InterviewType(req.InterviewType),
		NumQuestions:    req.NumQuestions,
		Questions:       formatted,
		Status:          models.StatusReady,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, err
	}

	return interview, nil
}

// ListInterviews implements InterviewService.
func (s *interviewService) ListInterviews(userID uuid.UUID) ([]models.Interview, error) {
	return s.interviewRepo.FindAllByUser(userID)
}

// GetInterview implements InterviewService.
func (s *interviewService) GetInterview(id, userID uuid.UUID) (*models.Interview, error) {
	return s.interviewRepo.FindByIDAndUser(id, userID)
}

// DeleteInterview implements InterviewService.
func (s *interviewService) DeleteInterview(id, userID uuid.UUID) error {
	return s.interviewRepo.DeleteByIDAndUser(id, userID)
}

// SaveTranscript implements InterviewService. The transcript is replaced
// wholesale; missing turn timestamps default to the write time.
func (s *interviewService) SaveTranscript(id, userID uuid.UUID, turns []models.TranscriptTurnInput) (*models.Interview, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyTranscript
	}

	interview, err := s.interviewRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	normalized := make([]models.TranscriptTurn, 0, len(turns))
	for _, turn := range turns {
		timestamp := now
		if turn.Timestamp != nil {
			timestamp = *turn.Timestamp
		}
		normalized = append(normalized, models.TranscriptTurn{
			Speaker:   models.Speaker(turn.Speaker),
			Text:      turn.Text,
			Timestamp: timestamp,
		})
	}

	if err := s.interviewRepo.UpdateTranscript(interview, normalized); err != nil {
		return nil, err
	}

	return interview, nil
}

// GenerateFeedback implements InterviewService. Preconditions are checked
// before the provider is called; the feedback write is all-or-nothing.
func (s *interviewService) GenerateFeedback(ctx context.Context, id, userID uuid.UUID) (*models.Feedback, error) {
	interview, err := s.interviewRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}

	if len(interview.Transcript) == 0 {
		return nil, ErrEmptyTranscript
	}
	if interview.Finalized {
		return nil, ErrFeedbackFinalized
	}

	prompt := s.promptBuilder.BuildFeedbackPrompt(interview)

	response, err := s.geminiService.GenerateJSON(ctx, prompt, feedbackSchema, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to generate feedback: %w", err)
	}

	var feedback models.Feedback
	if err := json.Unmarshal([]byte(response), &feedback); err != nil {
		return nil, fmt.Errorf("failed to parse feedback response: %w", err)
	}

	// Defensive validation regardless of provider schema guarantees.
	if err := s.validate.Struct(&feedback); err != nil {
		return nil, fmt.Errorf("feedback failed validation: %w", err)
	}

	feedback.CreatedAt = time.Now()

	if err := s.interviewRepo.UpdateFeedback(interview, &feedback); err != nil {
		return nil, err
	}

	return &feedback, nil
}

// GetFeedback implements InterviewService.
func (s *interviewService) GetFeedback(id, userID uuid.UUID) (*models.Feedback, bool, error) {
	interview, err := s.interviewRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, false, err
	}
	return interview.Feedback, interview.Finalized, nil
}

// extractQuestionArray pulls the first bracket-delimited JSON array of
// strings out of free-form model output.
func extractQuestionArray(text string) ([]string, error) {
	// Remove markdown code blocks the model might wrap the array in
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoQuestionArray
	}

	raw := text[start : end+1]
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("malformed question array: %s", raw)
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got: %s", raw)
	}

	var questions []string
	for _, item := range parsed.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("question array contains a non-string entry: %s", item.Raw)
		}
		questions = append(questions, item.String())
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("question array is empty")
	}

	return questions, nil
}
