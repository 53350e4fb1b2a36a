package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/auth"
	"mockmate/interview-api/internal/middleware"
	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
)

// stubInterviewService returns canned values and records the requests it saw.
type stubInterviewService struct {
	interview     *models.Interview
	interviews    []models.Interview
	feedback      *models.Feedback
	finalized     bool
	err           error
	createReq     *models.CreateInterviewRequest
	savedTurns    []models.TranscriptTurnInput
	deleteCalled  bool
	generateCalls int
}

func (s *stubInterviewService) CreateInterview(_ context.Context, _ uuid.UUID, req *models.CreateInterviewRequest) (*models.Interview, error) {
	s.createReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.interview, nil
}

func (s *stubInterviewService) ListInterviews(_ uuid.UUID) ([]models.Interview, error) {
	return s.interviews, s.err
}

func (s *stubInterviewService) GetInterview(_, _ uuid.UUID) (*models.Interview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.interview, nil
}

func (s *stubInterviewService) DeleteInterview(_, _ uuid.UUID) error {
	s.deleteCalled = true
	return s.err
}

func (s *stubInterviewService) SaveTranscript(_, _ uuid.UUID, turns []models.TranscriptTurnInput) (*models.Interview, error) {
	s.savedTurns = turns
	if s.err != nil {
		return nil, s.err
	}
	return s.interview, nil
}

func (s *stubInterviewService) GenerateFeedback(_ context.Context, _, _ uuid.UUID) (*models.Feedback, error) {
	s.generateCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.feedback, nil
}

func (s *stubInterviewService) GetFeedback(_, _ uuid.UUID) (*models.Feedback, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return s.feedback, s.finalized, nil
}

var testJWTService = auth.NewJWTService("handler-test-secret", 1)

func newTestApp(svc *stubInterviewService) *fiber.App {
	app := fiber.New()

	interviewHandler := NewInterviewHandler(svc)
	feedbackHandler := NewFeedbackHandler(svc)

	interviews := app.Group("/api/v1/interviews", middleware.RequireAuth(testJWTService))
	interviews.Post("/", interviewHandler.HandleCreate)
	interviews.Get("/", interviewHandler.HandleList)
	interviews.Get("/:id", interviewHandler.HandleGet)
	interviews.Delete("/:id", interviewHandler.HandleDelete)
	interviews.Patch("/:id/transcript", interviewHandler.HandleSaveTranscript)
	interviews.Post("/:id/feedback", feedbackHandler.HandleGenerate)
	interviews.Get("/:id/feedback", feedbackHandler.HandleGet)

	return app
}

func authedRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := testJWTService.GenerateToken(uuid.New())
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func sampleInterview() *models.Interview {
	return &models.Interview{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Role:            "Backend Engineer",
		ExperienceLevel: models.LevelMid,
		InterviewType:   models.TypeTechnical,
		NumQuestions:    3,
		Questions: []models.Question{
			{Q: "Q1", GeneratedAt: time.Now()},
		},
		Status:  models.StatusReady,
		Version: 1,
	}
}

func TestHandleCreate_Success(t *testing.T) {
	interview := sampleInterview()
	svc := &stubInterviewService{interview: interview}
	app := newTestApp(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/interviews/", map[string]any{
		"role":            "Backend Engineer",
		"experienceLevel": "mid",
		"interviewType":   "technical",
		"numQuestions":    3,
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, interview.ID.String(), body["interviewId"])
}

func TestHandleCreate_DefaultsNumQuestions(t *testing.T) {
	svc := &stubInterviewService{interview: sampleInterview()}
	app := newTestApp(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/interviews/", map[string]any{
		"role":            "Backend Engineer",
		"experienceLevel": "senior",
		"interviewType":   "behavioral",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotNil(t, svc.createReq)
	assert.Equal(t, models.DefaultNumQuestions, svc.createReq.NumQuestions)
}

func TestHandleCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{
			name: "missing role",
			payload: map[string]any{
				"experienceLevel": "mid",
				"interviewType":   "technical",
			},
		},
		{
			name: "bad experience level",
			payload: map[string]any{
				"role":            "Backend Engineer",
				"experienceLevel": "wizard",
				"interviewType":   "technical",
			},
		},
		{
			name: "bad interview type",
			payload: map[string]any{
				"role":            "Backend Engineer",
				"experienceLevel": "mid",
				"interviewType":   "trivia",
			},
		},
		{
			name: "too many questions",
			payload: map[string]any{
				"role":            "Backend Engineer",
				"experienceLevel": "mid",
				"interviewType":   "technical",
				"numQuestions":    50,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubInterviewService{interview: sampleInterview()}
			app := newTestApp(svc)

			resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/v1/interviews/", tt.payload))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Nil(t, svc.createReq, "service must not be reached on invalid input")
		})
	}
}

func TestHandleCreate_ProviderFailure(t *testing.T) {
	svc := &stubInterviewService{err: fmt.Errorf("upstream unavailable")}
	app := newTestApp(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/interviews/", map[string]any{
		"role":            "Backend Engineer",
		"experienceLevel": "mid",
		"interviewType":   "technical",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Server error", body["error"], "internal detail must not leak")
}

func TestHandleCreate_Unauthorized(t *testing.T) {
	app := newTestApp(&stubInterviewService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews/", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleList_EmptyIsArray(t *testing.T) {
	svc := &stubInterviewService{interviews: nil}
	app := newTestApp(svc)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/v1/interviews/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	interviews, ok := body["interviews"].([]any)
	require.True(t, ok, "interviews must serialize as an array, not null")
	assert.Empty(t, interviews)
}

func TestHandleGet_Success(t *testing.T) {
	interview := sampleInterview()
	svc := &stubInterviewService{interview: interview}
	app := newTestApp(svc)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/v1/interviews/"+interview.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	got, ok := body["interview"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, interview.ID.String(), got["id"])
}

func TestHandleGet_NotFoundIndistinguishable(t *testing.T) {
	svc := &stubInterviewService{err: repositories.ErrNotFound}
	app := newTestApp(svc)

	// A syntactically invalid id and a nonexistent one must be told apart
	// by neither status nor body.
	targets := []string{
		"/api/v1/interviews/not-a-uuid",
		"/api/v1/interviews/" + uuid.NewString(),
	}

	var bodies []map[string]any
	for _, target := range targets {
		resp, err := app.Test(authedRequest(t, http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		bodies = append(bodies, decodeBody(t, resp))
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestHandleDelete_Success(t *testing.T) {
	svc := &stubInterviewService{}
	app := newTestApp(svc)

	resp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/v1/interviews/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, svc.deleteCalled)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
}

func TestHandleDelete_InvalidID(t *testing.T) {
	svc := &stubInterviewService{}
	app := newTestApp(svc)

	resp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/v1/interviews/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, svc.deleteCalled)
}

func TestHandleSaveTranscript_Success(t *testing.T) {
	interview := sampleInterview()
	interview.Status = models.StatusCompleted
	svc := &stubInterviewService{interview: interview}
	app := newTestApp(svc)

	req := authedRequest(t, http.MethodPatch, "/api/v1/interviews/"+interview.ID.String()+"/transcript", map[string]any{
		"transcript": []map[string]any{
			{"speaker": "assistant", "text": "Tell me about yourself."},
			{"speaker": "user", "text": "I build backend services."},
		},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, svc.savedTurns, 2)
	assert.Equal(t, "user", svc.savedTurns[1].Speaker)
}

func TestHandleSaveTranscript_EmptyTranscript(t *testing.T) {
	svc := &stubInterviewService{}
	app := newTestApp(svc)

	req := authedRequest(t, http.MethodPatch, "/api/v1/interviews/"+uuid.NewString()+"/transcript", map[string]any{
		"transcript": []map[string]any{},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, svc.savedTurns, "service must not be reached with an empty transcript")
}

func TestHandleSaveTranscript_BadSpeaker(t *testing.T) {
	svc := &stubInterviewService{}
	app := newTestApp(svc)

	req := authedRequest(t, http.MethodPatch, "/api/v1/interviews/"+uuid.NewString()+"/transcript", map[string]any{
		"transcript": []map[string]any{
			{"speaker": "narrator", "text": "Meanwhile..."},
		},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleSaveTranscript_VersionConflict(t *testing.T) {
	svc := &stubInterviewService{err: repositories.ErrVersionConflict}
	app := newTestApp(svc)

	req := authedRequest(t, http.MethodPatch, "/api/v1/interviews/"+uuid.NewString()+"/transcript", map[string]any{
		"transcript": []map[string]any{
			{"speaker": "user", "text": "Answer."},
		},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
