package models

import "time"

// DefaultNumQuestions is applied when the caller omits numQuestions.
const DefaultNumQuestions = 3

type CreateInterviewRequest struct {
	Role            string `json:"role" validate:"required"`
	ExperienceLevel string `json:"experienceLevel" validate:"required,oneof=junior mid senior"`
	InterviewType   string `json:"interviewType" validate:"required,oneof=technical behavioral general"`
	NumQuestions    int    `json:"numQuestions" validate:"gt=0,lte=20"`
}

type CreateInterviewResponse struct {
	Success     bool   `json:"success"`
	InterviewID string `json:"interviewId"`
}

type InterviewListResponse struct {
	Success    bool        `json:"success"`
	Interviews []Interview `json:"interviews"`
}

type InterviewResponse struct {
	Success   bool       `json:"success"`
	Interview *Interview `json:"interview"`
}

type DeleteInterviewResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TranscriptTurnInput is a caller-supplied turn; the timestamp is optional
// and defaults to the write time.
type TranscriptTurnInput struct {
	Speaker   string     `json:"speaker" validate:"required,oneof=user assistant"`
	Text      string     `json:"text" validate:"required"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type SaveTranscriptRequest struct {
	Transcript []TranscriptTurnInput `json:"transcript" validate:"required,min=1,dive"`
}

type FeedbackResponse struct {
	Success   bool      `json:"success"`
	Feedback  *Feedback `json:"feedback"`
	Finalized bool      `json:"finalized"`
}
