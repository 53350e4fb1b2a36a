package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	StatusPending    InterviewStatus = "pending"
	StatusReady      InterviewStatus = "ready"
	StatusInProgress InterviewStatus = "in-progress"
	StatusCompleted  InterviewStatus = "completed"
)

type ExperienceLevel string

const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

type InterviewType string

const (
	TypeTechnical  InterviewType = "technical"
	TypeBehavioral InterviewType = "behavioral"
	TypeGeneral    InterviewType = "general"
)

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Question is one generated interview question with its generation time.
type Question struct {
	Q           string    `json:"q"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// TranscriptTurn is a single utterance in the interview exchange.
type TranscriptTurn struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// CategoryScore is one rubric category of the generated feedback.
type CategoryScore struct {
	Name    string  `json:"name" validate:"required"`
	Score   float64 `json:"score" validate:"gte=0,lte=100"`
	Comment string  `json:"comment" validate:"required"`
}

// Feedback is the structured evaluation produced once per interview.
// Validate tags guard against out-of-rubric provider output.
type Feedback struct {
	TotalScore          float64         `json:"totalScore" validate:"gte=0,lte=100"`
	CategoryScores      []CategoryScore `json:"categoryScores" validate:"len=5,dive"`
	Strengths           string          `json:"strengths" validate:"required"`
	AreasForImprovement string          `json:"areasForImprovement" validate:"required"`
	FinalAssessment     string          `json:"finalAssessment" validate:"required"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type Interview struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Role            string           `gorm:"type:text;not null" json:"role"`
	ExperienceLevel ExperienceLevel  `gorm:"type:varchar(20);not null" json:"experience_level"`
	InterviewType   InterviewType    `gorm:"type:varchar(20);not null" json:"interview_type"`
	NumQuestions    int              `gorm:"not null" json:"num_questions"`
	Questions       []Question       `gorm:"type:jsonb;serializer:json" json:"questions"`
	Transcript      []TranscriptTurn `gorm:"type:jsonb;serializer:json" json:"transcript"`
	Feedback        *Feedback        `gorm:"type:jsonb;serializer:json" json:"feedback,omitempty"`
	Status          InterviewStatus  `gorm:"not null;default:'pending'" json:"status"`
	Finalized       bool             `gorm:"not null;default:false" json:"finalized"`
	Version         int              `gorm:"not null;default:1" json:"-"`
	CreatedAt       time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Interview) TableName() string {
	return "interviews"
}
