package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mockmate/interview-api/internal/models"
)

var (
	// ErrNotFound covers both nonexistent interviews and interviews owned
	// by another user. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("interview not found")

	// ErrVersionConflict is returned when an update loses a race against a
	// concurrent writer.
	ErrVersionConflict = errors.New("interview version conflict")
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByIDAndUser(id, userID uuid.UUID) (*models.Interview, error)
	FindAllByUser(userID uuid.UUID) ([]models.Interview, error)
	DeleteByIDAndUser(id, userID uuid.UUID) error
	UpdateTranscript(interview *models.Interview, turns []models.TranscriptTurn) error
	UpdateFeedback(interview *models.Interview, feedback *models.Feedback) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByIDAndUser(id, userID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) FindAllByUser(userID uuid.UUID) ([]models.Interview, error) {
	var interviews []models.Interview
	if err := r.db.Where("user_id = ?", userID).Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) DeleteByIDAndUser(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Interview{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete interview: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTranscript replaces the transcript wholesale and advances the status
// to completed. The write is guarded by the version the caller read.
func (r *interviewRepository) UpdateTranscript(interview *models.Interview, turns []models.TranscriptTurn) error {
	updates := models.Interview{
		Transcript: turns,
		Status:     models.StatusCompleted,
		Version:    interview.Version + 1,
		UpdatedAt:  time.Now(),
	}

	result := r.db.Model(&models.Interview{}).
		Where("id = ? AND user_id = ? AND version = ?", interview.ID, interview.UserID, interview.Version).
		Select("transcript", "status", "version", "updated_at").
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update transcript: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	interview.Transcript = turns
	interview.Status = updates.Status
	interview.Version = updates.Version
	interview.UpdatedAt = updates.UpdatedAt
	return nil
}

// UpdateFeedback commits the feedback and the finalized flag in a single
// version-guarded write. Nothing is persisted on failure.
func (r *interviewRepository) UpdateFeedback(interview *models.Interview, feedback *models.Feedback) error {
	updates := models.Interview{
		Feedback:  feedback,
		Finalized: true,
		Version:   interview.Version + 1,
		UpdatedAt: time.Now(),
	}

	result := r.db.Model(&models.Interview{}).
		Where("id = ? AND user_id = ? AND version = ?", interview.ID, interview.UserID, interview.Version).
		Select("feedback", "finalized", "version", "updated_at").
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	interview.Feedback = feedback
	interview.Finalized = true
	interview.Version = updates.Version
	interview.UpdatedAt = updates.UpdatedAt
	return nil
}
