package services

import "errors"

var (
	// ErrEmptyTranscript is returned when a transcript operation is attempted
	// without any turns, checked before any provider call is made.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrFeedbackFinalized rejects regenerating feedback that has already
	// been committed.
	ErrFeedbackFinalized = errors.New("feedback already finalized")

	// ErrNoQuestionArray is returned when the model output contains no
	// bracket-delimited JSON array.
	ErrNoQuestionArray = errors.New("no question array in model output")
)
