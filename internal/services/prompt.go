package services

import (
	"fmt"
	"strings"

	"mockmate/interview-api/internal/models"
)

// FeedbackCategories is the fixed rubric. The provider is instructed to score
// exactly these five, in this order.
var FeedbackCategories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem Solving",
	"Cultural Fit",
	"Confidence and Clarity",
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt creates the prompt for interview question generation.
func (pb *PromptBuilder) BuildQuestionPrompt(role, experienceLevel, interviewType string, numQuestions int) string {
	return fmt.Sprintf(`Prepare exactly %d %s interview questions for the role "%s" at %s level.
Return them as a JSON array like: ["Q1", "Q2", ..., "Q%d"]
Do not include explanations or markdown.`,
		numQuestions, interviewType, role, experienceLevel, numQuestions)
}

// BuildFeedbackPrompt creates the prompt for transcript evaluation.
func (pb *PromptBuilder) BuildFeedbackPrompt(interview *models.Interview) string {
	var categories []string
	for i, name := range FeedbackCategories {
		categories = append(categories, fmt.Sprintf("%d. %s", i+1, name))
	}

	return fmt.Sprintf(`You are an AI interviewer analyzing a mock interview for a %s "%s" position at %s level.
Your task is to evaluate the candidate based on the transcript below. Be thorough and detailed.
Don't be lenient with the candidate: if there are mistakes or areas for improvement, point them out.

TRANSCRIPT:
%s

Score the candidate from 0 to 100 in each of the following categories. Do not add categories other than these:
%s

Also provide a total score (0-100), the candidate's strengths, areas for improvement, and a final assessment.`,
		interview.InterviewType,
		interview.Role,
		interview.ExperienceLevel,
		pb.FormatTranscript(interview.Transcript),
		strings.Join(categories, "\n"))
}

// FormatTranscript renders the transcript one line per turn.
func (pb *PromptBuilder) FormatTranscript(turns []models.TranscriptTurn) string {
	var lines []string
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("- %s: %s", turn.Speaker, strings.TrimSpace(turn.Text)))
	}
	return strings.Join(lines, "\n")
}
