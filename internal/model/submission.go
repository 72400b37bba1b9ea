package model

import (
	"time"

	"leadforge/internal/assessment"
)

// QuizSubmission is a completed assessment and its computed results
type QuizSubmission struct {
	ID           string                 `json:"id" bson:"_id,omitempty"`
	BusinessName string                 `json:"businessName" bson:"businessName"`
	Answers      map[string]string      `json:"answers" bson:"answers"`
	Results      assessment.QuizResults `json:"results" bson:"results"`
	SubmittedAt  time.Time              `json:"submittedAt" bson:"submittedAt"`
}

// SubmitQuizRequest is the body posted when the quiz is finished
type SubmitQuizRequest struct {
	BusinessName string            `json:"businessName"`
	Answers      map[string]string `json:"answers"`
	Email        string            `json:"email,omitempty"` // Contact question halves
	Phone        string            `json:"phone,omitempty"`
	WebhookURL   string            `json:"webhookUrl,omitempty"`
}

// SubmitQuizResponse carries the results and, when stored, the submission id
type SubmitQuizResponse struct {
	SubmissionID string                 `json:"submissionId,omitempty"`
	Results      assessment.QuizResults `json:"results"`
}

// ValidateStepRequest checks one quiz step
type ValidateStepRequest struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// ValidateStepResponse reports whether the quiz can advance
type ValidateStepResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// QuizWebhookPayload is forwarded for completed assessments
type QuizWebhookPayload struct {
	Type         string            `json:"type"` // always "quiz_submission"
	BusinessName string            `json:"businessName"`
	Answers      map[string]string `json:"answers"`
	SubmittedAt  string            `json:"submittedAt"`
}

// OptionView is a choice as sent to the quiz page
type OptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// QuestionView is a question as sent to the quiz page
type QuestionView struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Question    string       `json:"question"`
	Description string       `json:"description,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
	Required    bool         `json:"required"`
	Composite   string       `json:"composite,omitempty"` // "contact" for the email+phone step
}
