package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"leadforge/internal/assessment"
	"leadforge/internal/cache"
	"leadforge/internal/config"
	"leadforge/internal/metrics"
	"leadforge/internal/model"
	"leadforge/internal/repository"
)

var (
	ErrInvalidAnswers    = errors.New("no answers submitted")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrSubmissionMissing = errors.New("submission not found")
)

const quizWebhookType = "quiz_submission"

// AssessmentService serves the quiz and records completed submissions
type AssessmentService struct {
	catalog     *assessment.Catalog
	subRepo     repository.SubmissionRepo
	leadRepo    repository.LeadRepo
	results     cache.ResultsCache
	stats       cache.LeadStatsCache
	webhooks    *webhookDispatcher
	metrics     *metrics.Metrics
	broadcaster Broadcaster
	now         func() time.Time
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	catalog *assessment.Catalog,
	subRepo repository.SubmissionRepo,
	leadRepo repository.LeadRepo,
	results cache.ResultsCache,
	stats cache.LeadStatsCache,
	forwarder Forwarder,
	m *metrics.Metrics,
	webhook config.WebhookConfig,
) *AssessmentService {
	if catalog == nil {
		catalog = assessment.DefaultCatalog()
	}
	for _, w := range catalog.Warnings() {
		log.Printf("[Assessment] Catalog warning: %s", w)
	}
	return &AssessmentService{
		catalog:  catalog,
		subRepo:  subRepo,
		leadRepo: leadRepo,
		results:  results,
		stats:    stats,
		webhooks: newWebhookDispatcher(forwarder, webhook),
		metrics:  m,
		now:      time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Questions returns the quiz in presentation order
func (s *AssessmentService) Questions() []model.QuestionView {
	questions := s.catalog.Questions()
	views := make([]model.QuestionView, 0, len(questions))
	for _, q := range questions {
		view := model.QuestionView{
			ID:          q.ID,
			Type:        string(q.Kind),
			Question:    q.Prompt,
			Description: q.HelperText,
			Placeholder: q.Placeholder,
			Required:    q.Required,
		}
		if q.IsContact() {
			view.Composite = assessment.AnswerContact
		}
		for _, opt := range q.Options() {
			view.Options = append(view.Options, model.OptionView{Value: opt.Value, Label: opt.Label})
		}
		views = append(views, view)
	}
	return views
}

// ValidateStep reports whether the quiz may advance past one question
func (s *AssessmentService) ValidateStep(req *model.ValidateStepRequest) (*model.ValidateStepResponse, error) {
	q, ok := s.catalog.Lookup(req.QuestionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, req.QuestionID)
	}

	answers := assessment.AnswerMap{
		q.ID:                   req.Answer,
		assessment.AnswerEmail: req.Email,
		assessment.AnswerPhone: req.Phone,
	}
	if assessment.ValidateStep(q, answers) {
		return &model.ValidateStepResponse{Valid: true}, nil
	}
	return &model.ValidateStepResponse{Valid: false, Message: invalidStepMessage(q)}, nil
}

func invalidStepMessage(q assessment.Question) string {
	switch {
	case q.IsContact():
		return "Please enter a valid email and a phone number with at least 10 digits"
	case q.Kind == assessment.KindEmail:
		return "Please enter a valid email address"
	case q.Kind == assessment.KindPhone:
		return "Please enter a phone number with at least 10 digits"
	default:
		return "This question requires an answer"
	}
}

// Submit scores a finished quiz and records it. Results are computed before
// any storage call and are returned even when persistence or forwarding fails.
func (s *AssessmentService) Submit(ctx context.Context, req *model.SubmitQuizRequest) (*model.SubmitQuizResponse, error) {
	answers := make(assessment.AnswerMap, len(req.Answers)+2)
	for k, v := range req.Answers {
		answers[k] = v
	}
	if req.Email != "" {
		answers[assessment.AnswerEmail] = req.Email
	}
	if req.Phone != "" {
		answers[assessment.AnswerPhone] = req.Phone
	}
	if len(answers) == 0 {
		return nil, ErrInvalidAnswers
	}

	results := s.catalog.GenerateQuizResults(answers)
	s.metrics.ObserveQuiz(string(results.Score.Urgency))
	resp := &model.SubmitQuizResponse{Results: results}

	submittedAt := s.now()
	sub := &model.QuizSubmission{
		BusinessName: req.BusinessName,
		Answers:      answers,
		Results:      results,
		SubmittedAt:  submittedAt,
	}
	if id, err := s.subRepo.Create(ctx, sub); err != nil {
		log.Printf("[Assessment] Failed to store submission: %v", err)
	} else {
		resp.SubmissionID = id
		if err := s.results.SetResults(ctx, id, &results); err != nil {
			log.Printf("[Assessment] Failed to cache results for %s: %v", id, err)
		}
	}

	s.recordLead(ctx, req.BusinessName, answers, results, resp.SubmissionID, submittedAt)

	s.webhooks.dispatch(ctx, req.WebhookURL, model.QuizWebhookPayload{
		Type:         quizWebhookType,
		BusinessName: req.BusinessName,
		Answers:      answers,
		SubmittedAt:  submittedAt.UTC().Format(time.RFC3339),
	}, func(err error) {
		if err != nil {
			log.Printf("[Assessment] Webhook error: %v", err)
			s.metrics.ObserveWebhook("quiz", "failed")
			return
		}
		s.metrics.ObserveWebhook("quiz", "sent")
	})

	return resp, nil
}

// recordLead turns a submission into an admin lead when it carries contact details
func (s *AssessmentService) recordLead(ctx context.Context, businessName string, answers assessment.AnswerMap, results assessment.QuizResults, submissionID string, at time.Time) {
	email, phone := answers.Get(assessment.AnswerEmail), answers.Get(assessment.AnswerPhone)
	if businessName == "" || (email == "" && phone == "") {
		return
	}

	lead := &model.Lead{
		BusinessName:  businessName,
		CustomerName:  answers.Get(assessment.AnswerName),
		CustomerPhone: phone,
		CustomerEmail: email,
		Message:       leadMessage(answers, results),
		ServiceType:   results.Score.UrgencyLabel,
		Urgency:       model.LeadUrgencyFor(results.Score.Urgency),
		Status:        model.LeadNew,
		Source:        model.SourceAssessment,
		SubmissionID:  submissionID,
		CreatedAt:     at,
	}
	if _, err := s.leadRepo.Create(ctx, lead); err != nil {
		log.Printf("[Assessment] Failed to store lead: %v", err)
		return
	}
	if s.stats != nil {
		if err := s.stats.Increment(ctx, businessName, lead.Urgency); err != nil {
			log.Printf("[Assessment] Failed to update lead stats: %v", err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins(EventLeadCreated, lead)
	}
}

func leadMessage(answers assessment.AnswerMap, results assessment.QuizResults) string {
	parts := []string{fmt.Sprintf("Assessment score %d%%", results.Score.Percentage)}
	for _, in := range results.Insights {
		parts = append(parts, in.Title)
	}
	if extra := strings.TrimSpace(answers.Get(assessment.AnswerAdditionalInfo)); extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, ". ")
}

// Results returns stored results, reading through the cache
func (s *AssessmentService) Results(ctx context.Context, submissionID string) (*assessment.QuizResults, error) {
	if cached, err := s.results.GetResults(ctx, submissionID); err != nil {
		log.Printf("[Assessment] Results cache error: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	sub, err := s.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionMissing
	}

	if err := s.results.SetResults(ctx, submissionID, &sub.Results); err != nil {
		log.Printf("[Assessment] Failed to cache results for %s: %v", submissionID, err)
	}
	return &sub.Results, nil
}

// WaitForWebhooks blocks until background webhook deliveries finish
func (s *AssessmentService) WaitForWebhooks() {
	s.webhooks.wait()
}
