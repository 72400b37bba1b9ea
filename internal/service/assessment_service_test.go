package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/internal/assessment"
	"leadforge/internal/config"
	"leadforge/internal/metrics"
	"leadforge/internal/model"
)

type assessmentFixture struct {
	svc     *AssessmentService
	subs    *memSubmissionRepo
	leads   *memLeadRepo
	results *memResultsCache
	stats   *memLeadStatsCache
	hooks   *recordingForwarder
	events  *recordingBroadcaster
}

func newAssessmentFixture(webhookURL string) *assessmentFixture {
	f := &assessmentFixture{
		subs:    &memSubmissionRepo{},
		leads:   &memLeadRepo{},
		results: &memResultsCache{},
		stats:   &memLeadStatsCache{},
		hooks:   &recordingForwarder{},
		events:  &recordingBroadcaster{},
	}
	f.svc = NewAssessmentService(nil, f.subs, f.leads, f.results, f.stats, f.hooks,
		metrics.MustNew(prometheus.NewRegistry()), config.WebhookConfig{URL: webhookURL})
	f.svc.now = func() time.Time { return time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC) }
	f.svc.SetBroadcaster(f.events)
	return f
}

func emergencyRequest() *model.SubmitQuizRequest {
	return &model.SubmitQuizRequest{
		BusinessName: "Demo HVAC Co",
		Answers: map[string]string{
			"name":             "Sam Rivera",
			"system_age":       "16+",
			"last_maintenance": "never",
			"comfort":          "both",
			"energy_bills":     "significant",
			"issues":           "not_working",
			"urgency":          "emergency",
			"timeline":         "asap",
		},
		Email: "sam@example.com",
		Phone: "555-222-3333",
	}
}

func TestAssessmentService_Questions(t *testing.T) {
	f := newAssessmentFixture("")

	views := f.svc.Questions()
	require.Len(t, views, assessment.DefaultCatalog().TotalQuestions())
	assert.Equal(t, "name", views[0].ID)

	var contact, choice int
	for _, v := range views {
		if v.Composite == assessment.AnswerContact {
			contact++
		}
		if v.Type == string(assessment.KindRadio) {
			choice++
			assert.NotEmpty(t, v.Options)
		}
	}
	assert.Equal(t, 1, contact)
	assert.Equal(t, 7, choice)
}

func TestAssessmentService_ValidateStep(t *testing.T) {
	f := newAssessmentFixture("")

	resp, err := f.svc.ValidateStep(&model.ValidateStepRequest{QuestionID: "contact", Email: "a@b.co", Phone: "5551234567"})
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	resp, err = f.svc.ValidateStep(&model.ValidateStepRequest{QuestionID: "contact", Email: "a@b.co", Phone: "555"})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Message)

	resp, err = f.svc.ValidateStep(&model.ValidateStepRequest{QuestionID: "additional_info"})
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	_, err = f.svc.ValidateStep(&model.ValidateStepRequest{QuestionID: "favorite_color"})
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestAssessmentService_Submit(t *testing.T) {
	f := newAssessmentFixture("https://hooks.example.com/quiz")
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, emergencyRequest())
	require.NoError(t, err)
	f.svc.WaitForWebhooks()
	assert.Equal(t, "sub-1", resp.SubmissionID)
	assert.Equal(t, assessment.UrgencyEmergency, resp.Results.Score.Urgency)
	assert.Equal(t, 100, resp.Results.Score.Percentage)

	stored := f.subs.subs["sub-1"]
	require.NotNil(t, stored)
	assert.Equal(t, "sam@example.com", stored.Answers["email"])
	assert.Equal(t, "555-222-3333", stored.Answers["phone"])

	require.Len(t, f.leads.leads, 1)
	lead := f.leads.leads[0]
	assert.Equal(t, model.SourceAssessment, lead.Source)
	assert.Equal(t, model.LeadUrgencyHigh, lead.Urgency)
	assert.Equal(t, "Sam Rivera", lead.CustomerName)
	assert.Equal(t, "sub-1", lead.SubmissionID)

	require.Len(t, f.hooks.calls, 1)
	payload, ok := f.hooks.calls[0].payload.(model.QuizWebhookPayload)
	require.True(t, ok)
	assert.Equal(t, "quiz_submission", payload.Type)
	assert.Equal(t, "2026-01-05T09:30:00Z", payload.SubmittedAt)

	stats, _ := f.stats.Get(ctx, "Demo HVAC Co")
	assert.Equal(t, int64(1), stats.High)
	require.Len(t, f.events.events, 1)

	cached, err := f.svc.Results(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, resp.Results.Score, cached.Score)
}

func TestAssessmentService_SubmitSurvivesFailures(t *testing.T) {
	f := newAssessmentFixture("https://hooks.example.com/quiz")
	f.subs.failing = true
	f.leads.failing = true
	f.hooks.err = errBackend

	resp, err := f.svc.Submit(context.Background(), emergencyRequest())
	require.NoError(t, err)
	f.svc.WaitForWebhooks()
	assert.Empty(t, resp.SubmissionID)
	assert.Equal(t, assessment.UrgencyEmergency, resp.Results.Score.Urgency)
	assert.Empty(t, f.events.events)
}

func TestAssessmentService_SubmitEmpty(t *testing.T) {
	f := newAssessmentFixture("")
	_, err := f.svc.Submit(context.Background(), &model.SubmitQuizRequest{BusinessName: "Demo HVAC Co"})
	assert.ErrorIs(t, err, ErrInvalidAnswers)
}

func TestAssessmentService_SubmitWithoutContactSkipsLead(t *testing.T) {
	f := newAssessmentFixture("")
	resp, err := f.svc.Submit(context.Background(), &model.SubmitQuizRequest{
		BusinessName: "Demo HVAC Co",
		Answers:      map[string]string{"system_age": "0-5"},
	})
	require.NoError(t, err)
	assert.Equal(t, assessment.UrgencyPlanning, resp.Results.Score.Urgency)
	f.svc.WaitForWebhooks()
	assert.Empty(t, f.leads.leads)
	assert.Empty(t, f.hooks.calls)
}

func TestAssessmentService_ResultsFallsBackToStore(t *testing.T) {
	f := newAssessmentFixture("")
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, emergencyRequest())
	require.NoError(t, err)
	f.results.results = nil

	res, err := f.svc.Results(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, assessment.UrgencyEmergency, res.Score.Urgency)
	assert.NotNil(t, f.results.results["sub-1"], "results should be re-cached")

	_, err = f.svc.Results(ctx, "missing")
	assert.ErrorIs(t, err, ErrSubmissionMissing)
}

func TestAssessmentService_SubmitIgnoresUnlistedWebhook(t *testing.T) {
	f := newAssessmentFixture("")
	req := emergencyRequest()
	req.WebhookURL = "http://169.254.169.254/latest/meta-data"

	_, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	f.svc.WaitForWebhooks()
	assert.Empty(t, f.hooks.calls)
	assert.Len(t, f.leads.leads, 1)
}
