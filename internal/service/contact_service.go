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
	ErrRateLimited        = errors.New("too many requests, please try again later")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrStorageUnavailable = errors.New("failed to save form submission")
)

const (
	contactRateScope  = "contact"
	contactRateWindow = time.Hour
)

// ContactService runs the contact form pipeline: spam checks, storage, forwarding
type ContactService struct {
	leadRepo    repository.LeadRepo
	limiter     cache.RateLimitCache
	stats       cache.LeadStatsCache
	webhooks    *webhookDispatcher
	metrics     *metrics.Metrics
	cfg         config.ContactConfig
	broadcaster Broadcaster
	now         func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(
	leadRepo repository.LeadRepo,
	limiter cache.RateLimitCache,
	stats cache.LeadStatsCache,
	forwarder Forwarder,
	m *metrics.Metrics,
	cfg config.ContactConfig,
	webhook config.WebhookConfig,
) *ContactService {
	return &ContactService{
		leadRepo: leadRepo,
		limiter:  limiter,
		stats:    stats,
		webhooks: newWebhookDispatcher(forwarder, webhook),
		metrics:  m,
		cfg:      cfg,
		now:      time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ContactService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit handles one contact form post from clientIP.
// Bot submissions get a success response so they cannot tell they were dropped.
func (s *ContactService) Submit(ctx context.Context, req *model.ContactRequest, clientIP string) (*model.ContactResponse, error) {
	if strings.TrimSpace(req.Honeypot) != "" {
		log.Println("[Contact] Spam detected: honeypot field filled")
		s.metrics.ObserveContact("spam_honeypot")
		return &model.ContactResponse{Success: true}, nil
	}

	if req.SubmissionTime > 0 {
		elapsed := s.now().UnixMilli() - req.SubmissionTime
		if elapsed < int64(s.cfg.MinFillMS) {
			log.Println("[Contact] Spam detected: form submitted too quickly")
			s.metrics.ObserveContact("spam_timing")
			return &model.ContactResponse{Success: true}, nil
		}
	}

	if clientIP == "" {
		clientIP = "unknown"
	}
	if s.cfg.MaxPerHour > 0 {
		count, err := s.limiter.Hit(ctx, contactRateScope, clientIP, contactRateWindow)
		if err != nil {
			// fail open, the form is more valuable than the limit
			log.Printf("[Contact] Rate limit check failed: %v", err)
		} else if count > int64(s.cfg.MaxPerHour) {
			log.Printf("[Contact] Rate limit exceeded for IP: %s", clientIP)
			s.metrics.ObserveContact("rate_limited")
			return nil, ErrRateLimited
		}
	}

	if req.Name == "" || req.Phone == "" || req.Email == "" || req.Message == "" || req.BusinessName == "" {
		s.metrics.ObserveContact("invalid")
		return nil, ErrMissingFields
	}
	if !assessment.IsEmail(req.Email) {
		s.metrics.ObserveContact("invalid")
		return nil, ErrInvalidEmail
	}

	submittedAt := s.now()
	lead := &model.Lead{
		BusinessName:  req.BusinessName,
		CustomerName:  req.Name,
		CustomerPhone: req.Phone,
		CustomerEmail: req.Email,
		Message:       req.Message,
		ServiceType:   "General Inquiry",
		Urgency:       model.LeadUrgencyMedium,
		Status:        model.LeadNew,
		Source:        model.SourceContactForm,
		CreatedAt:     submittedAt,
	}
	if _, err := s.leadRepo.Create(ctx, lead); err != nil {
		log.Printf("[Contact] Insert error: %v", err)
		s.metrics.ObserveContact("storage_error")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.metrics.ObserveContact("stored")

	if s.stats != nil {
		if err := s.stats.Increment(ctx, lead.BusinessName, lead.Urgency); err != nil {
			log.Printf("[Contact] Failed to update lead stats: %v", err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins(EventLeadCreated, lead)
	}

	// Lead is already stored, webhook failures are only logged
	s.webhooks.dispatch(ctx, req.WebhookURL, model.LeadWebhookPayload{
		BusinessName:  req.BusinessName,
		CustomerName:  req.Name,
		CustomerPhone: req.Phone,
		CustomerEmail: req.Email,
		Message:       req.Message,
		SubmittedAt:   submittedAt.UTC().Format(time.RFC3339),
	}, func(err error) {
		if err != nil {
			log.Printf("[Contact] Webhook error: %v", err)
			s.metrics.ObserveWebhook("lead", "failed")
			return
		}
		s.metrics.ObserveWebhook("lead", "sent")
	})

	return &model.ContactResponse{Success: true, Message: "Form submitted successfully!"}, nil
}

// WaitForWebhooks blocks until background webhook deliveries finish
func (s *ContactService) WaitForWebhooks() {
	s.webhooks.wait()
}
