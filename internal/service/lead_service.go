package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"leadforge/internal/cache"
	"leadforge/internal/model"
	"leadforge/internal/repository"
)

var (
	ErrInvalidStatus = errors.New("invalid lead status")
	ErrLeadNotFound  = errors.New("lead not found")
)

const defaultLeadLimit = 50

var csvHeader = []string{"Date", "Name", "Phone", "Email", "Service Type", "Urgency", "Status", "Message"}

// csvDateLayout mirrors the dashboard's short date+time display
const csvDateLayout = "1/2/2006, 3:04 PM"

// LeadService backs the admin dashboard
type LeadService struct {
	leadRepo    repository.LeadRepo
	stats       cache.LeadStatsCache
	broadcaster Broadcaster
	now         func() time.Time
}

// NewLeadService creates a new lead service
func NewLeadService(leadRepo repository.LeadRepo, stats cache.LeadStatsCache) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		stats:    stats,
		now:      time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *LeadService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// List returns the newest leads for a business
func (s *LeadService) List(ctx context.Context, businessName string, limit int) ([]*model.Lead, error) {
	if limit <= 0 {
		limit = defaultLeadLimit
	}
	return s.leadRepo.ListByBusiness(ctx, businessName, limit)
}

// ExportCSV writes leads as CSV with every cell quoted
func (s *LeadService) ExportCSV(w io.Writer, leads []*model.Lead) error {
	if err := writeCSVRow(w, csvHeader); err != nil {
		return err
	}
	for _, l := range leads {
		row := []string{
			l.CreatedAt.UTC().Format(csvDateLayout),
			l.CustomerName,
			l.CustomerPhone,
			l.CustomerEmail,
			l.ServiceType,
			string(l.Urgency),
			string(l.Status),
			l.Message,
		}
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}

var filenameUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// CSVFilename names an export as leads-<business>-YYYY-MM-DD.csv
func (s *LeadService) CSVFilename(businessName string) string {
	name := strings.Trim(filenameUnsafe.ReplaceAllString(strings.ToLower(businessName), "-"), "-")
	if name == "" {
		name = "all"
	}
	return fmt.Sprintf("leads-%s-%s.csv", name, s.now().Format("2006-01-02"))
}

// UpdateStatus moves a lead through New, Contacted and Qualified
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.leadRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins(EventLeadUpdated, lead)
	}
	return lead, nil
}

// Stats returns urgency counters. Cached counters are trusted only while their
// total matches the stored lead count; otherwise they are rebuilt from storage.
func (s *LeadService) Stats(ctx context.Context, businessName string) (*model.LeadStats, error) {
	var cached *model.LeadStats
	if s.stats != nil {
		stats, err := s.stats.Get(ctx, businessName)
		if err != nil {
			log.Printf("[Leads] Stats cache error: %v", err)
		} else {
			cached = stats
		}
	}

	stored, err := s.leadRepo.CountByBusiness(ctx, businessName)
	if err != nil {
		if cached != nil && cached.Total > 0 {
			log.Printf("[Leads] Count failed, serving cached stats: %v", err)
			return cached, nil
		}
		return nil, err
	}
	if cached != nil && cached.Total == stored {
		return cached, nil
	}

	leads, err := s.leadRepo.ListByBusiness(ctx, businessName, 0)
	if err != nil {
		return nil, err
	}
	stats := CountLeads(leads)
	if s.stats != nil {
		if err := s.stats.Set(ctx, businessName, stats); err != nil {
			log.Printf("[Leads] Failed to rebuild stats cache: %v", err)
		}
	}
	return stats, nil
}

// CountLeads tallies leads per urgency
func CountLeads(leads []*model.Lead) *model.LeadStats {
	stats := &model.LeadStats{}
	for _, l := range leads {
		switch l.Urgency {
		case model.LeadUrgencyHigh:
			stats.High++
		case model.LeadUrgencyMedium:
			stats.Medium++
		case model.LeadUrgencyLow:
			stats.Low++
		default:
			continue
		}
		stats.Total++
	}
	return stats
}
