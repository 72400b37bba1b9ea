package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"leadforge/internal/assessment"
	"leadforge/internal/model"
)

var errBackend = errors.New("backend unavailable")

type memLeadRepo struct {
	mu      sync.Mutex
	leads   []*model.Lead
	failing bool
}

func (r *memLeadRepo) Create(_ context.Context, lead *model.Lead) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return "", errBackend
	}
	lead.ID = fmt.Sprintf("lead-%d", len(r.leads)+1)
	if lead.Status == "" {
		lead.Status = model.LeadNew
	}
	cp := *lead
	r.leads = append(r.leads, &cp)
	return lead.ID, nil
}

func (r *memLeadRepo) GetByID(_ context.Context, id string) (*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLeadRepo) ListByBusiness(_ context.Context, businessName string, limit int) ([]*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errBackend
	}
	out := []*model.Lead{}
	for _, l := range r.leads {
		if l.BusinessName == businessName {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memLeadRepo) UpdateStatus(_ context.Context, id string, status model.LeadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			l.Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *memLeadRepo) CountByBusiness(_ context.Context, businessName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return 0, errBackend
	}
	var n int64
	for _, l := range r.leads {
		if l.BusinessName == businessName && l.Urgency != "" {
			n++
		}
	}
	return n, nil
}

type memSubmissionRepo struct {
	mu      sync.Mutex
	subs    map[string]*model.QuizSubmission
	failing bool
}

func (r *memSubmissionRepo) Create(_ context.Context, sub *model.QuizSubmission) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return "", errBackend
	}
	if r.subs == nil {
		r.subs = map[string]*model.QuizSubmission{}
	}
	sub.ID = fmt.Sprintf("sub-%d", len(r.subs)+1)
	cp := *sub
	r.subs[sub.ID] = &cp
	return sub.ID, nil
}

func (r *memSubmissionRepo) GetByID(_ context.Context, id string) (*model.QuizSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub, ok := r.subs[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

type memResultsCache struct {
	mu      sync.Mutex
	results map[string]*assessment.QuizResults
	gets    int
}

func (c *memResultsCache) SetResults(_ context.Context, id string, results *assessment.QuizResults) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.results == nil {
		c.results = map[string]*assessment.QuizResults{}
	}
	c.results[id] = results
	return nil
}

func (c *memResultsCache) GetResults(_ context.Context, id string) (*assessment.QuizResults, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.results[id], nil
}

type memRateLimitCache struct {
	mu      sync.Mutex
	counts  map[string]int64
	failing bool
}

func (c *memRateLimitCache) Hit(_ context.Context, scope, clientKey string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return 0, errBackend
	}
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	key := scope + ":" + clientKey
	c.counts[key]++
	return c.counts[key], nil
}

type memLeadStatsCache struct {
	mu    sync.Mutex
	stats map[string]*model.LeadStats
}

func (c *memLeadStatsCache) Increment(_ context.Context, businessName string, urgency model.LeadUrgency) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		c.stats = map[string]*model.LeadStats{}
	}
	s, ok := c.stats[businessName]
	if !ok {
		s = &model.LeadStats{}
		c.stats[businessName] = s
	}
	switch urgency {
	case model.LeadUrgencyHigh:
		s.High++
	case model.LeadUrgencyMedium:
		s.Medium++
	case model.LeadUrgencyLow:
		s.Low++
	}
	s.Total++
	return nil
}

func (c *memLeadStatsCache) Get(_ context.Context, businessName string) (*model.LeadStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.stats[businessName]; ok {
		cp := *s
		return &cp, nil
	}
	return &model.LeadStats{}, nil
}

func (c *memLeadStatsCache) Set(_ context.Context, businessName string, stats *model.LeadStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		c.stats = map[string]*model.LeadStats{}
	}
	cp := *stats
	c.stats[businessName] = &cp
	return nil
}

type forwardCall struct {
	url     string
	payload interface{}
}

type recordingForwarder struct {
	mu    sync.Mutex
	calls []forwardCall
	err   error
}

func (f *recordingForwarder) Forward(_ context.Context, url string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if url == "" {
		return nil
	}
	f.calls = append(f.calls, forwardCall{url: url, payload: payload})
	return f.err
}

type broadcastEvent struct {
	msgType string
	payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (b *recordingBroadcaster) BroadcastToAdmins(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{msgType: msgType, payload: payload})
}
