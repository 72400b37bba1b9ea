package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/internal/model"
)

func seedLeads(t *testing.T, repo *memLeadRepo) {
	t.Helper()
	base := time.Date(2026, 2, 14, 14, 5, 0, 0, time.UTC)
	leads := []*model.Lead{
		{BusinessName: "Demo HVAC Co", CustomerName: "Ann", Urgency: model.LeadUrgencyHigh, ServiceType: "AC Repair", CreatedAt: base},
		{BusinessName: "Demo HVAC Co", CustomerName: "Ben", Urgency: model.LeadUrgencyLow, ServiceType: "Tune-up", CreatedAt: base.Add(time.Hour)},
		{BusinessName: "Demo HVAC Co", CustomerName: "Cy", Urgency: model.LeadUrgencyMedium, ServiceType: "Furnace", CreatedAt: base.Add(2 * time.Hour)},
		{BusinessName: "Other Plumbing", CustomerName: "Dee", Urgency: model.LeadUrgencyHigh, CreatedAt: base},
	}
	for _, l := range leads {
		_, err := repo.Create(context.Background(), l)
		require.NoError(t, err)
	}
}

func TestLeadService_List(t *testing.T) {
	repo := &memLeadRepo{}
	seedLeads(t, repo)
	svc := NewLeadService(repo, nil)

	leads, err := svc.List(context.Background(), "Demo HVAC Co", 0)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, "Cy", leads[0].CustomerName, "newest first")

	leads, err = svc.List(context.Background(), "Demo HVAC Co", 2)
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestLeadService_ExportCSV(t *testing.T) {
	svc := NewLeadService(&memLeadRepo{}, nil)
	leads := []*model.Lead{{
		CustomerName:  "Pat \"PJ\" Jones",
		CustomerPhone: "555-123-4567",
		CustomerEmail: "pat@example.com",
		ServiceType:   "AC Repair",
		Urgency:       model.LeadUrgencyHigh,
		Status:        model.LeadNew,
		Message:       "Unit is leaking, please call",
		CreatedAt:     time.Date(2026, 2, 14, 14, 5, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf, leads))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Date","Name","Phone","Email","Service Type","Urgency","Status","Message"`, lines[0])
	assert.Equal(t,
		`"2/14/2026, 2:05 PM","Pat ""PJ"" Jones","555-123-4567","pat@example.com","AC Repair","High","New","Unit is leaking, please call"`,
		lines[1])
}

func TestLeadService_CSVFilename(t *testing.T) {
	svc := NewLeadService(&memLeadRepo{}, nil)
	svc.now = func() time.Time { return time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC) }

	assert.Equal(t, "leads-demo-hvac-co-2026-02-14.csv", svc.CSVFilename("Demo HVAC Co."))
	assert.Equal(t, "leads-all-2026-02-14.csv", svc.CSVFilename(""))
}

func TestLeadService_UpdateStatus(t *testing.T) {
	repo := &memLeadRepo{}
	seedLeads(t, repo)
	events := &recordingBroadcaster{}
	svc := NewLeadService(repo, nil)
	svc.SetBroadcaster(events)

	lead, err := svc.UpdateStatus(context.Background(), "lead-1", model.LeadContacted)
	require.NoError(t, err)
	assert.Equal(t, model.LeadContacted, lead.Status)
	require.Len(t, events.events, 1)
	assert.Equal(t, EventLeadUpdated, events.events[0].msgType)

	_, err = svc.UpdateStatus(context.Background(), "lead-1", model.LeadStatus("Closed"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), "lead-99", model.LeadQualified)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestLeadService_Stats(t *testing.T) {
	repo := &memLeadRepo{}
	seedLeads(t, repo)

	// empty cache falls back to counting stored leads
	svc := NewLeadService(repo, &memLeadStatsCache{})
	stats, err := svc.Stats(context.Background(), "Demo HVAC Co")
	require.NoError(t, err)
	assert.Equal(t, model.LeadStats{High: 1, Medium: 1, Low: 1, Total: 3}, *stats)

	// counters that agree with storage are served as is
	cached := &memLeadStatsCache{}
	require.NoError(t, cached.Set(context.Background(), "Demo HVAC Co", &model.LeadStats{High: 2, Low: 1, Total: 3}))
	svc = NewLeadService(repo, cached)
	stats, err = svc.Stats(context.Background(), "Demo HVAC Co")
	require.NoError(t, err)
	assert.Equal(t, model.LeadStats{High: 2, Low: 1, Total: 3}, *stats)
}

func TestLeadService_StatsRebuildsDriftedCache(t *testing.T) {
	repo := &memLeadRepo{}
	seedLeads(t, repo)
	ctx := context.Background()

	// a flushed cache that has only seen one new lead since
	cached := &memLeadStatsCache{}
	require.NoError(t, cached.Increment(ctx, "Demo HVAC Co", model.LeadUrgencyHigh))

	svc := NewLeadService(repo, cached)
	stats, err := svc.Stats(ctx, "Demo HVAC Co")
	require.NoError(t, err)
	want := model.LeadStats{High: 1, Medium: 1, Low: 1, Total: 3}
	assert.Equal(t, want, *stats)

	rebuilt, err := cached.Get(ctx, "Demo HVAC Co")
	require.NoError(t, err)
	assert.Equal(t, want, *rebuilt)
}

func TestLeadService_StatsServesCacheWhenCountFails(t *testing.T) {
	repo := &memLeadRepo{}
	seedLeads(t, repo)
	repo.failing = true
	ctx := context.Background()

	cached := &memLeadStatsCache{}
	require.NoError(t, cached.Increment(ctx, "Demo HVAC Co", model.LeadUrgencyLow))
	stats, err := NewLeadService(repo, cached).Stats(ctx, "Demo HVAC Co")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Low)

	_, err = NewLeadService(repo, &memLeadStatsCache{}).Stats(ctx, "Demo HVAC Co")
	assert.ErrorIs(t, err, errBackend)
}
