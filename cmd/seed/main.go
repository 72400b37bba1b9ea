package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadforge/internal/cache"
	"leadforge/internal/config"
	"leadforge/internal/model"
	"leadforge/internal/repository"
)

type demoLead struct {
	ago         time.Duration
	name        string
	phone       string
	email       string
	message     string
	serviceType string
	urgency     model.LeadUrgency
	status      model.LeadStatus
}

const day = 24 * time.Hour

var demoLeads = []demoLead{
	{2 * time.Hour, "John Martinez", "(312) 555-0123", "john.martinez@email.com", "AC not cooling properly. Need someone to come take a look ASAP.", "AC Repair", model.LeadUrgencyHigh, model.LeadNew},
	{5 * time.Hour, "Sarah Johnson", "(312) 555-0198", "s.johnson@email.com", "Looking for a quote on a new furnace installation. Current one is 15 years old.", "Heating Installation", model.LeadUrgencyMedium, model.LeadNew},
	{day, "Michael Chen", "(312) 555-0167", "mchen@email.com", "Interested in setting up a maintenance contract for my commercial property.", "Maintenance Contract", model.LeadUrgencyLow, model.LeadContacted},
	{day + 3*time.Hour, "Emily Rodriguez", "(312) 555-0145", "emily.r@email.com", "Heater making strange noises. Can you come out today or tomorrow?", "Heating Repair", model.LeadUrgencyHigh, model.LeadNew},
	{2 * day, "David Thompson", "(312) 555-0189", "d.thompson@email.com", "Need estimate for ductwork replacement in a 2000 sq ft home.", "Ductwork", model.LeadUrgencyLow, model.LeadQualified},
	{2*day + 6*time.Hour, "Jennifer Lee", "(312) 555-0134", "jlee@email.com", "Emergency! No heat and it's freezing. Family with young kids.", "Emergency Repair", model.LeadUrgencyHigh, model.LeadContacted},
	{3 * day, "Robert Wilson", "(312) 555-0156", "rwilson@email.com", "Looking for annual maintenance service. What's included in your plan?", "Maintenance", model.LeadUrgencyLow, model.LeadContacted},
	{3*day + 12*time.Hour, "Amanda Garcia", "(312) 555-0178", "agarcia@email.com", "AC unit is 10 years old. Should I repair or replace? Need advice.", "AC Service", model.LeadUrgencyMedium, model.LeadNew},
	{4 * day, "James Brown", "(312) 555-0192", "jbrown@email.com", "Need quote for new HVAC system for a 3-bedroom house.", "System Installation", model.LeadUrgencyMedium, model.LeadQualified},
	{5 * day, "Lisa Anderson", "(312) 555-0143", "landerson@email.com", "Thermostat not working properly. Might need replacement.", "Thermostat Repair", model.LeadUrgencyLow, model.LeadContacted},
	{5*day + 8*time.Hour, "Daniel Kim", "(312) 555-0187", "dkim@email.com", "Commercial building needs HVAC inspection before winter. 5000 sq ft.", "Commercial Service", model.LeadUrgencyMedium, model.LeadNew},
	{6 * day, "Patricia Moore", "(312) 555-0165", "pmoore@email.com", "Air quality concerns. Interested in air purification systems.", "Air Quality", model.LeadUrgencyLow, model.LeadQualified},
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	leadRepo := repository.NewLeadRepo(client.Database(cfg.MongoDB))

	var stats cache.LeadStatsCache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, skipping lead stats: %v", err)
	} else {
		stats = cache.NewLeadStatsCache(rdb)
	}

	now := time.Now()
	for _, d := range demoLeads {
		lead := &model.Lead{
			BusinessName:  cfg.Business.Name,
			CustomerName:  d.name,
			CustomerPhone: d.phone,
			CustomerEmail: d.email,
			Message:       d.message,
			ServiceType:   d.serviceType,
			Urgency:       d.urgency,
			Status:        d.status,
			Source:        model.SourceContactForm,
			CreatedAt:     now.Add(-d.ago),
		}
		id, err := leadRepo.Create(ctx, lead)
		if err != nil {
			log.Fatalf("Failed to insert lead %s: %v", d.name, err)
		}
		if stats != nil {
			if err := stats.Increment(ctx, lead.BusinessName, lead.Urgency); err != nil {
				log.Printf("Failed to update stats for %s: %v", d.name, err)
			}
		}
		log.Printf("Seeded lead %s (%s, %s)", id, d.name, d.urgency)
	}

	log.Printf("Seeded %d demo leads for %q", len(demoLeads), cfg.Business.Name)
}
