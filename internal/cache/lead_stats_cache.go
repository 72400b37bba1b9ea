package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"leadforge/internal/model"
)

// LeadStatsCache keeps per-business lead counters by urgency
type LeadStatsCache interface {
	Increment(ctx context.Context, businessName string, urgency model.LeadUrgency) error
	Get(ctx context.Context, businessName string) (*model.LeadStats, error)
	Set(ctx context.Context, businessName string, stats *model.LeadStats) error
}

type leadStatsCache struct {
	client *redis.Client
}

// NewLeadStatsCache creates a new lead stats cache
func NewLeadStatsCache(client *redis.Client) LeadStatsCache {
	return &leadStatsCache{
		client: client,
	}
}

func (c *leadStatsCache) key(businessName string) string {
	return fmt.Sprintf("biz:%s:lead_stats", businessName)
}

func (c *leadStatsCache) Increment(ctx context.Context, businessName string, urgency model.LeadUrgency) error {
	return c.client.HIncrBy(ctx, c.key(businessName), string(urgency), 1).Err()
}

func (c *leadStatsCache) Get(ctx context.Context, businessName string) (*model.LeadStats, error) {
	fields, err := c.client.HGetAll(ctx, c.key(businessName)).Result()
	if err == redis.Nil {
		return &model.LeadStats{}, nil
	}
	if err != nil {
		return nil, err
	}

	stats := &model.LeadStats{}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch model.LeadUrgency(field) {
		case model.LeadUrgencyHigh:
			stats.High = n
		case model.LeadUrgencyMedium:
			stats.Medium = n
		case model.LeadUrgencyLow:
			stats.Low = n
		default:
			continue
		}
		stats.Total += n
	}
	return stats, nil
}

// Set replaces the counters, used when they are rebuilt from storage
func (c *leadStatsCache) Set(ctx context.Context, businessName string, stats *model.LeadStats) error {
	key := c.key(businessName)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		string(model.LeadUrgencyHigh), stats.High,
		string(model.LeadUrgencyMedium), stats.Medium,
		string(model.LeadUrgencyLow), stats.Low,
	)
	_, err := pipe.Exec(ctx)
	return err
}
