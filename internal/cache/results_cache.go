package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"leadforge/internal/assessment"
)

// ResultsCache keeps computed quiz results for the results page
type ResultsCache interface {
	SetResults(ctx context.Context, submissionID string, results *assessment.QuizResults) error
	GetResults(ctx context.Context, submissionID string) (*assessment.QuizResults, error)
}

type resultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultsCache creates a new results cache
func NewResultsCache(client *redis.Client) ResultsCache {
	return &resultsCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *resultsCache) key(submissionID string) string {
	return fmt.Sprintf("quiz:%s:results", submissionID)
}

func (c *resultsCache) SetResults(ctx context.Context, submissionID string, results *assessment.QuizResults) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(submissionID), data, c.ttl).Err()
}

func (c *resultsCache) GetResults(ctx context.Context, submissionID string) (*assessment.QuizResults, error) {
	data, err := c.client.Get(ctx, c.key(submissionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var results assessment.QuizResults
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, err
	}
	return &results, nil
}
