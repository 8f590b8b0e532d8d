package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"myTerpMarket/domain"

	"github.com/redis/go-redis/v9"
)

// AIResponseCache keeps external recommender responses keyed by the
// normalized query text. Kiosks send the same handful of vibes all day,
// so a short TTL saves most of the upstream calls.
type AIResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAIResponseCache(client *redis.Client, ttl time.Duration) *AIResponseCache {
	return &AIResponseCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(query string) string {
	return fmt.Sprintf("airec:query:%s", strings.ToLower(strings.TrimSpace(query)))
}

func (c *AIResponseCache) Get(ctx context.Context, query string) (*domain.AIRecommendationResponse, error) {
	val, err := c.client.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("recommendation not cached")
		}
		return nil, fmt.Errorf("failed to get recommendation from Redis: %w", err)
	}

	var resp domain.AIRecommendationResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendation: %w", err)
	}

	return &resp, nil
}

func (c *AIResponseCache) Set(ctx context.Context, query string, resp *domain.AIRecommendationResponse) error {
	jsonData, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(query), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendation in Redis: %w", err)
	}

	return nil
}
