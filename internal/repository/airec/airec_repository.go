package airec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
)

type Config struct {
	BaseURL           string
	BasicAuthUsername string
	BasicAuthPassword string
	Timeout           time.Duration
}

// ResponseCache is satisfied by the redis cache. Nil cache means every
// query goes upstream.
type ResponseCache interface {
	Get(ctx context.Context, query string) (*domain.AIRecommendationResponse, error)
	Set(ctx context.Context, query string, resp *domain.AIRecommendationResponse) error
}

type AIRecRepository struct {
	config Config
	client *http.Client
	cache  ResponseCache
}

func NewAIRecRepository(cfg Config, cache ResponseCache) *AIRecRepository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &AIRecRepository{
		config: cfg,
		client: &http.Client{Timeout: timeout},
		cache:  cache,
	}
}

type payloadRecommend struct {
	Query string `json:"query"`
}

// Recommend asks the upstream AI service to interpret the vibe query.
// Cached responses are returned without a network call; cache failures are
// logged and treated as misses.
func (r *AIRecRepository) Recommend(ctx context.Context, query string) (*domain.AIRecommendationResponse, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, query); err == nil {
			return cached, nil
		}
	}

	url := r.config.BaseURL + "/v1/recommendations"
	method := http.MethodPost

	payload := payloadRecommend{
		Query: query,
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(string(payloadByte)))
	if err != nil {
		return nil, err
	}

	buildBasicAuth := goshortcute.StringtoBase64Encode(r.config.BasicAuthUsername + ":" + r.config.BasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+buildBasicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		logger.Error("recommender service negative response", "status", res.StatusCode, "body", string(bodyBytes))
		return nil, fmt.Errorf("recommender service return negative response %v", res.StatusCode)
	}

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recommender response: %w", err)
	}

	var aiResp domain.AIRecommendationResponse
	if err := json.Unmarshal(bodyBytes, &aiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommender response: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, query, &aiResp); err != nil {
			logger.Warn("failed to cache recommender response", err)
		}
	}

	return &aiResp, nil
}
