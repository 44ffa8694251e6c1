package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

// CacheService handles Redis caching for the read-heavy endpoints. A nil
// *CacheService is valid and behaves as a permanent cache miss, so the API
// runs unchanged when Redis is unavailable.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

const (
	marketsKey      = "markets:snapshot"
	portfolioKeyFmt = "portfolio:%s"
)

// GetMarkets returns the cached markets snapshot, or nil on miss.
func (s *CacheService) GetMarkets(ctx context.Context) ([]models.Quote, error) {
	if s == nil || s.client == nil {
		return nil, nil
	}

	data, err := s.client.Get(ctx, marketsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get error: %v", err)
	}

	var quotes []models.Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %v", err)
	}
	return quotes, nil
}

func (s *CacheService) SetMarkets(ctx context.Context, quotes []models.Quote, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}

	data, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("json marshal error: %v", err)
	}
	return s.client.Set(ctx, marketsKey, data, ttl).Err()
}

// GetPortfolio returns a user's cached valued positions, or nil on miss.
func (s *CacheService) GetPortfolio(ctx context.Context, userID string) ([]models.ValuedPosition, error) {
	if s == nil || s.client == nil {
		return nil, nil
	}

	key := fmt.Sprintf(portfolioKeyFmt, userID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get error: %v", err)
	}

	var positions []models.ValuedPosition
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %v", err)
	}
	return positions, nil
}

func (s *CacheService) SetPortfolio(ctx context.Context, userID string, positions []models.ValuedPosition, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}

	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("json marshal error: %v", err)
	}
	return s.client.Set(ctx, fmt.Sprintf(portfolioKeyFmt, userID), data, ttl).Err()
}

// InvalidatePortfolio drops a user's cached valuation after their holdings
// or wallet change.
func (s *CacheService) InvalidatePortfolio(ctx context.Context, userID string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, fmt.Sprintf(portfolioKeyFmt, userID)).Err()
}
