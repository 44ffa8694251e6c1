package service

import (
	"context"
	"time"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/portfolio"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/repo"
)

// portfolioTTL keeps the cached valuation well inside one tick interval,
// so customers never see prices older than the simulator's own staleness.
const portfolioTTL = 3 * time.Second

// PortfolioService reads a user's holdings and values them against the
// live quote table.
type PortfolioService struct {
	positions *repo.PositionRepo
	prices    portfolio.PriceLookup
	cache     *CacheService
}

func NewPortfolioService(pr *repo.PositionRepo, prices portfolio.PriceLookup, cache *CacheService) *PortfolioService {
	return &PortfolioService{positions: pr, prices: prices, cache: cache}
}

func (s *PortfolioService) GetPortfolio(ctx context.Context, userID string) ([]models.ValuedPosition, error) {
	if cached, err := s.cache.GetPortfolio(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	positions, err := s.positions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	valued := portfolio.ValuePositions(positions, s.prices)

	_ = s.cache.SetPortfolio(ctx, userID, valued, portfolioTTL)

	return valued, nil
}
