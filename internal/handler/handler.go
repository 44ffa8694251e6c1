package handler

import (
	"github.com/Theshakkymeister/Bitrader-sub001/internal/market"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/service"
)

type Handler struct {
	MarketHandler    *MarketHandler
	PortfolioHandler *PortfolioHandler
	TradeHandler     *TradeHandler
	DepositHandler   *DepositHandler
	AdminHandler     *AdminHandler
	QuoteHub         *QuoteHub
}

func NewHandler(
	sim *market.Simulator,
	portfolioSvc *service.PortfolioService,
	tradeSvc *service.TradeService,
	depositSvc *service.DepositService,
	userSvc *service.UserAdminService,
	cache *service.CacheService,
) *Handler {
	hub := NewQuoteHub(sim)
	go hub.Run()
	go hub.StartQuoteBroadcaster()

	return &Handler{
		MarketHandler:    NewMarketHandler(sim, cache),
		PortfolioHandler: NewPortfolioHandler(portfolioSvc),
		TradeHandler:     NewTradeHandler(tradeSvc),
		DepositHandler:   NewDepositHandler(depositSvc),
		AdminHandler:     NewAdminHandler(tradeSvc, depositSvc, userSvc),
		QuoteHub:         hub,
	}
}
