package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/market"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/service"
)

// marketsTTL is short on purpose: the snapshot only has to outlive a burst
// of dashboard polls, not a tick interval.
const marketsTTL = 2 * time.Second

type MarketHandler struct {
	sim   *market.Simulator
	cache *service.CacheService
}

func NewMarketHandler(sim *market.Simulator, cache *service.CacheService) *MarketHandler {
	return &MarketHandler{sim: sim, cache: cache}
}

// GetMarkets returns the full quote table, sorted by symbol.
func (h *MarketHandler) GetMarkets(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.GetMarkets(ctx); err == nil && cached != nil {
		c.JSON(http.StatusOK, gin.H{"markets": cached})
		return
	}

	prices := h.sim.GetAllPrices()
	quotes := make([]models.Quote, 0, len(prices))
	for _, q := range prices {
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Symbol < quotes[j].Symbol })

	_ = h.cache.SetMarkets(ctx, quotes, marketsTTL)

	c.JSON(http.StatusOK, gin.H{"markets": quotes})
}

// GetMarket returns one symbol's quote, 404 when the symbol is not in the
// trading universe.
func (h *MarketHandler) GetMarket(c *gin.Context) {
	symbol := c.Param("symbol")

	q, ok := h.sim.GetPrice(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol"})
		return
	}

	c.JSON(http.StatusOK, q)
}
