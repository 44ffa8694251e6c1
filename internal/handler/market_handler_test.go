package handler

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/market"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

func newMarketRouter(t *testing.T) (*gin.Engine, *market.Simulator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sim := market.NewSimulatorWithSource(time.Second, rand.New(rand.NewSource(1)).Float64)

	r := gin.New()
	h := NewMarketHandler(sim, nil) // nil cache = cache off
	r.GET("/markets", h.GetMarkets)
	r.GET("/markets/:symbol", h.GetMarket)
	return r, sim
}

func TestGetMarkets_ReturnsSortedUniverse(t *testing.T) {
	r, sim := newMarketRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/markets", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Markets []models.Quote `json:"markets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Markets, len(sim.Symbols()))

	for i := 1; i < len(body.Markets); i++ {
		assert.Less(t, body.Markets[i-1].Symbol, body.Markets[i].Symbol, "markets not sorted")
	}
	for _, q := range body.Markets {
		assert.Greater(t, q.Price, 0.0)
		assert.Greater(t, q.BasePrice, 0.0)
	}
}

func TestGetMarket_KnownSymbol(t *testing.T) {
	r, sim := newMarketRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/markets/AAPL", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var q models.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "AAPL", q.Symbol)

	want, ok := sim.GetPrice("AAPL")
	require.True(t, ok)
	assert.Equal(t, want.Price, q.Price)
}

func TestGetMarket_UnknownSymbolIs404(t *testing.T) {
	r, _ := newMarketRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/markets/NOPE", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
