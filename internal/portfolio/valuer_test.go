package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

// tableLookup is a fixed in-memory PriceLookup for tests.
type tableLookup map[string]models.Quote

func (t tableLookup) GetPrice(symbol string) (models.Quote, bool) {
	q, ok := t[symbol]
	return q, ok
}

func TestValuePositions_BuyProfit(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lookup := tableLookup{
		"AAPL": {Symbol: "AAPL", Price: 175.00, Change: 1.25, ChangePercent: 0.72, LastUpdate: stamp},
	}
	positions := []models.Position{
		{Symbol: "AAPL", Side: models.Buy, Quantity: 10, EntryPrice: 170.00},
	}

	out := ValuePositions(positions, lookup)
	require.Len(t, out, 1)

	vp := out[0]
	require.NotNil(t, vp.CurrentPrice)
	assert.Equal(t, 175.00, *vp.CurrentPrice)
	assert.Equal(t, 1750.00, *vp.CurrentValue)
	assert.InDelta(t, 50.00, *vp.ProfitLoss, 1e-9)
	assert.InDelta(t, 2.94, *vp.ProfitLossPercent, 0.01)
	assert.Equal(t, 1.25, *vp.MarketChange)
	assert.Equal(t, 0.72, *vp.MarketChangePercent)
	assert.True(t, vp.LastUpdate.Equal(stamp))
}

func TestValuePositions_SellSideSignFlips(t *testing.T) {
	lookup := tableLookup{"AAPL": {Symbol: "AAPL", Price: 175.00}}
	positions := []models.Position{
		{Symbol: "AAPL", Side: models.Sell, Quantity: 10, EntryPrice: 170.00},
	}

	out := ValuePositions(positions, lookup)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ProfitLoss)
	assert.InDelta(t, -50.00, *out[0].ProfitLoss, 1e-9)
}

func TestValuePositions_UnknownSymbolPassesThrough(t *testing.T) {
	lookup := tableLookup{}
	positions := []models.Position{
		{ID: "p1", Symbol: "DELISTED", Side: models.Buy, Quantity: 3, EntryPrice: 12.50},
	}

	out := ValuePositions(positions, lookup)
	require.Len(t, out, 1)

	vp := out[0]
	assert.Equal(t, "p1", vp.ID)
	assert.Equal(t, "DELISTED", vp.Symbol)
	assert.Nil(t, vp.CurrentPrice)
	assert.Nil(t, vp.CurrentValue)
	assert.Nil(t, vp.ProfitLoss)
	assert.Nil(t, vp.ProfitLossPercent)
	assert.Nil(t, vp.MarketChange)
	assert.Nil(t, vp.MarketChangePercent)
	assert.Nil(t, vp.LastUpdate)
}

func TestValuePositions_ZeroEntryPriceGuard(t *testing.T) {
	lookup := tableLookup{"GIFT": {Symbol: "GIFT", Price: 25.00}}
	positions := []models.Position{
		{Symbol: "GIFT", Side: models.Buy, Quantity: 4, EntryPrice: 0},
	}

	out := ValuePositions(positions, lookup)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ProfitLossPercent)
	assert.Equal(t, 0.0, *out[0].ProfitLossPercent)
	require.NotNil(t, out[0].ProfitLoss)
	assert.InDelta(t, 100.00, *out[0].ProfitLoss, 1e-9)
}

func TestValuePositions_PreservesOrderAndInput(t *testing.T) {
	lookup := tableLookup{
		"AAPL": {Symbol: "AAPL", Price: 175.00},
		"BTC":  {Symbol: "BTC", Price: 68000.00},
	}
	positions := []models.Position{
		{ID: "a", Symbol: "BTC", Side: models.Buy, Quantity: 0.5, EntryPrice: 60000},
		{ID: "b", Symbol: "GHOST", Side: models.Buy, Quantity: 1, EntryPrice: 10},
		{ID: "c", Symbol: "AAPL", Side: models.Sell, Quantity: 2, EntryPrice: 180},
	}

	out := ValuePositions(positions, lookup)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "c", out[2].ID)

	// Inputs are untouched.
	assert.Equal(t, 60000.0, positions[0].EntryPrice)
	assert.Equal(t, 10.0, positions[1].EntryPrice)
	assert.Equal(t, 180.0, positions[2].EntryPrice)
}

func TestValuePositions_EmptyInput(t *testing.T) {
	out := ValuePositions(nil, tableLookup{})
	assert.Empty(t, out)
}
