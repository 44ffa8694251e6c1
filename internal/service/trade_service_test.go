package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

type stubLookup map[string]models.Quote

func (s stubLookup) GetPrice(symbol string) (models.Quote, bool) {
	q, ok := s[symbol]
	return q, ok
}

func TestSubmitTrade_Validation(t *testing.T) {
	lookup := stubLookup{"AAPL": {Symbol: "AAPL", Price: 175.00}}
	svc := NewTradeService(nil, nil, nil, nil, lookup, nil)

	tests := []struct {
		name string
		req  SubmitTradeReq
		want error
	}{
		{
			name: "bad side",
			req:  SubmitTradeReq{Symbol: "AAPL", Side: "hold", Quantity: 1},
			want: ErrInvalidSide,
		},
		{
			name: "zero quantity",
			req:  SubmitTradeReq{Symbol: "AAPL", Side: models.Buy, Quantity: 0},
			want: ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			req:  SubmitTradeReq{Symbol: "AAPL", Side: models.Sell, Quantity: -5},
			want: ErrInvalidQuantity,
		},
		{
			name: "unknown symbol",
			req:  SubmitTradeReq{Symbol: "ENRON", Side: models.Buy, Quantity: 1},
			want: ErrUnknownSymbol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitTrade(context.Background(), "user-1", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequestDeposit_Validation(t *testing.T) {
	svc := NewDepositService(nil, nil, nil, nil)

	for _, amount := range []string{"0", "-10", "abc", ""} {
		_, err := svc.RequestDeposit(context.Background(), "user-1", RequestDepositReq{
			Amount: amount,
			Method: "bank_transfer",
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}
}

func TestNilCacheServiceIsAMiss(t *testing.T) {
	var cache *CacheService

	quotes, err := cache.GetMarkets(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, quotes)

	positions, err := cache.GetPortfolio(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Nil(t, positions)

	assert.NoError(t, cache.SetMarkets(context.Background(), nil, 0))
	assert.NoError(t, cache.SetPortfolio(context.Background(), "user-1", nil, 0))
	assert.NoError(t, cache.InvalidatePortfolio(context.Background(), "user-1"))
}
