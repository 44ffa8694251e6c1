package models

import "time"

// Position is a user's holding of a symbol at a given entry price and side.
type Position struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Symbol     string    `json:"symbol"`
	Side       TradeSide `json:"side"`
	Quantity   float64   `json:"quantity"`
	EntryPrice float64   `json:"entryPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ValuedPosition is a Position with current-market fields attached. The
// derived fields stay nil when no quote exists for the symbol, so an
// unpriced position serializes exactly like the plain position.
type ValuedPosition struct {
	Position
	CurrentPrice        *float64   `json:"currentPrice,omitempty"`
	CurrentValue        *float64   `json:"currentValue,omitempty"`
	ProfitLoss          *float64   `json:"profitLoss,omitempty"`
	ProfitLossPercent   *float64   `json:"profitLossPercent,omitempty"`
	MarketChange        *float64   `json:"marketChange,omitempty"`
	MarketChangePercent *float64   `json:"marketChangePercent,omitempty"`
	LastUpdate          *time.Time `json:"lastUpdate,omitempty"`
}
