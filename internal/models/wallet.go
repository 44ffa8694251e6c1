package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's cash balance in USD. Balances are decimals end to
// end; they never pass through float64.
type Wallet struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
