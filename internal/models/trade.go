package models

import "time"

type TradeSide string

const (
	Buy  TradeSide = "buy"
	Sell TradeSide = "sell"
)

type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeApproved TradeStatus = "approved"
	TradeRejected TradeStatus = "rejected"
)

// Trade is a customer order waiting for (or resolved by) back-office review.
// Price is nil until an admin approves the trade; it is then filled with the
// simulator price the trade executed at.
type Trade struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Symbol     string      `json:"symbol"`
	Side       TradeSide   `json:"side"`
	Quantity   float64     `json:"quantity"`
	Price      *float64    `json:"price"`
	Status     TradeStatus `json:"status"`
	AdminNote  *string     `json:"adminNote,omitempty"`
	ReviewedBy *string     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time  `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
