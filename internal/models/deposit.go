package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositApproved DepositStatus = "approved"
	DepositRejected DepositStatus = "rejected"
)

// Deposit is a customer funding request reviewed by the back office. The
// wallet is only credited when an admin approves it.
type Deposit struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Status     DepositStatus   `json:"status"`
	ReviewedBy *string         `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time      `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
