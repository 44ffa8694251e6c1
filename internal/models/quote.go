package models

import "time"

// Quote is the simulator's current price snapshot for one symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	BasePrice     float64   `json:"basePrice"`
	LastUpdate    time.Time `json:"lastUpdate"`
}
