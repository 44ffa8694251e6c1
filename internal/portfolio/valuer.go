package portfolio

import (
	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

// PriceLookup is the capability the valuer needs from the market side. The
// simulator satisfies it.
type PriceLookup interface {
	GetPrice(symbol string) (models.Quote, bool)
}

// ValuePositions attaches current price, value and PnL to each position
// using whatever the lookup holds at call time. Input order is preserved
// and the input slice is never mutated. A position whose symbol has no
// quote passes through with all derived fields unset.
func ValuePositions(positions []models.Position, lookup PriceLookup) []models.ValuedPosition {
	out := make([]models.ValuedPosition, 0, len(positions))

	for _, pos := range positions {
		vp := models.ValuedPosition{Position: pos}

		q, ok := lookup.GetPrice(pos.Symbol)
		if !ok {
			out = append(out, vp)
			continue
		}

		currentValue := q.Price * pos.Quantity

		var profitLoss float64
		if pos.Side == models.Sell {
			profitLoss = (pos.EntryPrice - q.Price) * pos.Quantity
		} else {
			profitLoss = (q.Price - pos.EntryPrice) * pos.Quantity
		}

		// Zero entry price yields a defined 0% instead of a division fault.
		profitLossPercent := 0.0
		if pos.EntryPrice > 0 {
			profitLossPercent = profitLoss / (pos.EntryPrice * pos.Quantity) * 100
		}

		price := q.Price
		change := q.Change
		changePercent := q.ChangePercent
		lastUpdate := q.LastUpdate

		vp.CurrentPrice = &price
		vp.CurrentValue = &currentValue
		vp.ProfitLoss = &profitLoss
		vp.ProfitLossPercent = &profitLossPercent
		vp.MarketChange = &change
		vp.MarketChangePercent = &changePercent
		vp.LastUpdate = &lastUpdate

		out = append(out, vp)
	}
	return out
}
