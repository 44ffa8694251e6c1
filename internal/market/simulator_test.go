package market

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(seed int64) *Simulator {
	src := rand.New(rand.NewSource(seed))
	return NewSimulatorWithSource(time.Second, src.Float64)
}

func TestTick_PriceFloor(t *testing.T) {
	// Uniform source pinned at 0 produces the maximum downward draw every
	// tick. No price may ever cross the floor.
	sim := NewSimulatorWithSource(time.Second, func() float64 { return 0 })

	for i := 0; i < 500; i++ {
		sim.tick(time.Now())
		for symbol, q := range sim.GetAllPrices() {
			require.GreaterOrEqual(t, q.Price, 0.01, "symbol %s tick %d", symbol, i)
		}
	}
}

func TestTick_BoundedStep(t *testing.T) {
	sim := newTestSimulator(1)

	for i := 0; i < 200; i++ {
		before := sim.GetAllPrices()
		sim.tick(time.Now())
		after := sim.GetAllPrices()

		for symbol, prev := range before {
			next := after[symbol]
			// The delta is capped at ±0.5% before the multiply; rounding
			// to cents can add at most half a cent on each side.
			maxMove := prev.Price*maxTickDelta + 0.01
			assert.LessOrEqual(t, math.Abs(next.Price-prev.Price), maxMove+1e-9,
				"symbol %s tick %d: %v -> %v", symbol, i, prev.Price, next.Price)
		}
	}
}

func TestTick_ChangeConsistency(t *testing.T) {
	sim := newTestSimulator(2)

	for i := 0; i < 50; i++ {
		before := sim.GetAllPrices()
		sim.tick(time.Now())
		after := sim.GetAllPrices()

		for symbol, prev := range before {
			next := after[symbol]
			assert.InDelta(t, next.Price-prev.Price, next.Change, 0.011,
				"change for %s", symbol)
			assert.InDelta(t, next.Change/prev.Price*100, next.ChangePercent, 0.51,
				"changePercent for %s", symbol)
		}
	}
}

func TestTick_BasePriceImmutable(t *testing.T) {
	sim := newTestSimulator(3)

	seeded := make(map[string]float64)
	for symbol, q := range sim.GetAllPrices() {
		seeded[symbol] = q.BasePrice
	}

	for i := 0; i < 300; i++ {
		sim.tick(time.Now())
	}

	for symbol, q := range sim.GetAllPrices() {
		assert.Equal(t, seeded[symbol], q.BasePrice, "anchor for %s drifted", symbol)
	}
}

func TestTick_LastUpdateAdvances(t *testing.T) {
	sim := newTestSimulator(4)

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sim.tick(stamp)

	for symbol, q := range sim.GetAllPrices() {
		assert.True(t, q.LastUpdate.Equal(stamp), "lastUpdate for %s", symbol)
	}
}

func TestGetPrice_UnknownSymbol(t *testing.T) {
	sim := newTestSimulator(5)

	_, ok := sim.GetPrice("NOPE")
	assert.False(t, ok)

	q, ok := sim.GetPrice("AAPL")
	require.True(t, ok)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Greater(t, q.Price, 0.0)
}

func TestGetAllPrices_DefensiveCopy(t *testing.T) {
	sim := newTestSimulator(6)

	snapshot := sim.GetAllPrices()
	tampered := snapshot["AAPL"]
	tampered.Price = -999
	snapshot["AAPL"] = tampered
	delete(snapshot, "BTC")

	fresh := sim.GetAllPrices()
	q, ok := fresh["AAPL"]
	require.True(t, ok)
	assert.Greater(t, q.Price, 0.0)
	_, ok = fresh["BTC"]
	assert.True(t, ok)
}

func TestTick_DeterministicUnderSeededSource(t *testing.T) {
	a := newTestSimulator(42)
	b := newTestSimulator(42)

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		a.tick(stamp)
		b.tick(stamp)
	}

	pricesA := a.GetAllPrices()
	pricesB := b.GetAllPrices()
	require.Equal(t, len(pricesA), len(pricesB))
	for symbol, qa := range pricesA {
		qb := pricesB[symbol]
		assert.Equal(t, qa.Price, qb.Price, "price diverged for %s", symbol)
		assert.Equal(t, qa.Change, qb.Change, "change diverged for %s", symbol)
		assert.Equal(t, qa.ChangePercent, qb.ChangePercent, "changePercent diverged for %s", symbol)
	}
}

func TestStablecoinStaysPinned(t *testing.T) {
	sim := newTestSimulator(7)

	for i := 0; i < 200; i++ {
		sim.tick(time.Now())
	}

	for _, symbol := range []string{"USDT", "USDC"} {
		q, ok := sim.GetPrice(symbol)
		require.True(t, ok)
		assert.InDelta(t, 1.00, q.Price, 0.02, "%s drifted off its peg", symbol)
	}
}

func TestStartStop(t *testing.T) {
	sim := NewSimulatorWithSource(5*time.Millisecond, rand.New(rand.NewSource(8)).Float64)

	sim.Start()
	sim.Start() // second Start is a no-op
	time.Sleep(50 * time.Millisecond)
	sim.Stop()
	sim.Stop() // second Stop is a no-op

	time.Sleep(10 * time.Millisecond) // let any in-flight tick drain
	frozen := sim.GetAllPrices()
	time.Sleep(30 * time.Millisecond)
	after := sim.GetAllPrices()

	for symbol, q := range frozen {
		assert.Equal(t, q.Price, after[symbol].Price, "price moved after Stop for %s", symbol)
	}
}

func TestSymbols_SeedOrderAndUniverse(t *testing.T) {
	sim := newTestSimulator(9)

	symbols := sim.Symbols()
	require.Len(t, symbols, len(seedUniverse))
	for i, sd := range seedUniverse {
		assert.Equal(t, sd.symbol, symbols[i])
	}
}
