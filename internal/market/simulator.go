package market

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

const (
	// DefaultTickInterval is how often quotes advance when the caller does
	// not configure SIM_TICK_INTERVAL.
	DefaultTickInterval = 30 * time.Second

	// meanReversionFactor pulls each price back toward its anchor by 10%
	// of the current deviation per tick. Note the reversion term is an
	// absolute price delta while the random term is fractional; the sum is
	// applied as a fraction. Kept as-is for compatibility with the price
	// dynamics the rest of the platform was tuned against.
	meanReversionFactor = 0.1

	// maxTickDelta caps a single tick's fractional move at ±0.5%.
	maxTickDelta = 0.005

	// minPrice floors every simulated price.
	minPrice = 0.01
)

// Simulator owns the quote table and advances it on a fixed interval with a
// bounded mean-reverting random walk. Construction does not start the walk;
// the composition root calls Start and Stop explicitly.
type Simulator struct {
	mu         sync.RWMutex
	symbols    []string // seed order; fixes the draw-to-symbol assignment
	quotes     map[string]models.Quote
	basePrices map[string]float64
	classes    map[string]assetClass

	interval time.Duration
	uniform  func() float64 // draws from [0,1)

	done chan struct{}
}

// NewSimulator seeds the quote table from the static universe. The interval
// controls how often ticks fire once Start is called.
func NewSimulator(interval time.Duration) *Simulator {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewSimulatorWithSource(interval, src.Float64)
}

// NewSimulatorWithSource injects the uniform draw used by the random walk.
// A seeded source makes tick sequences reproducible.
func NewSimulatorWithSource(interval time.Duration, uniform func() float64) *Simulator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	s := &Simulator{
		quotes:     make(map[string]models.Quote, len(seedUniverse)),
		basePrices: make(map[string]float64, len(seedUniverse)),
		classes:    make(map[string]assetClass, len(seedUniverse)),
		interval:   interval,
		uniform:    uniform,
	}

	now := time.Now()
	for _, sd := range seedUniverse {
		s.symbols = append(s.symbols, sd.symbol)
		s.quotes[sd.symbol] = models.Quote{
			Symbol:     sd.symbol,
			Price:      sd.basePrice,
			BasePrice:  sd.basePrice,
			LastUpdate: now,
		}
		s.basePrices[sd.symbol] = sd.basePrice
		s.classes[sd.symbol] = sd.class
	}
	return s
}

// Start launches the background tick loop. Calling Start on a running
// simulator is a no-op.
func (s *Simulator) Start() {
	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return
	}
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.run(done)
}

// Stop halts the tick loop. Quotes keep their last values and remain
// readable.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

func (s *Simulator) run(done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			select {
			case <-done:
				return
			default:
			}
			s.tick(now)
		}
	}
}

// tick advances every quote independently. Each symbol gets a uniform draw
// in [-vol, +vol], a pull back toward its anchor, and a ±0.5% clamp on the
// combined delta before the price moves. Symbols advance in seed order so a
// seeded uniform source reproduces the same price paths run after run.
func (s *Simulator) tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, symbol := range s.symbols {
		q := s.quotes[symbol]
		vol := s.classes[symbol].volatility()

		randomComponent := (s.uniform() - 0.5) * 2 * vol
		meanReversion := (s.basePrices[symbol] - q.Price) * meanReversionFactor

		delta := randomComponent + meanReversion
		if delta > maxTickDelta {
			delta = maxTickDelta
		} else if delta < -maxTickDelta {
			delta = -maxTickDelta
		}

		newPrice := q.Price * (1 + delta)
		if newPrice < minPrice {
			newPrice = minPrice
		}

		change := newPrice - q.Price
		changePercent := change / q.Price * 100

		q.Price = round2(newPrice)
		q.Change = round2(change)
		q.ChangePercent = round2(changePercent)
		q.LastUpdate = now
		s.quotes[symbol] = q
	}
}

// GetPrice returns the current quote for a symbol. An unknown symbol is a
// normal outcome, reported via the second return value.
func (s *Simulator) GetPrice(symbol string) (models.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	return q, ok
}

// GetAllPrices returns an independent copy of the quote table. Mutating the
// result never affects simulator state.
func (s *Simulator) GetAllPrices() map[string]models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Quote, len(s.quotes))
	for symbol, q := range s.quotes {
		out[symbol] = q
	}
	return out
}

// Symbols lists the fixed trading universe in seed order.
func (s *Simulator) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
