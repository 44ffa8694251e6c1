package market

type assetClass int

const (
	classEquity assetClass = iota
	classCrypto
	classStablecoin
)

// Per-tick volatility by asset class. These are fractions of the current
// price, not absolute deltas.
const (
	volEquity     = 0.002
	volCrypto     = 0.003
	volStablecoin = 0.00005
)

type seed struct {
	symbol    string
	basePrice float64
	class     assetClass
}

// seedUniverse is the fixed set of tradable symbols. The simulator never
// adds or removes symbols after startup; a restart re-anchors every price
// to these values.
var seedUniverse = []seed{
	// Equities
	{"AAPL", 178.25, classEquity},
	{"MSFT", 415.80, classEquity},
	{"GOOGL", 141.30, classEquity},
	{"AMZN", 178.90, classEquity},
	{"TSLA", 248.50, classEquity},
	{"NVDA", 875.40, classEquity},
	{"META", 505.20, classEquity},
	{"JPM", 198.45, classEquity},
	// ETFs (same volatility bucket as equities)
	{"SPY", 520.75, classEquity},
	{"QQQ", 445.30, classEquity},
	{"VTI", 258.60, classEquity},
	// Crypto
	{"BTC", 67850.00, classCrypto},
	{"ETH", 3545.00, classCrypto},
	{"SOL", 172.40, classCrypto},
	{"BNB", 592.30, classCrypto},
	// Stablecoins
	{"USDT", 1.00, classStablecoin},
	{"USDC", 1.00, classStablecoin},
}

func (c assetClass) volatility() float64 {
	switch c {
	case classStablecoin:
		return volStablecoin
	case classCrypto:
		return volCrypto
	default:
		return volEquity
	}
}
