package universe

// Strategy is a candidate trading strategy. Values are fixed once generated.
type Strategy struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Profitability float64 `json:"profitability"` // %
	Leverage      float64 `json:"leverage"`      // multiplier
	WinRate       float64 `json:"win_rate"`      // %
	RiskScore     float64 `json:"risk_score"`    // 3-10 score
	SharpeRatio   float64 `json:"sharpe_ratio"`
	MaxDrawdown   float64 `json:"max_drawdown"` // %, never positive
	Volatility    float64 `json:"volatility"`   // %
	Beta          float64 `json:"beta"`
	Alpha         float64 `json:"alpha"` // %
}

// StrategyTypes is the catalog of strategy-style labels
var StrategyTypes = []string{
	"Momentum",
	"Mean Reversion",
	"Statistical Arbitrage",
	"Trend Following",
	"Market Making",
	"Pairs Trading",
	"Breakout",
	"Scalping",
	"Swing Trading",
	"Grid Trading",
	"Carry Trade",
	"Volatility Arbitrage",
	"Delta Neutral",
	"Options Writing",
	"Basis Trading",
	"Funding Rate Arbitrage",
	"Triangular Arbitrage",
	"Event Driven",
	"Sentiment Analysis",
	"Machine Learning",
	"High Frequency",
	"Order Flow",
	"Liquidity Provision",
	"Seasonal",
	"Factor Investing",
	"Risk Parity",
	"Dollar Cost Averaging",
	"Rebalancing",
	"Cross-Exchange Arbitrage",
}

// stylePrefixes and assetClasses are the other two parts of a generated name
var stylePrefixes = []string{
	"Alpha", "Quantum", "Adaptive", "Dynamic", "Smart", "Neural", "Hyper",
	"Stealth", "Titan", "Apex", "Vector", "Nova", "Sigma", "Delta", "Omega",
}

var assetClasses = []string{
	"BTC", "ETH", "Altcoin", "DeFi", "Stablecoin", "Perpetuals", "Options",
	"Forex", "Equities", "Commodities", "Multi-Asset", "Layer 2",
}

// Stats summarises a universe
type Stats struct {
	Count       int            `json:"count"`
	MeanSharpe  float64        `json:"mean_sharpe"`
	MeanRisk    float64        `json:"mean_risk"`
	SharpeStdev float64        `json:"sharpe_stdev"`
	TypeCounts  map[string]int `json:"type_counts"`
}
