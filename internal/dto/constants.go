package dto

type Trend string

const (
	TrendStrongBullish Trend = "STRONG_BULLISH"
	TrendBullish       Trend = "BULLISH"
	TrendNeutral       Trend = "NEUTRAL"
	TrendBearish       Trend = "BEARISH"
	TrendStrongBearish Trend = "STRONG_BEARISH"
)

// IsBullish reports BULLISH or STRONG_BULLISH.
func (t Trend) IsBullish() bool {
	return t == TrendBullish || t == TrendStrongBullish
}

// IsBearish reports BEARISH or STRONG_BEARISH.
func (t Trend) IsBearish() bool {
	return t == TrendBearish || t == TrendStrongBearish
}

type Action string

const (
	SignalStrongBuy  Action = "STRONG_BUY"
	SignalBuy        Action = "BUY"
	SignalHold       Action = "HOLD"
	SignalSell       Action = "SELL"
	SignalStrongSell Action = "STRONG_SELL"
)

func (a Action) IsBuy() bool {
	return a == SignalBuy || a == SignalStrongBuy
}

func (a Action) IsSell() bool {
	return a == SignalSell || a == SignalStrongSell
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

type AnalysisMode string

const (
	ModeStandard      AnalysisMode = "standard"
	ModeComprehensive AnalysisMode = "comprehensive"
)

// ParseAnalysisMode maps an empty string to standard; ok is false for anything unknown.
func ParseAnalysisMode(s string) (AnalysisMode, bool) {
	switch AnalysisMode(s) {
	case "", ModeStandard:
		return ModeStandard, true
	case ModeComprehensive:
		return ModeComprehensive, true
	default:
		return "", false
	}
}

// History periods requested from the market data provider.
const (
	Period1Month  = "1mo"
	Period6Months = "6mo"
	Period1Year   = "1y"
	Period2Years  = "2y"
)

const (
	Interval1Day = "1d"
)
