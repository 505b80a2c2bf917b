package scoring

import (
	"stock-scoring/internal/dto"
	"stock-scoring/pkg/utils"
)

var healthTable = Table{
	Base: 50,
	Rules: []Rule{
		{Metric: "altman_z", Bands: []Band{{Above(3.0), 20}, {Above(1.8), 10}, {Otherwise(), -20}}},
	},
}

func Health(m dto.FinancialHealthMetrics) float64 {
	var piotroski float64
	if m.PiotroskiScore != nil {
		piotroski = float64(*m.PiotroskiScore) / 9 * 30
	}
	return healthTable.Score(Values{"altman_z": m.AltmanZScore}, piotroski)
}

var momentumTable = Table{
	Base: 50,
	Rules: []Rule{
		{Metric: "momentum_1m", Bands: []Band{{Above(10), 20}, {Above(0), 10}, {Below(-10), -20}, {Otherwise(), -10}}},
	},
}

func Momentum(m dto.MomentumMetrics) float64 {
	return momentumTable.Score(Values{"momentum_1m": m.PriceMomentum1M})
}

var riskTable = Table{
	Base: 50,
	Rules: []Rule{
		{Metric: "sharpe", Bands: []Band{{Above(1.0), 25}, {Above(0.5), 15}, {Below(0), -20}}},
		{Metric: "max_drawdown", Bands: []Band{{Above(-10), 15}, {Above(-20), 5}, {Below(-40), -25}}},
	},
}

// Risk is higher for safer stocks.
func Risk(m dto.RiskMetrics) float64 {
	return riskTable.Score(Values{
		"sharpe":       m.SharpeRatio,
		"max_drawdown": m.MaxDrawdown,
	})
}

var valuationTable = Table{
	Base: 50,
	Rules: []Rule{
		{Metric: "price_to_dcf", Bands: []Band{{Below(0.8), 25}, {Below(1.0), 15}, {Above(1.5), -25}, {Above(1.2), -15}}},
		{Metric: "price_to_fcf", Bands: []Band{{Below(15), 15}, {Above(30), -15}}},
	},
}

func Valuation(m dto.ValuationMetrics) float64 {
	values := Values{"price_to_fcf": m.PriceToFCF}
	if m.CurrentPrice != nil && m.DCFEstimate != nil && *m.DCFEstimate != 0 {
		ratio := *m.CurrentPrice / *m.DCFEstimate
		values["price_to_dcf"] = &ratio
	}
	return valuationTable.Score(values)
}

var qualityTable = Table{
	Base: 70,
	Rules: []Rule{
		{Metric: "cash_flow_to_earnings", Bands: []Band{{Above(1.2), 20}, {Above(0.8), 10}, {Otherwise(), -20}}},
	},
}

func Quality(m dto.QualityMetrics) float64 {
	return qualityTable.Score(Values{"cash_flow_to_earnings": m.CashFlowToEarnings}, -10*float64(len(m.RedFlags)))
}

var earningsQualityTable = Table{
	Base: 80,
	Rules: []Rule{
		{Metric: "cash_flow_to_earnings", Bands: []Band{{Below(0.8), -30}, {Below(1.0), -10}}},
	},
}

// EarningsQuality is only defined when the cash flow to earnings ratio is known.
func EarningsQuality(cashFlowToEarnings *float64, redFlags int) *float64 {
	if cashFlowToEarnings == nil {
		return nil
	}
	score := earningsQualityTable.Score(Values{"cash_flow_to_earnings": cashFlowToEarnings}, -15*float64(redFlags))
	return &score
}

// ConfidenceLevel grows with the completeness of the health and quality inputs, capped at 0.95.
func ConfidenceLevel(health dto.FinancialHealthMetrics, quality dto.QualityMetrics) float64 {
	confidence := 0.7
	if health.PiotroskiScore != nil {
		confidence += 0.1
	}
	if health.AltmanZScore != nil {
		confidence += 0.1
	}
	if quality.CashFlowToEarnings != nil {
		confidence += 0.1
	}
	return utils.RoundTo(Clamp(confidence, 0, 0.95), 2)
}
