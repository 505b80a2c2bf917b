package scoring

import (
	"strings"
	"unicode"

	"stock-scoring/internal/dto"
)

var fundamentalTable = Table{
	Base: 50,
	Rules: []Rule{
		{Metric: "pe_ratio", Bands: []Band{{Below(15), 10}, {Below(25), 5}, {Above(40), -10}}},
		{Metric: "roe", Bands: []Band{{Above(20), 15}, {Above(15), 10}, {Above(10), 5}, {Below(5), -10}}},
		{Metric: "debt_to_equity", Bands: []Band{{Below(0.3), 10}, {Below(0.6), 5}, {Above(1.0), -10}}},
		{Metric: "revenue_growth", Bands: []Band{{Above(20), 15}, {Above(10), 10}, {Above(5), 5}, {Below(0), -10}}},
	},
}

// Fundamental scores valuation, profitability, leverage and growth. ROE and growth are percentages.
func Fundamental(m dto.FundamentalMetrics) float64 {
	return fundamentalTable.Score(Values{
		"pe_ratio":       m.PERatio,
		"roe":            m.ROE,
		"debt_to_equity": m.DebtToEquity,
		"revenue_growth": m.RevenueGrowth,
	})
}

var technicalTable = Table{
	Base: 50,
	Rules: []Rule{
		{Metric: "rsi", Bands: []Band{
			{Between(40, 60), 10},
			{Between(30, 40), 5},
			{Below(30), 15},
			{Between(60, 70), 5},
			{Above(70), -10},
		}},
		{Metric: "macd_spread", Bands: []Band{{Above(0), 10}, {Otherwise(), -5}}},
		{Metric: "ma_alignment", Bands: []Band{{Above(0), 10}, {Below(0), -10}}},
	},
}

var trendDeltas = map[dto.Trend]float64{
	dto.TrendStrongBullish: 20,
	dto.TrendBullish:       15,
	dto.TrendBearish:       -15,
	dto.TrendStrongBearish: -20,
}

// Technical scores momentum oscillators, trend and moving average alignment against m.CurrentPrice.
func Technical(m dto.TechnicalMetrics) float64 {
	values := Values{"rsi": m.RSI}
	if m.MACD != nil && m.MACDSignal != nil {
		spread := *m.MACD - *m.MACDSignal
		values["macd_spread"] = &spread
	}
	if m.CurrentPrice != nil && m.SMA20 != nil && m.SMA50 != nil {
		alignment := maAlignment(*m.CurrentPrice, *m.SMA20, *m.SMA50)
		values["ma_alignment"] = &alignment
	}
	return technicalTable.Score(values, trendDeltas[m.Trend])
}

func maAlignment(price, sma20, sma50 float64) float64 {
	switch {
	case price > sma20 && sma20 > sma50:
		return 1
	case price < sma20 && sma20 < sma50:
		return -1
	default:
		return 0
	}
}

var analystScores = map[string]float64{
	"strong_buy":  90,
	"buy":         75,
	"hold":        50,
	"sell":        25,
	"strong_sell": 10,
}

const neutralScore = 50

// AnalystScore maps a provider recommendation key to a score; unknown or missing keys are neutral.
func AnalystScore(key *string) float64 {
	if key == nil {
		return neutralScore
	}
	if s, ok := analystScores[strings.ToLower(*key)]; ok {
		return s
	}
	return neutralScore
}

// AnalystRating turns a recommendation key such as "strong_buy" into "Strong Buy".
func AnalystRating(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Sentiment blends the provider's overall score in [0,1] (70%) with the analyst score (30%). Without a
// provider score the analyst score stands alone.
func Sentiment(analystScore float64, overall *float64) float64 {
	if overall == nil {
		return Clamp(analystScore, 0, 100)
	}
	return Clamp(*overall*100*0.7+analystScore*0.3, 0, 100)
}

// AnalystConfidence is the fallback sentiment confidence: ten points per analyst up to 80, or 30 when
// nobody covers the stock.
func AnalystConfidence(count int) float64 {
	if count <= 0 {
		return 30
	}
	return Clamp(float64(count)*10, 0, 80)
}
