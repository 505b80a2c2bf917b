package indicator

import "stock-scoring/internal/dto"

// Trend classifies the moving average stack. STRONG variants need SMA200.
func Trend(current, sma20, sma50 float64, sma200 *float64) dto.Trend {
	if sma200 == nil {
		switch {
		case current > sma20 && sma20 > sma50:
			return dto.TrendBullish
		case current < sma20 && sma20 < sma50:
			return dto.TrendBearish
		default:
			return dto.TrendNeutral
		}
	}

	switch {
	case current > sma20 && sma20 > sma50 && sma50 > *sma200:
		return dto.TrendStrongBullish
	case current > sma20 && sma20 > sma50:
		return dto.TrendBullish
	case current < sma20 && sma20 < sma50 && sma50 < *sma200:
		return dto.TrendStrongBearish
	case current < sma20 && sma20 < sma50:
		return dto.TrendBearish
	default:
		return dto.TrendNeutral
	}
}
