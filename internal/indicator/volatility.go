package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const TradingDaysPerYear = 252

type BollingerBands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger uses the SMA of the last period prices and their sample standard deviation.
func Bollinger(prices []float64, period int, k float64) (BollingerBands, bool) {
	if period < 2 || len(prices) < period {
		return BollingerBands{}, false
	}
	middle, ok := SMA(prices, period)
	if !ok {
		return BollingerBands{}, false
	}
	sd := stat.StdDev(prices[len(prices)-period:], nil)

	return BollingerBands{
		Upper:  middle + k*sd,
		Middle: middle,
		Lower:  middle - k*sd,
	}, true
}

// AnnualizedVolatility is the sample standard deviation of the last window returns scaled by
// sqrt(252), in percent.
func AnnualizedVolatility(returns []float64, window int) (float64, bool) {
	if window < 2 || len(returns) < window {
		return 0, false
	}
	sd := stat.StdDev(returns[len(returns)-window:], nil)
	return sd * math.Sqrt(TradingDaysPerYear) * 100, true
}
