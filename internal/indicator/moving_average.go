package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
)

// SMA returns the simple moving average of the last period prices.
func SMA(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period {
		return 0, false
	}
	if period == 1 {
		return prices[len(prices)-1], true
	}

	sma := talib.Sma(prices, period)
	last := sma[len(sma)-1]
	if math.IsNaN(last) {
		return 0, false
	}
	return last, true
}

// EMASeries is the adjusted exponential moving average with alpha = 2/(span+1): every point is the
// weighted mean of all prior observations with weights (1-alpha)^i, so the series has no warm-up gap.
func EMASeries(prices []float64, span int) []float64 {
	if span <= 0 || len(prices) == 0 {
		return nil
	}

	decay := 1 - 2/float64(span+1)
	out := make([]float64, len(prices))
	var num, den float64
	for i, p := range prices {
		num = p + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}

type MACDResult struct {
	MACD   float64
	Signal float64
}

// MACD computes the 12/26 EMA spread and its 9-span signal line at the last price.
func MACD(prices []float64) (MACDResult, bool) {
	const (
		fast   = 12
		slow   = 26
		signal = 9
	)
	if len(prices) < slow {
		return MACDResult{}, false
	}

	fastEMA := EMASeries(prices, fast)
	slowEMA := EMASeries(prices, slow)
	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMASeries(line, signal)

	return MACDResult{
		MACD:   line[len(line)-1],
		Signal: signalLine[len(signalLine)-1],
	}, true
}
