package indicator

// RSI uses a simple rolling mean of gains and losses over the last period price changes. It is
// unavailable when there are not enough prices or the window holds no losses.
func RSI(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period+1 {
		return 0, false
	}

	var gain, loss float64
	for i := len(prices) - period; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	if loss == 0 {
		return 0, false
	}

	rs := (gain / float64(period)) / (loss / float64(period))
	return 100 - 100/(1+rs), true
}

// Momentum is the percent change from the close lookback bars before the last one
// (lookback 22 compares against prices[len-22]).
func Momentum(prices []float64, lookback int) (float64, bool) {
	if lookback <= 0 || len(prices) < lookback {
		return 0, false
	}
	base := prices[len(prices)-lookback]
	if base == 0 {
		return 0, false
	}
	return (prices[len(prices)-1]/base - 1) * 100, true
}

// SupportResistance returns the lowest and highest close of the last window prices.
func SupportResistance(prices []float64, window int) (support, resistance float64, ok bool) {
	if window <= 0 || len(prices) < window {
		return 0, 0, false
	}
	recent := prices[len(prices)-window:]
	support, resistance = recent[0], recent[0]
	for _, p := range recent[1:] {
		if p < support {
			support = p
		}
		if p > resistance {
			resistance = p
		}
	}
	return support, resistance, true
}
