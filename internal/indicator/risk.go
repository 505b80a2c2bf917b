package indicator

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Point is one dated observation, used to align two series on common dates.
type Point struct {
	Date  time.Time
	Value float64
}

// Returns converts prices to simple daily returns. A zero base price yields a zero return.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			out[i-1] = prices[i]/prices[i-1] - 1
		}
	}
	return out
}

// DatedReturns is Returns keyed by the date of the later price.
func DatedReturns(prices []Point) []Point {
	if len(prices) < 2 {
		return nil
	}
	out := make([]Point, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		var r float64
		if prices[i-1].Value != 0 {
			r = prices[i].Value/prices[i-1].Value - 1
		}
		out = append(out, Point{Date: prices[i].Date, Value: r})
	}
	return out
}

// Align inner-joins two series on calendar date, keeping the order of a.
func Align(a, b []Point) ([]float64, []float64) {
	index := make(map[string]float64, len(b))
	for _, p := range b {
		index[p.Date.Format(time.DateOnly)] = p.Value
	}

	var xs, ys []float64
	for _, p := range a {
		if v, ok := index[p.Date.Format(time.DateOnly)]; ok {
			xs = append(xs, p.Value)
			ys = append(ys, v)
		}
	}
	return xs, ys
}

// Beta is cov(stock, market)/var(market) over aligned returns. At least minPoints pairs are needed.
func Beta(stock, market []float64, minPoints int) (float64, bool) {
	if len(stock) != len(market) || len(stock) < minPoints || len(stock) < 2 {
		return 0, false
	}
	variance := stat.Variance(market, nil)
	if variance <= 0 || math.IsNaN(variance) {
		return 0, false
	}
	return stat.Covariance(stock, market, nil) / variance, true
}

// Correlation is the Pearson correlation of two aligned series with more than minPoints pairs.
func Correlation(a, b []float64, minPoints int) (float64, bool) {
	if len(a) != len(b) || len(a) <= minPoints || len(a) < 2 {
		return 0, false
	}
	c := stat.Correlation(a, b, nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, false
	}
	return c, true
}

// Sharpe is the annualized excess return over annualized volatility.
func Sharpe(returns []float64, riskFreeRate float64) (float64, bool) {
	if len(returns) < 2 {
		return 0, false
	}
	mean, sd := stat.MeanStdDev(returns, nil)
	if sd <= 0 || math.IsNaN(sd) {
		return 0, false
	}
	return (mean*TradingDaysPerYear - riskFreeRate) / (sd * math.Sqrt(TradingDaysPerYear)), true
}

// DownsideDeviation is the annualized sample standard deviation of the negative returns. It is
// zero without negative returns and unavailable with only one.
func DownsideDeviation(returns []float64) (float64, bool) {
	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	switch len(negative) {
	case 0:
		return 0, true
	case 1:
		return 0, false
	}
	return stat.StdDev(negative, nil) * math.Sqrt(TradingDaysPerYear), true
}

// Sortino is the annualized excess return over the downside deviation.
func Sortino(returns []float64, riskFreeRate float64) (float64, bool) {
	if len(returns) == 0 {
		return 0, false
	}
	dd, ok := DownsideDeviation(returns)
	if !ok || dd <= 0 {
		return 0, false
	}
	return (stat.Mean(returns, nil)*TradingDaysPerYear - riskFreeRate) / dd, true
}

// MaxDrawdown is the deepest fall of the compounded return curve from its running peak, in percent
// (zero or negative). The curve starts at the first compounded return.
func MaxDrawdown(returns []float64) (float64, bool) {
	if len(returns) == 0 {
		return 0, false
	}
	cumulative := 1.0
	var peak, worst float64
	for i, r := range returns {
		cumulative *= 1 + r
		if i == 0 || cumulative > peak {
			peak = cumulative
		}
		if peak != 0 {
			if dd := (cumulative - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}
	return worst * 100, true
}

// Percentile uses linear interpolation between closest ranks, p in [0,100].
func Percentile(values []float64, p float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, true
}

// ValueAtRisk95 is the 5th percentile daily return, in percent.
func ValueAtRisk95(returns []float64) (float64, bool) {
	v, ok := Percentile(returns, 5)
	return v * 100, ok
}
