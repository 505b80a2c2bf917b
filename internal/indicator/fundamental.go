package indicator

import "math"

type PiotroskiInput struct {
	ReturnOnAssets    *float64
	OperatingCashflow *float64
	MarketCap         *float64
	// DebtToEquity in percent, as reported by the provider.
	DebtToEquity *float64
	CurrentRatio *float64
}

// Piotroski is a simplified F-score built from the fields a single snapshot exposes, capped at 9.
func Piotroski(in PiotroskiInput) int {
	score := 0
	if in.ReturnOnAssets != nil && *in.ReturnOnAssets > 0 {
		score++
	}
	if in.OperatingCashflow != nil && *in.OperatingCashflow > 0 {
		score++
	}
	if in.MarketCap != nil && *in.MarketCap > 10e9 {
		score += 2
	}
	if in.DebtToEquity != nil && *in.DebtToEquity < 50 {
		score++
	}
	if in.CurrentRatio != nil && *in.CurrentRatio > 1.2 {
		score++
	}
	// no year-over-year data, so the efficiency signal is granted
	score++

	if score > 9 {
		score = 9
	}
	return score
}

type AltmanInput struct {
	TotalAssets    *float64
	CurrentRatio   *float64
	DebtToEquity   *float64 // percent
	ReturnOnAssets *float64 // decimal
}

// AltmanZ is a proxy Z-score. It needs total assets; missing ratios fall back to neutral defaults.
func AltmanZ(in AltmanInput) (float64, bool) {
	if in.TotalAssets == nil || *in.TotalAssets == 0 {
		return 0, false
	}
	cr := valueOr(in.CurrentRatio, 1)
	de := valueOr(in.DebtToEquity, 100)
	roa := valueOr(in.ReturnOnAssets, 0)

	return 1.2*(cr-1) + 1.4*roa + 3.3*roa - de/100, true
}

// GrahamNumber is sqrt(22.5 * EPS * book value per share).
func GrahamNumber(eps, bookValue *float64) (float64, bool) {
	if eps == nil || bookValue == nil || *eps <= 0 || *bookValue <= 0 {
		return 0, false
	}
	return math.Sqrt(22.5 * *eps * *bookValue), true
}

// LynchFairValue is price/PEG, defined for a positive PEG and positive earnings growth.
func LynchFairValue(price float64, peg, growth, pe *float64) (float64, bool) {
	if peg == nil || growth == nil || pe == nil || *peg <= 0 || *growth <= 0 {
		return 0, false
	}
	return price / *peg, true
}

const (
	dcfYears          = 5
	dcfDiscountRate   = 0.10
	dcfTerminalGrowth = 0.03
	dcfDefaultGrowth  = 0.05
)

// SimpleDCF discounts five years of positive free cash flow grown at growth (5% when absent) plus a
// Gordon terminal value, per share.
func SimpleDCF(freeCashflow, growth, sharesOutstanding *float64) (float64, bool) {
	if freeCashflow == nil || *freeCashflow <= 0 || sharesOutstanding == nil || *sharesOutstanding == 0 {
		return 0, false
	}
	g := valueOr(growth, dcfDefaultGrowth)
	fcf := *freeCashflow

	var pv, lastFCF float64
	for year := 1; year <= dcfYears; year++ {
		lastFCF = fcf * math.Pow(1+g, float64(year))
		pv += lastFCF / math.Pow(1+dcfDiscountRate, float64(year))
	}
	terminal := lastFCF * (1 + dcfTerminalGrowth) / (dcfDiscountRate - dcfTerminalGrowth)
	pv += terminal / math.Pow(1+dcfDiscountRate, dcfYears)

	return pv / *sharesOutstanding, true
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
