package insight

import (
	"fmt"

	"stock-scoring/internal/dto"
)

const maxInsights = 5

// Insights reads raw comprehensive metric values, not scores, and returns at most five findings in a
// fixed order: health, valuation, quality, risk.
func Insights(c dto.ComprehensiveAnalysis) []string {
	insights := []string{}

	if p := c.FinancialHealth.PiotroskiScore; p != nil {
		switch {
		case *p >= 7:
			insights = append(insights, fmt.Sprintf("Strong financial health (Piotroski score: %d/9)", *p))
		case *p <= 3:
			insights = append(insights, fmt.Sprintf("Weak financial health (Piotroski score: %d/9)", *p))
		}
	}

	v := c.Valuation
	if v.DCFEstimate != nil && v.CurrentPrice != nil {
		switch {
		case *v.DCFEstimate > *v.CurrentPrice*1.2:
			insights = append(insights, "Trading below estimated intrinsic value")
		case *v.DCFEstimate < *v.CurrentPrice*0.8:
			insights = append(insights, "Trading above estimated intrinsic value")
		}
	}

	if cf := c.Quality.CashFlowToEarnings; cf != nil && *cf > 1.2 {
		insights = append(insights, "Strong cash flow generation relative to earnings")
	}

	if dd := c.Risk.MaxDrawdown; dd != nil {
		switch {
		case *dd > -10:
			insights = append(insights, "Low historical volatility and drawdown")
		case *dd < -30:
			insights = append(insights, "High historical volatility with significant drawdowns")
		}
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func Warnings(c dto.ComprehensiveAnalysis) []string {
	warnings := []string{}

	if z := c.FinancialHealth.AltmanZScore; z != nil && *z < 1.8 {
		warnings = append(warnings, "Elevated bankruptcy risk (low Altman Z-score)")
	}
	if n := len(c.Quality.RedFlags); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d accounting red flags detected", n))
	}
	if dd := c.Risk.MaxDrawdown; dd != nil && *dd < -40 {
		warnings = append(warnings, "Very high historical volatility and drawdowns")
	}

	return warnings
}
