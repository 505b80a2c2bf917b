package insight

import (
	"testing"

	"stock-scoring/internal/dto"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

func TestInsights(t *testing.T) {
	tests := []struct {
		name string
		in   dto.ComprehensiveAnalysis
		want []string
	}{
		{name: "nothing available", want: []string{}},
		{
			name: "strong company",
			in: dto.ComprehensiveAnalysis{
				FinancialHealth: dto.FinancialHealthMetrics{PiotroskiScore: iptr(8)},
				Valuation:       dto.ValuationMetrics{CurrentPrice: ptr(100), DCFEstimate: ptr(150)},
				Quality:         dto.QualityMetrics{CashFlowToEarnings: ptr(1.4)},
				Risk:            dto.RiskMetrics{MaxDrawdown: ptr(-8)},
			},
			want: []string{
				"Strong financial health (Piotroski score: 8/9)",
				"Trading below estimated intrinsic value",
				"Strong cash flow generation relative to earnings",
				"Low historical volatility and drawdown",
			},
		},
		{
			name: "weak company",
			in: dto.ComprehensiveAnalysis{
				FinancialHealth: dto.FinancialHealthMetrics{PiotroskiScore: iptr(2)},
				Valuation:       dto.ValuationMetrics{CurrentPrice: ptr(100), DCFEstimate: ptr(60)},
				Risk:            dto.RiskMetrics{MaxDrawdown: ptr(-35)},
			},
			want: []string{
				"Weak financial health (Piotroski score: 2/9)",
				"Trading above estimated intrinsic value",
				"High historical volatility with significant drawdowns",
			},
		},
		{
			name: "dcf without price is skipped",
			in:   dto.ComprehensiveAnalysis{Valuation: dto.ValuationMetrics{DCFEstimate: ptr(500)}},
			want: []string{},
		},
		{
			name: "middle values say nothing",
			in: dto.ComprehensiveAnalysis{
				FinancialHealth: dto.FinancialHealthMetrics{PiotroskiScore: iptr(5)},
				Valuation:       dto.ValuationMetrics{CurrentPrice: ptr(100), DCFEstimate: ptr(110)},
				Risk:            dto.RiskMetrics{MaxDrawdown: ptr(-20)},
			},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insights(tt.in)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), maxInsights)
		})
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name string
		in   dto.ComprehensiveAnalysis
		want []string
	}{
		{
			name: "distressed altman",
			in:   dto.ComprehensiveAnalysis{FinancialHealth: dto.FinancialHealthMetrics{AltmanZScore: ptr(1.5)}},
			want: []string{"Elevated bankruptcy risk (low Altman Z-score)"},
		},
		{
			name: "safe altman",
			in:   dto.ComprehensiveAnalysis{FinancialHealth: dto.FinancialHealthMetrics{AltmanZScore: ptr(3.5)}},
			want: []string{},
		},
		{
			name: "red flags and deep drawdown",
			in: dto.ComprehensiveAnalysis{
				Quality: dto.QualityMetrics{RedFlags: []string{"Low return on assets", "Very high debt-to-equity ratio"}},
				Risk:    dto.RiskMetrics{MaxDrawdown: ptr(-55)},
			},
			want: []string{"2 accounting red flags detected", "Very high historical volatility and drawdowns"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Warnings(tt.in))
		})
	}
}
