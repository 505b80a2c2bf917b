package dto

import "time"

type OptionsMetrics struct {
	ImpliedVolatility *float64 `json:"implied_volatility"`
	PutCallRatio      *float64 `json:"put_call_ratio"`
	OptionVolume      *int64   `json:"option_volume"`
	Score             float64  `json:"score"`
}

type SectorMetrics struct {
	Sector            string   `json:"sector"`
	Industry          string   `json:"industry"`
	MarketCorrelation *float64 `json:"market_correlation"`
	Score             float64  `json:"score"`
}

type FinancialHealthMetrics struct {
	PiotroskiScore    *int     `json:"piotroski_score"`
	AltmanZScore      *float64 `json:"altman_z_score"`
	WorkingCapital    *float64 `json:"working_capital"`
	DebtCoverageRatio *float64 `json:"debt_coverage_ratio"`
	Score             float64  `json:"score"`
}

type MomentumMetrics struct {
	PriceMomentum1M *float64 `json:"price_momentum_1m"`
	PriceMomentum3M *float64 `json:"price_momentum_3m"`
	PriceMomentum6M *float64 `json:"price_momentum_6m"`
	RSILong         *float64 `json:"relative_strength_index_long"`
	Score           float64  `json:"score"`
}

// RiskMetrics expresses drawdown, VaR, volatilities and downside deviation in percent.
type RiskMetrics struct {
	Beta              *float64 `json:"beta"`
	SharpeRatio       *float64 `json:"sharpe_ratio"`
	SortinoRatio      *float64 `json:"sortino_ratio"`
	MaxDrawdown       *float64 `json:"max_drawdown"`
	ValueAtRisk95     *float64 `json:"value_at_risk_95"`
	Volatility30D     *float64 `json:"volatility_30d"`
	Volatility90D     *float64 `json:"volatility_90d"`
	DownsideDeviation *float64 `json:"downside_deviation"`
	Score             float64  `json:"risk_score"`
}

type ValuationMetrics struct {
	CurrentPrice        *float64 `json:"current_price"`
	DCFEstimate         *float64 `json:"dcf_estimate"`
	GrahamNumber        *float64 `json:"graham_number"`
	PeterLynchFairValue *float64 `json:"peter_lynch_fair_value"`
	EVSales             *float64 `json:"ev_sales"`
	EVEbitda            *float64 `json:"ev_ebitda"`
	PriceToFCF          *float64 `json:"price_to_fcf"`
	EnterpriseValue     *float64 `json:"enterprise_value"`
	Score               float64  `json:"valuation_score"`
}

type QualityMetrics struct {
	EarningsQuality    *float64 `json:"earnings_quality"`
	AccrualsRatio      *float64 `json:"accruals_ratio"`
	CashFlowToEarnings *float64 `json:"cash_flow_to_earnings"`
	RedFlags           []string `json:"accounting_red_flags"`
	Score              float64  `json:"score"`
}

type MacroContextMetrics struct {
	InterestRateSensitivity *float64 `json:"interest_rate_sensitivity"`
	InflationImpact         *string  `json:"inflation_impact"`
	EconomicCyclePosition   *string  `json:"economic_cycle_position"`
	Score                   float64  `json:"score"`
}

type ComprehensiveAnalysis struct {
	Symbol          string                 `json:"symbol"`
	AnalyzedAt      time.Time              `json:"analysis_timestamp"`
	Options         OptionsMetrics         `json:"options_metrics"`
	Sector          SectorMetrics          `json:"sector_metrics"`
	FinancialHealth FinancialHealthMetrics `json:"financial_health"`
	Momentum        MomentumMetrics        `json:"momentum_metrics"`
	Risk            RiskMetrics            `json:"risk_metrics"`
	Valuation       ValuationMetrics       `json:"valuation_metrics"`
	Quality         QualityMetrics         `json:"quality_metrics"`
	MacroContext    MacroContextMetrics    `json:"macro_context"`
	CompositeScore  float64                `json:"composite_score"`
	ConfidenceLevel float64                `json:"confidence_level"`
	Insights        []string               `json:"key_insights"`
	Warnings        []string               `json:"warnings"`
}
