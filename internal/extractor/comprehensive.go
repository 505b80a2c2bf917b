package extractor

import (
	"context"
	"fmt"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/indicator"
	"stock-scoring/internal/insight"
	"stock-scoring/internal/scoring"
	"stock-scoring/pkg/utils"
)

const (
	minMomentumBars    = 30
	minRiskBars        = 50
	minBetaPoints      = 50
	minCorrelationBars = 30
	longRSIPeriod      = 200
)

// Momentum lookbacks in trading days.
const (
	lookback1M = 22
	lookback3M = 66
	lookback6M = 132
)

// Comprehensive runs the eight comprehensive categories in order and combines them. It never fails;
// categories that cannot be computed stay empty and are left out of the composite.
func (e *MetricExtractor) Comprehensive(ctx context.Context, symbol string) *dto.ComprehensiveAnalysis {
	ctx, span := e.startSpan(ctx, "comprehensive", symbol)
	defer span.End()

	c := &dto.ComprehensiveAnalysis{
		Symbol:          symbol,
		AnalyzedAt:      utils.TimeNowMarket(),
		Options:         e.Options(ctx, symbol),
		Sector:          e.Sector(ctx, symbol),
		FinancialHealth: e.FinancialHealth(ctx, symbol),
		Momentum:        e.Momentum(ctx, symbol),
		Risk:            e.Risk(ctx, symbol),
		Valuation:       e.Valuation(ctx, symbol),
		Quality:         e.Quality(ctx, symbol),
		MacroContext:    e.MacroContext(ctx, symbol),
	}

	c.CompositeScore = utils.RoundTo(scoring.WeightedAverage(map[string]float64{
		scoring.KeyFinancialHealth: c.FinancialHealth.Score,
		scoring.KeyValuation:       c.Valuation.Score,
		scoring.KeyQuality:         c.Quality.Score,
		scoring.KeyMomentum:        c.Momentum.Score,
		scoring.KeyRisk:            c.Risk.Score,
	}, e.cfg.CompositeWeights), 1)
	c.ConfidenceLevel = scoring.ConfidenceLevel(c.FinancialHealth, c.Quality)
	c.Insights = insight.Insights(*c)
	c.Warnings = insight.Warnings(*c)

	return c
}

// Options reads the nearest expiration: put/call volume ratio, volume weighted implied volatility and
// total volume. Both sides of the chain must be present.
func (e *MetricExtractor) Options(ctx context.Context, symbol string) dto.OptionsMetrics {
	ctx, span := e.startSpan(ctx, categoryOptions, symbol)
	defer span.End()

	chain, err := e.provider.GetOptionsChain(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryOptions, "options chain fetch failed", err)
		return dto.OptionsMetrics{}
	}
	if chain == nil || len(chain.Calls) == 0 || len(chain.Puts) == 0 {
		return dto.OptionsMetrics{}
	}

	var callVolume, putVolume, weightedIV float64
	for _, c := range chain.Calls {
		callVolume += c.Volume
		weightedIV += c.ImpliedVolatility * c.Volume
	}
	for _, p := range chain.Puts {
		putVolume += p.Volume
		weightedIV += p.ImpliedVolatility * p.Volume
	}
	total := callVolume + putVolume

	m := dto.OptionsMetrics{OptionVolume: utils.ToPointer(int64(total))}
	if callVolume > 0 {
		m.PutCallRatio = utils.ToPointer(utils.RoundTo(putVolume/callVolume, 4))
	}
	if total > 0 {
		m.ImpliedVolatility = utils.ToPointer(utils.RoundTo(weightedIV/total, 4))
	}
	return m
}

// Sector reports the classification and the one-year correlation of daily closes with the market
// benchmark. The correlation needs more than 30 common trading days.
func (e *MetricExtractor) Sector(ctx context.Context, symbol string) dto.SectorMetrics {
	ctx, span := e.startSpan(ctx, categorySector, symbol)
	defer span.End()

	f, err := e.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categorySector, "fundamentals fetch failed", err)
		return dto.SectorMetrics{}
	}
	m := dto.SectorMetrics{Sector: f.Sector, Industry: f.Industry}

	stock, err := e.provider.GetPriceHistory(ctx, symbol, dto.Period1Year)
	if err != nil {
		e.degrade(ctx, span, symbol, categorySector, "price history fetch failed", err)
		return m
	}
	market, err := e.provider.GetPriceHistory(ctx, e.cfg.MarketSymbol, dto.Period1Year)
	if err != nil {
		e.degrade(ctx, span, symbol, categorySector, "market history fetch failed", err)
		return m
	}

	xs, ys := indicator.Align(datedCloses(stock), datedCloses(market))
	if corr, ok := indicator.Correlation(xs, ys, minCorrelationBars); ok {
		m.MarketCorrelation = utils.ToPointer(utils.RoundTo(corr, 4))
	}
	return m
}

func (e *MetricExtractor) FinancialHealth(ctx context.Context, symbol string) dto.FinancialHealthMetrics {
	ctx, span := e.startSpan(ctx, categoryFinancialHealth, symbol)
	defer span.End()

	f, err := e.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryFinancialHealth, "fundamentals fetch failed", err)
		return dto.FinancialHealthMetrics{}
	}

	piotroski := indicator.Piotroski(indicator.PiotroskiInput{
		ReturnOnAssets:    f.ReturnOnAssets,
		OperatingCashflow: f.OperatingCashflow,
		MarketCap:         f.MarketCap,
		DebtToEquity:      f.DebtToEquity,
		CurrentRatio:      f.CurrentRatio,
	})
	m := dto.FinancialHealthMetrics{PiotroskiScore: &piotroski}

	if z, ok := indicator.AltmanZ(indicator.AltmanInput{
		TotalAssets:    f.TotalAssets,
		CurrentRatio:   f.CurrentRatio,
		DebtToEquity:   f.DebtToEquity,
		ReturnOnAssets: f.ReturnOnAssets,
	}); ok {
		m.AltmanZScore = utils.ToPointer(utils.RoundTo(z, 2))
	}
	if f.TotalCurrentAssets != nil && f.TotalCurrentLiabilities != nil {
		m.WorkingCapital = utils.ToPointer(*f.TotalCurrentAssets - *f.TotalCurrentLiabilities)
	}
	if f.OperatingCashflow != nil && f.TotalDebt != nil && *f.TotalDebt > 0 {
		m.DebtCoverageRatio = utils.ToPointer(utils.RoundTo(*f.OperatingCashflow / *f.TotalDebt, 4))
	}

	m.Score = scoring.Health(m)
	return m
}

// Momentum needs a year of history with at least 30 bars; longer lookbacks are filled as the history
// allows.
func (e *MetricExtractor) Momentum(ctx context.Context, symbol string) dto.MomentumMetrics {
	ctx, span := e.startSpan(ctx, categoryMomentum, symbol)
	defer span.End()

	history, err := e.provider.GetPriceHistory(ctx, symbol, dto.Period1Year)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryMomentum, "price history fetch failed", err)
		return dto.MomentumMetrics{}
	}
	if history.Len() < minMomentumBars {
		e.degrade(ctx, span, symbol, categoryMomentum, fmt.Sprintf("insufficient history: %d bars", history.Len()), nil)
		return dto.MomentumMetrics{}
	}

	closes := history.Closes()
	m := dto.MomentumMetrics{
		PriceMomentum1M: roundedOK(indicator.Momentum(closes, lookback1M)),
		PriceMomentum3M: roundedOK(indicator.Momentum(closes, lookback3M)),
		PriceMomentum6M: roundedOK(indicator.Momentum(closes, lookback6M)),
	}
	if len(closes) >= longRSIPeriod {
		m.RSILong = roundedOK(indicator.RSI(closes, longRSIPeriod))
	}

	m.Score = scoring.Momentum(m)
	return m
}

// Risk uses two years of daily returns. Beta is measured against the market benchmark and falls back
// to the provider's beta when the benchmark cannot be fetched.
func (e *MetricExtractor) Risk(ctx context.Context, symbol string) dto.RiskMetrics {
	ctx, span := e.startSpan(ctx, categoryRisk, symbol)
	defer span.End()

	history, err := e.provider.GetPriceHistory(ctx, symbol, dto.Period2Years)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryRisk, "price history fetch failed", err)
		return dto.RiskMetrics{}
	}
	if history.Len() < minRiskBars {
		e.degrade(ctx, span, symbol, categoryRisk, fmt.Sprintf("insufficient history: %d bars", history.Len()), nil)
		return dto.RiskMetrics{}
	}

	returns := indicator.Returns(history.Closes())
	rf := e.cfg.RiskFreeRate

	m := dto.RiskMetrics{
		Beta:          e.beta(ctx, symbol, history),
		SharpeRatio:   roundedOK(indicator.Sharpe(returns, rf)),
		SortinoRatio:  roundedOK(indicator.Sortino(returns, rf)),
		MaxDrawdown:   roundedOK(indicator.MaxDrawdown(returns)),
		ValueAtRisk95: roundedOK(indicator.ValueAtRisk95(returns)),
		Volatility30D: roundedOK(indicator.AnnualizedVolatility(returns, 30)),
		Volatility90D: roundedOK(indicator.AnnualizedVolatility(returns, 90)),
	}
	if dd, ok := indicator.DownsideDeviation(returns); ok {
		m.DownsideDeviation = utils.ToPointer(utils.RoundTo(dd*100, 2))
	}

	m.Score = scoring.Risk(m)
	return m
}

func (e *MetricExtractor) beta(ctx context.Context, symbol string, history *dto.PriceHistory) *float64 {
	market, err := e.provider.GetPriceHistory(ctx, e.cfg.MarketSymbol, dto.Period2Years)
	if err != nil {
		e.log.WarnContext(ctx, "Market history unavailable, using provider beta")
		f, ferr := e.provider.GetFundamentals(ctx, symbol)
		if ferr != nil {
			return nil
		}
		return f.Beta
	}

	stockReturns := indicator.DatedReturns(datedCloses(history))
	marketReturns := indicator.DatedReturns(datedCloses(market))
	xs, ys := indicator.Align(stockReturns, marketReturns)
	return roundedOK(indicator.Beta(xs, ys, minBetaPoints))
}

// Valuation needs a current price from the provider.
func (e *MetricExtractor) Valuation(ctx context.Context, symbol string) dto.ValuationMetrics {
	ctx, span := e.startSpan(ctx, categoryValuation, symbol)
	defer span.End()

	f, err := e.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryValuation, "fundamentals fetch failed", err)
		return dto.ValuationMetrics{}
	}
	if f.CurrentPrice == nil || *f.CurrentPrice <= 0 {
		e.degrade(ctx, span, symbol, categoryValuation, "no current price", nil)
		return dto.ValuationMetrics{}
	}
	price := *f.CurrentPrice

	m := dto.ValuationMetrics{
		CurrentPrice:        f.CurrentPrice,
		DCFEstimate:         roundedOK(indicator.SimpleDCF(f.FreeCashflow, f.EarningsGrowth, f.SharesOutstanding)),
		GrahamNumber:        roundedOK(indicator.GrahamNumber(f.TrailingEps, f.BookValue)),
		PeterLynchFairValue: roundedOK(indicator.LynchFairValue(price, f.PEGRatio, f.EarningsGrowth, f.TrailingPE)),
		EVSales:             f.EnterpriseToRevenue,
		EVEbitda:            f.EnterpriseToEbitda,
		EnterpriseValue:     f.EnterpriseValue,
	}
	if f.FreeCashflow != nil && *f.FreeCashflow > 0 && f.SharesOutstanding != nil && *f.SharesOutstanding > 0 {
		fcfPerShare := *f.FreeCashflow / *f.SharesOutstanding
		m.PriceToFCF = utils.ToPointer(utils.RoundTo(price/fcfPerShare, 2))
	}

	m.Score = scoring.Valuation(m)
	return m
}

// Red flag texts of the quality category.
const (
	flagLowCashFlow = "Low cash flow relative to earnings"
	flagLowROA      = "Low return on assets"
	flagHighDebt    = "Very high debt-to-equity ratio"
)

func (e *MetricExtractor) Quality(ctx context.Context, symbol string) dto.QualityMetrics {
	ctx, span := e.startSpan(ctx, categoryQuality, symbol)
	defer span.End()

	f, err := e.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryQuality, "fundamentals fetch failed", err)
		return dto.QualityMetrics{RedFlags: []string{}}
	}

	m := dto.QualityMetrics{RedFlags: []string{}}
	if f.OperatingCashflow != nil && f.NetIncome != nil && *f.NetIncome != 0 {
		cf := utils.RoundTo(*f.OperatingCashflow / *f.NetIncome, 4)
		m.CashFlowToEarnings = &cf
		m.AccrualsRatio = utils.ToPointer(utils.RoundTo(1-cf, 4))
		if cf < 0.8 {
			m.RedFlags = append(m.RedFlags, flagLowCashFlow)
		}
	}
	if f.ReturnOnAssets != nil && *f.ReturnOnAssets < 0.02 {
		m.RedFlags = append(m.RedFlags, flagLowROA)
	}
	// provider reports debt-to-equity in percent
	if f.DebtToEquity != nil && *f.DebtToEquity > 200 {
		m.RedFlags = append(m.RedFlags, flagHighDebt)
	}

	m.EarningsQuality = scoring.EarningsQuality(m.CashFlowToEarnings, len(m.RedFlags))
	m.Score = scoring.Quality(m)
	return m
}

var interestRateSensitivity = map[string]float64{
	"Real Estate":        0.8,
	"Utilities":          0.7,
	"Financial Services": 0.6,
	"Consumer Cyclical":  0.4,
	"Technology":         0.2,
	"Healthcare":         0.1,
	"Consumer Defensive": 0.1,
}

var inflationImpact = map[string]string{
	"Energy":             "Positive",
	"Materials":          "Positive",
	"Real Estate":        "Mixed",
	"Financial Services": "Mixed",
	"Consumer Defensive": "Negative",
	"Technology":         "Negative",
	"Healthcare":         "Negative",
}

// MacroContext is a sector lookup; the economic cycle position is not modelled.
func (e *MetricExtractor) MacroContext(ctx context.Context, symbol string) dto.MacroContextMetrics {
	ctx, span := e.startSpan(ctx, categoryMacro, symbol)
	defer span.End()

	f, err := e.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryMacro, "fundamentals fetch failed", err)
		return dto.MacroContextMetrics{}
	}

	sensitivity, ok := interestRateSensitivity[f.Sector]
	if !ok {
		sensitivity = 0.3
	}
	impact, ok := inflationImpact[f.Sector]
	if !ok {
		impact = "Neutral"
	}

	return dto.MacroContextMetrics{
		InterestRateSensitivity: &sensitivity,
		InflationImpact:         &impact,
		EconomicCyclePosition:   utils.ToPointer("Unknown"),
	}
}

func datedCloses(h *dto.PriceHistory) []indicator.Point {
	if h == nil {
		return nil
	}
	points := make([]indicator.Point, len(h.Bars))
	for i, b := range h.Bars {
		points[i] = indicator.Point{Date: b.Date, Value: b.Close}
	}
	return points
}

func roundedOK(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return utils.ToPointer(utils.RoundTo(v, 2))
}
