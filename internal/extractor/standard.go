package extractor

import (
	"context"
	"fmt"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/indicator"
	"stock-scoring/internal/scoring"
	"stock-scoring/pkg/utils"
)

const (
	minTechnicalBars = 50
	rsiPeriod        = 14
	bollingerPeriod  = 20
	bollingerK       = 2
	supportWindow    = 20
)

// Fundamentals converts provider ratios once: ROE, ROA, margins and growth to percentages and
// debt-to-equity from percent to a plain ratio.
func (e *MetricExtractor) Fundamentals(ctx context.Context, symbol string) dto.FundamentalMetrics {
	ctx, span := e.startSpan(ctx, categoryFundamentals, symbol)
	defer span.End()

	f, err := e.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryFundamentals, "fundamentals fetch failed", err)
		return dto.FundamentalMetrics{}
	}

	m := dto.FundamentalMetrics{
		PERatio:        f.TrailingPE,
		PEGRatio:       f.PEGRatio,
		PBRatio:        f.PriceToBook,
		PSRatio:        f.PriceToSales,
		EVEbitda:       f.EnterpriseToEbitda,
		ROE:            scale(f.ReturnOnEquity, 100),
		ROA:            scale(f.ReturnOnAssets, 100),
		ProfitMargin:   scale(f.ProfitMargins, 100),
		DebtToEquity:   scale(f.DebtToEquity, 0.01),
		CurrentRatio:   f.CurrentRatio,
		RevenueGrowth:  scale(f.RevenueGrowth, 100),
		EarningsGrowth: scale(f.EarningsGrowth, 100),
	}
	m.Score = scoring.Fundamental(m)
	return m
}

// Technicals needs six months of daily bars with at least 50 of them.
func (e *MetricExtractor) Technicals(ctx context.Context, symbol string) dto.TechnicalMetrics {
	ctx, span := e.startSpan(ctx, categoryTechnicals, symbol)
	defer span.End()

	empty := dto.TechnicalMetrics{Trend: dto.TrendNeutral}

	history, err := e.provider.GetPriceHistory(ctx, symbol, dto.Period6Months)
	if err != nil {
		e.degrade(ctx, span, symbol, categoryTechnicals, "price history fetch failed", err)
		return empty
	}
	if history.Len() < minTechnicalBars {
		e.degrade(ctx, span, symbol, categoryTechnicals, fmt.Sprintf("insufficient history: %d bars", history.Len()), nil)
		return empty
	}

	closes := history.Closes()
	current := closes[len(closes)-1]

	// both are available with at least 50 bars
	sma20, _ := indicator.SMA(closes, 20)
	sma50, _ := indicator.SMA(closes, 50)
	var sma200 *float64
	if v, ok := indicator.SMA(closes, 200); ok {
		sma200 = &v
	}

	m := dto.TechnicalMetrics{
		CurrentPrice: utils.ToPointer(utils.RoundTo(current, 2)),
		SMA20:        utils.ToPointer(utils.RoundTo(sma20, 2)),
		SMA50:        utils.ToPointer(utils.RoundTo(sma50, 2)),
		SMA200:       utils.RoundPtr(sma200, 2),
		Trend:        indicator.Trend(current, sma20, sma50, sma200),
	}

	if rsi, ok := indicator.RSI(closes, rsiPeriod); ok {
		m.RSI = utils.ToPointer(utils.RoundTo(rsi, 2))
	}
	if macd, ok := indicator.MACD(closes); ok {
		m.MACD = utils.ToPointer(utils.RoundTo(macd.MACD, 4))
		m.MACDSignal = utils.ToPointer(utils.RoundTo(macd.Signal, 4))
	}
	if bands, ok := indicator.Bollinger(closes, bollingerPeriod, bollingerK); ok {
		m.BollingerUpper = utils.ToPointer(utils.RoundTo(bands.Upper, 2))
		m.BollingerLower = utils.ToPointer(utils.RoundTo(bands.Lower, 2))
	}
	if support, resistance, ok := indicator.SupportResistance(closes, supportWindow); ok {
		m.SupportLevel = utils.ToPointer(utils.RoundTo(support, 2))
		m.ResistanceLevel = utils.ToPointer(utils.RoundTo(resistance, 2))
	}

	m.Score = scoring.Technical(m)
	return m
}

// Sentiment starts from the analyst consensus and blends in the sentiment provider when one is
// configured. A provider failure falls back to analyst-only scoring.
func (e *MetricExtractor) Sentiment(ctx context.Context, symbol, companyName string) dto.SentimentMetrics {
	ctx, span := e.startSpan(ctx, categorySentiment, symbol)
	defer span.End()

	f, err := e.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		e.degrade(ctx, span, symbol, categorySentiment, "fundamentals fetch failed", err)
		return dto.SentimentMetrics{}
	}

	analystScore := scoring.AnalystScore(f.RecommendationKey)
	var analystCount int
	if f.NumberOfAnalystOpinions != nil {
		analystCount = *f.NumberOfAnalystOpinions
	}

	m := dto.SentimentMetrics{
		AnalystCount: f.NumberOfAnalystOpinions,
		AnalystScore: &analystScore,
	}
	if f.RecommendationKey != nil {
		m.AnalystRating = utils.ToPointer(scoring.AnalystRating(*f.RecommendationKey))
	}

	fallback := func(summary string) dto.SentimentMetrics {
		m.Score = scoring.Sentiment(analystScore, nil)
		m.Summary = summary
		m.Confidence = scoring.AnalystConfidence(analystCount)
		return m
	}

	if e.sentiment == nil {
		return fallback(fmt.Sprintf("Based on %d analyst recommendations", analystCount))
	}

	if companyName == "" {
		companyName = f.LongName
	}
	analysis, err := e.sentiment.Analyze(ctx, symbol, companyName)
	if err != nil || analysis == nil {
		e.degrade(ctx, span, symbol, categorySentiment, "sentiment provider failed, using analyst data", err)
		return fallback("Fallback to analyst data due to API error")
	}

	m.NewsSentiment = scale(analysis.NewsScore, 100)
	m.SocialSentiment = scale(analysis.SocialScore, 100)
	m.NewsArticleCount = analysis.ArticleCount
	m.SocialPostCount = analysis.PostCount
	m.Summary = analysis.Summary
	m.Confidence = utils.RoundTo(scoring.Clamp(analysis.Confidence*100, 0, 100), 1)
	m.Score = scoring.Sentiment(analystScore, &analysis.OverallScore)
	return m
}

func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	return utils.ToPointer(*v * factor)
}
