package dto

// FundamentalMetrics uses percentages for ROE, ROA, profit margin and growth, and a plain ratio for
// debt-to-equity.
type FundamentalMetrics struct {
	PERatio        *float64 `json:"pe_ratio"`
	PEGRatio       *float64 `json:"peg_ratio"`
	PBRatio        *float64 `json:"pb_ratio"`
	PSRatio        *float64 `json:"ps_ratio"`
	EVEbitda       *float64 `json:"ev_ebitda"`
	ROE            *float64 `json:"roe"`
	ROA            *float64 `json:"roa"`
	ProfitMargin   *float64 `json:"profit_margin"`
	DebtToEquity   *float64 `json:"debt_to_equity"`
	CurrentRatio   *float64 `json:"current_ratio"`
	RevenueGrowth  *float64 `json:"revenue_growth"`
	EarningsGrowth *float64 `json:"earnings_growth"`
	Score          float64  `json:"score"`
}

type TechnicalMetrics struct {
	CurrentPrice    *float64 `json:"current_price"`
	RSI             *float64 `json:"rsi"`
	MACD            *float64 `json:"macd"`
	MACDSignal      *float64 `json:"macd_signal"`
	SMA20           *float64 `json:"sma_20"`
	SMA50           *float64 `json:"sma_50"`
	SMA200          *float64 `json:"sma_200"`
	BollingerUpper  *float64 `json:"bollinger_upper"`
	BollingerLower  *float64 `json:"bollinger_lower"`
	SupportLevel    *float64 `json:"support_level"`
	ResistanceLevel *float64 `json:"resistance_level"`
	Trend           Trend    `json:"trend"`
	Score           float64  `json:"score"`
}

type SentimentMetrics struct {
	NewsSentiment    *float64 `json:"news_sentiment"`
	SocialSentiment  *float64 `json:"social_sentiment"`
	AnalystRating    *string  `json:"analyst_rating"`
	AnalystCount     *int     `json:"analyst_count"`
	AnalystScore     *float64 `json:"analyst_score"`
	NewsArticleCount int      `json:"news_article_count"`
	SocialPostCount  int      `json:"social_post_count"`
	Summary          string   `json:"sentiment_summary"`
	Confidence       float64  `json:"confidence"`
	Score            float64  `json:"score"`
}

type Recommendation struct {
	Action       Action    `json:"action"`
	Confidence   float64   `json:"confidence"`
	PriceTarget  *float64  `json:"price_target"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Reasoning    []string  `json:"reasoning"`
	OverallScore float64   `json:"overall_score"`
}
