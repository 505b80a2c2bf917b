package dto

import "time"

// AnalysisResult is the serializable record tree returned for one analyze call.
type AnalysisResult struct {
	Symbol         string                 `json:"symbol"`
	Mode           AnalysisMode           `json:"analysis_mode"`
	AnalyzedAt     time.Time              `json:"analyzed_at"`
	Quote          StockQuote             `json:"quote"`
	Fundamentals   FundamentalMetrics     `json:"fundamentals"`
	Technicals     TechnicalMetrics       `json:"technicals"`
	Sentiment      SentimentMetrics       `json:"sentiment"`
	Recommendation Recommendation         `json:"recommendation"`
	Comprehensive  *ComprehensiveAnalysis `json:"comprehensive,omitempty"`
}

// BatchAnalysisResult is the per-symbol outcome of a watchlist run.
type BatchAnalysisResult struct {
	Symbol string  `json:"symbol"`
	Action Action  `json:"action,omitempty"`
	Score  float64 `json:"overall_score,omitempty"`
	Error  string  `json:"error,omitempty"`
}
