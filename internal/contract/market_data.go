package contract

import (
	"context"

	"stock-scoring/internal/dto"
)

type MarketDataProvider interface {
	GetQuote(ctx context.Context, symbol string) (*dto.QuoteData, error)
	GetPriceHistory(ctx context.Context, symbol, period string) (*dto.PriceHistory, error)
	GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error)
	GetOptionsChain(ctx context.Context, symbol string) (*dto.OptionsChain, error)
}

// SentimentProvider is optional; a nil provider means analyst-only sentiment.
type SentimentProvider interface {
	Analyze(ctx context.Context, symbol, companyName string) (*dto.SentimentAnalysis, error)
}
