package repository

import (
	"stock-scoring/config"
	"stock-scoring/internal/contract"
	"stock-scoring/pkg/cache"
	"stock-scoring/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	JobRepo             JobRepository
	WatchlistRepo       WatchlistRepository
	AnalysisHistoryRepo AnalysisHistoryRepository
	UnitOfWork          UnitOfWork
	MarketData          *MarketData
}

// MarketData bundles the cached external providers. Sentiment is nil when Gemini is disabled.
type MarketData struct {
	Provider  contract.MarketDataProvider
	Sentiment contract.SentimentProvider
}

// NewMarketData wires Yahoo Finance and, when enabled, Gemini behind the shared read-through cache.
// It needs no database, so one-shot CLI analysis can use it on its own.
func NewMarketData(cfg *config.Config, log *logger.Logger, c cache.Cache) (*MarketData, error) {
	yahoo := NewYahooFinanceRepository(cfg, log, c)

	var sentiment contract.SentimentProvider
	if cfg.Gemini.Enabled {
		gemini, err := NewGeminiSentimentRepository(yahoo, cfg, log)
		if err != nil {
			return nil, err
		}
		sentiment = NewCachedSentimentRepository(gemini, c, cfg.Cache.TTL)
	}

	return &MarketData{
		Provider:  NewCachedMarketDataRepository(yahoo, c, cfg.Cache.TTL),
		Sentiment: sentiment,
	}, nil
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger, c cache.Cache) (*Repository, error) {
	marketData, err := NewMarketData(cfg, log, c)
	if err != nil {
		return nil, err
	}

	return &Repository{
		JobRepo:             NewJobRepository(db),
		WatchlistRepo:       NewWatchlistRepository(db),
		AnalysisHistoryRepo: NewAnalysisHistoryRepository(db),
		UnitOfWork:          NewUnitOfWork(db),
		MarketData:          marketData,
	}, nil
}
