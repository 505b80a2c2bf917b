package repository

import (
	"context"
	"fmt"

	"stock-scoring/config"
	"stock-scoring/internal/contract"
	"stock-scoring/internal/dto"
	"stock-scoring/pkg/cache"
	"stock-scoring/pkg/common"
)

// cachedMarketDataRepository is a read-through cache in front of a market data provider. Entries are keyed
// by symbol and data type and expire per data type. Failed fetches are never cached.
type cachedMarketDataRepository struct {
	next  contract.MarketDataProvider
	cache cache.Cache
	ttl   config.CacheTTL
}

func NewCachedMarketDataRepository(next contract.MarketDataProvider, c cache.Cache, ttl config.CacheTTL) contract.MarketDataProvider {
	return &cachedMarketDataRepository{next: next, cache: c, ttl: ttl}
}

func (r *cachedMarketDataRepository) GetQuote(ctx context.Context, symbol string) (*dto.QuoteData, error) {
	return cache.Remember(r.cache, fmt.Sprintf(common.KEY_CACHE_DATA, symbol, common.DataTypeQuote), r.ttl.Quote,
		func() (*dto.QuoteData, error) {
			return r.next.GetQuote(ctx, symbol)
		})
}

func (r *cachedMarketDataRepository) GetPriceHistory(ctx context.Context, symbol, period string) (*dto.PriceHistory, error) {
	return cache.Remember(r.cache, fmt.Sprintf(common.KEY_CACHE_PERIOD, symbol, common.DataTypeHistory, period), r.ttl.History,
		func() (*dto.PriceHistory, error) {
			return r.next.GetPriceHistory(ctx, symbol, period)
		})
}

func (r *cachedMarketDataRepository) GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error) {
	return cache.Remember(r.cache, fmt.Sprintf(common.KEY_CACHE_DATA, symbol, common.DataTypeFundamentals), r.ttl.Fundamentals,
		func() (*dto.Fundamentals, error) {
			return r.next.GetFundamentals(ctx, symbol)
		})
}

func (r *cachedMarketDataRepository) GetOptionsChain(ctx context.Context, symbol string) (*dto.OptionsChain, error) {
	return cache.Remember(r.cache, fmt.Sprintf(common.KEY_CACHE_DATA, symbol, common.DataTypeOptions), r.ttl.Options,
		func() (*dto.OptionsChain, error) {
			return r.next.GetOptionsChain(ctx, symbol)
		})
}

type cachedSentimentRepository struct {
	next  contract.SentimentProvider
	cache cache.Cache
	ttl   config.CacheTTL
}

// NewCachedSentimentRepository caches sentiment per symbol. A nil provider stays nil so callers keep the
// analyst-only fallback.
func NewCachedSentimentRepository(next contract.SentimentProvider, c cache.Cache, ttl config.CacheTTL) contract.SentimentProvider {
	if next == nil {
		return nil
	}
	return &cachedSentimentRepository{next: next, cache: c, ttl: ttl}
}

func (r *cachedSentimentRepository) Analyze(ctx context.Context, symbol, companyName string) (*dto.SentimentAnalysis, error) {
	return cache.Remember(r.cache, fmt.Sprintf(common.KEY_CACHE_DATA, symbol, common.DataTypeSentiment), r.ttl.Sentiment,
		func() (*dto.SentimentAnalysis, error) {
			return r.next.Analyze(ctx, symbol, companyName)
		})
}
