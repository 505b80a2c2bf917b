package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-scoring/config"
	"stock-scoring/internal/dto"
	"stock-scoring/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls map[string]int
	err   error
}

func (p *countingProvider) hit(name string) error {
	if p.calls == nil {
		p.calls = map[string]int{}
	}
	p.calls[name]++
	return p.err
}

func (p *countingProvider) GetQuote(_ context.Context, symbol string) (*dto.QuoteData, error) {
	if err := p.hit("quote"); err != nil {
		return nil, err
	}
	return &dto.QuoteData{Symbol: symbol, Price: 10}, nil
}

func (p *countingProvider) GetPriceHistory(_ context.Context, symbol, period string) (*dto.PriceHistory, error) {
	if err := p.hit("history_" + period); err != nil {
		return nil, err
	}
	return &dto.PriceHistory{Symbol: symbol, Period: period}, nil
}

func (p *countingProvider) GetFundamentals(_ context.Context, symbol string) (*dto.Fundamentals, error) {
	if err := p.hit("fundamentals"); err != nil {
		return nil, err
	}
	return &dto.Fundamentals{Symbol: symbol}, nil
}

func (p *countingProvider) GetOptionsChain(_ context.Context, _ string) (*dto.OptionsChain, error) {
	if err := p.hit("options"); err != nil {
		return nil, err
	}
	return &dto.OptionsChain{}, nil
}

type countingSentiment struct{ calls int }

func (s *countingSentiment) Analyze(_ context.Context, _, _ string) (*dto.SentimentAnalysis, error) {
	s.calls++
	return &dto.SentimentAnalysis{OverallScore: 0.6}, nil
}

func testTTL() config.CacheTTL {
	return config.CacheTTL{
		Quote:        time.Minute,
		Fundamentals: time.Minute,
		History:      time.Minute,
		Options:      time.Minute,
		Sentiment:    time.Minute,
	}
}

func TestCachedMarketData_ReadThrough(t *testing.T) {
	next := &countingProvider{}
	repo := NewCachedMarketDataRepository(next, cache.NewCache(time.Minute, time.Minute), testTTL())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.GetQuote(ctx, "AAPL")
		require.NoError(t, err)
		_, err = repo.GetFundamentals(ctx, "AAPL")
		require.NoError(t, err)
		_, err = repo.GetPriceHistory(ctx, "AAPL", "6mo")
		require.NoError(t, err)
		_, err = repo.GetOptionsChain(ctx, "AAPL")
		require.NoError(t, err)
	}
	_, err := repo.GetPriceHistory(ctx, "AAPL", "1y")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls["quote"])
	assert.Equal(t, 1, next.calls["fundamentals"])
	assert.Equal(t, 1, next.calls["history_6mo"])
	assert.Equal(t, 1, next.calls["history_1y"], "periods are cached separately")
	assert.Equal(t, 1, next.calls["options"])
}

func TestCachedMarketData_ErrorsAreNotCached(t *testing.T) {
	next := &countingProvider{err: errors.New("down")}
	repo := NewCachedMarketDataRepository(next, cache.NewCache(time.Minute, time.Minute), testTTL())

	_, err := repo.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
	_, err = repo.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, 2, next.calls["quote"])
}

func TestCachedSentiment(t *testing.T) {
	assert.Nil(t, NewCachedSentimentRepository(nil, cache.NewCache(time.Minute, time.Minute), testTTL()))

	next := &countingSentiment{}
	repo := NewCachedSentimentRepository(next, cache.NewCache(time.Minute, time.Minute), testTTL())
	for i := 0; i < 2; i++ {
		_, err := repo.Analyze(context.Background(), "AAPL", "Apple")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, next.calls)
}
