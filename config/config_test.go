package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, time.Minute, cfg.Cache.TTL.Quote)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Fundamentals)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL.Sentiment)
	assert.Equal(t, "SPY", cfg.YahooFinance.MarketSymbol)
	assert.InDelta(t, 0.045, cfg.Scoring.RiskFreeRate, 1e-9)
	assert.InDelta(t, 0.5, cfg.Scoring.StandardWeights["fundamental"], 1e-9)
	assert.InDelta(t, 0.20, cfg.Scoring.CompositeWeights["financial_health"], 1e-9)
	assert.Equal(t, 10, cfg.History.MaxRecent)
	assert.False(t, cfg.Gemini.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("YAHOO_FINANCE_MARKET_SYMBOL", "QQQ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "QQQ", cfg.YahooFinance.MarketSymbol)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
