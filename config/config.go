package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger       `mapstructure:"logger"`
	DB           Database     `mapstructure:"database"`
	API          API          `mapstructure:"api"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
	Cache        Cache        `mapstructure:"cache"`
	YahooFinance YahooFinance `mapstructure:"yahoo_finance"`
	Gemini       Gemini       `mapstructure:"gemini"`
	Scoring      Scoring      `mapstructure:"scoring"`
	Tracing      Tracing      `mapstructure:"tracing"`
	History      History      `mapstructure:"history"`
	Alert        Alert        `mapstructure:"alert"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type Scheduler struct {
	Enabled         bool          `mapstructure:"enabled"`
	CronSpec        string        `mapstructure:"cron_spec"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type API struct {
	Port      int       `mapstructure:"port"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
}

type RateLimit struct {
	RequestPerSecond float64       `mapstructure:"request_per_second"`
	Burst            int           `mapstructure:"burst"`
	ExpiresIn        time.Duration `mapstructure:"expires_in"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	TTL               CacheTTL      `mapstructure:"ttl"`
}

// CacheTTL holds the freshness window of every cached provider data type.
type CacheTTL struct {
	Quote        time.Duration `mapstructure:"quote"`
	Fundamentals time.Duration `mapstructure:"fundamentals"`
	History      time.Duration `mapstructure:"history"`
	Options      time.Duration `mapstructure:"options"`
	Sentiment    time.Duration `mapstructure:"sentiment"`
	Crumb        time.Duration `mapstructure:"crumb"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	CookieURL           string        `mapstructure:"cookie_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	RetryCount          int           `mapstructure:"retry_count"`
	MarketSymbol        string        `mapstructure:"market_symbol"`
}

type Gemini struct {
	Enabled             bool          `mapstructure:"enabled"`
	APIKey              string        `mapstructure:"api_key"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

type Scoring struct {
	RiskFreeRate     float64            `mapstructure:"risk_free_rate"`
	StandardWeights  map[string]float64 `mapstructure:"standard_weights"`
	CompositeWeights map[string]float64 `mapstructure:"composite_weights"`
}

type Tracing struct {
	Enabled bool `mapstructure:"enabled"`
}

type History struct {
	MaxRecent     int `mapstructure:"max_recent"`
	RetentionDays int `mapstructure:"retention_days"`
}

type Alert struct {
	WebhookURL string `mapstructure:"webhook_url"`
	MinLevel   string `mapstructure:"min_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.rate_limit.request_per_second", 10)
	v.SetDefault("api.rate_limit.burst", 30)
	v.SetDefault("api.rate_limit.expires_in", 3*time.Minute)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.cron_spec", "@every 1m")
	v.SetDefault("scheduler.max_concurrency", 4)
	v.SetDefault("scheduler.timeout_duration", 5*time.Minute)

	v.SetDefault("cache.default_expiration", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.ttl.quote", time.Minute)
	v.SetDefault("cache.ttl.fundamentals", time.Hour)
	v.SetDefault("cache.ttl.history", 5*time.Minute)
	v.SetDefault("cache.ttl.options", 5*time.Minute)
	v.SetDefault("cache.ttl.sentiment", 30*time.Minute)
	v.SetDefault("cache.ttl.crumb", 6*time.Hour)

	v.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo_finance.cookie_url", "https://fc.yahoo.com")
	v.SetDefault("yahoo_finance.timeout", 10*time.Second)
	v.SetDefault("yahoo_finance.max_request_per_minute", 60)
	v.SetDefault("yahoo_finance.retry_count", 2)
	v.SetDefault("yahoo_finance.market_symbol", "SPY")

	v.SetDefault("gemini.enabled", false)
	v.SetDefault("gemini.base_model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout", 30*time.Second)
	v.SetDefault("gemini.max_request_per_minute", 10)
	v.SetDefault("gemini.max_token_per_minute", 200000)

	v.SetDefault("scoring.risk_free_rate", 0.045)
	v.SetDefault("scoring.standard_weights", map[string]float64{
		"fundamental": 0.5,
		"technical":   0.3,
		"sentiment":   0.2,
	})
	v.SetDefault("scoring.composite_weights", map[string]float64{
		"financial_health": 0.20,
		"valuation":        0.15,
		"quality":          0.10,
		"momentum":         0.10,
		"risk":             0.05,
	})

	v.SetDefault("history.max_recent", 10)
	v.SetDefault("history.retention_days", 30)

	v.SetDefault("alert.min_level", "error")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
}

// Load reads config.yaml from the working directory, then .env, then the process environment.
// Environment keys use "_" in place of ".", e.g. YAHOO_FINANCE_TIMEOUT.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
