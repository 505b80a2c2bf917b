package extractor

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"stock-scoring/internal/contract"
	"stock-scoring/internal/scoring"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/tracer"
)

// ErrQuoteUnavailable is the only error an analysis surfaces: without a base quote nothing can be scored.
var ErrQuoteUnavailable = errors.New("quote unavailable")

// Metric categories, used as the "category" log field and span suffix.
const (
	categoryFundamentals    = "fundamentals"
	categoryTechnicals      = "technicals"
	categorySentiment       = "sentiment"
	categoryOptions         = "options"
	categorySector          = "sector"
	categoryFinancialHealth = "financial_health"
	categoryMomentum        = "momentum"
	categoryRisk            = "risk"
	categoryValuation       = "valuation"
	categoryQuality         = "quality"
	categoryMacro           = "macro_context"
)

type Config struct {
	// MarketSymbol is the benchmark used for beta and correlation.
	MarketSymbol     string
	RiskFreeRate     float64
	CompositeWeights map[string]float64
}

// MetricExtractor turns provider data for one symbol into metric records. Every category is isolated:
// a provider failure is logged and yields an empty record instead of an error.
type MetricExtractor struct {
	provider  contract.MarketDataProvider
	sentiment contract.SentimentProvider
	log       *logger.Logger
	tracer    *tracer.Tracer
	cfg       Config
}

// New builds an extractor. sentiment may be nil.
func New(provider contract.MarketDataProvider, sentiment contract.SentimentProvider, log *logger.Logger, tr *tracer.Tracer, cfg Config) *MetricExtractor {
	if cfg.MarketSymbol == "" {
		cfg.MarketSymbol = "SPY"
	}
	if len(cfg.CompositeWeights) == 0 {
		cfg.CompositeWeights = scoring.DefaultCompositeWeights()
	}
	if tr == nil {
		tr = tracer.Noop()
	}
	return &MetricExtractor{
		provider:  provider,
		sentiment: sentiment,
		log:       log,
		tracer:    tr,
		cfg:       cfg,
	}
}

func (e *MetricExtractor) startSpan(ctx context.Context, category, symbol string) (context.Context, trace.Span) {
	return e.tracer.StartSpan(ctx, "extractor."+category, attribute.String("symbol", symbol))
}

// degrade records a contained failure on the span and logs it.
func (e *MetricExtractor) degrade(ctx context.Context, span trace.Span, symbol, category, reason string, err error) {
	fields := []zap.Field{
		logger.StringField("symbol", symbol),
		logger.StringField("category", category),
		logger.StringField("reason", reason),
	}
	if err != nil {
		fields = append(fields, logger.ErrorField(err))
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, reason)
	e.log.WarnContext(ctx, "Metric category degraded", fields...)
}
