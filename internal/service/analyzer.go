package service

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/attribute"

	"stock-scoring/config"
	"stock-scoring/internal/contract"
	"stock-scoring/internal/dto"
	"stock-scoring/internal/extractor"
	"stock-scoring/internal/model"
	"stock-scoring/internal/recommendation"
	"stock-scoring/internal/repository"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/tracer"
	"stock-scoring/pkg/utils"
)

type AnalyzerService interface {
	contract.Analyzer
	GetRecent(ctx context.Context, symbol string, limit int) ([]dto.RecentAnalysisResponse, error)
}

type analyzerService struct {
	cfg         *config.Config
	log         *logger.Logger
	tracer      *tracer.Tracer
	extractor   *extractor.MetricExtractor
	engine      *recommendation.Engine
	historyRepo repository.AnalysisHistoryRepository
}

// NewAnalyzerService builds the analysis pipeline. sentiment and historyRepo may be nil; without a
// history repository results are not stored.
func NewAnalyzerService(
	cfg *config.Config,
	log *logger.Logger,
	tr *tracer.Tracer,
	provider contract.MarketDataProvider,
	sentiment contract.SentimentProvider,
	historyRepo repository.AnalysisHistoryRepository,
) AnalyzerService {
	if tr == nil {
		tr = tracer.Noop()
	}
	return &analyzerService{
		cfg:    cfg,
		log:    log,
		tracer: tr,
		extractor: extractor.New(provider, sentiment, log, tr, extractor.Config{
			MarketSymbol:     cfg.YahooFinance.MarketSymbol,
			RiskFreeRate:     cfg.Scoring.RiskFreeRate,
			CompositeWeights: cfg.Scoring.CompositeWeights,
		}),
		engine:      recommendation.NewEngine(cfg.Scoring.StandardWeights),
		historyRepo: historyRepo,
	}
}

// Analyze scores one symbol. The only error is a wrapped extractor.ErrQuoteUnavailable; every other
// failure degrades the affected record.
func (s *analyzerService) Analyze(ctx context.Context, symbol string, mode dto.AnalysisMode) (*dto.AnalysisResult, error) {
	symbol = extractor.NormalizeSymbol(symbol)
	if mode == "" {
		mode = dto.ModeStandard
	}

	ctx, span := s.tracer.StartSpan(ctx, "analyzer.analyze",
		attribute.String("symbol", symbol),
		attribute.String("mode", string(mode)),
	)
	defer span.End()

	s.log.InfoContext(ctx, "Analyzing stock", logger.StringField("symbol", symbol), logger.StringField("mode", string(mode)))

	quote, err := s.extractor.Quote(ctx, symbol)
	if err != nil {
		s.log.WarnContext(ctx, "Quote unavailable", logger.StringField("symbol", symbol), logger.ErrorField(err))
		span.RecordError(err)
		return nil, err
	}

	fundamentals := s.extractor.Fundamentals(ctx, symbol)
	technicals := s.extractor.Technicals(ctx, symbol)
	sentiment := s.extractor.Sentiment(ctx, symbol, quote.Name)

	result := &dto.AnalysisResult{
		Symbol:       symbol,
		Mode:         mode,
		AnalyzedAt:   utils.TimeNowMarket(),
		Quote:        quote,
		Fundamentals: fundamentals,
		Technicals:   technicals,
		Sentiment:    sentiment,
		Recommendation: s.engine.Recommend(recommendation.Input{
			FundamentalScore: fundamentals.Score,
			TechnicalScore:   technicals.Score,
			SentimentScore:   sentiment.Score,
			Trend:            technicals.Trend,
			CurrentPrice:     quote.CurrentPrice,
		}),
	}

	if mode == dto.ModeComprehensive {
		result.Comprehensive = s.extractor.Comprehensive(ctx, symbol)
	}

	span.SetAttributes(
		attribute.String("action", string(result.Recommendation.Action)),
		attribute.Float64("overall_score", result.Recommendation.OverallScore),
	)
	s.log.InfoContext(ctx, "Analysis completed",
		logger.StringField("symbol", symbol),
		logger.StringField("action", string(result.Recommendation.Action)),
		logger.FloatField("overall_score", result.Recommendation.OverallScore),
	)

	s.record(ctx, result)
	return result, nil
}

// record stores the result in the analysis history. Failures are logged, never returned.
func (s *analyzerService) record(ctx context.Context, result *dto.AnalysisResult) {
	if s.historyRepo == nil {
		return
	}

	history, err := toAnalysisHistory(result)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal analysis result", logger.ErrorField(err), logger.StringField("symbol", result.Symbol))
		return
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		s.log.ErrorContext(ctx, "Failed to store analysis history", logger.ErrorField(err), logger.StringField("symbol", result.Symbol))
	}
}

func (s *analyzerService) GetRecent(ctx context.Context, symbol string, limit int) ([]dto.RecentAnalysisResponse, error) {
	if s.historyRepo == nil {
		return []dto.RecentAnalysisResponse{}, nil
	}
	if limit <= 0 {
		limit = s.cfg.History.MaxRecent
	}

	param := model.GetAnalysisHistoryParam{Limit: limit}
	if symbol != "" {
		param.Symbol = utils.ToPointer(extractor.NormalizeSymbol(symbol))
	}

	histories, err := s.historyRepo.GetRecent(ctx, param)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get recent analyses", logger.ErrorField(err))
		return nil, err
	}

	out := make([]dto.RecentAnalysisResponse, 0, len(histories))
	for _, h := range histories {
		out = append(out, dto.RecentAnalysisResponse{
			ID:           h.ID,
			Symbol:       h.Symbol,
			Mode:         dto.AnalysisMode(h.Mode),
			Action:       dto.Action(h.Action),
			OverallScore: h.OverallScore,
			Confidence:   h.Confidence,
			AnalyzedAt:   h.AnalyzedAt,
		})
	}
	return out, nil
}

func toAnalysisHistory(result *dto.AnalysisResult) (*model.AnalysisHistory, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &model.AnalysisHistory{
		Symbol:       result.Symbol,
		Mode:         string(result.Mode),
		Action:       string(result.Recommendation.Action),
		OverallScore: result.Recommendation.OverallScore,
		Confidence:   result.Recommendation.Confidence,
		Result:       raw,
		AnalyzedAt:   result.AnalyzedAt,
	}, nil
}
