package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stock-scoring/config"
	"stock-scoring/internal/contract"
	"stock-scoring/internal/dto"
	"stock-scoring/internal/extractor"
	"stock-scoring/internal/model"
	"stock-scoring/internal/repository"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/utils"
)

type WatchlistAnalysisPayload struct {
	Mode             string   `json:"analysis_mode"`
	AdditionalStocks []string `json:"additional_stocks"`
}

type WatchlistAnalysisStrategy struct {
	cfg           *config.Config
	logger        *logger.Logger
	analyzer      contract.Analyzer
	watchlistRepo repository.WatchlistRepository
}

func NewWatchlistAnalysisStrategy(
	cfg *config.Config,
	logger *logger.Logger,
	analyzer contract.Analyzer,
	watchlistRepo repository.WatchlistRepository,
) *WatchlistAnalysisStrategy {
	return &WatchlistAnalysisStrategy{
		cfg:           cfg,
		logger:        logger,
		analyzer:      analyzer,
		watchlistRepo: watchlistRepo,
	}
}

func (s *WatchlistAnalysisStrategy) GetType() JobType {
	return JobTypeWatchlistAnalysis
}

func (s *WatchlistAnalysisStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	var payload WatchlistAnalysisPayload
	if err := job.DecodePayload(&payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to unmarshal job payload", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}

	mode, ok := dto.ParseAnalysisMode(payload.Mode)
	if !ok {
		err := fmt.Errorf("invalid analysis mode %q", payload.Mode)
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}

	items, err := s.watchlistRepo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load watchlist", logger.ErrorField(err))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to load watchlist: %v", err)}, fmt.Errorf("failed to load watchlist: %w", err)
	}

	symbols := make([]string, 0, len(items)+len(payload.AdditionalStocks))
	for _, item := range items {
		symbols = append(symbols, item.Symbol)
	}
	symbols = append(symbols, payload.AdditionalStocks...)
	symbols = uniqueSymbols(symbols)

	if len(symbols) == 0 {
		s.logger.InfoContext(ctx, "No stocks to analyze")
		return JobResult{ExitCode: JOB_EXIT_CODE_SKIPPED, Output: "no stocks to analyze"}, nil
	}

	results := s.AnalyzeBatch(ctx, symbols, mode)

	var succeeded, failed int
	for _, r := range results {
		if r.Error != "" {
			failed++
		} else {
			succeeded++
		}
	}

	out, err := json.Marshal(results)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to marshal results: %v", err)}, fmt.Errorf("failed to marshal results: %w", err)
	}

	s.logger.InfoContext(ctx, "Watchlist analysis completed",
		logger.IntField("total_stock", len(symbols)),
		logger.IntField("succeeded", succeeded),
		logger.IntField("failed", failed),
	)
	return JobResult{ExitCode: exitCodeFor(succeeded, failed), Output: string(out)}, nil
}

// AnalyzeBatch analyzes symbols concurrently, bounded by the scheduler concurrency. Results keep the
// input order; a failed or panicking symbol only marks its own entry.
func (s *WatchlistAnalysisStrategy) AnalyzeBatch(ctx context.Context, symbols []string, mode dto.AnalysisMode) []dto.BatchAnalysisResult {
	results := make([]dto.BatchAnalysisResult, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.cfg.Scheduler.MaxConcurrency))

	for i, symbol := range symbols {
		if !utils.ShouldContinue(gctx, s.logger) {
			s.logger.InfoContext(ctx, "Received stop signal, watchlist analysis stopped")
			break
		}

		g.Go(func() error {
			res := dto.BatchAnalysisResult{Symbol: symbol}
			err := utils.GoSafe(func() error {
				analysis, err := s.analyzer.Analyze(gctx, symbol, mode)
				if err != nil {
					return err
				}
				res.Action = analysis.Recommendation.Action
				res.Score = analysis.Recommendation.OverallScore
				return nil
			})
			if err != nil {
				s.logger.WarnContext(gctx, "Failed to analyze stock", logger.ErrorField(err), logger.StringField("symbol", symbol))
				res.Error = err.Error()
			}

			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for _, r := range results {
		if r.Symbol != "" {
			out = append(out, r)
		}
	}
	return out
}

func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = extractor.NormalizeSymbol(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
