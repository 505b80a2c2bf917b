package service

import (
	"stock-scoring/config"
	"stock-scoring/internal/repository"
	"stock-scoring/internal/strategy"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/tracer"
)

type Service struct {
	AnalyzerService  AnalyzerService
	WatchlistService WatchlistService
	SchedulerService SchedulerService
	TaskExecutor     TaskExecutor
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	tr *tracer.Tracer,
	repo *repository.Repository,
) *Service {
	analyzerService := NewAnalyzerService(cfg, log, tr, repo.MarketData.Provider, repo.MarketData.Sentiment, repo.AnalysisHistoryRepo)

	taskExecutor := NewTaskExecutor(cfg, log, repo.JobRepo,
		strategy.NewWatchlistAnalysisStrategy(cfg, log, analyzerService, repo.WatchlistRepo),
		strategy.NewDataCleanUpStrategy(cfg, log, repo.AnalysisHistoryRepo, repo.JobRepo),
	)

	return &Service{
		AnalyzerService:  analyzerService,
		WatchlistService: NewWatchlistService(log, repo.WatchlistRepo, repo.UnitOfWork),
		SchedulerService: NewSchedulerService(cfg, log, repo.JobRepo, taskExecutor),
		TaskExecutor:     taskExecutor,
	}
}
