package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"stock-scoring/config"
	"stock-scoring/internal/model"
	"stock-scoring/internal/repository"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/utils"
)

type DataCleanUpPayload struct {
	RetentionDays int `json:"retention_days"`
}

type DataCleanUpResult struct {
	Table string `json:"table"`
	Total int64  `json:"total"`
	Error string `json:"error,omitempty"`
}

type DataCleanUpStrategy struct {
	cfg                 *config.Config
	log                 *logger.Logger
	analysisHistoryRepo repository.AnalysisHistoryRepository
	jobRepo             repository.JobRepository
}

func NewDataCleanUpStrategy(cfg *config.Config, log *logger.Logger, analysisHistoryRepo repository.AnalysisHistoryRepository, jobRepo repository.JobRepository) *DataCleanUpStrategy {
	return &DataCleanUpStrategy{
		cfg:                 cfg,
		log:                 log,
		analysisHistoryRepo: analysisHistoryRepo,
		jobRepo:             jobRepo,
	}
}

// Execute removes analysis history and task history older than the retention window. The window comes
// from the payload, falling back to history.retention_days.
func (s *DataCleanUpStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	s.log.InfoContext(ctx, "Starting data clean up")

	var payload DataCleanUpPayload
	if err := job.DecodePayload(&payload); err != nil {
		s.log.ErrorContext(ctx, "Failed to unmarshal job payload", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}
	if payload.RetentionDays <= 0 {
		payload.RetentionDays = s.cfg.History.RetentionDays
	}

	date := utils.TimeNowMarket().AddDate(0, 0, -payload.RetentionDays)

	var succeeded, failed int
	results := []DataCleanUpResult{}
	collect := func(table string, total int64, err error) {
		res := DataCleanUpResult{Table: table, Total: total}
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to delete old rows", logger.ErrorField(err), logger.StringField("table", table))
			res.Error = fmt.Sprintf("failed to delete %s older than %v: %v", table, date, err)
			failed++
		} else {
			succeeded++
		}
		results = append(results, res)
	}

	total, err := s.analysisHistoryRepo.DeleteOlderThan(ctx, date)
	collect(model.AnalysisHistory{}.TableName(), total, err)

	total, err = s.jobRepo.DeleteTaskHistoryOlderThan(ctx, date)
	collect(model.TaskExecutionHistory{}.TableName(), total, err)

	out, err := json.Marshal(results)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal output message", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to marshal output message: %v", err)}, fmt.Errorf("failed to marshal output message: %w", err)
	}
	return JobResult{ExitCode: exitCodeFor(succeeded, failed), Output: string(out)}, nil
}

func (s *DataCleanUpStrategy) GetType() JobType {
	return JobTypeDataCleanUp
}
