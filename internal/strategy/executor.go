package strategy

import (
	"context"

	"stock-scoring/internal/model"
)

const (
	JOB_EXIT_CODE_SUCCESS         = 200
	JOB_EXIT_CODE_FAILED          = 500
	JOB_EXIT_CODE_SKIPPED         = 204
	JOB_EXIT_CODE_PARTIAL_SUCCESS = 206
)

type JobType string

const (
	JobTypeWatchlistAnalysis JobType = "watchlist_analysis"
	JobTypeDataCleanUp       JobType = "data_clean_up"
)

type JobResult struct {
	ExitCode int32  `json:"exit_code"`
	Output   string `json:"output"`
}

// JobExecutionStrategy defines the interface for different job execution strategies.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, job *model.Job) (JobResult, error)
	GetType() JobType
}

// exitCodeFor summarizes a batch: all good, all bad, or a mix.
func exitCodeFor(succeeded, failed int) int32 {
	switch {
	case succeeded+failed == 0:
		return JOB_EXIT_CODE_SKIPPED
	case failed == 0:
		return JOB_EXIT_CODE_SUCCESS
	case succeeded == 0:
		return JOB_EXIT_CODE_FAILED
	default:
		return JOB_EXIT_CODE_PARTIAL_SUCCESS
	}
}
