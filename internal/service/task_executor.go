package service

import (
	"context"
	"errors"
	"fmt"

	"stock-scoring/config"
	"stock-scoring/internal/model"
	"stock-scoring/internal/repository"
	"stock-scoring/internal/strategy"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/utils"
)

type TaskExecutor interface {
	Execute(ctx context.Context, taskHistory *model.TaskExecutionHistory) error
}

type taskExecutor struct {
	cfg                *config.Config
	log                *logger.Logger
	jobRepo            repository.JobRepository
	executorStrategies map[strategy.JobType]strategy.JobExecutionStrategy
}

func NewTaskExecutor(cfg *config.Config, log *logger.Logger, jobRepo repository.JobRepository, strategies ...strategy.JobExecutionStrategy) TaskExecutor {
	executorStrategies := make(map[strategy.JobType]strategy.JobExecutionStrategy, len(strategies))
	for _, s := range strategies {
		executorStrategies[s.GetType()] = s
	}
	return &taskExecutor{
		jobRepo:            jobRepo,
		cfg:                cfg,
		log:                log,
		executorStrategies: executorStrategies,
	}
}

// Execute runs the strategy registered for the job type and stores the outcome on taskHistory.
// The returned error is about bookkeeping only; job failures end up in the history.
func (t *taskExecutor) Execute(ctx context.Context, taskHistory *model.TaskExecutionHistory) error {
	t.log.InfoContext(ctx, "Processing job", logger.IntField("job_id", int(taskHistory.JobID)), logger.IntField("history_id", int(taskHistory.ID)))

	job, err := t.jobRepo.FindByID(ctx, taskHistory.JobID)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to find job", logger.ErrorField(err), logger.IntField("job_id", int(taskHistory.JobID)))
		taskHistory.Finish(utils.TimeNowMarket(), model.StatusFailed, strategy.JOB_EXIT_CODE_FAILED, "", err)
		return t.save(ctx, taskHistory)
	}

	executor := t.executorStrategies[strategy.JobType(job.Type)]
	if executor == nil {
		t.log.ErrorContext(ctx, "Job type not found", logger.IntField("job_id", int(job.ID)), logger.StringField("job_type", job.Type))
		taskHistory.Finish(utils.TimeNowMarket(), model.StatusFailed, strategy.JOB_EXIT_CODE_FAILED, "", fmt.Errorf("job type %q not found", job.Type))
		return t.save(ctx, taskHistory)
	}

	result, err := executor.Execute(ctx, job)
	status := model.StatusCompleted
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		status = model.StatusTimeout
		if err == nil {
			err = ctx.Err()
		}
	}
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to execute job", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
	}
	taskHistory.Finish(utils.TimeNowMarket(), status, result.ExitCode, result.Output, err)

	return t.save(ctx, taskHistory)
}

func (t *taskExecutor) save(ctx context.Context, taskHistory *model.TaskExecutionHistory) error {
	// the task context may already be expired
	if err := t.jobRepo.UpdateTaskExecutionHistory(context.WithoutCancel(ctx), taskHistory); err != nil {
		t.log.ErrorContext(ctx, "Failed to update task execution history", logger.ErrorField(err), logger.IntField("job_id", int(taskHistory.JobID)))
		return fmt.Errorf("failed to update task execution history: %w", err)
	}
	return nil
}
