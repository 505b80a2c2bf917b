package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"stock-scoring/config"
	"stock-scoring/internal/model"
	"stock-scoring/internal/repository"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/utils"
)

var ErrJobNotFound = errors.New("job not found")

type SchedulerService interface {
	// Execute starts every due schedule.
	Execute(ctx context.Context) error
	GetJobSchedule(ctx context.Context, param model.GetJobParam) ([]model.Job, error)
	// RunJobTask starts the first active schedule of a job regardless of its next execution.
	RunJobTask(ctx context.Context, jobID uint) error
	// Wait blocks until every started task has finished.
	Wait()
}

type schedulerService struct {
	cfg          *config.Config
	log          *logger.Logger
	cronParser   cron.Parser
	jobRepo      repository.JobRepository
	taskExecutor TaskExecutor
	semaphore    chan struct{}
	wg           sync.WaitGroup
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	jobRepo repository.JobRepository,
	taskExecutor TaskExecutor,
) SchedulerService {
	return &schedulerService{
		cfg:          cfg,
		log:          log,
		jobRepo:      jobRepo,
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		taskExecutor: taskExecutor,
		semaphore:    make(chan struct{}, max(1, cfg.Scheduler.MaxConcurrency)),
	}
}

func (s *schedulerService) Execute(ctx context.Context) error {
	schedules, err := s.jobRepo.FindDueSchedules(ctx, utils.TimeNowMarket(), utils.WithPreload("Job"))
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to find jobs to schedule", logger.ErrorField(err))
		return fmt.Errorf("failed to find jobs to schedule: %w", err)
	}

	if len(schedules) == 0 {
		s.log.DebugContext(ctx, "No jobs to schedule")
		return nil
	}
	s.log.InfoContext(ctx, "Start running jobs",
		logger.IntField("job_count", len(schedules)),
		logger.IntField("max_concurrency", cap(s.semaphore)),
	)

	for _, schedule := range schedules {
		if !utils.ShouldContinue(ctx, s.log) {
			return nil
		}

		if err := s.executeJob(ctx, schedule); err != nil {
			s.log.ErrorContextWithAlert(ctx, "Failed to execute job",
				logger.ErrorField(err),
				logger.IntField("job_id", int(schedule.JobID)),
				logger.IntField("schedule_id", int(schedule.ID)),
				logger.StringField("job_name", schedule.Job.Name),
				logger.StringField("job_type", schedule.Job.Type),
			)
		}
	}

	return nil
}

// executeJob records a running history, starts the task in the background and moves the schedule to
// its next cron time.
func (s *schedulerService) executeJob(ctx context.Context, task model.TaskSchedule) error {
	cronSchedule, err := s.cronParser.Parse(task.CronExpression)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to parse cron expression", logger.ErrorField(err), logger.IntField("schedule_id", int(task.ID)))
		return fmt.Errorf("failed to parse cron expression: %w", err)
	}

	s.log.DebugContext(ctx, "Executing job",
		logger.IntField("job_id", int(task.JobID)),
		logger.IntField("schedule_id", int(task.ID)),
		logger.StringField("job_name", task.Job.Name),
		logger.StringField("job_type", task.Job.Type),
		logger.IntField("active_concurrency", len(s.semaphore)),
		logger.IntField("max_concurrency", cap(s.semaphore)),
	)

	now := utils.TimeNowMarket()
	history := &model.TaskExecutionHistory{
		JobID:      task.JobID,
		ScheduleID: task.ID,
		Status:     model.StatusRunning,
		StartedAt:  now,
	}
	if err := s.jobRepo.CreateTaskExecutionHistory(ctx, history); err != nil {
		s.log.ErrorContext(ctx, "Failed to create task history", logger.ErrorField(err), logger.IntField("schedule_id", int(task.ID)))
		return fmt.Errorf("failed to create task history: %w", err)
	}

	timeout := task.Job.TimeoutDuration(s.cfg.Scheduler.TimeoutDuration)

	s.semaphore <- struct{}{}
	s.wg.Add(1)
	go func() {
		defer func() {
			<-s.semaphore
			s.wg.Done()
		}()

		// the task outlives the request or tick that started it
		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		err := utils.GoSafe(func() error {
			return s.taskExecutor.Execute(taskCtx, history)
		})
		if err != nil {
			s.log.ErrorContextWithAlert(taskCtx, "Failed to execute task", logger.ErrorField(err), logger.IntField("schedule_id", int(task.ID)))
		}
	}()

	task.LastExecution = sql.NullTime{Time: now, Valid: true}
	task.NextExecution = sql.NullTime{Time: cronSchedule.Next(now), Valid: true}
	if err := s.jobRepo.UpdateTaskSchedule(ctx, &task); err != nil {
		s.log.ErrorContext(ctx, "Failed to update task schedule", logger.ErrorField(err), logger.IntField("schedule_id", int(task.ID)))
		return fmt.Errorf("failed to update task schedule: %w", err)
	}
	return nil
}

func (s *schedulerService) GetJobSchedule(ctx context.Context, param model.GetJobParam) ([]model.Job, error) {
	return s.jobRepo.Get(ctx, &param)
}

func (s *schedulerService) RunJobTask(ctx context.Context, jobID uint) error {
	s.log.InfoContext(ctx, "Running job task", logger.IntField("job_id", int(jobID)))

	jobs, err := s.jobRepo.Get(ctx, &model.GetJobParam{IDs: []uint{jobID}})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to find job", logger.ErrorField(err), logger.IntField("job_id", int(jobID)))
		return fmt.Errorf("failed to find job: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("job %d: %w", jobID, ErrJobNotFound)
	}

	for _, schedule := range jobs[0].Schedules {
		if !schedule.IsActive {
			continue
		}
		schedule.Job = jobs[0]
		return s.executeJob(ctx, schedule)
	}
	return fmt.Errorf("job %d has no active schedule: %w", jobID, ErrJobNotFound)
}

func (s *schedulerService) Wait() {
	s.wg.Wait()
}
