package cmd

import (
	"context"

	"stock-scoring/internal/service"
	"stock-scoring/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SchedulerRunner ticks the job scheduler on the configured cron spec.
type SchedulerRunner struct {
	ctx       context.Context
	log       *logger.Logger
	spec      string
	scheduler service.SchedulerService
	cron      *cron.Cron
}

func NewSchedulerRunner(ctx context.Context, log *logger.Logger, spec string, scheduler service.SchedulerService) *SchedulerRunner {
	return &SchedulerRunner{
		ctx:       ctx,
		log:       log,
		spec:      spec,
		scheduler: scheduler,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (r *SchedulerRunner) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		if err := r.scheduler.Execute(r.ctx); err != nil {
			r.log.ErrorContextWithAlert(r.ctx, "Scheduler tick failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	r.log.Info("Starting scheduler", zap.String("spec", r.spec))
	r.cron.Start()
	return nil
}

// Stop halts the ticker and waits for running tasks to finish.
func (r *SchedulerRunner) Stop() {
	r.log.Info("Stopping scheduler")
	<-r.cron.Stop().Done()
	r.scheduler.Wait()
	r.log.Info("Scheduler stopped")
}
