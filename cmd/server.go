package cmd

import (
	"context"
	"errors"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"stock-scoring/internal/delivery/http"
	"stock-scoring/internal/repository"
	"stock-scoring/internal/service"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the stock scoring API and job scheduler",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log, appDep.cache)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, appDep.tracer, repo)
	httpHandler := http.NewHttpAPIHandler(appDep.echo, appDep.validator, services, appDep.log)

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, httpNet.ErrServerClosed) {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	var runner *SchedulerRunner
	if appDep.cfg.Scheduler.Enabled {
		runner = NewSchedulerRunner(ctx, appDep.log, appDep.cfg.Scheduler.CronSpec, services.SchedulerService)
		if err := runner.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	if runner != nil {
		runner.Stop()
	}

	if err := apiServer.Stop(); err != nil {
		log.Printf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
