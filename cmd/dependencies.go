package cmd

import (
	"context"
	"os"
	"time"

	"stock-scoring/config"
	"stock-scoring/internal/delivery/http"
	"stock-scoring/pkg/cache"
	"stock-scoring/pkg/httpclient"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/middleware"
	"stock-scoring/pkg/postgres"
	"stock-scoring/pkg/tracer"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type AppDependency struct {
	db        *postgres.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	tracer    *tracer.Tracer
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	tr, err := tracer.New(cfg.Tracing.Enabled, os.Stdout)
	if err != nil {
		log.Error("Failed to create tracer", zap.Error(err))
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewRequestLogger(log))
	e.Use(middleware.NewRateLimiterMiddleware(cfg.API.RateLimit))

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: http.NewValidator(),
		db:        db,
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		tracer:    tr,
	}, nil
}

// newLogger builds the application logger. Entries logged with ErrorContextWithAlert are also
// posted to the alert webhook when one is configured.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.Alert.WebhookURL == "" {
		return logger.New(cfg.Log.Level, cfg.Log.Encoding)
	}

	minLevel, err := zapcore.ParseLevel(cfg.Alert.MinLevel)
	if err != nil {
		minLevel = zapcore.ErrorLevel
	}

	webhook := httpclient.New(logger.NewNop(), cfg.Alert.WebhookURL, 5*time.Second, "")
	send := func(alert logger.Alert) {
		go func() {
			_, _ = webhook.Post(context.Background(), "", alert, nil, nil)
		}()
	}
	return logger.New(cfg.Log.Level, cfg.Log.Encoding, logger.WithAlerts(minLevel, send))
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.tracer.Shutdown(ctx); err != nil {
		d.log.Warn("Failed to flush tracer", zap.Error(err))
	}

	_ = d.log.Sync()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
