package postgres

import (
	"fmt"
	"time"

	"stock-scoring/config"
	"stock-scoring/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is a wrapper around the gorm.DB client for PostgreSQL.
type DB struct {
	*gorm.DB
	log *logger.Logger
}

// DSN builds the key/value connection string used by the gorm driver.
func DSN(cfg config.Database) string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
	if cfg.TimeZone != "" {
		dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
	}
	return dsn
}

// URL builds the postgres:// form used by golang-migrate.
func URL(cfg config.Database) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "Silent":
		return gormlogger.Silent
	case "Error":
		return gormlogger.Error
	case "Info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// NewDB creates a new GORM database connection instance.
func NewDB(cfg config.Database, log *logger.Logger) (*DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime != "" {
		duration, err := time.ParseDuration(cfg.ConnMaxLifetime)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("invalid connection max lifetime format '%s': %w", cfg.ConnMaxLifetime, err)
		}
		sqlDB.SetConnMaxLifetime(duration)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	log.Info("Connected to PostgreSQL",
		logger.StringField("host", cfg.Host),
		logger.StringField("database", cfg.DBName),
	)
	return &DB{DB: db, log: log}, nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	if d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB from GORM for closing: %w", err)
	}
	d.log.Info("Closing database connection")
	return sqlDB.Close()
}
