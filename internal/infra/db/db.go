package db

import (
	"time"

	"github.com/company-sys/backend/internal/config"
	"github.com/company-sys/backend/internal/modules/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

func New(cfg *config.Config) (*gorm.DB, error) {
	lvl := logger.Warn
	if cfg.App.Env == "debug" {
		lvl = logger.Info
	}

	d, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return d, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Task{},
		&model.AssetLink{},
		&model.TaskComment{},
		&model.Notification{},
		&model.ActivityLog{},
	)
}

// RegisterOpenTelemetryPlugin enables span creation for every query.
func RegisterOpenTelemetryPlugin(d *gorm.DB) error {
	return d.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}
