// Package initializer wires the infrastructure: logger, database, unit of
// work, notification channels and event bus.
package initializer

import (
	"fmt"

	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/versebank/banking/config"
	"github.com/versebank/banking/infra/notification"
	"github.com/versebank/banking/infra/repository"
	"github.com/versebank/banking/pkg/eventbus"
)

// InitializeDependencies builds the dependency container from configuration.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	logger := SetupLogger(cfg.Log)

	db, err := newDBConnection(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return nil, err
	}

	return &config.Deps{
		Uow: repository.NewUoW(db),
		Notifier: notification.NewFanout(
			notification.NewEmailNotifier(logger),
			notification.NewSMSNotifier(logger),
		),
		EventBus: eventbus.NewMemory(),
		Logger:   logger,
		Config:   cfg,
	}, nil
}

// newDBConnection opens the PostgreSQL connection and migrates the schema.
func newDBConnection(cfg *config.App) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Env == "development" {
		logLevel = gormlogger.Warn
	}
	db, err := gorm.Open(gormpg.Open(cfg.DB.Url), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&repository.Account{}, &repository.Transaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
