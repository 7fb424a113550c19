package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kb-server/confs"
	"kb-server/entities"
)

// Connect opens the Postgres store from the configured connection string,
// tunes the pool and migrates the two tables the service owns.
func Connect(cfg *confs.Config) (Database, error) {
	logMode := logger.Warn
	if !cfg.IsProduction() {
		logMode = logger.Info
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:      logger.Default.LogMode(logMode),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	if err := gdb.AutoMigrate(&entities.User{}, &entities.Article{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &GormDatabase{DB: gdb}, nil
}
