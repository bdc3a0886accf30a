// Package db opens the ledger database and the statement cache connection.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ventureboard/backend/config"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
)

const connectTimeout = 5 * time.Second

// Database is the postgres-backed ledger store.
type Database struct {
	db *gorm.DB
}

// NewPostgresConnection opens the ledger database with the configured pool and
// fails fast when it cannot be reached.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	// unique violations surface as gorm.ErrDuplicatedKey so repositories can
	// report conflicts instead of 500s
	conn, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Ledger database connected",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return &Database{db: conn}, nil
}

// DB returns the gorm handle shared by the repositories.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// MigrateLedger creates or updates the ledger, budget and statement tables.
func (d *Database) MigrateLedger() error {
	models := model.AllModels()
	if err := d.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate ledger schema: %w", err)
	}
	slog.Info("Ledger schema migrated", "tables", len(models))
	return nil
}

// Close releases the connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}
	return sqlDB.Close()
}
