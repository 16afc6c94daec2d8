package db

import (
	"fmt"
	"time"

	"github.com/beautique/beautique-backend/config"
	appLogger "github.com/beautique/beautique-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 50
	connMaxLifetime = 30 * time.Minute
)

var DB *gorm.DB

// Initialize opens the Postgres connection pool. GORM's own logger stays
// silent; queries are observable through the request-scoped logger instead.
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	appLogger.Info("Database connection established", map[string]interface{}{
		"max_idle_conns": maxIdleConns,
		"max_open_conns": maxOpenConns,
	})
	return nil
}

// Close closes the database connection pool.
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return DB
}
