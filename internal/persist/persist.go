// Package persist is the durability collaborator: it seeds the in-memory
// stores at startup and records successful writes best-effort, off the
// request path. A persistence failure is logged and never corrupts
// in-memory state.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/config"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// eventBuffer bounds the write-behind queue; when it is full further
// notifications are dropped with a log line rather than blocking a write.
const eventBuffer = 256

// Store wraps a SQLite database and the write-behind event queue.
type Store struct {
	db     *gorm.DB
	events chan event
}

type event struct {
	identity *models.Identity
	listing  *models.Listing
}

// Open creates the SQLite database connection with basic tuning and runs
// schema migrations.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	// ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite performance and reliability tuning
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	if err := db.AutoMigrate(&models.Identity{}, &models.Listing{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Store{
		db:     db,
		events: make(chan event, eventBuffer),
	}, nil
}

// LoadAll returns all persisted identities and listings in created-at
// order, for seeding the in-memory stores at startup.
func (s *Store) LoadAll() ([]models.Identity, []models.Listing, error) {
	var identities []models.Identity
	if err := s.db.Order("created_at ASC").Find(&identities).Error; err != nil {
		return nil, nil, fmt.Errorf("load identities: %w", err)
	}
	var listings []models.Listing
	if err := s.db.Order("created_at ASC").Find(&listings).Error; err != nil {
		return nil, nil, fmt.Errorf("load listings: %w", err)
	}
	return identities, listings, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
