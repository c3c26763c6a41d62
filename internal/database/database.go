package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

const defaultBusyTimeout = 5 * time.Second

type Database struct {
	DB *gorm.DB
}

// Option customizes how the database is opened.
type Option func(*options)

type options struct {
	busyTimeout time.Duration
	logLevel    logger.LogLevel
}

// WithBusyTimeout sets how long a transaction waits for the write lock.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}

// WithLogLevel sets gorm's log level by name (silent, error, warn, info).
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = parseLogLevel(level)
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// dsn builds the SQLite connection string. Foreign keys are enforced and
// every transaction starts with BEGIN IMMEDIATE so writers serialize on
// the database lock instead of failing on upgrade.
func dsn(dbPath string, busyTimeout time.Duration) string {
	return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d&_txlock=immediate&_journal_mode=WAL",
		dbPath, busyTimeout.Milliseconds())
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{busyTimeout: defaultBusyTimeout, logLevel: logger.Warn}
	for _, opt := range opts {
		opt(&o)
	}

	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath, o.busyTimeout)), &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("Database initialized", "path", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLDB returns the underlying connection pool.
func (d *Database) SQLDB() (*sql.DB, error) {
	return d.DB.DB()
}

// Ping checks database connectivity.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Do runs fn in a single transaction with a Store bound to it. The
// transaction commits when fn returns nil and rolls back otherwise.
func (d *Database) Do(ctx context.Context, fn func(ctx context.Context, store catalog.Store) error) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, books.NewRepository(tx))
	})
}
