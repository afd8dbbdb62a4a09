// Package sqlite stores meetings in a SQLite database using the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/meeting-planner/internal/persistence"
	"github.com/example/meeting-planner/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Storage is a SQLite backed persistence.MeetingRepository.
type Storage struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
	retry  RetryConfig
	logger *slog.Logger
	now    func() time.Time
}

var _ persistence.MeetingRepository = (*Storage)(nil)

// Open opens the database at dsn. Call Migrate before use.
func Open(dsn string, logger *slog.Logger) (*Storage, error) {
	return OpenWithConfig(migration.DefaultSQLiteConfig(dsn), logger)
}

// OpenWithConfig opens the database described by config.
func OpenWithConfig(config migration.SQLiteConfig, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pool, err := NewConnectionPool(config)
	if err != nil {
		return nil, err
	}
	return &Storage{
		pool:   pool,
		mapper: NewErrorMapper(),
		retry:  DefaultRetryConfig(),
		logger: logger.With("component", "sqlite"),
		now:    time.Now,
	}, nil
}

// Close releases the underlying database.
func (s *Storage) Close() error {
	return s.pool.Close()
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	manager := migration.NewMigrationManager(
		migration.NewFileScanner(migrationFiles),
		migration.NewSQLiteExecutor(s.pool.DB()),
		"migrations",
		s.logger,
	)
	if err := manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrate meetings database: %w", err)
	}
	return nil
}
