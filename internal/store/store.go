package store

import (
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"retailetl/internal/config"
	apperrors "retailetl/internal/errors"
)

// Store wraps the orders database connection
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to the Postgres orders store using the configured DSN and
// pool settings.
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	if cfg.URL == "" {
		return nil, apperrors.NewConfigError(
			"database URL is not set; set DATABASE_URL or database.url in config.yaml", nil)
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to connect to orders database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to access underlying connection pool", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "store")),
	}, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the connection is alive
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.NewStorageError("failed to access connection pool", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return apperrors.NewStorageError("database ping failed", err)
	}
	return nil
}
