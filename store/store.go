package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rake87226-cmyk/vercel-backend/config"
	"github.com/rake87226-cmyk/vercel-backend/logging"
)

// Store wraps the gorm handle shared by every request.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to PostgreSQL when cfg.URL is set and to the SQLite file
// at cfg.Path otherwise.
func Open(cfg config.Database, logger zerolog.Logger) (*Store, error) {
	var dialector gorm.Dialector
	if cfg.Postgres() {
		dialector = postgres.Open(cfg.URL)
	} else {
		dialector = sqlite.Open(cfg.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logging.Gorm(logger),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !cfg.Postgres() {
		// SQLite serialises writers; a single connection avoids "database is
		// locked" and keeps in-memory databases alive for the process.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Info().
		Str("dialect", db.Dialector.Name()).
		Msg("Database connection established")
	return New(db, logger), nil
}

func New(db *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, log: logger.With().Str("component", "store").Logger()}
}

// DB exposes the underlying handle for maintenance and tests.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
