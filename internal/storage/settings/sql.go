package settings

import (
	"context"
	"database/sql"
	"fmt"

	"gkfreq/internal/domain"
	"gkfreq/internal/logger"
	"gkfreq/internal/storage/sqlite"
)

type SQLStore struct {
	db   *sql.DB
	repo *sqlite.SettingsRepository
	log  logger.Logger
}

func NewSQLStore(db *sql.DB, log logger.Logger) *SQLStore {
	return &SQLStore{db: db, repo: sqlite.NewSettingsRepository(db), log: log}
}

func (s *SQLStore) Load(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	for _, key := range []string{KeyTextFormat, KeyShowUsage} {
		value, ok, err := s.repo.Get(ctx, key)
		if err != nil {
			return domain.DefaultSettings(), fmt.Errorf("failed to load settings: %w", err)
		}
		if ok {
			settings = apply(settings, key, value, s.log)
		}
	}

	return settings, nil
}

func (s *SQLStore) Save(ctx context.Context, settings domain.Settings) error {
	if err := s.repo.PutAll(ctx, encode(settings)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
