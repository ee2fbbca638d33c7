// Package settings persists the user-editable panel settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gkfreq/internal/config"
	"gkfreq/internal/domain"
	"gkfreq/internal/logger"
	"gkfreq/internal/storage/sqlite"
)

const (
	Keyword = "gkfreq"

	KeyTextFormat = "text_format"
	KeyShowUsage  = "show_usage"
)

var ErrUnknownBackend = errors.New("unknown settings backend")

type Store interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
	Close() error
}

// Open returns the store selected by cfg.SettingsBackend.
func Open(cfg *config.Config, log logger.Logger) (Store, error) {
	switch cfg.SettingsBackend {
	case config.SettingsBackendFile:
		return NewFileStore(cfg.SettingsPath, log), nil
	case config.SettingsBackendSqlite:
		db, err := sqlite.NewSqliteDB(cfg.SqlitePath, log)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.SettingsBackend)
	}
}

// apply merges one key/value into s. A text format that is empty after
// parsing falls back to the default template.
func apply(s domain.Settings, key, value string, log logger.Logger) domain.Settings {
	switch key {
	case KeyTextFormat:
		if value == "" {
			log.Warn("settings: empty text format, using default", "default", domain.DefaultTextFormat)
			return s.WithTextFormat(domain.DefaultTextFormat)
		}
		return s.WithTextFormat(value)
	case KeyShowUsage:
		show, ok := parseBool(value)
		if !ok {
			log.Warn("settings: malformed show_usage value", "value", value)
			return s
		}
		return s.WithShowUsage(show)
	default:
		log.Debug("settings: ignoring unknown key", "key", key)
		return s
	}
}

func encode(s domain.Settings) map[string]string {
	usage := "0"
	if s.ShowUsage {
		usage = "1"
	}

	return map[string]string{
		KeyTextFormat: s.TextFormat,
		KeyShowUsage:  usage,
	}
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
