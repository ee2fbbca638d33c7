// Package config
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	// DefaultMaxCPUs is the slot count used when GKFREQ_MAX_CPUS is unset.
	DefaultMaxCPUs = 32

	// MaxCPUsAuto sizes the slot table from the kernel's kernel_max.
	MaxCPUsAuto = -1

	UsageSourceProcfs   = "procfs"
	UsageSourceGopsutil = "gopsutil"

	SettingsBackendFile   = "file"
	SettingsBackendSqlite = "sqlite"
)

type Config struct {
	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"oneof=text json"`

	InstanceID uuid.UUID

	Interval  time.Duration `validate:"gt=0"`
	MaxCPUs   int           `validate:"eq=-1|min=1,max=8192"`
	SysfsRoot string        `validate:"required"`

	UsageSource     string `validate:"oneof=procfs gopsutil"`
	SettingsBackend string `validate:"oneof=file sqlite"`
	SettingsPath    string `validate:"required_if=SettingsBackend file"`
	SqlitePath      string `validate:"required_if=SettingsBackend sqlite"`

	PanelWidth int `validate:"min=0,max=1024"`
}

var validate = validator.New()

func Load() *Config {
	_ = godotenv.Load()

	// Logs
	logLevel := getEnv("LOG_LEVEL", "info")
	logFormat := getEnv("LOG_FORMAT", "text")

	instanceID := uuid.New()
	if raw := os.Getenv("GKFREQ_INSTANCE_ID"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			instanceID = id
		}
	}

	// Sampling
	interval := time.Second
	if raw := os.Getenv("GKFREQ_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	maxCPUs := DefaultMaxCPUs
	if raw := strings.TrimSpace(os.Getenv("GKFREQ_MAX_CPUS")); raw != "" {
		if strings.EqualFold(raw, "auto") {
			maxCPUs = MaxCPUsAuto
		} else if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxCPUs = n
		}
	}

	// Settings storage
	home, _ := os.UserConfigDir()
	if home == "" {
		home = "."
	}

	panelWidth := 0
	if raw := os.Getenv("GKFREQ_PANEL_WIDTH"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			panelWidth = n
		}
	}

	return &Config{
		LogLevel:  strings.ToLower(logLevel),
		LogFormat: strings.ToLower(logFormat),

		InstanceID: instanceID,

		Interval:  interval,
		MaxCPUs:   maxCPUs,
		SysfsRoot: getEnv("GKFREQ_SYSFS_ROOT", "/"),

		UsageSource:     strings.ToLower(getEnv("GKFREQ_USAGE_SOURCE", UsageSourceProcfs)),
		SettingsBackend: strings.ToLower(getEnv("GKFREQ_SETTINGS_BACKEND", SettingsBackendFile)),
		SettingsPath:    getEnv("GKFREQ_SETTINGS_PATH", home+"/gkfreq/settings"),
		SqlitePath:      getEnv("GKFREQ_SQLITE_PATH", home+"/gkfreq/settings.db"),

		PanelWidth: panelWidth,
	}
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
	}

	return fmt.Errorf("invalid config: %w", err)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
