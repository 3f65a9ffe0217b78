// Package config loads application configuration from defaults, an optional
// YAML file, and SCANBOARD_* environment variables, in increasing order of
// precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mkamada/scanboard/internal/domain"
)

// APIConfig configures the backend gateway.
type APIConfig struct {
	BaseURL           string
	Token             string
	UserID            int64
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// CacheConfig configures the fetch deduplication cache.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level      string
	Format     string // console or json
	LogFile    string // empty disables the rotating file sink
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config is the full application configuration.
type Config struct {
	API    APIConfig
	Cache  CacheConfig
	Logger LoggerConfig
	Debt   domain.DebtConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.requests_per_second", 10.0)
	v.SetDefault("api.burst", 5)

	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("cache.max_entries", 128)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 14)
	v.SetDefault("logger.compress", true)

	debt := domain.DefaultDebtConfig()
	v.SetDefault("debt.hours_critical", debt.HoursCritical)
	v.SetDefault("debt.hours_high", debt.HoursHigh)
	v.SetDefault("debt.hours_medium", debt.HoursMedium)
	v.SetDefault("debt.hours_low", debt.HoursLow)
	v.SetDefault("debt.hourly_rate", debt.HourlyRate)
	v.SetDefault("debt.sprint_hours", debt.SprintHours)
	v.SetDefault("debt.maintenance_pct", debt.MaintenancePct)
	v.SetDefault("debt.risk_reduction_pct", debt.RiskReductionPct)
	v.SetDefault("debt.productivity_pct", debt.ProductivityPct)
}

// Load reads the configuration. path may name a YAML config file; when empty
// only defaults and environment variables apply. The API token
// (SCANBOARD_API_TOKEN) is required.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SCANBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:           v.GetString("api.base_url"),
			Token:             v.GetString("api.token"),
			UserID:            v.GetInt64("api.user_id"),
			Timeout:           v.GetDuration("api.timeout"),
			RequestsPerSecond: v.GetFloat64("api.requests_per_second"),
			Burst:             v.GetInt("api.burst"),
		},
		Cache: CacheConfig{
			TTL:        v.GetDuration("cache.ttl"),
			MaxEntries: v.GetInt("cache.max_entries"),
		},
		Logger: LoggerConfig{
			Level:      v.GetString("logger.level"),
			Format:     v.GetString("logger.format"),
			LogFile:    v.GetString("logger.log_file"),
			MaxSizeMB:  v.GetInt("logger.max_size_mb"),
			MaxBackups: v.GetInt("logger.max_backups"),
			MaxAgeDays: v.GetInt("logger.max_age_days"),
			Compress:   v.GetBool("logger.compress"),
		},
		Debt: domain.DebtConfig{
			HoursCritical:    v.GetFloat64("debt.hours_critical"),
			HoursHigh:        v.GetFloat64("debt.hours_high"),
			HoursMedium:      v.GetFloat64("debt.hours_medium"),
			HoursLow:         v.GetFloat64("debt.hours_low"),
			HourlyRate:       v.GetFloat64("debt.hourly_rate"),
			SprintHours:      v.GetFloat64("debt.sprint_hours"),
			MaintenancePct:   v.GetFloat64("debt.maintenance_pct"),
			RiskReductionPct: v.GetFloat64("debt.risk_reduction_pct"),
			ProductivityPct:  v.GetFloat64("debt.productivity_pct"),
		},
	}

	if cfg.API.Token == "" {
		return nil, fmt.Errorf("api.token is required (set SCANBOARD_API_TOKEN)")
	}
	return cfg, nil
}
