// Package config provides configuration management for the matchodds
// service.
package config

import "fmt"

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	DataSource DataSourceConfig `mapstructure:"datasource" validate:"required"`
	Leagues    []LeagueConfig   `mapstructure:"leagues" validate:"required,min=1,dive"`
	Scoring    ScoringConfig    `mapstructure:"scoring" validate:"required"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// DataSourceConfig represents the results-archive provider configuration
type DataSourceConfig struct {
	BaseURL         string  `mapstructure:"base_url" validate:"required,url"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// LeagueConfig represents one supported league
type LeagueConfig struct {
	Code     string  `mapstructure:"code" validate:"required,leaguecode"`
	Name     string  `mapstructure:"name" validate:"required"`
	Teams    int     `mapstructure:"teams" validate:"required,gt=1"`
	DrawRate float64 `mapstructure:"draw_rate" validate:"required,gt=0,lt=1"`
}

// ScoringConfig represents scoring engine configuration
type ScoringConfig struct {
	// WeightOverrides replace individual baseline factor weights; the
	// full set must still sum to 1.0, which Validate enforces.
	WeightOverrides map[string]float64 `mapstructure:"weight_overrides"`
}

// BacktestConfig represents calibration harness configuration
type BacktestConfig struct {
	Season          string `mapstructure:"season" validate:"required"`
	MinPriorMatches int    `mapstructure:"min_prior_matches" validate:"required,gt=0"`
	HeadToHeadCap   int    `mapstructure:"head_to_head_cap" validate:"gte=0"`
	OutputPath      string `mapstructure:"output_path"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// ScheduleConfig represents scheduled ingestion configuration
type ScheduleConfig struct {
	HistoricalSync string `mapstructure:"historical_sync"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// League returns the configuration for a league code.
func (c *Config) League(code string) (LeagueConfig, bool) {
	for _, l := range c.Leagues {
		if l.Code == code {
			return l, true
		}
	}
	return LeagueConfig{}, false
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
