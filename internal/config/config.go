// Package config resolves the pipeline configuration once at startup: window
// sizes, source endpoints and timeouts, optional lens credentials, and the
// output path. Optional credentials are modeled as nil-able structs so the
// rest of the code never re-reads ambient environment state.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	USAJobs  USAJobsConfig  `mapstructure:"usajobs"`
	Adzuna   AdzunaConfig   `mapstructure:"adzuna"`
	Onet     OnetConfig     `mapstructure:"onet"`
	Output   OutputConfig   `mapstructure:"output"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// USAJobsConfig holds the Historic JOA source configuration
type USAJobsConfig struct {
	APIBaseURL         string        `mapstructure:"api_base_url"`
	PageSize           int           `mapstructure:"page_size"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MonthsBack         int           `mapstructure:"months_back"`
	SnapshotMonthsBack int           `mapstructure:"snapshot_months_back"`
}

// AdzunaConfig holds the commercial job-search lens configuration.
// AppID/AppKey are optional; when either is blank the lens is disabled.
type AdzunaConfig struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	Country        string        `mapstructure:"country"`
	WindowDays     int           `mapstructure:"window_days"`
	Pages          int           `mapstructure:"pages"`
	ResultsPerPage int           `mapstructure:"results_per_page"`
	Timeout        time.Duration `mapstructure:"timeout"`
	AppID          string        `mapstructure:"app_id"`
	AppKey         string        `mapstructure:"app_key"`
}

// Credentials returns the configured credential pair, or nil when the lens
// should run disabled.
func (c AdzunaConfig) Credentials() *AppCredentials {
	id := strings.TrimSpace(c.AppID)
	key := strings.TrimSpace(c.AppKey)
	if id == "" || key == "" {
		return nil
	}
	return &AppCredentials{ID: id, Key: key}
}

// AppCredentials is an app_id/app_key pair.
type AppCredentials struct {
	ID  string
	Key string
}

// OnetConfig holds the skills-taxonomy lens configuration.
// Username/Password are optional; when either is blank the lens is disabled.
type OnetConfig struct {
	APIBaseURL string        `mapstructure:"api_base_url"`
	TopN       int           `mapstructure:"top_n"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Username   string        `mapstructure:"username"`
	Password   string        `mapstructure:"password"`
}

// Credentials returns the configured Basic-auth pair, or nil when the lens
// should run disabled.
func (c OnetConfig) Credentials() *BasicCredentials {
	user := strings.TrimSpace(c.Username)
	pass := strings.TrimSpace(c.Password)
	if user == "" || pass == "" {
		return nil
	}
	return &BasicCredentials{Username: user, Password: pass}
}

// BasicCredentials is an HTTP Basic authentication pair.
type BasicCredentials struct {
	Username string
	Password string
}

// OutputConfig holds the output artifact configuration
type OutputConfig struct {
	FilePath string `mapstructure:"file_path"`
}

// TelegramConfig holds the optional run-summary notification configuration
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional YAML file and the environment.
// A missing config file is not an error; scheduled runs typically configure
// everything through environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	v.SetEnvPrefix("AI_PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// bindLegacyEnv keeps the environment variable names the scheduler already
// sets as secrets, predating the AI_PULSE_ prefix.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("usajobs.months_back", "MONTHS_BACK")
	_ = v.BindEnv("usajobs.snapshot_months_back", "SNAPSHOT_MONTHS_BACK")
	_ = v.BindEnv("adzuna.app_id", "ADZUNA_APP_ID")
	_ = v.BindEnv("adzuna.app_key", "ADZUNA_APP_KEY")
	_ = v.BindEnv("onet.username", "ONET_USERNAME")
	_ = v.BindEnv("onet.password", "ONET_PASSWORD")
	_ = v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// USAJOBS defaults
	v.SetDefault("usajobs.api_base_url", "https://data.usajobs.gov/api/historicjoa")
	v.SetDefault("usajobs.page_size", 1000)
	v.SetDefault("usajobs.timeout", "60s")
	v.SetDefault("usajobs.months_back", 24)
	v.SetDefault("usajobs.snapshot_months_back", 1)

	// Adzuna defaults
	v.SetDefault("adzuna.api_base_url", "https://api.adzuna.com/v1/api")
	v.SetDefault("adzuna.country", "us")
	v.SetDefault("adzuna.window_days", 30)
	v.SetDefault("adzuna.pages", 5)
	v.SetDefault("adzuna.results_per_page", 50)
	v.SetDefault("adzuna.timeout", "60s")

	// O*NET defaults
	v.SetDefault("onet.api_base_url", "https://api-v2.onetcenter.org/online")
	v.SetDefault("onet.top_n", 10)
	v.SetDefault("onet.timeout", "60s")

	// Output defaults
	v.SetDefault("output.file_path", "data.json")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.USAJobs.APIBaseURL == "" {
		return fmt.Errorf("usajobs.api_base_url is required")
	}
	if c.USAJobs.PageSize < 1 {
		return fmt.Errorf("usajobs.page_size must be at least 1")
	}
	if c.USAJobs.Timeout < 1*time.Second {
		return fmt.Errorf("usajobs.timeout must be at least 1 second")
	}
	if c.USAJobs.MonthsBack < 1 {
		return fmt.Errorf("usajobs.months_back must be at least 1")
	}
	if c.USAJobs.SnapshotMonthsBack < 1 {
		return fmt.Errorf("usajobs.snapshot_months_back must be at least 1")
	}

	if c.Adzuna.APIBaseURL == "" {
		return fmt.Errorf("adzuna.api_base_url is required")
	}
	if c.Adzuna.Country == "" {
		return fmt.Errorf("adzuna.country is required")
	}
	if c.Adzuna.WindowDays < 1 {
		return fmt.Errorf("adzuna.window_days must be at least 1")
	}
	if c.Adzuna.Pages < 1 {
		return fmt.Errorf("adzuna.pages must be at least 1")
	}
	if c.Adzuna.ResultsPerPage < 1 {
		return fmt.Errorf("adzuna.results_per_page must be at least 1")
	}

	if c.Onet.APIBaseURL == "" {
		return fmt.Errorf("onet.api_base_url is required")
	}
	if c.Onet.TopN < 1 {
		return fmt.Errorf("onet.top_n must be at least 1")
	}

	if c.Output.FilePath == "" {
		return fmt.Errorf("output.file_path is required")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
