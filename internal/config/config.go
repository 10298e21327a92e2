// File: internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Site    SiteConfig    `mapstructure:"site" yaml:"site"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Collect CollectConfig `mapstructure:"collect" yaml:"collect"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SiteConfig describes the remote site being sampled. The paths are joined
// onto BaseURL, so they must start with a slash.
type SiteConfig struct {
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`
	ProfilePath string `mapstructure:"profile_path" yaml:"profile_path"`
	PopularPath string `mapstructure:"popular_path" yaml:"popular_path"`
	UserAgent   string `mapstructure:"user_agent" yaml:"user_agent"`
}

// ProfileURL builds the absolute URL for a celebrity profile page.
func (s SiteConfig) ProfileURL(slug string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + s.ProfilePath + slug
}

// PopularURL builds the absolute URL for the per-letter listing page.
func (s SiteConfig) PopularURL(letter rune) string {
	return fmt.Sprintf("%s%s?letter=%c", strings.TrimSuffix(s.BaseURL, "/"), s.PopularPath, letter)
}

// FetcherConfig tunes the network and caching behavior of the fetcher.
type FetcherConfig struct {
	// RateLimit is the maximum outbound requests per second. Cache hits are
	// not counted against it.
	RateLimit    float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retries      int           `mapstructure:"retries" yaml:"retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" yaml:"retry_backoff"`
	CacheDir     string        `mapstructure:"cache_dir" yaml:"cache_dir"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// ResolvedCacheDir expands a leading ~ in the configured cache directory.
func (f FetcherConfig) ResolvedCacheDir() (string, error) {
	dir, err := homedir.Expand(f.CacheDir)
	if err != nil {
		return "", fmt.Errorf("failed to expand cache dir %q: %w", f.CacheDir, err)
	}
	return dir, nil
}

// CollectConfig holds the collector run parameters.
type CollectConfig struct {
	TargetCount int    `mapstructure:"target_count" yaml:"target_count"`
	PerLetter   int    `mapstructure:"per_letter" yaml:"per_letter"`
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "limelight")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Site --
	v.SetDefault("site.base_url", "https://www.whosdatedwho.com")
	v.SetDefault("site.profile_path", "/dating/")
	v.SetDefault("site.popular_path", "/popular")
	v.SetDefault("site.user_agent", "limelight-cli/0.1 (+https://github.com/dverbeek84/limelight-cli)")

	// -- Fetcher --
	// 0.5 req/s keeps us a polite guest on the remote site.
	v.SetDefault("fetcher.rate_limit", 0.5)
	v.SetDefault("fetcher.timeout", "15s")
	v.SetDefault("fetcher.retries", 2)
	v.SetDefault("fetcher.retry_backoff", "2s")
	v.SetDefault("fetcher.cache_dir", "~/.limelight/cache")
	v.SetDefault("fetcher.cache_ttl", "24h")

	// -- Collect --
	v.SetDefault("collect.target_count", 50)
	v.SetDefault("collect.per_letter", 5)
	v.SetDefault("collect.data_dir", "data")
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with our own defaults, but fail loudly if it does.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a validated configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
// Any error returned here is fatal at startup.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("site.base_url must be an absolute URL, got %q", c.Site.BaseURL)
	}
	if !strings.HasPrefix(c.Site.ProfilePath, "/") {
		return fmt.Errorf("site.profile_path must start with '/', got %q", c.Site.ProfilePath)
	}
	if !strings.HasPrefix(c.Site.PopularPath, "/") {
		return fmt.Errorf("site.popular_path must start with '/', got %q", c.Site.PopularPath)
	}
	if c.Fetcher.RateLimit <= 0 {
		return fmt.Errorf("fetcher.rate_limit must be a positive number of requests per second")
	}
	if c.Fetcher.Retries < 0 {
		return fmt.Errorf("fetcher.retries must not be negative")
	}
	if c.Collect.TargetCount <= 0 {
		return fmt.Errorf("collect.target_count must be a positive integer")
	}
	if c.Collect.PerLetter <= 0 {
		return fmt.Errorf("collect.per_letter must be a positive integer")
	}
	return nil
}
