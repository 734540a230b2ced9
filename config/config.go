// Package config loads leadbot settings from an optional YAML file,
// environment variables (prefix LEADBOT_) and defaults, in that order of
// increasing precedence for env over file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`
	// SessionTTL is the idle duration after which a session expires.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	// PurgeInterval is the cadence of the background TTL sweep.
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
	// AdminKey guards the /admin subtree. Empty keeps it locked.
	AdminKey string `mapstructure:"admin_key"`
	// LeadsFile is the append-only JSONL file completed leads go to.
	LeadsFile string `mapstructure:"leads_file"`
	// ReportsDir is where generated HTML reports are written and served from.
	ReportsDir string `mapstructure:"reports_dir"`

	Responder ResponderConfig `mapstructure:"responder"`
	Log       LogConfig       `mapstructure:"log"`
}

// ResponderConfig selects and tunes the external free-form responder.
type ResponderConfig struct {
	// Provider is "openai", "mistral", "anthropic" or empty to disable the
	// escape hatch entirely.
	Provider string `mapstructure:"provider"`
	// Model overrides the provider's default model id.
	Model string `mapstructure:"model"`
	// APIKey falls back to the provider SDK's own environment lookup when
	// empty.
	APIKey string `mapstructure:"api_key"`
	// BaseURL points an OpenAI-compatible provider at a different endpoint.
	BaseURL string `mapstructure:"base_url"`
	// RateLimit caps responder calls per second; zero disables the cap.
	RateLimit float64 `mapstructure:"rate_limit"`
	// Burst is the token bucket size used with RateLimit.
	Burst int `mapstructure:"burst"`
}

// LogConfig tunes the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path (optional; empty skips the file) plus
// LEADBOT_* environment variables, applying defaults for everything unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("session_ttl", time.Hour)
	v.SetDefault("purge_interval", 5*time.Minute)
	v.SetDefault("admin_key", "")
	v.SetDefault("leads_file", "leads.jsonl")
	v.SetDefault("reports_dir", "public/reports")
	v.SetDefault("responder.provider", "")
	v.SetDefault("responder.model", "")
	v.SetDefault("responder.api_key", "")
	v.SetDefault("responder.base_url", "")
	v.SetDefault("responder.rate_limit", 1.0)
	v.SetDefault("responder.burst", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("LEADBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
