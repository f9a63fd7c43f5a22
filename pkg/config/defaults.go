package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultMaxFileSize      = 64 << 20
	DefaultTopWords         = 20
	DefaultTopUsers         = 5
	DefaultMinWordLength    = 2
	DefaultMediaPlaceholder = "<Media omitted>"
	DefaultOutputFormat     = "text"
	DefaultLogLevel         = "warn"
	DefaultLogFormat        = "text"
	DefaultDBPath           = "chatstat.db"
	DefaultWebhookTimeout   = 10 * time.Second
)

// Environment variable names.
const (
	EnvLogLevel      = "CHATSTAT_LOG_LEVEL"
	EnvDBPath        = "CHATSTAT_DB_PATH"
	EnvStopwordsFile = "CHATSTAT_STOPWORDS_FILE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			MaxFileSize: DefaultMaxFileSize,
		},
		Analysis: AnalysisConfig{
			TopWords:         DefaultTopWords,
			TopUsers:         DefaultTopUsers,
			MinWordLength:    DefaultMinWordLength,
			MediaPlaceholder: DefaultMediaPlaceholder,
		},
		Output: OutputConfig{Format: DefaultOutputFormat},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Database: DatabaseConfig{Path: DefaultDBPath},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if path := os.Getenv(EnvDBPath); path != "" {
		c.Database.Path = path
	}
	if path := os.Getenv(EnvStopwordsFile); path != "" {
		c.Analysis.StopwordsFile = path
	}
}
