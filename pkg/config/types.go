// Package config provides configuration loading and validation for chatstat.
package config

import (
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Input    InputConfig     `yaml:"input"`
	Analysis AnalysisConfig  `yaml:"analysis"`
	Output   OutputConfig    `yaml:"output"`
	Log      LogConfig       `yaml:"log"`
	Database DatabaseConfig  `yaml:"database"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// InputConfig limits what is read from disk.
type InputConfig struct {
	// MaxFileSize is the largest export accepted, in bytes. Zero disables the limit.
	MaxFileSize int64 `yaml:"max_file_size" validate:"gte=0"`
}

// AnalysisConfig tunes the statistics.
type AnalysisConfig struct {
	TopWords      int `yaml:"top_words"       validate:"gte=1,lte=1000"`
	TopEmojis     int `yaml:"top_emojis"      validate:"gte=0"` // 0 means all
	TopUsers      int `yaml:"top_users"       validate:"gte=1"`
	MinWordLength int `yaml:"min_word_length" validate:"gte=1,lte=50"`

	// MediaPlaceholder is the text an export uses in place of attachments.
	MediaPlaceholder string `yaml:"media_placeholder" validate:"required"`

	// Stopwords are added to the built-in list.
	Stopwords []string `yaml:"stopwords,omitempty"`

	// StopwordsFile is a whitespace separated word list, added to the built-in list.
	StopwordsFile string `yaml:"stopwords_file,omitempty"`
}

// OutputConfig selects the default report format.
type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=text json"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// DatabaseConfig locates the SQLite file used by export.
type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerAlways fires after every analysis (default).
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines an endpoint that receives analysis reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. $VAR and ${VAR} are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "always".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
