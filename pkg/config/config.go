package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrValidation is wrapped by every error returned from Validate.
var ErrValidation = errors.New("invalid configuration")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML keys so errors match what users wrote.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and validates a configuration file. An empty path yields the
// defaults, still subject to environment overrides.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills webhook defaults.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s", ErrValidation, describe(fieldErrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if cfg.Analysis.StopwordsFile != "" {
		if _, err := os.Stat(cfg.Analysis.StopwordsFile); err != nil {
			return fmt.Errorf("%w: analysis.stopwords_file: %v", ErrValidation, err)
		}
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("%w: webhooks[%d] (%s): %v", ErrValidation, i, name, err)
		}
	}

	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerAlways
	case WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be always or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}

// ActiveWebhooks returns the webhooks that are not disabled.
func (c *Config) ActiveWebhooks() []WebhookConfig {
	var out []WebhookConfig
	for _, wh := range c.Webhooks {
		if wh.Trigger != WebhookTriggerNever {
			out = append(out, wh)
		}
	}
	return out
}
