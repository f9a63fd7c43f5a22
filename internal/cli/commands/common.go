package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/internal/logger"
	"github.com/chatstat/chatstat/pkg/config"
	"github.com/chatstat/chatstat/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// setup loads the configuration and builds the logger. Flags override the
// configured log settings.
func setup(cmd *cobra.Command, g *GlobalOptions) (context.Context, *config.Config, *slog.Logger, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if g == nil {
		g = &GlobalOptions{}
	}

	cfg, err := config.Load(ctx, g.ConfigPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if g.LogLevel != "" || g.LogFormat != "" {
		if err := config.Validate(cfg); err != nil {
			return nil, nil, nil, err
		}
	}

	log := logger.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format == "json")
	log.Debug("configuration loaded", "config", g.ConfigPath, "log_level", cfg.Log.Level)

	return ctx, cfg, log, nil
}

// loadMessages expands patterns, parses every matched export and merges
// them in timestamp order. It returns the messages and the files read.
func loadMessages(ctx context.Context, cfg *config.Config, log *slog.Logger, patterns []string) ([]parser.Message, []string, error) {
	files, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return nil, nil, fmt.Errorf("expanding inputs: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no chat exports matched patterns: %v", patterns)
	}

	start := time.Now()
	chats, err := parser.LoadFiles(ctx, files, cfg.Input.MaxFileSize)
	if err != nil {
		return nil, nil, err
	}

	messages := parser.Merge(chats...)
	log.Info("chat exports loaded",
		"files", len(files), "messages", len(messages), "duration", time.Since(start))

	return messages, files, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", parser.DateLayout}

// parseBound parses a --since/--until value as UTC. A bare date used as an
// upper bound covers the whole day.
func parseBound(s string, upper bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		if upper && layout == parser.DateLayout {
			t = t.Add(24*time.Hour - time.Second)
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC 3339)", s)
}
