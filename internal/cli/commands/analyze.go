package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/pkg/analyzer"
	"github.com/chatstat/chatstat/pkg/config"
	"github.com/chatstat/chatstat/pkg/output"
	"github.com/chatstat/chatstat/pkg/parser"
	"github.com/chatstat/chatstat/pkg/store"
	"github.com/chatstat/chatstat/pkg/webhook"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Output   string
	User     string
	Since    string
	Until    string
	TopWords int
	Verbose  bool
	Quiet    bool

	// Stored import to analyze instead of files
	ImportID string
	DBPath   string

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(g *GlobalOptions) *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file|glob>...",
		Short: "Compute statistics for chat exports",
		Long: `Parse one or more chat exports and report statistics.

Reports:
  - Message, word, media and link counts
  - Monthly and daily timelines
  - Busiest days, months and an hour-by-weekday heatmap
  - The most active participants
  - Most common words and emojis

Several exports are merged in timestamp order. Use --import to analyze an
export previously stored with "chatstat export".

Exit codes:
  0 - Statistics reported
  1 - No messages matched the filters
  2 - Configuration or runtime error`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.ImportID == "" && len(args) == 0 {
				return fmt.Errorf("requires at least one chat export or --import")
			}
			if opts.ImportID != "" && len(args) > 0 {
				return fmt.Errorf("--import cannot be combined with file arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), defaults to the configured format")
	cmd.Flags().StringVarP(&opts.User, "user", "u", "", `Limit statistics to one participant ("Overall" for everyone)`)
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only messages at or after this date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "Only messages at or before this date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().IntVar(&opts.TopWords, "top-words", 0, "Number of common words to report")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include the daily timeline and run details")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().StringVar(&opts.ImportID, "import", "", "Analyze a stored import by id")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "Database path for --import, defaults to the configured path")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, g *GlobalOptions, opts *AnalyzeOptions) error {
	ExitCode = 0

	ctx, cfg, log, err := setup(cmd, g)
	if err != nil {
		return err
	}

	since, err := parseBound(opts.Since, false)
	if err != nil {
		return fmt.Errorf("invalid --since: %w", err)
	}
	until, err := parseBound(opts.Until, true)
	if err != nil {
		return fmt.Errorf("invalid --until: %w", err)
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		return fmt.Errorf("--until %s is before --since %s", opts.Until, opts.Since)
	}

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	var (
		messages []parser.Message
		sources  []string
	)
	if opts.ImportID != "" {
		messages, sources, err = loadImport(ctx, cfg, log, opts)
	} else {
		messages, sources, err = loadMessages(ctx, cfg, log, args)
	}
	if err != nil {
		return err
	}

	analyzerOpts := []analyzer.AnalyzerOption{
		analyzer.WithUser(opts.User),
		analyzer.WithTimeRange(since, until),
	}
	if opts.TopWords > 0 {
		analyzerOpts = append(analyzerOpts, analyzer.WithTopWords(opts.TopWords))
	}

	a, err := analyzer.NewAnalyzer(cfg.Analysis, analyzerOpts...)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	if u := a.User(); u != "" && !hasUser(messages, u) {
		log.Warn("participant not found in exports", "user", u)
	}

	result, err := a.Analyze(ctx, messages)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(result, g.ConfigPath, sources)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	sendWebhooks(ctx, log, cfg, opts, report)

	if report.IsEmpty() {
		ExitCode = 1
	}

	return nil
}

func loadImport(ctx context.Context, cfg *config.Config, log *slog.Logger, opts *AnalyzeOptions) ([]parser.Message, []string, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}

	s, err := store.Open(ctx, dbPath, log)
	if err != nil {
		return nil, nil, err
	}
	defer s.Close()

	imp, err := s.GetImport(ctx, opts.ImportID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.Messages(ctx, imp.ID)
	if err != nil {
		return nil, nil, err
	}
	return messages, []string{imp.Source}, nil
}

func hasUser(messages []parser.Message, user string) bool {
	for i := range messages {
		if messages[i].Author == user {
			return true
		}
	}
	return false
}

func createFormatter(cfg *config.Config, opts *AnalyzeOptions) (output.Formatter, error) {
	name := opts.Output
	if name == "" {
		name = cfg.Output.Format
	}
	return output.NewFormatter(name, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
}

// sendWebhooks sends the report to all configured webhooks.
// Failures are logged but don't fail the analysis.
func sendWebhooks(ctx context.Context, log *slog.Logger, cfg *config.Config, opts *AnalyzeOptions, report *output.Report) {
	hooks := collectWebhooks(cfg, opts)
	if len(hooks) == 0 {
		return
	}

	webhook.NewClient(webhook.WithLogger(log)).Dispatch(ctx, report, hooks)
}

// collectWebhooks merges the active config file webhooks with the CLI one.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) []config.WebhookConfig {
	hooks := cfg.ActiveWebhooks()

	if opts.WebhookURL != "" {
		hooks = append(hooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTriggerAlways,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return hooks
}
