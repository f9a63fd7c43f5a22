package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chatstat configuration file without running analysis.

Checks:
  - YAML syntax
  - Value ranges and allowed formats
  - Stopwords file existence
  - Webhook URLs and triggers`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	a := cfg.Analysis
	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Output format:   %s\n", cfg.Output.Format)
	fmt.Fprintf(out, "  Top words:       %d\n", a.TopWords)
	fmt.Fprintf(out, "  Top users:       %d\n", a.TopUsers)
	if a.TopEmojis == 0 {
		fmt.Fprintf(out, "  Top emojis:      all\n")
	} else {
		fmt.Fprintf(out, "  Top emojis:      %d\n", a.TopEmojis)
	}
	fmt.Fprintf(out, "  Min word length: %d\n", a.MinWordLength)
	fmt.Fprintf(out, "  Media marker:    %s\n", a.MediaPlaceholder)
	fmt.Fprintf(out, "  Extra stopwords: %d\n", len(a.Stopwords))
	if a.StopwordsFile != "" {
		fmt.Fprintf(out, "  Stopwords file:  %s\n", a.StopwordsFile)
	}
	fmt.Fprintf(out, "  Database:        %s\n", cfg.Database.Path)

	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(out, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Fprintf(out, "  %d. [%s] %s\n", i+1, wh.Trigger, name)
		}
	}

	return nil
}
