// Package cli provides the command-line interface for chatstat.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "chatstat",
		Short: "Statistics for exported chat logs",
		Long: `chatstat parses exported group chat logs and reports who talks, when,
and about what.

It reports:
  - Message, word, media and link counts
  - Monthly and daily activity timelines
  - Busiest weekdays, months and hours
  - Most active participants
  - Most common words and emojis

Exports use the "D/M/YY, H:MM - Author: text" line format. Run
"chatstat inspect" on a file to check it before analysis.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.ConfigPath, "config", "c", "", "Configuration file (defaults are used when empty)")
	flags.StringVar(&g.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flags.StringVar(&g.LogFormat, "log-format", "", "Log format (text|json)")

	rootCmd.AddCommand(commands.NewAnalyzeCommand(g))
	rootCmd.AddCommand(commands.NewParseCommand(g))
	rootCmd.AddCommand(commands.NewUsersCommand(g))
	rootCmd.AddCommand(commands.NewExportCommand(g))
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
