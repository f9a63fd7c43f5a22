package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/pkg/output"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Output string
}

// NewParseCommand creates the parse command.
func NewParseCommand(g *GlobalOptions) *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file|glob>...",
		Short: "Print the parsed message table",
		Long: `Parse chat exports and print one record per message, with the
derived calendar fields (date, year, month, day name, hour, minute, period).

Example:
  chatstat parse chat.txt > messages.csv
  chatstat parse -o json "exports/*.txt"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, log, err := setup(cmd, g)
			if err != nil {
				return err
			}

			tw, err := output.NewTableWriter(opts.Output)
			if err != nil {
				return err
			}

			messages, _, err := loadMessages(ctx, cfg, log, args)
			if err != nil {
				return err
			}

			if err := tw.Write(ctx, messages, cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("writing %s: %w", tw.Name(), err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "csv", "Output format (csv|json)")

	return cmd
}
