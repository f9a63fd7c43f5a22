package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/pkg/analyzer"
)

// NewUsersCommand creates the users command.
func NewUsersCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users <file|glob>...",
		Short: "List chat participants",
		Long: `List the participants of chat exports, sorted by name.

The first line is always "Overall", which selects every participant in
"chatstat analyze --user". System notifications are not listed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, log, err := setup(cmd, g)
			if err != nil {
				return err
			}

			messages, _, err := loadMessages(ctx, cfg, log, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, analyzer.OverallUser)
			for _, u := range analyzer.Users(messages) {
				fmt.Fprintln(out, u)
			}
			return nil
		},
	}
}
