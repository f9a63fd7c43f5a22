package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/pkg/parser"
	"github.com/chatstat/chatstat/pkg/store"
)

// ExportOptions holds command-line options for the export command.
type ExportOptions struct {
	DBPath string
	List   bool
	Delete string
}

// NewExportCommand creates the export command.
func NewExportCommand(g *GlobalOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [file|glob]...",
		Short: "Store parsed chat exports in a SQLite database",
		Long: `Parse chat exports and store their message tables in SQLite, one
import per file. Each import gets an id that "chatstat analyze --import"
accepts.

Example:
  chatstat export --db chats.db chat.txt
  chatstat export --db chats.db --list
  chatstat export --db chats.db --delete 3f0c...`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.List || opts.Delete != "" {
				if len(args) > 0 {
					return fmt.Errorf("--list and --delete take no file arguments")
				}
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "Database path, defaults to the configured path")
	cmd.Flags().BoolVar(&opts.List, "list", false, "List stored imports")
	cmd.Flags().StringVar(&opts.Delete, "delete", "", "Delete a stored import by id")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, g *GlobalOptions, opts *ExportOptions) error {
	ctx, cfg, log, err := setup(cmd, g)
	if err != nil {
		return err
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}

	s, err := store.Open(ctx, dbPath, log)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	switch {
	case opts.List:
		imports, err := s.ListImports(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tIMPORTED\tMESSAGES\tSOURCE")
		for _, imp := range imports {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
				imp.ID, imp.ImportedAt.Format(time.RFC3339), imp.MessageCount, imp.Source)
		}
		return tw.Flush()

	case opts.Delete != "":
		if err := s.DeleteImport(ctx, opts.Delete); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted import %s\n", opts.Delete)
		return nil
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no chat exports matched patterns: %v", args)
	}

	chats, err := parser.LoadFiles(ctx, files, cfg.Input.MaxFileSize)
	if err != nil {
		return err
	}

	for _, chat := range chats {
		imp, err := s.SaveImport(ctx, chat.Source, chat.Messages)
		if err != nil {
			return fmt.Errorf("storing %s: %w", chat.Source, err)
		}
		fmt.Fprintf(out, "%s\t%d messages\t%s\n", imp.ID, imp.MessageCount, imp.Source)
	}

	return nil
}
