package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatstat/chatstat/pkg/detector"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Detect the export format of a chat file",
		Long: `Sample lines from a chat export and identify its entry marker format.

Reports the detected format with a confidence score, whether chatstat can
parse it, and a warning when dates look month-first.

Recognizes:
  - Android 24-hour exports ("13/3/23, 09:15 - ") (supported)
  - Android 12-hour exports ("13/3/23, 9:15 PM - ")
  - Android exports with four-digit years
  - iOS bracketed exports ("[13/03/23, 09:15:02] ")

Example:
  chatstat inspect chat.txt
  chatstat inspect -n 500 -o json chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	file := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		return fmt.Errorf("chat export not found: %s", file)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, file)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return outputInspectJSON(cmd.OutOrStdout(), result, file, opts)
	case "text", "":
		return outputInspectText(cmd.OutOrStdout(), result, file, opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputInspectText(w io.Writer, result *detector.DetectionResult, file string, opts *InspectOptions) error {
	fmt.Fprintln(w, "=== Chat Export Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", file)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with entry markers: %d\n", result.ParsedLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No chat export format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: Export the chat again from the app, without media.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Format: %s\n", best.Format.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	if !best.ParsedTime.IsZero() {
		fmt.Fprintf(w, "Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)

	if result.Supported() {
		fmt.Fprintln(w, "Supported: yes")
	} else {
		fmt.Fprintln(w, "WARNING: chatstat cannot parse this format yet.")
	}
	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
	}
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			fmt.Fprintf(w, "   pattern: '%s'\n", m.Format.PatternStr)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Pattern    string  `json:"pattern"`
	Layout     string  `json:"layout"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
	Supported  bool    `json:"supported"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File          string      `json:"file"`
	Matches       []JSONMatch `json:"matches"`
	SampledLines  int         `json:"sampled_lines"`
	ParsedLines   int         `json:"parsed_lines"`
	Supported     bool        `json:"supported"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputInspectJSON(w io.Writer, result *detector.DetectionResult, file string, opts *InspectOptions) error {
	out := JSONOutput{
		File:          file,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		Supported:     result.Supported(),
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:       m.Format.Name,
			Pattern:    m.Format.PatternStr,
			Layout:     m.Format.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			Supported:  m.Format.Supported,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
