package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/chatstat/chatstat/pkg/analyzer"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	s := report.Summary
	_, err := fmt.Fprintf(w, "chatstat: %d messages, %d words, %d media, %d links from %d participants\n",
		s.Messages, s.Words, s.Media, s.Links, s.Participants)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	st := report.Statistics
	if st == nil {
		st = &analyzer.Result{}
	}

	fmt.Fprintln(w, "=== chatstat Report ===")
	if report.Metadata.User != "" {
		fmt.Fprintf(w, "User: %s\n", report.Metadata.User)
	}
	if tr := report.Metadata.TimeRange; tr != nil {
		fmt.Fprintf(w, "Time range: %s to %s\n", formatBound(tr.Start), formatBound(tr.End))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[OVERVIEW]")
	fmt.Fprintf(w, "  Messages: %d\n", st.Overview.Messages)
	fmt.Fprintf(w, "  Words:    %d\n", st.Overview.Words)
	fmt.Fprintf(w, "  Media:    %d\n", st.Overview.Media)
	fmt.Fprintf(w, "  Links:    %d\n", st.Overview.Links)
	if f.opts.Verbose {
		fmt.Fprintf(w, "  Notifications: %d\n", st.Overview.Notifications)
	}
	fmt.Fprintln(w)

	if report.IsEmpty() {
		fmt.Fprintln(w, "  No messages in range")
		fmt.Fprintln(w)
	} else {
		f.formatSections(st, w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d messages from %d participants\n",
		report.Summary.Messages, report.Summary.Participants)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Sources: %s\n", strings.Join(report.Metadata.Sources, ", "))
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatSections(st *analyzer.Result, w io.Writer) {
	fmt.Fprintln(w, "[SUMMARY]")
	fmt.Fprintf(w, "  Chat duration: %s to %s\n", st.Summary.FirstDate, st.Summary.LastDate)
	fmt.Fprintf(w, "  Participants:  %d\n", st.Summary.Participants)
	if st.Summary.MostActive != "" {
		fmt.Fprintf(w, "  Most active:   %s (%d messages)\n", st.Summary.MostActive, st.Summary.MostActiveCount)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[MONTHLY TIMELINE]")
	for _, m := range st.Monthly {
		fmt.Fprintf(w, "  %s %d\n", pad(m.Label, 16), m.Count)
	}
	fmt.Fprintln(w)

	if f.opts.Verbose {
		fmt.Fprintln(w, "[DAILY TIMELINE]")
		for _, d := range st.Daily {
			fmt.Fprintf(w, "  %s %d\n", d.Date, d.Count)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "[BUSIEST DAYS]")
	for _, d := range st.Weekdays {
		fmt.Fprintf(w, "  %s %d\n", pad(d.Name, 10), d.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[BUSIEST MONTHS]")
	for _, m := range st.Months {
		fmt.Fprintf(w, "  %s %d\n", pad(m.Name, 10), m.Count)
	}
	fmt.Fprintln(w)

	f.formatHeatmap(&st.Heatmap, w)

	if st.BusyUsers != nil {
		fmt.Fprintln(w, "[BUSY USERS]")
		shares := make(map[string]float64, len(st.BusyUsers.Shares))
		for _, s := range st.BusyUsers.Shares {
			shares[s.Name] = s.Percent
		}
		width := 0
		for _, u := range st.BusyUsers.Top {
			width = max(width, uniseg.StringWidth(u.Name))
		}
		for _, u := range st.BusyUsers.Top {
			fmt.Fprintf(w, "  %s %d (%.2f%%)\n", pad(u.Name, width), u.Count, shares[u.Name])
		}
		if f.opts.Verbose && len(st.BusyUsers.Shares) > len(st.BusyUsers.Top) {
			for _, s := range st.BusyUsers.Shares[len(st.BusyUsers.Top):] {
				fmt.Fprintf(w, "  %s (%.2f%%)\n", pad(s.Name, width), s.Percent)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "[COMMON WORDS]")
	if len(st.CommonWords) == 0 {
		fmt.Fprintln(w, "  No meaningful words found")
	}
	for _, c := range st.CommonWords {
		fmt.Fprintf(w, "  %s %d\n", pad(c.Word, 16), c.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[EMOJIS]")
	if len(st.Emojis) == 0 {
		fmt.Fprintln(w, "  No emojis found")
	}
	for _, e := range st.Emojis {
		fmt.Fprintf(w, "  %s %d\n", pad(e.Emoji, 3), e.Count)
	}
	fmt.Fprintln(w)
}

// formatHeatmap prints one row per weekday and one column per hour.
func (f *TextFormatter) formatHeatmap(h *analyzer.Heatmap, w io.Writer) {
	if len(h.Counts) == 0 {
		return
	}

	cell := len(fmt.Sprint(h.Max())) + 1
	cell = max(cell, 3)

	fmt.Fprintln(w, "[ACTIVITY HEATMAP]")
	fmt.Fprint(w, "     ")
	for hour := range h.Periods {
		fmt.Fprintf(w, "%*d", cell, hour)
	}
	fmt.Fprintln(w)
	for i, row := range h.Counts {
		fmt.Fprintf(w, "  %.3s", h.Days[i])
		for _, n := range row {
			if n == 0 {
				fmt.Fprintf(w, "%*s", cell, ".")
				continue
			}
			fmt.Fprintf(w, "%*d", cell, n)
		}
		fmt.Fprintln(w)
	}
	if f.opts.Verbose {
		fmt.Fprintf(w, "  Columns are hour buckets %s to %s\n", h.Periods[0], h.Periods[len(h.Periods)-1])
	}
	fmt.Fprintln(w)
}

// pad right-pads s to the given display width.
func pad(s string, width int) string {
	if n := width - uniseg.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format("2006-01-02 15:04")
}
