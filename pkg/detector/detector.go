// Package detector identifies the entry marker format of chat export files.
package detector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DetectionResult holds the result of analyzing an export file.
type DetectionResult struct {
	Matches       []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines  int           // Number of lines sampled
	ParsedLines   int           // Number of lines with detected markers
	AmbiguityNote string        // Warning about date ordering if applicable
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format     *MarkerFormat
	Confidence float64   // 0.0 to 1.0 (share of sampled lines matched)
	MatchCount int       // Number of lines that matched
	SampleLine string    // Example line that matched
	ParsedTime time.Time // Parsed timestamp from sample

	// DayFirst and MonthFirst count sampled dates that only make sense
	// in that field order.
	DayFirst   int
	MonthFirst int
}

// Detector analyzes export files to identify marker formats.
type Detector struct {
	formats    []*MarkerFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes an export file and returns detected formats.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

var slashDate = regexp.MustCompile(`^\[?(\d{1,2})/(\d{1,2})/`)

// DetectFromLines analyzes a slice of export lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	stats := make(map[string]*FormatMatch)

	// Test each line against all formats
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, format := range d.formats {
			matches := format.Pattern.FindStringSubmatch(line)
			if len(matches) < 2 {
				continue
			}

			parsedTime, monthFirst, ok := parseTimestamp(matches[1], format)
			if !ok {
				continue
			}

			m := stats[format.Name]
			if m == nil {
				m = &FormatMatch{
					Format:     format,
					SampleLine: line,
					ParsedTime: parsedTime,
				}
				stats[format.Name] = m
			}
			m.MatchCount++

			if format.SlashDate {
				first, second := dateFields(line)
				switch {
				case monthFirst || (second > 12 && first <= 12):
					m.MonthFirst++
				case first > 12 && second <= 12:
					m.DayFirst++
				}
			}
		}
	}

	for _, m := range stats {
		m.Confidence = float64(m.MatchCount) / float64(len(lines))
		result.Matches = append(result.Matches, *m)
	}

	// Sort by confidence descending, then by pattern length (more specific first)
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return len(result.Matches[i].Format.PatternStr) > len(result.Matches[j].Format.PatternStr)
	})

	if len(result.Matches) > 0 {
		best := &result.Matches[0]
		result.ParsedLines = best.MatchCount
		result.AmbiguityNote = ambiguityNote(best)
	}

	return result
}

func ambiguityNote(m *FormatMatch) string {
	if !m.Format.SlashDate {
		return ""
	}
	switch {
	case m.MonthFirst > 0 && m.DayFirst == 0:
		return "Dates look month-first (MM/DD/YY). chatstat reads DD/MM/YY, " +
			"so days and months would be swapped. Re-export with a day-first locale."
	case m.MonthFirst == 0 && m.DayFirst == 0:
		return "No sampled date has a field above 12, so day/month order cannot be confirmed. " +
			"chatstat assumes DD/MM/YY."
	default:
		return ""
	}
}

// parseTimestamp parses a marker timestamp with the format's layout. When
// that fails for a slash date it retries month-first and reports so.
func parseTimestamp(ts string, format *MarkerFormat) (time.Time, bool, bool) {
	ts = normalizeClock(ts)
	if t, err := time.ParseInLocation(format.Layout, ts, time.UTC); err == nil {
		return t, false, true
	}
	if format.SlashDate {
		swapped := strings.Replace(format.Layout, "2/1/", "1/2/", 1)
		if t, err := time.ParseInLocation(swapped, ts, time.UTC); err == nil {
			return t, true, true
		}
	}
	return time.Time{}, false, false
}

// normalizeClock maps any whitespace to a plain space and upper-cases the
// AM/PM suffix so a single layout covers export variants.
func normalizeClock(ts string) string {
	ts = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, ts)
	if n := len(ts); n >= 3 {
		if suffix := strings.ToUpper(ts[n-2:]); suffix == "AM" || suffix == "PM" {
			ts = strings.TrimRight(ts[:n-2], " ") + " " + suffix
		}
	}
	return ts
}

func dateFields(line string) (int, int) {
	m := slashDate.FindStringSubmatch(line)
	if m == nil {
		return 0, 0
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	return first, second
}

// sampleFile reads up to sampleSize lines from a file.
// Uses simple head sampling for efficiency.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chat export %s: %w", path, err)
	}
	defer file.Close()

	decoded := transform.NewReader(file, xunicode.BOMOverride(xunicode.UTF8.NewDecoder()))

	var lines []string
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() && len(lines) < d.sampleSize {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading chat export %s: %w", path, err)
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// Supported returns true if the best match is a format the parser reads.
func (r *DetectionResult) Supported() bool {
	best := r.BestMatch()
	return best != nil && best.Format.Supported
}
