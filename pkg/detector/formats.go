package detector

import (
	"regexp"

	"github.com/chatstat/chatstat/pkg/parser"
)

// MarkerFormat represents a known chat export line format.
type MarkerFormat struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex (set during init)
	PatternStr string         // Pattern string, first group is the timestamp
	Layout     string         // Go time layout for parsing
	Examples   []string       // Example line prefixes
	Supported  bool           // True if the parser reads this format
	SlashDate  bool           // True if the date is d/m or m/d and may be ambiguous
}

// DefaultFormats returns the built-in export formats to detect.
// Formats are ordered roughly by specificity (more specific patterns first).
func DefaultFormats() []*MarkerFormat {
	formats := []*MarkerFormat{
		{
			Name:       "iOS bracketed",
			PatternStr: `^\[(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2}:\d{2})\] `,
			Layout:     "2/1/06, 15:04:05",
			Examples:   []string{"[05/03/23, 14:07:31] Alice: "},
			SlashDate:  true,
		},
		{
			Name:       "iOS bracketed, four-digit year",
			PatternStr: `^\[(\d{1,2}/\d{1,2}/\d{4}, \d{1,2}:\d{2}:\d{2})\] `,
			Layout:     "2/1/2006, 15:04:05",
			Examples:   []string{"[05/03/2023, 14:07:31] Alice: "},
			SlashDate:  true,
		},
		{
			Name:       "Android 12-hour",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2}[\s\x{202f}]?[AaPp][Mm]) - `,
			Layout:     "2/1/06, 3:04 PM",
			Examples:   []string{"5/3/23, 2:07 PM - Alice: "},
			SlashDate:  true,
		},
		{
			Name:       "Android 24-hour, four-digit year",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{4}, \d{1,2}:\d{2}) - `,
			Layout:     "2/1/2006, 15:04",
			Examples:   []string{"5/3/2023, 14:07 - Alice: "},
			SlashDate:  true,
		},
		{
			Name:       "Android 24-hour",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2},\s\d{1,2}:\d{2})\s-\s`,
			Layout:     parser.MarkerLayout,
			Examples:   []string{"5/3/23, 14:07 - Alice: ", "1/1/23, 0:05 - Bob: "},
			Supported:  true,
			SlashDate:  true,
		},
	}

	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}
