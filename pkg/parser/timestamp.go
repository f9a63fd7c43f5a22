package parser

import (
	"regexp"
	"time"
)

// MarkerLayout is the Go time layout of an entry marker (DD/MM/YY, HH:MM).
const MarkerLayout = "2/1/06, 15:04"

// markerPattern matches the prefix that starts every entry, for example
// "5/3/23, 14:07 - ". Group 1 is the date and group 2 the time.
var markerPattern = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2}),\s(\d{1,2}:\d{2})\s-\s`)

// markerSuffixLen is the length of the `\s-\s` separator ending a marker.
const markerSuffixLen = 3

// parseMarker parses the marker found at loc, a submatch index slice from
// markerPattern.
func parseMarker(raw string, loc []int) (time.Time, error) {
	date := raw[loc[2]:loc[3]]
	clock := raw[loc[4]:loc[5]]

	// The separator between date and time may be any single whitespace
	// character in the source; the layout wants ", ".
	ts, err := time.ParseInLocation(MarkerLayout, date+", "+clock, time.UTC)
	if err != nil {
		return time.Time{}, &MalformedTimestampError{
			Marker: raw[loc[0] : loc[1]-markerSuffixLen],
			Offset: loc[0],
			Err:    err,
		}
	}
	return ts, nil
}
