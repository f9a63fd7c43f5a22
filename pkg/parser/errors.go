package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat is returned when the input contains no entry markers.
	ErrUnrecognizedFormat = errors.New("unrecognized chat export format: no timestamp markers found")

	// ErrMalformedTimestamp is matched by every *MalformedTimestampError.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrFileTooLarge is returned when an export exceeds the configured size limit.
	ErrFileTooLarge = errors.New("chat export exceeds size limit")
)

// MalformedTimestampError reports an entry marker whose date or time
// could not be parsed.
type MalformedTimestampError struct {
	// Marker is the offending date/time text, e.g. "32/13/23, 99:99".
	Marker string

	// Offset is the byte offset of the marker in the input.
	Offset int

	Err error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q at offset %d: %v", e.Marker, e.Offset, e.Err)
}

// Unwrap exposes both ErrMalformedTimestamp and the underlying time error.
func (e *MalformedTimestampError) Unwrap() []error {
	return []error{ErrMalformedTimestamp, e.Err}
}
