package parser

import "regexp"

// authorPattern splits "author: body". The author may not contain a colon,
// so the first colon followed by whitespace ends it.
var authorPattern = regexp.MustCompile(`^([^:]+):\s`)

// Parse splits a chat export into messages.
//
// Every entry starts with a "D/M/YY, H:MM - " marker; text before the first
// marker is ignored. Entries are returned in input order. Parse fails with
// ErrUnrecognizedFormat when no marker is present and with a
// *MalformedTimestampError when any marker does not hold a valid date and
// time. It never returns a partial result.
func Parse(raw string) ([]Message, error) {
	locs := markerPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return nil, ErrUnrecognizedFormat
	}

	messages := make([]Message, 0, len(locs))
	for i, loc := range locs {
		ts, err := parseMarker(raw, loc)
		if err != nil {
			return nil, err
		}

		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		author, body := splitAuthor(raw[loc[1]:end])
		messages = append(messages, newMessage(ts, author, StripControl(body)))
	}

	return messages, nil
}

// splitAuthor separates the author prefix from an entry body. Entries
// without one are notifications and keep their whole body.
func splitAuthor(entry string) (author, body string) {
	m := authorPattern.FindStringSubmatchIndex(entry)
	if m == nil {
		return NotificationAuthor, entry
	}
	return entry[m[2]:m[3]], entry[m[1]:]
}
