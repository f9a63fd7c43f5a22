// Package parser turns exported chat logs into ordered message records.
package parser

import (
	"fmt"
	"time"
)

// NotificationAuthor is the author recorded for entries that have no
// "author: " prefix, such as membership changes and encryption notices.
const NotificationAuthor = "group_notification"

// DateLayout is the layout of Message.Date.
const DateLayout = "2006-01-02"

// Message is a single entry of a chat export.
type Message struct {
	// Timestamp is parsed from the entry marker. It carries no zone
	// information in the export and is stored as UTC.
	Timestamp time.Time `json:"timestamp"`

	// Author is the participant name, or NotificationAuthor.
	Author string `json:"author"`

	// Text is the message body with control characters removed.
	Text string `json:"text"`

	// Calendar fields derived from Timestamp.
	Date     string `json:"date"`
	Year     int    `json:"year"`
	MonthNum int    `json:"month_num"`
	Month    string `json:"month"`
	Day      int    `json:"day"`
	DayName  string `json:"day_name"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`

	// Period is the hour bucket label used by activity heatmaps.
	Period string `json:"period"`
}

// IsNotification reports whether the entry is a system notification.
func (m *Message) IsNotification() bool {
	return m.Author == NotificationAuthor
}

// Chat is the parsed content of one export file.
type Chat struct {
	// Source is the file path the chat was read from.
	Source string

	// Messages are in file order.
	Messages []Message
}

func newMessage(ts time.Time, author, text string) Message {
	return Message{
		Timestamp: ts,
		Author:    author,
		Text:      text,
		Date:      ts.Format(DateLayout),
		Year:      ts.Year(),
		MonthNum:  int(ts.Month()),
		Month:     ts.Month().String(),
		Day:       ts.Day(),
		DayName:   ts.Weekday().String(),
		Hour:      ts.Hour(),
		Minute:    ts.Minute(),
		Period:    Period(ts.Hour()),
	}
}

// Period returns the one-hour bucket label for hour h.
// Hours 23 and 0 use the wrap-around labels "23-00" and "00-01".
func Period(h int) string {
	switch h {
	case 23:
		return "23-00"
	case 0:
		return "00-01"
	default:
		return fmt.Sprintf("%d-%d", h, h+1)
	}
}

// Periods returns the 24 period labels in hour order.
func Periods() []string {
	periods := make([]string, 24)
	for h := range periods {
		periods[h] = Period(h)
	}
	return periods
}
