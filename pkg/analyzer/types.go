// Package analyzer derives descriptive statistics from parsed chat messages.
package analyzer

import (
	"time"
)

// OverallUser selects every participant, as offered by user pickers.
const OverallUser = "Overall"

// Result contains the complete analysis output.
type Result struct {
	Overview Overview `json:"overview"`
	Summary  Summary  `json:"summary"`

	Monthly []MonthCount `json:"monthly_timeline"`
	Daily   []DayCount   `json:"daily_timeline"`

	// Weekdays and Months are ordered by count, busiest first.
	Weekdays []NameCount `json:"weekday_activity"`
	Months   []NameCount `json:"month_activity"`

	Heatmap Heatmap `json:"heatmap"`

	// BusyUsers is nil when the analysis is limited to one user.
	BusyUsers *BusyUsers `json:"busy_users,omitempty"`

	CommonWords []WordCount  `json:"common_words"`
	Emojis      []EmojiCount `json:"emojis"`

	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// User is the participant the analysis was limited to, empty for everyone.
	User string `json:"user,omitempty"`

	// TimeRange is the time filter applied, if any.
	TimeRange *TimeRange `json:"time_range,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// MessagesProcessed is the number of messages inside the filters.
	MessagesProcessed int `json:"messages_processed"`
}

// TimeRange defines an inclusive time window for filtering messages.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window. A zero bound is open.
func (r *TimeRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Overview holds the headline counters.
type Overview struct {
	Messages      int `json:"messages"`
	Words         int `json:"words"`
	Media         int `json:"media"`
	Links         int `json:"links"`
	Notifications int `json:"notifications"`
}

// Summary describes the span and membership of the chat.
type Summary struct {
	FirstDate       string `json:"first_date,omitempty"`
	LastDate        string `json:"last_date,omitempty"`
	Participants    int    `json:"participants"`
	MostActive      string `json:"most_active,omitempty"`
	MostActiveCount int    `json:"most_active_count,omitempty"`
}

// MonthCount is one point of the monthly timeline.
type MonthCount struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DayCount is one point of the daily timeline.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// NameCount pairs a weekday or month name with a message count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Heatmap counts messages per weekday and hour bucket.
type Heatmap struct {
	// Days are the row labels, Monday first.
	Days []string `json:"days"`

	// Periods are the column labels, midnight first.
	Periods []string `json:"periods"`

	// Counts is indexed [day][period].
	Counts [][]int `json:"counts"`
}

// Max returns the largest cell value.
func (h *Heatmap) Max() int {
	m := 0
	for _, row := range h.Counts {
		for _, c := range row {
			m = max(m, c)
		}
	}
	return m
}

// BusyUsers ranks participants by message count.
type BusyUsers struct {
	// Top holds the busiest participants.
	Top []UserCount `json:"top"`

	// Shares holds every participant's percentage of messages.
	Shares []UserShare `json:"shares"`
}

// UserCount pairs a participant with a message count.
type UserCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// UserShare is a participant's percentage of all non-notification messages,
// rounded to two decimals.
type UserShare struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// WordCount pairs a word with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// EmojiCount pairs an emoji with its frequency.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}
