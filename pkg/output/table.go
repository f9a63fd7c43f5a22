package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/chatstat/chatstat/pkg/parser"
)

// TableWriter writes parsed messages as a table.
type TableWriter interface {
	// Write renders messages to w in order.
	Write(ctx context.Context, messages []parser.Message, w io.Writer) error

	// Name returns the format name (csv, json).
	Name() string
}

// NewTableWriter returns the table writer registered under name.
func NewTableWriter(name string) (TableWriter, error) {
	switch name {
	case "csv", "":
		return CSVTableWriter{}, nil
	case "json":
		return JSONTableWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown table format %q (use csv or json)", name)
	}
}

// TableColumns are the CSV header fields, in order.
var TableColumns = []string{
	"timestamp", "date", "year", "month_num", "month", "day",
	"day_name", "hour", "minute", "period", "author", "text",
}

// CSVTableWriter writes one row per message with a header row.
type CSVTableWriter struct{}

// Name returns the format name.
func (CSVTableWriter) Name() string { return "csv" }

// Write renders messages as CSV.
func (CSVTableWriter) Write(ctx context.Context, messages []parser.Message, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TableColumns); err != nil {
		return err
	}

	for i := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := &messages[i]
		row := []string{
			m.Timestamp.Format(time.RFC3339),
			m.Date,
			strconv.Itoa(m.Year),
			strconv.Itoa(m.MonthNum),
			m.Month,
			strconv.Itoa(m.Day),
			m.DayName,
			strconv.Itoa(m.Hour),
			strconv.Itoa(m.Minute),
			m.Period,
			m.Author,
			m.Text,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONTableWriter writes the messages as a JSON array.
type JSONTableWriter struct{}

// Name returns the format name.
func (JSONTableWriter) Name() string { return "json" }

// Write renders messages as indented JSON.
func (JSONTableWriter) Write(_ context.Context, messages []parser.Message, w io.Writer) error {
	if messages == nil {
		messages = []parser.Message{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(messages)
}
