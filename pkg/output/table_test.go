package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/chatstat/chatstat/pkg/parser"
)

func parseTestExport(t *testing.T) []parser.Message {
	t.Helper()
	messages, err := parser.Parse(testExport)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return messages
}

func TestCSVTableWriter(t *testing.T) {
	messages := parseTestExport(t)

	var buf bytes.Buffer
	if err := (CSVTableWriter{}).Write(context.Background(), messages, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != len(messages)+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(messages)+1)
	}
	if rows[0][0] != "timestamp" || rows[0][len(rows[0])-1] != "text" {
		t.Errorf("header = %v", rows[0])
	}

	// The group notice contains quotes and must round-trip.
	first := rows[1]
	if first[10] != parser.NotificationAuthor || first[11] != `Alice created group "Trip"` {
		t.Errorf("row 1 = %v", first)
	}
	if first[0] != "2023-03-01T09:15:00Z" || first[6] != "Wednesday" || first[9] != "9-10" {
		t.Errorf("row 1 = %v", first)
	}
}

func TestJSONTableWriter(t *testing.T) {
	messages := parseTestExport(t)

	var buf bytes.Buffer
	if err := (JSONTableWriter{}).Write(context.Background(), messages, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var parsed []parser.Message
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed) != len(messages) {
		t.Fatalf("got %d messages, want %d", len(parsed), len(messages))
	}
	if parsed[3].Text != "<Media omitted>" || parsed[4].Period != "00-01" {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestJSONTableWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSONTableWriter{}).Write(context.Background(), nil, &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("Write(nil) = %q, want []", got)
	}
}

func TestCSVTableWriter_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := (CSVTableWriter{}).Write(ctx, parseTestExport(t), &buf); err != context.Canceled {
		t.Errorf("Write() error = %v, want context.Canceled", err)
	}
}

func TestNewTableWriter(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"csv", "csv", false},
		{"json", "json", false},
		{"", "csv", false},
		{"xlsx", "", true},
	}
	for _, tt := range tests {
		w, err := NewTableWriter(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewTableWriter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && w.Name() != tt.want {
			t.Errorf("NewTableWriter(%q).Name() = %q, want %q", tt.name, w.Name(), tt.want)
		}
	}
}
