package detector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDetector_DetectFromLines_Android24(t *testing.T) {
	lines := []string{
		"13/3/23, 09:15 - Messages and calls are end-to-end encrypted.",
		"13/3/23, 09:16 - Alice: hello",
		"14/3/23, 0:05 - Bob: hi",
	}

	d := New()
	result := d.DetectFromLines(lines)

	if !result.HasMatch() {
		t.Fatal("Expected to find a match")
	}
	best := result.BestMatch()
	if best.Format.Name != "Android 24-hour" {
		t.Errorf("Best match = %q, want Android 24-hour", best.Format.Name)
	}
	if best.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", best.Confidence)
	}
	if !result.Supported() {
		t.Error("Android 24-hour should be supported")
	}
	if result.AmbiguityNote != "" {
		t.Errorf("Unexpected ambiguity note: %q", result.AmbiguityNote)
	}
	want := time.Date(2023, 3, 13, 9, 15, 0, 0, time.UTC)
	if !best.ParsedTime.Equal(want) {
		t.Errorf("ParsedTime = %v, want %v", best.ParsedTime, want)
	}
	if result.ParsedLines != 3 {
		t.Errorf("ParsedLines = %d, want 3", result.ParsedLines)
	}
}

func TestDetector_DetectFromLines_Android12(t *testing.T) {
	lines := []string{
		"13/3/23, 9:15 AM - Alice: hello",
		"13/3/23, 2:07 pm - Bob: hi",
	}

	result := New().DetectFromLines(lines)

	best := result.BestMatch()
	if best == nil || best.Format.Name != "Android 12-hour" {
		t.Fatalf("BestMatch() = %+v, want Android 12-hour", best)
	}
	if best.MatchCount != 2 {
		t.Errorf("MatchCount = %d, want 2", best.MatchCount)
	}
	if result.Supported() {
		t.Error("Android 12-hour should not be supported")
	}
}

func TestDetector_DetectFromLines_IOS(t *testing.T) {
	lines := []string{
		"[13/03/23, 09:15:02] Alice: hello",
		"[13/03/2023, 09:16:40] Bob: hi",
		"[14/03/23, 10:00:00] Bob: later",
	}

	result := New().DetectFromLines(lines)

	best := result.BestMatch()
	if best == nil || best.Format.Name != "iOS bracketed" {
		t.Fatalf("BestMatch() = %+v, want iOS bracketed", best)
	}
	if len(result.Matches) != 2 {
		t.Errorf("Matches = %d, want 2", len(result.Matches))
	}
	if result.Supported() {
		t.Error("iOS exports should not be supported")
	}
}

func TestDetector_DetectFromLines_MonthFirst(t *testing.T) {
	lines := []string{
		"3/25/23, 09:15 - Alice: hello",
		"3/26/23, 10:00 - Bob: hi",
	}

	result := New().DetectFromLines(lines)

	best := result.BestMatch()
	if best == nil || best.Format.Name != "Android 24-hour" {
		t.Fatalf("BestMatch() = %+v", best)
	}
	if best.MonthFirst != 2 {
		t.Errorf("MonthFirst = %d, want 2", best.MonthFirst)
	}
	if !strings.Contains(result.AmbiguityNote, "month-first") {
		t.Errorf("AmbiguityNote = %q, want month-first warning", result.AmbiguityNote)
	}
}

func TestDetector_DetectFromLines_Ambiguous(t *testing.T) {
	lines := []string{
		"5/3/23, 09:15 - Alice: hello",
		"6/3/23, 10:00 - Bob: hi",
	}

	result := New().DetectFromLines(lines)

	if !strings.Contains(result.AmbiguityNote, "cannot be confirmed") {
		t.Errorf("AmbiguityNote = %q", result.AmbiguityNote)
	}
}

func TestDetector_DetectFromLines_ContinuationLines(t *testing.T) {
	lines := []string{
		"13/3/23, 09:16 - Alice: first line",
		"second line of the same message",
		"13/3/23, 09:17 - Bob: hi",
		"and more",
	}

	result := New().DetectFromLines(lines)

	best := result.BestMatch()
	if best == nil {
		t.Fatal("Expected a match")
	}
	if best.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5", best.Confidence)
	}
}

func TestDetector_DetectFromLines_NoMatch(t *testing.T) {
	lines := []string{
		"2024-01-15T10:30:00 Application started",
		"just some text",
	}

	result := New().DetectFromLines(lines)

	if result.HasMatch() {
		t.Errorf("Unexpected match: %+v", result.BestMatch())
	}
	if result.Supported() {
		t.Error("Supported() should be false without a match")
	}
	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2", result.SampledLines)
	}
}

func TestDetector_DetectFromLines_Empty(t *testing.T) {
	result := New().DetectFromLines(nil)
	if result.HasMatch() || result.SampledLines != 0 {
		t.Errorf("DetectFromLines(nil) = %+v", result)
	}
}

func TestDetector_DetectFromFile(t *testing.T) {
	content := "\ufeff13/3/23, 09:15 - Alice: hello\n\n13/3/23, 09:16 - Bob: hi\n"
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New().DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2 (blank lines skipped)", result.SampledLines)
	}
	if !result.Supported() || result.BestMatch().Confidence != 1.0 {
		t.Errorf("result = %+v", result)
	}
}

func TestDetector_DetectFromFile_SampleSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("13/3/23, 09:15 - Alice: hello\n")
	}
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New(WithSampleSize(10)).DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10", result.SampledLines)
	}
}

func TestDetector_DetectFromFile_NotFound(t *testing.T) {
	_, err := New().DetectFromFile(context.Background(), "/nonexistent/chat.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("DetectFromFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"5/3/23, 2:07 pm", "5/3/23, 2:07 PM"},
		{"5/3/23, 2:07AM", "5/3/23, 2:07 AM"},
		{"5/3/23, 14:07", "5/3/23, 14:07"},
	}
	for _, tt := range tests {
		if got := normalizeClock(tt.in); got != tt.want {
			t.Errorf("normalizeClock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultFormats(t *testing.T) {
	supported := 0
	for _, f := range DefaultFormats() {
		if f.Pattern == nil {
			t.Errorf("%s: pattern not compiled", f.Name)
		}
		for _, ex := range f.Examples {
			if !f.Pattern.MatchString(ex) {
				t.Errorf("%s: pattern does not match its example %q", f.Name, ex)
			}
		}
		if f.Supported {
			supported++
		}
	}
	if supported != 1 {
		t.Errorf("supported formats = %d, want 1", supported)
	}
}
