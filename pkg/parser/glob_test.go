package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpandGlobs_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := writeExport(t, dir, "chat.txt", "test")

	result, err := ExpandGlobs([]string{file})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 1 || result[0] != file {
		t.Errorf("ExpandGlobs() = %v, want [%s]", result, file)
	}
}

func TestExpandGlobs_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.txt", "b.txt", "c.zip"} {
		writeExport(t, dir, f, "test")
	}

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 2 {
		t.Errorf("ExpandGlobs() returned %d files, want 2", len(result))
	}
}

func TestExpandGlobs_NoMatch(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "*.nonexistent")

	result, err := ExpandGlobs([]string{pattern})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 1 || result[0] != pattern {
		t.Errorf("ExpandGlobs() = %v, want [%s]", result, pattern)
	}
}

func TestExpandGlobs_Deduplication(t *testing.T) {
	dir := t.TempDir()
	file := writeExport(t, dir, "chat.txt", "test")

	result, err := ExpandGlobs([]string{file, filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 1 {
		t.Errorf("ExpandGlobs() returned %d files, want 1 (deduplicated)", len(result))
	}
}

func TestExpandGlobs_InvalidPattern(t *testing.T) {
	if _, err := ExpandGlobs([]string{"[invalid"}); err == nil {
		t.Error("ExpandGlobs() expected error for invalid pattern")
	}
}

func TestExpandGlobs_KeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	b := writeExport(t, dir, "b.txt", "test")
	a := writeExport(t, dir, "a.txt", "test")

	result, err := ExpandGlobs([]string{b, a})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 2 || result[0] != b || result[1] != a {
		t.Errorf("ExpandGlobs() = %v, want [%s %s]", result, b, a)
	}
}

func TestExpandGlobs_SortsMatchesWithinPattern(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"c.txt", "a.txt", "b.txt"} {
		writeExport(t, dir, f, "test")
	}

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	for i := 1; i < len(result); i++ {
		if result[i-1] > result[i] {
			t.Errorf("ExpandGlobs() result not sorted: %v", result)
			break
		}
	}
}

func TestExpandGlobs_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "exports.txt"), 0755); err != nil {
		t.Fatal(err)
	}
	writeExport(t, dir, "chat.txt", "test")

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 1 {
		t.Errorf("ExpandGlobs() = %v, want only the file", result)
	}
}

func TestExpandGlobs_EmptyInput(t *testing.T) {
	result, err := ExpandGlobs([]string{})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 0 {
		t.Errorf("ExpandGlobs([]) = %v, want empty", result)
	}
}
