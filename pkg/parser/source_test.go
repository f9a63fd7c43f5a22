package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestReadFile_UTF8(t *testing.T) {
	path := writeExport(t, t.TempDir(), "chat.txt", "5/3/23, 14:07 - Alice: héllo 😀\n")

	got, err := ReadFile(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != "5/3/23, 14:07 - Alice: héllo 😀\n" {
		t.Errorf("ReadFile() = %q", got)
	}
}

func TestReadFile_StripsUTF8BOM(t *testing.T) {
	path := writeExport(t, t.TempDir(), "chat.txt", "\ufeff5/3/23, 14:07 - Alice: hi")

	got, err := ReadFile(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.HasPrefix(got, "\ufeff") {
		t.Errorf("ReadFile() kept the byte order mark: %q", got)
	}
}

func TestReadFile_UTF16WithBOM(t *testing.T) {
	content := "5/3/23, 14:07 - Alice: नमस्ते\n"
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(content)
	if err != nil {
		t.Fatal(err)
	}
	path := writeExport(t, t.TempDir(), "chat.txt", encoded)

	got, err := ReadFile(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != content {
		t.Errorf("ReadFile() = %q, want %q", got, content)
	}
}

func TestReadFile_SizeLimit(t *testing.T) {
	path := writeExport(t, t.TempDir(), "chat.txt", strings.Repeat("x", 100))

	if _, err := ReadFile(context.Background(), path, 99); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("ReadFile() error = %v, want ErrFileTooLarge", err)
	}
	if _, err := ReadFile(context.Background(), path, 100); err != nil {
		t.Errorf("ReadFile() at exact limit error = %v", err)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(context.Background(), "/nonexistent/chat.txt", 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestReadFile_ContextCancellation(t *testing.T) {
	path := writeExport(t, t.TempDir(), "chat.txt", "5/3/23, 14:07 - Alice: hi")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ReadFile(ctx, path, 0); err != context.Canceled {
		t.Errorf("ReadFile() error = %v, want context.Canceled", err)
	}
}

func TestLoadFiles_KeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"c.txt", "a.txt", "b.txt"} {
		body := strings.Repeat("5/3/23, 14:07 - Alice: hi\n", i+1)
		paths = append(paths, writeExport(t, dir, name, body))
	}

	chats, err := LoadFiles(context.Background(), paths, 0)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if len(chats) != 3 {
		t.Fatalf("LoadFiles() returned %d chats, want 3", len(chats))
	}
	for i, c := range chats {
		if c.Source != paths[i] {
			t.Errorf("chats[%d].Source = %q, want %q", i, c.Source, paths[i])
		}
		if len(c.Messages) != i+1 {
			t.Errorf("chats[%d] has %d messages, want %d", i, len(c.Messages), i+1)
		}
	}
}

func TestLoadFiles_ParseErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	good := writeExport(t, dir, "good.txt", "5/3/23, 14:07 - Alice: hi\n")
	bad := writeExport(t, dir, "bad.txt", "no markers here\n")

	_, err := LoadFiles(context.Background(), []string{good, bad}, 0)
	if !errors.Is(err, ErrUnrecognizedFormat) {
		t.Fatalf("LoadFiles() error = %v, want ErrUnrecognizedFormat", err)
	}
	if !strings.Contains(err.Error(), filepath.Base(bad)) {
		t.Errorf("LoadFiles() error %q does not name %s", err, bad)
	}
}

func TestLoadFiles_Empty(t *testing.T) {
	chats, err := LoadFiles(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if len(chats) != 0 {
		t.Errorf("LoadFiles(nil) = %d chats, want 0", len(chats))
	}
}
