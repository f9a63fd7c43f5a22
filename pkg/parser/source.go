package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile reads a chat export and returns its content as UTF-8 text.
// A byte order mark selects UTF-16 decoding; without one the file is
// treated as UTF-8 and invalid sequences become U+FFFD. A positive
// maxSize rejects larger files with ErrFileTooLarge.
func ReadFile(ctx context.Context, path string, maxSize int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return "", fmt.Errorf("opening chat export %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxSize > 0 {
		r = io.LimitReader(f, maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", fmt.Errorf("%s: %w (limit %d bytes)", path, ErrFileTooLarge, maxSize)
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}

	return string(text), nil
}

// LoadFiles reads and parses the given exports concurrently. The returned
// chats are in the same order as paths. The first failure cancels the
// remaining work and is returned.
func LoadFiles(ctx context.Context, paths []string, maxSize int64) ([]*Chat, error) {
	chats := make([]*Chat, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			raw, err := ReadFile(ctx, path, maxSize)
			if err != nil {
				return err
			}

			messages, err := Parse(raw)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			chats[i] = &Chat{Source: path, Messages: messages}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chats, nil
}
