package parser

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExpandGlobs expands file paths and glob patterns into a deduplicated list
// of chat export paths. Patterns keep their argument order; matches of one
// pattern are sorted. Directories are skipped. A pattern that matches
// nothing is returned as-is so that opening it later reports the missing
// file.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				continue
			}
			add(match)
		}
	}

	return result, nil
}
