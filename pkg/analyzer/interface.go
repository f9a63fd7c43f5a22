package analyzer

import (
	"context"

	"github.com/chatstat/chatstat/pkg/parser"
)

// Collector accumulates one family of statistics.
// Each report section (overview, timelines, activity, words, ...) implements this interface.
type Collector interface {
	// Name identifies the collector in errors and logs.
	Name() string

	// Process handles a single in-scope message, updating internal state.
	Process(ctx context.Context, msg *parser.Message) error

	// Finalize writes the collected statistics into result.
	// Called after all messages have been processed.
	Finalize(ctx context.Context, result *Result) error

	// Reset clears internal state for reuse.
	Reset()
}
