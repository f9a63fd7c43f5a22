package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chatstat/chatstat/pkg/config"
	"github.com/chatstat/chatstat/pkg/parser"
)

// Analyzer runs a set of collectors over chat messages.
type Analyzer struct {
	collectors []Collector

	// summary sees the whole chat, ignoring the participant filter
	summary Collector

	// Options
	user             string
	timeRange        *TimeRange
	topWords         int
	topEmojis        int
	topUsers         int
	minWordLength    int
	mediaPlaceholder string
	stopwords        map[string]struct{}
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithUser limits analysis to one participant. "" and OverallUser mean everyone.
func WithUser(name string) AnalyzerOption {
	return func(a *Analyzer) {
		if name == OverallUser {
			name = ""
		}
		a.user = name
	}
}

// WithTimeRange limits analysis to messages within the given inclusive window.
// A zero bound leaves that side open.
func WithTimeRange(start, end time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		if start.IsZero() && end.IsZero() {
			a.timeRange = nil
			return
		}
		a.timeRange = &TimeRange{Start: start, End: end}
	}
}

// WithTopWords sets how many common words are reported.
func WithTopWords(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.topWords = n
		}
	}
}

// WithTopEmojis sets how many emojis are reported. 0 reports all of them.
func WithTopEmojis(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n >= 0 {
			a.topEmojis = n
		}
	}
}

// WithTopUsers sets how many participants the busy users ranking keeps.
func WithTopUsers(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.topUsers = n
		}
	}
}

// WithMinWordLength drops shorter tokens from the common words, in runes.
func WithMinWordLength(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.minWordLength = n
		}
	}
}

// WithStopwords adds words excluded from the common words.
func WithStopwords(words ...string) AnalyzerOption {
	return func(a *Analyzer) {
		addStopwords(a.stopwords, words)
	}
}

// WithMediaPlaceholder sets the text that marks an omitted attachment.
func WithMediaPlaceholder(s string) AnalyzerOption {
	return func(a *Analyzer) {
		if s != "" {
			a.mediaPlaceholder = s
		}
	}
}

// NewAnalyzer creates an analyzer from the analysis configuration.
// Options override the configured values.
func NewAnalyzer(cfg config.AnalysisConfig, opts ...AnalyzerOption) (*Analyzer, error) {
	a := &Analyzer{
		topWords:         config.DefaultTopWords,
		topUsers:         config.DefaultTopUsers,
		minWordLength:    config.DefaultMinWordLength,
		mediaPlaceholder: config.DefaultMediaPlaceholder,
		stopwords:        DefaultStopwords(),
	}

	base := []AnalyzerOption{
		WithTopWords(cfg.TopWords),
		WithTopEmojis(cfg.TopEmojis),
		WithTopUsers(cfg.TopUsers),
		WithMinWordLength(cfg.MinWordLength),
		WithMediaPlaceholder(cfg.MediaPlaceholder),
		WithStopwords(cfg.Stopwords...),
	}
	if cfg.StopwordsFile != "" {
		words, err := ReadStopwords(cfg.StopwordsFile)
		if err != nil {
			return nil, err
		}
		base = append(base, WithStopwords(words...))
	}

	for _, opt := range append(base, opts...) {
		opt(a)
	}

	a.summary = newSummaryCollector()
	a.collectors = []Collector{
		newOverviewCollector(a.mediaPlaceholder),
		newTimelineCollector(),
		newActivityCollector(),
		newWordCollector(a.mediaPlaceholder, a.minWordLength, a.topWords, a.stopwords),
		newEmojiCollector(a.topEmojis),
	}
	if a.user == "" {
		a.collectors = append(a.collectors, newUserCollector(a.topUsers))
	}

	return a, nil
}

// User returns the participant filter, empty for everyone.
func (a *Analyzer) User() string {
	return a.user
}

// Analyze computes statistics over messages. The slice is not modified.
func (a *Analyzer) Analyze(ctx context.Context, messages []parser.Message) (*Result, error) {
	result := &Result{
		Metadata: Metadata{
			User:      a.user,
			TimeRange: a.timeRange,
			StartTime: time.Now(),
		},
	}

	// Reset all collectors before analysis
	a.summary.Reset()
	for _, c := range a.collectors {
		c.Reset()
	}

	for i := range messages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msg := &messages[i]
		if a.timeRange != nil && !a.timeRange.Contains(msg.Timestamp) {
			continue
		}
		if err := a.summary.Process(ctx, msg); err != nil {
			return nil, fmt.Errorf("processing message with %s collector: %w", a.summary.Name(), err)
		}
		if a.user != "" && msg.Author != a.user {
			continue
		}

		result.Metadata.MessagesProcessed++

		for _, c := range a.collectors {
			if err := c.Process(ctx, msg); err != nil {
				return nil, fmt.Errorf("processing message with %s collector: %w", c.Name(), err)
			}
		}
	}

	for _, c := range append([]Collector{a.summary}, a.collectors...) {
		if err := c.Finalize(ctx, result); err != nil {
			return nil, fmt.Errorf("finalizing %s collector: %w", c.Name(), err)
		}
	}

	result.Metadata.EndTime = time.Now()

	return result, nil
}

// Users returns the distinct participants, sorted, without notifications.
func Users(messages []parser.Message) []string {
	seen := make(map[string]struct{})
	var users []string
	for i := range messages {
		if messages[i].IsNotification() {
			continue
		}
		if _, ok := seen[messages[i].Author]; ok {
			continue
		}
		seen[messages[i].Author] = struct{}{}
		users = append(users, messages[i].Author)
	}
	sort.Strings(users)
	return users
}
