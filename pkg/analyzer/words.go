package analyzer

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chatstat/chatstat/pkg/parser"
)

//go:embed stopwords.txt
var defaultStopwords string

// DefaultStopwords returns a fresh copy of the built-in stopword set.
func DefaultStopwords() map[string]struct{} {
	set := make(map[string]struct{})
	addStopwords(set, strings.Fields(defaultStopwords))
	return set
}

// ReadStopwords reads a whitespace separated word list.
func ReadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided stopwords path is expected
	if err != nil {
		return nil, fmt.Errorf("reading stopwords file: %w", err)
	}
	return strings.Fields(string(data)), nil
}

func addStopwords(set map[string]struct{}, words []string) {
	lower := cases.Lower(language.Und)
	for _, w := range words {
		set[lower.String(w)] = struct{}{}
	}
}

// wordCollector fills the common words ranking.
type wordCollector struct {
	mediaPlaceholder string
	minLength        int
	top              int
	stopwords        map[string]struct{}

	lower cases.Caser
	words *counter
}

func newWordCollector(mediaPlaceholder string, minLength, top int, stopwords map[string]struct{}) *wordCollector {
	return &wordCollector{
		mediaPlaceholder: mediaPlaceholder,
		minLength:        minLength,
		top:              top,
		stopwords:        stopwords,
		lower:            cases.Lower(language.Und),
		words:            newCounter(),
	}
}

func (c *wordCollector) Name() string { return "words" }

func (c *wordCollector) Process(_ context.Context, msg *parser.Message) error {
	if msg.IsNotification() || isMedia(msg.Text, c.mediaPlaceholder) {
		return nil
	}
	for _, w := range strings.Fields(c.lower.String(msg.Text)) {
		if utf8.RuneCountInString(w) < c.minLength {
			continue
		}
		if _, stop := c.stopwords[w]; stop {
			continue
		}
		c.words.add(w)
	}
	return nil
}

func (c *wordCollector) Finalize(_ context.Context, result *Result) error {
	result.CommonWords = []WordCount{}
	for _, e := range c.words.ranked(c.top) {
		result.CommonWords = append(result.CommonWords, WordCount{Word: e.key, Count: e.count})
	}
	return nil
}

func (c *wordCollector) Reset() {
	c.words = newCounter()
}
