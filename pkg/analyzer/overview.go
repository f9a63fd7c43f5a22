package analyzer

import (
	"context"
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/chatstat/chatstat/pkg/parser"
)

var linkPattern = xurls.Relaxed()

// overviewCollector fills the Overview section.
type overviewCollector struct {
	mediaPlaceholder string

	overview Overview
}

func newOverviewCollector(mediaPlaceholder string) *overviewCollector {
	c := &overviewCollector{mediaPlaceholder: mediaPlaceholder}
	c.Reset()
	return c
}

func (c *overviewCollector) Name() string { return "overview" }

func (c *overviewCollector) Process(_ context.Context, msg *parser.Message) error {
	c.overview.Messages++
	c.overview.Words += len(strings.Fields(msg.Text))
	if isMedia(msg.Text, c.mediaPlaceholder) {
		c.overview.Media++
	}
	c.overview.Links += len(linkPattern.FindAllStringIndex(msg.Text, -1))

	if msg.IsNotification() {
		c.overview.Notifications++
	}
	return nil
}

func (c *overviewCollector) Finalize(_ context.Context, result *Result) error {
	result.Overview = c.overview
	return nil
}

func (c *overviewCollector) Reset() {
	c.overview = Overview{}
}

// summaryCollector fills the Summary section. The analyzer feeds it every
// message inside the time range, whatever the participant filter.
type summaryCollector struct {
	first   string
	last    string
	authors *counter
}

func newSummaryCollector() *summaryCollector {
	c := &summaryCollector{}
	c.Reset()
	return c
}

func (c *summaryCollector) Name() string { return "summary" }

func (c *summaryCollector) Process(_ context.Context, msg *parser.Message) error {
	if !msg.IsNotification() {
		c.authors.add(msg.Author)
	}

	date := msg.Timestamp.Format(parser.DateLayout)
	if c.first == "" || date < c.first {
		c.first = date
	}
	if date > c.last {
		c.last = date
	}
	return nil
}

func (c *summaryCollector) Finalize(_ context.Context, result *Result) error {
	result.Summary = Summary{
		FirstDate:    c.first,
		LastDate:     c.last,
		Participants: c.authors.len(),
	}
	if top := c.authors.ranked(1); len(top) == 1 {
		result.Summary.MostActive = top[0].key
		result.Summary.MostActiveCount = top[0].count
	}
	return nil
}

func (c *summaryCollector) Reset() {
	c.first, c.last = "", ""
	c.authors = newCounter()
}

// isMedia reports whether text is the placeholder left for an attachment.
func isMedia(text, placeholder string) bool {
	return strings.TrimSpace(text) == placeholder
}
