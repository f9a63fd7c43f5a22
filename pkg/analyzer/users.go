package analyzer

import (
	"context"
	"math"

	"github.com/chatstat/chatstat/pkg/parser"
)

// userCollector ranks participants. It only runs when no user filter is set.
type userCollector struct {
	topUsers int
	authors  *counter
}

func newUserCollector(topUsers int) *userCollector {
	return &userCollector{topUsers: topUsers, authors: newCounter()}
}

func (c *userCollector) Name() string { return "users" }

func (c *userCollector) Process(_ context.Context, msg *parser.Message) error {
	if !msg.IsNotification() {
		c.authors.add(msg.Author)
	}
	return nil
}

func (c *userCollector) Finalize(_ context.Context, result *Result) error {
	busy := &BusyUsers{
		Top:    []UserCount{},
		Shares: []UserShare{},
	}

	total := c.authors.total()
	for i, e := range c.authors.ranked(0) {
		if i < c.topUsers {
			busy.Top = append(busy.Top, UserCount{Name: e.key, Count: e.count})
		}
		busy.Shares = append(busy.Shares, UserShare{
			Name:    e.key,
			Percent: percent(e.count, total),
		})
	}

	result.BusyUsers = busy
	return nil
}

func (c *userCollector) Reset() {
	c.authors = newCounter()
}

// percent returns n as a share of total, rounded to two decimals.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}
