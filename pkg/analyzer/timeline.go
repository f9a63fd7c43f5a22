package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chatstat/chatstat/pkg/parser"
)

type yearMonth struct {
	year  int
	month int
}

// timelineCollector fills the monthly and daily timelines.
type timelineCollector struct {
	monthly map[yearMonth]int
	daily   map[string]int
}

func newTimelineCollector() *timelineCollector {
	c := &timelineCollector{}
	c.Reset()
	return c
}

func (c *timelineCollector) Name() string { return "timeline" }

func (c *timelineCollector) Process(_ context.Context, msg *parser.Message) error {
	ts := msg.Timestamp
	c.monthly[yearMonth{ts.Year(), int(ts.Month())}]++
	c.daily[ts.Format(parser.DateLayout)]++
	return nil
}

func (c *timelineCollector) Finalize(_ context.Context, result *Result) error {
	result.Monthly = make([]MonthCount, 0, len(c.monthly))
	for ym, n := range c.monthly {
		result.Monthly = append(result.Monthly, MonthCount{
			Year:  ym.year,
			Month: ym.month,
			Label: MonthLabel(ym.year, ym.month),
			Count: n,
		})
	}
	sort.Slice(result.Monthly, func(i, j int) bool {
		a, b := result.Monthly[i], result.Monthly[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	result.Daily = make([]DayCount, 0, len(c.daily))
	for date, n := range c.daily {
		result.Daily = append(result.Daily, DayCount{Date: date, Count: n})
	}
	// Dates use parser.DateLayout, so lexical order is chronological.
	sort.Slice(result.Daily, func(i, j int) bool {
		return result.Daily[i].Date < result.Daily[j].Date
	})
	return nil
}

func (c *timelineCollector) Reset() {
	c.monthly = make(map[yearMonth]int)
	c.daily = make(map[string]int)
}

// MonthLabel formats a timeline point as "March-2023".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%s-%d", time.Month(month), year)
}
