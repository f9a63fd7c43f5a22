package analyzer

import (
	"context"
	"sort"
	"time"

	"github.com/chatstat/chatstat/pkg/parser"
)

// Weekdays lists the heatmap rows, Monday first.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// weekdayRow maps a weekday to its heatmap row.
func weekdayRow(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// activityCollector fills weekday activity, month activity and the heatmap.
type activityCollector struct {
	weekdays [7]int  // by heatmap row
	months   [12]int // January first
	cells    [7][24]int
}

func newActivityCollector() *activityCollector {
	return &activityCollector{}
}

func (c *activityCollector) Name() string { return "activity" }

func (c *activityCollector) Process(_ context.Context, msg *parser.Message) error {
	ts := msg.Timestamp
	row := weekdayRow(ts.Weekday())
	c.weekdays[row]++
	c.months[ts.Month()-1]++
	c.cells[row][ts.Hour()]++
	return nil
}

func (c *activityCollector) Finalize(_ context.Context, result *Result) error {
	var weekdays []NameCount
	for row, n := range c.weekdays {
		if n > 0 {
			weekdays = append(weekdays, NameCount{Name: Weekdays[row].String(), Count: n})
		}
	}
	result.Weekdays = byCountDesc(weekdays)

	var months []NameCount
	for i, n := range c.months {
		if n > 0 {
			months = append(months, NameCount{Name: time.Month(i + 1).String(), Count: n})
		}
	}
	result.Months = byCountDesc(months)

	heatmap := Heatmap{
		Days:    make([]string, len(Weekdays)),
		Periods: parser.Periods(),
		Counts:  make([][]int, len(Weekdays)),
	}
	for row, d := range Weekdays {
		heatmap.Days[row] = d.String()
		heatmap.Counts[row] = append([]int(nil), c.cells[row][:]...)
	}
	result.Heatmap = heatmap
	return nil
}

func (c *activityCollector) Reset() {
	*c = activityCollector{}
}

// byCountDesc sorts busiest first, keeping the incoming calendar order for ties.
func byCountDesc(counts []NameCount) []NameCount {
	if counts == nil {
		counts = []NameCount{}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
