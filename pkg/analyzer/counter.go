package analyzer

import (
	"sort"
)

// counter tallies string keys and remembers the order they first appeared in.
type counter struct {
	index  map[string]int
	keys   []string
	counts []int
}

type entry struct {
	key   string
	count int
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	i, ok := c.index[key]
	if !ok {
		i = len(c.keys)
		c.index[key] = i
		c.keys = append(c.keys, key)
		c.counts = append(c.counts, 0)
	}
	c.counts[i]++
}

func (c *counter) len() int {
	return len(c.keys)
}

func (c *counter) total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// ranked returns the entries by count descending, ties in first-seen order.
// n <= 0 returns all entries.
func (c *counter) ranked(n int) []entry {
	out := make([]entry, len(c.keys))
	for i, k := range c.keys {
		out[i] = entry{key: k, count: c.counts[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
