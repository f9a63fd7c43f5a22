package parser

import "container/heap"

// Merge combines several chats into one timeline ordered by timestamp.
// Messages of the same chat keep their file order, and on equal timestamps
// the chat listed first wins. A single chat is returned in file order
// without sorting.
func Merge(chats ...*Chat) []Message {
	total := 0
	for _, c := range chats {
		total += len(c.Messages)
	}
	merged := make([]Message, 0, total)

	if len(chats) == 1 {
		return append(merged, chats[0].Messages...)
	}

	h := &cursorHeap{}
	for i, c := range chats {
		if len(c.Messages) > 0 {
			*h = append(*h, &cursor{chat: c, chatIdx: i})
		}
	}
	heap.Init(h)

	for h.Len() > 0 {
		cur := (*h)[0]
		merged = append(merged, cur.chat.Messages[cur.pos])

		cur.pos++
		if cur.pos < len(cur.chat.Messages) {
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
	}

	return merged
}

// cursor tracks the next unread message of one chat.
type cursor struct {
	chat    *Chat
	chatIdx int
	pos     int
}

func (c *cursor) head() *Message {
	return &c.chat.Messages[c.pos]
}

// cursorHeap orders cursors by their next message's timestamp.
type cursorHeap []*cursor

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool {
	a, b := h[i].head().Timestamp, h[j].head().Timestamp
	if a.Equal(b) {
		return h[i].chatIdx < h[j].chatIdx
	}
	return a.Before(b)
}

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) {
	*h = append(*h, x.(*cursor))
}

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
