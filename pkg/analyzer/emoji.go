package analyzer

import (
	"context"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/chatstat/chatstat/pkg/parser"
)

const variationSelector = '\ufe0f'

// IsEmoji reports whether a grapheme cluster is an emoji. Clusters missing
// their variation selector or carrying a skin tone are matched by their base.
func IsEmoji(cluster string) bool {
	if cluster == "" {
		return false
	}
	if _, err := gomoji.GetInfo(cluster); err == nil {
		return true
	}

	base := strings.Map(func(r rune) rune {
		if r == variationSelector || isSkinTone(r) {
			return -1
		}
		return r
	}, cluster)
	if base == "" {
		return false
	}
	for _, candidate := range []string{base, base + string(variationSelector)} {
		if _, err := gomoji.GetInfo(candidate); err == nil {
			return true
		}
	}
	return false
}

func isSkinTone(r rune) bool {
	return r >= 0x1f3fb && r <= 0x1f3ff
}

// Emojis returns the emoji grapheme clusters of text in order.
func Emojis(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if cluster := g.Str(); IsEmoji(cluster) {
			out = append(out, cluster)
		}
	}
	return out
}

// emojiCollector fills the emoji ranking.
type emojiCollector struct {
	top    int
	emojis *counter
}

func newEmojiCollector(top int) *emojiCollector {
	return &emojiCollector{top: top, emojis: newCounter()}
}

func (c *emojiCollector) Name() string { return "emojis" }

func (c *emojiCollector) Process(_ context.Context, msg *parser.Message) error {
	if !strings.ContainsFunc(msg.Text, nonASCII) {
		return nil
	}
	for _, e := range Emojis(msg.Text) {
		c.emojis.add(e)
	}
	return nil
}

func (c *emojiCollector) Finalize(_ context.Context, result *Result) error {
	result.Emojis = []EmojiCount{}
	for _, e := range c.emojis.ranked(c.top) {
		result.Emojis = append(result.Emojis, EmojiCount{Emoji: e.key, Count: e.count})
	}
	return nil
}

func (c *emojiCollector) Reset() {
	c.emojis = newCounter()
}

// nonASCII is a fast pre-check that skips plain text messages.
func nonASCII(r rune) bool {
	return r > unicode.MaxASCII
}
