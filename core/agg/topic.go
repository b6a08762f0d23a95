package agg

import (
	"strings"
	"unicode/utf8"

	"github.com/huangsam/scholarlens/schema"
)

// topicCounter is a frequency table that remembers insertion order.
type topicCounter struct {
	counts map[string]int
	order  []string
}

func newTopicCounter() *topicCounter {
	return &topicCounter{counts: make(map[string]int)}
}

func (tc *topicCounter) add(token string) {
	if _, ok := tc.counts[token]; !ok {
		tc.order = append(tc.order, token)
	}
	tc.counts[token]++
}

// top returns the most frequent token; ties go to the earliest inserted token.
func (tc *topicCounter) top() (string, bool) {
	best, bestCount := "", 0
	for _, token := range tc.order {
		if c := tc.counts[token]; c > bestCount {
			best, bestCount = token, c
		}
	}
	return best, bestCount > 0
}

// ExtractTopTopic returns the most frequent qualifying title token across records,
// or schema.None when no token qualifies. Tokens are lowercase whitespace-separated
// words of at least schema.MinTopicLength runes, kept verbatim including punctuation.
func ExtractTopTopic(records []schema.ProjectRecord) string {
	tc := newTopicCounter()
	for _, r := range records {
		for _, token := range strings.Fields(strings.ToLower(r.Title)) {
			if utf8.RuneCountInString(token) < schema.MinTopicLength {
				continue
			}
			tc.add(token)
		}
	}
	if topic, ok := tc.top(); ok {
		return topic
	}
	return schema.None
}
