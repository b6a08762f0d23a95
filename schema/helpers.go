package schema

import (
	"sort"
	"strings"
	"unicode"
)

// OrderedDegrees returns the buckets present in dist, in display order.
func OrderedDegrees(dist map[DegreeBucket]int) []DegreeBucket {
	var out []DegreeBucket
	for _, b := range DegreeOrder {
		if _, ok := dist[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// FormatFilters renders a filter map as "key=value" pairs sorted by key.
func FormatFilters(filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+filters[k])
	}
	return strings.Join(parts, ", ")
}

// AbbreviateName formats a person name like "Grace Hopper" into "Grace H".
// Titles such as "Dr." or "Prof." are dropped first; single-word names are returned unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	parts := strings.Fields(strings.Trim(trimmed, "()\"'`"))

	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\''
		})
		switch strings.ToLower(cp) {
		case "", "dr", "prof", "mr", "mrs", "ms":
			continue
		}
		cleaned = append(cleaned, cp)
	}

	switch len(cleaned) {
	case 0:
		return trimmed
	case 1:
		return cleaned[0]
	default:
		last := []rune(cleaned[len(cleaned)-1])
		return cleaned[0] + " " + string(last[0])
	}
}
