package agg

import (
	"strings"

	"github.com/huangsam/scholarlens/schema"
)

// degreeRules are checked in order; the first rule with a matching needle wins.
var degreeRules = []struct {
	bucket  schema.DegreeBucket
	needles []string
}{
	{schema.BSc, []string{"bsc"}},
	{schema.MSc, []string{"msc", "master"}},
	{schema.PhD, []string{"phd", "doctor"}},
}

// NormalizeDegree maps a free-text degree label to a canonical bucket.
// Labels that match no rule, including the empty label, land in the bucket
// selected by the fallback strategy.
func NormalizeDegree(label string, fallback schema.DegreeFallback) schema.DegreeBucket {
	lower := strings.ToLower(label)
	for _, rule := range degreeRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return rule.bucket
			}
		}
	}
	if fallback == schema.FallbackUnknown {
		return schema.Unknown
	}
	return schema.BSc
}

// BuildDegreeDistribution counts records per canonical degree bucket.
// Only buckets with at least one record appear in the result.
func BuildDegreeDistribution(records []schema.ProjectRecord, fallback schema.DegreeFallback) map[schema.DegreeBucket]int {
	dist := make(map[schema.DegreeBucket]int)
	for _, r := range records {
		dist[NormalizeDegree(r.DegreeLabel, fallback)]++
	}
	return dist
}
