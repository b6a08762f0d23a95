package agg

import (
	"time"

	"github.com/huangsam/scholarlens/schema"
)

// NewMonthBuckets returns the empty trend window anchored at now: six calendar
// months in now's location, oldest first, ending with the month containing now.
func NewMonthBuckets(now time.Time) []schema.MonthBucket {
	loc := now.Location()
	year, month, _ := now.Date()

	buckets := make([]schema.MonthBucket, schema.TrendMonths)
	for i := range schema.TrendMonths {
		// time.Date normalizes month overflow, so negative offsets cross years correctly.
		offset := i - (schema.TrendMonths - 1)
		start := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, loc)
		buckets[i] = schema.MonthBucket{
			Label: start.Format("Jan"),
			Start: start,
			End:   start.AddDate(0, 1, 0),
		}
	}
	return buckets
}

// BuildMonthlyTrend counts records per month over the trend window anchored at now.
// Records with invalid creation times, or outside the window, are not counted.
func BuildMonthlyTrend(records []schema.ProjectRecord, now time.Time) []schema.MonthBucket {
	buckets := NewMonthBuckets(now)
	if len(buckets) == 0 {
		return buckets
	}
	windowStart, windowEnd := buckets[0].Start, buckets[len(buckets)-1].End

	for _, r := range records {
		if !r.HasValidCreatedAt() {
			continue
		}
		t := r.CreatedAt
		if t.Before(windowStart) || !t.Before(windowEnd) {
			continue
		}
		for i := range buckets {
			if buckets[i].Contains(t) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}
