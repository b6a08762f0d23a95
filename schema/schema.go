// Package schema has models, constants and shared helpers for all parts of scholarlens.
package schema

import "time"

// Epoch is the instant assigned to records whose creation time is missing or unparseable.
var Epoch = time.Unix(0, 0).UTC()

// ProjectRecord represents one submitted research work.
// Status and Supervisor are only used by record filters and segments; the
// aggregator itself never reads them.
type ProjectRecord struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	DegreeLabel string    `json:"degree" yaml:"degree"`
	Department  string    `json:"department" yaml:"department"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"` // zero when missing or unparseable
	Status      string    `json:"status,omitempty" yaml:"status,omitempty"`
	Supervisor  string    `json:"supervisor,omitempty" yaml:"supervisor,omitempty"`
}

// HasValidCreatedAt reports whether the record carries a usable creation time.
func (r ProjectRecord) HasValidCreatedAt() bool {
	return !r.CreatedAt.IsZero() && !r.CreatedAt.Equal(Epoch)
}

// EffectiveCreatedAt returns the creation time, or Epoch when it is not valid.
func (r ProjectRecord) EffectiveCreatedAt() time.Time {
	if !r.HasValidCreatedAt() {
		return Epoch
	}
	return r.CreatedAt
}

// MonthBucket is one calendar month of the trend. Start is inclusive and End
// is exclusive; the label is for display only.
type MonthBucket struct {
	Label string    `json:"label" yaml:"label"`
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Count int       `json:"count" yaml:"count"`
}

// Contains reports whether t falls inside the bucket interval.
func (b MonthBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// DepartmentCount is one entry of a department ranking.
type DepartmentCount struct {
	Department string `json:"department" yaml:"department"`
	Count      int    `json:"count" yaml:"count"`
}

// AnalyticsSnapshot is the immutable aggregate produced by one aggregator call.
type AnalyticsSnapshot struct {
	GeneratedFor       time.Time            `json:"generated_for" yaml:"generated_for"` // the "now" the snapshot is anchored at
	DegreeDistribution map[DegreeBucket]int `json:"degree_distribution" yaml:"degree_distribution"`
	MonthlyTrend       []MonthBucket        `json:"monthly_trend" yaml:"monthly_trend"`
	DepartmentRanking  []DepartmentCount    `json:"department_ranking" yaml:"department_ranking"`
	TopDepartment      string               `json:"top_department" yaml:"top_department"`
	GrowthRatePercent  int                  `json:"growth_rate_percent" yaml:"growth_rate_percent"`
	TopTopic           string               `json:"top_topic" yaml:"top_topic"`
	TotalCount         int                  `json:"total_count" yaml:"total_count"`
}

// TrendTotal returns the number of records placed in the monthly trend.
func (s AnalyticsSnapshot) TrendTotal() int {
	total := 0
	for _, b := range s.MonthlyTrend {
		total += b.Count
	}
	return total
}

// Segment is a snapshot computed over the subset of records sharing one key value.
type Segment struct {
	Key      string            `json:"key" yaml:"key"`
	By       SegmentKey        `json:"by" yaml:"by"`
	Snapshot AnalyticsSnapshot `json:"snapshot" yaml:"snapshot"`
}

// SegmentResult holds all segments of one run in first-seen key order.
type SegmentResult struct {
	By       SegmentKey `json:"by" yaml:"by"`
	Segments []Segment  `json:"segments" yaml:"segments"`
}
