package agg

import (
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/scholarlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

// record builds a project record created at the given month offset from fixedNow.
func record(id, title, degree, department string, monthOffset int) schema.ProjectRecord {
	return schema.ProjectRecord{
		ID:          id,
		Title:       title,
		DegreeLabel: degree,
		Department:  department,
		CreatedAt:   time.Date(2024, time.June+time.Month(monthOffset), 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeDegree(t *testing.T) {
	tests := []struct {
		label    string
		expected schema.DegreeBucket
	}{
		{"BSc", schema.BSc},
		{"bsc computer science", schema.BSc},
		{"MSc Dissertation", schema.MSc},
		{"Master of Science", schema.MSc},
		{"MASTERS", schema.MSc},
		{"PhD Thesis", schema.PhD},
		{"Doctor of Philosophy", schema.PhD},
		{"doctoral research", schema.PhD},
		{"BSc then MSc", schema.BSc}, // first rule wins
		{"PhD, Masters", schema.MSc}, // msc/master outranks phd
		{"", schema.BSc},             // fallback
		{"Diploma", schema.BSc},      // fallback
		{"   ", schema.BSc},          // fallback
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDegree(tt.label, schema.FallbackBSc))
		})
	}
}

func TestNormalizeDegree_UnknownFallback(t *testing.T) {
	assert.Equal(t, schema.Unknown, NormalizeDegree("", schema.FallbackUnknown))
	assert.Equal(t, schema.Unknown, NormalizeDegree("Diploma", schema.FallbackUnknown))
	assert.Equal(t, schema.MSc, NormalizeDegree("MSc", schema.FallbackUnknown))
	// An empty strategy behaves like the default.
	assert.Equal(t, schema.BSc, NormalizeDegree("Diploma", ""))
}

func FuzzNormalizeDegree(f *testing.F) {
	for _, seed := range []string{"", "BSc", "MSc Dissertation", "PhD Thesis", "Master of Science", "ÐOCTOR", "\x00"} {
		f.Add(seed)
	}
	valid := map[schema.DegreeBucket]bool{schema.BSc: true, schema.MSc: true, schema.PhD: true}
	f.Fuzz(func(t *testing.T, label string) {
		got := NormalizeDegree(label, schema.FallbackBSc)
		if !valid[got] {
			t.Fatalf("NormalizeDegree(%q) = %q, not a canonical bucket", label, got)
		}
	})
}

func TestBuildDegreeDistribution(t *testing.T) {
	records := []schema.ProjectRecord{
		{DegreeLabel: "BSc"},
		{DegreeLabel: "MSc Dissertation"},
		{DegreeLabel: "Master of Science"},
		{DegreeLabel: "PhD Thesis"},
		{DegreeLabel: ""},
	}
	assert.Equal(t, map[schema.DegreeBucket]int{schema.BSc: 2, schema.MSc: 2, schema.PhD: 1},
		BuildDegreeDistribution(records, schema.FallbackBSc))
	assert.Equal(t, map[schema.DegreeBucket]int{schema.BSc: 1, schema.MSc: 2, schema.PhD: 1, schema.Unknown: 1},
		BuildDegreeDistribution(records, schema.FallbackUnknown))
	assert.Empty(t, BuildDegreeDistribution(nil, schema.FallbackBSc))
}

func TestNewMonthBuckets(t *testing.T) {
	buckets := NewMonthBuckets(fixedNow)
	require.Len(t, buckets, schema.TrendMonths)

	labels := make([]string, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, b.Label)
		assert.Equal(t, 1, b.Start.Day())
		assert.True(t, b.Start.Before(b.End))
		assert.Zero(t, b.Count)
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, labels)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), buckets[5].End)

	// Consecutive buckets tile the window without gaps.
	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, buckets[i-1].End, buckets[i].Start)
	}
}

func TestNewMonthBuckets_YearBoundary(t *testing.T) {
	now := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	buckets := NewMonthBuckets(now)
	require.Len(t, buckets, schema.TrendMonths)
	assert.Equal(t, time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, "Sep", buckets[0].Label)
	assert.Equal(t, "Dec", buckets[3].Label)
	assert.Equal(t, "Jan", buckets[4].Label)
	assert.Equal(t, 2025, buckets[4].Start.Year())
	assert.Equal(t, "Feb", buckets[5].Label)
}

func TestNewMonthBuckets_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2024, time.March, 1, 2, 0, 0, 0, loc) // still February in UTC
	buckets := NewMonthBuckets(now)
	assert.Equal(t, "Mar", buckets[5].Label)
	assert.Equal(t, loc, buckets[5].Start.Location())
}

func TestBuildMonthlyTrend(t *testing.T) {
	records := []schema.ProjectRecord{
		record("1", "", "", "", 0),
		record("2", "", "", "", 0),
		record("3", "", "", "", -1),
		record("4", "", "", "", -5),
		record("5", "", "", "", -6), // outside window
		record("6", "", "", "", 1),  // future month, outside window
		{ID: "7"},                   // invalid timestamp
		{ID: "8", CreatedAt: schema.Epoch},
	}

	trend := BuildMonthlyTrend(records, fixedNow)
	require.Len(t, trend, schema.TrendMonths)

	counts := make([]int, 0, len(trend))
	for _, b := range trend {
		counts = append(counts, b.Count)
	}
	assert.Equal(t, []int{1, 0, 0, 0, 1, 2}, counts)
}

func TestBuildMonthlyTrend_BoundaryInstants(t *testing.T) {
	juneStart := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := []schema.ProjectRecord{
		{ID: "a", CreatedAt: juneStart},
		{ID: "b", CreatedAt: juneStart.Add(-time.Nanosecond)},
	}
	trend := BuildMonthlyTrend(records, fixedNow)
	assert.Equal(t, 1, trend[5].Count)
	assert.Equal(t, 1, trend[4].Count)
}

func TestBuildMonthlyTrend_SameLabelDifferentYear(t *testing.T) {
	// A record from June of the previous year shares the "Jun" label with the
	// current bucket but must not be merged into it.
	records := []schema.ProjectRecord{
		{ID: "old", CreatedAt: time.Date(2023, time.June, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "new", CreatedAt: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)},
	}
	trend := BuildMonthlyTrend(records, fixedNow)
	assert.Equal(t, 1, trend[5].Count)
	assert.Equal(t, 1, (schema.AnalyticsSnapshot{MonthlyTrend: trend}).TrendTotal())
}

func TestBuildMonthlyTrend_Empty(t *testing.T) {
	trend := BuildMonthlyTrend(nil, fixedNow)
	require.Len(t, trend, schema.TrendMonths)
	for _, b := range trend {
		assert.Zero(t, b.Count)
	}
}

func TestExtractTopTopic(t *testing.T) {
	tests := []struct {
		name     string
		titles   []string
		expected string
	}{
		{"no records", nil, schema.None},
		{"only short words", []string{"AI in IoT", "on the web"}, schema.None},
		{"single title first token wins ties", []string{"Optimizing Neural Networks"}, "optimizing"},
		{"most frequent wins", []string{"Neural Networks", "Deep Neural Models"}, "neural"},
		{"case folded", []string{"Quantum Sensing", "QUANTUM Computing"}, "quantum"},
		{"punctuation keeps tokens distinct", []string{"research, methods", "research study", "research design"}, "research"},
		{"tie across records goes to first inserted", []string{"alpha bravo", "bravo alpha"}, "alpha"},
		{"ties across titles", []string{"graph theory", "sensor graphs", "sensor theory"}, "theory"},
		{"four characters excluded", []string{"data data data", "model"}, "model"},
		{"unicode rune length", []string{"café café résumé"}, "résumé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]schema.ProjectRecord, 0, len(tt.titles))
			for i, title := range tt.titles {
				records = append(records, schema.ProjectRecord{ID: fmt.Sprint(i), Title: title})
			}
			assert.Equal(t, tt.expected, ExtractTopTopic(records))
		})
	}
}

func TestExtractTopTopic_FirstInsertedTieBreak(t *testing.T) {
	records := []schema.ProjectRecord{
		{Title: "sensor fusion"},
		{Title: "fusion sensor"},
	}
	assert.Equal(t, "sensor", ExtractTopTopic(records))

	reversed := []schema.ProjectRecord{records[1], records[0]}
	assert.Equal(t, "fusion", ExtractTopTopic(reversed))
}
