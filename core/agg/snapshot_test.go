package agg

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/huangsam/scholarlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot_Empty(t *testing.T) {
	snap := BuildSnapshot(nil, fixedNow)

	require.Len(t, snap.MonthlyTrend, schema.TrendMonths)
	for _, b := range snap.MonthlyTrend {
		assert.NotEmpty(t, b.Label)
		assert.Zero(t, b.Count)
	}
	assert.Empty(t, snap.DepartmentRanking)
	assert.NotNil(t, snap.DepartmentRanking)
	assert.Equal(t, schema.None, snap.TopDepartment)
	assert.Equal(t, 0, snap.GrowthRatePercent)
	assert.Equal(t, schema.None, snap.TopTopic)
	assert.Equal(t, 0, snap.TotalCount)
	assert.Empty(t, snap.DegreeDistribution)
	assert.Equal(t, fixedNow, snap.GeneratedFor)
}

func TestBuildSnapshot_SingleRecord(t *testing.T) {
	records := []schema.ProjectRecord{
		record("p1", "Optimizing Neural Networks", "MSc Dissertation", "Engineering", 0),
	}
	snap := BuildSnapshot(records, fixedNow)

	assert.Equal(t, map[schema.DegreeBucket]int{schema.MSc: 1}, snap.DegreeDistribution)
	assert.Equal(t, 1, snap.MonthlyTrend[5].Count)
	assert.Equal(t, 0, snap.MonthlyTrend[4].Count)
	assert.Equal(t, 100, snap.GrowthRatePercent)
	assert.Equal(t, []schema.DepartmentCount{{Department: "Engineering", Count: 1}}, snap.DepartmentRanking)
	assert.Equal(t, "Engineering", snap.TopDepartment)
	assert.Equal(t, "optimizing", snap.TopTopic)
	assert.Equal(t, 1, snap.TotalCount)
}

func TestBuildSnapshot_GrowthFromPreviousMonth(t *testing.T) {
	records := []schema.ProjectRecord{
		record("1", "Compilers", "BSc", "Computer Science", 0),
		record("2", "Kernels", "BSc", "Computer Science", 0),
		record("3", "Parsers", "BSc", "Computer Science", 0),
		record("4", "Linkers", "BSc", "Computer Science", -1),
	}
	snap := BuildSnapshot(records, fixedNow)
	assert.Equal(t, 200, snap.GrowthRatePercent)
	assert.Equal(t, []schema.DepartmentCount{{Department: "Computer Science", Count: 4}}, snap.DepartmentRanking)
}

func TestBuildSnapshot_EmptyDegreeLabel(t *testing.T) {
	snap := BuildSnapshot([]schema.ProjectRecord{record("1", "", "", "", 0)}, fixedNow)
	assert.Equal(t, map[schema.DegreeBucket]int{schema.BSc: 1}, snap.DegreeDistribution)

	snap = BuildSnapshot([]schema.ProjectRecord{record("1", "", "", "", 0)}, fixedNow, WithDegreeFallback(schema.FallbackUnknown))
	assert.Equal(t, map[schema.DegreeBucket]int{schema.Unknown: 1}, snap.DegreeDistribution)
}

func TestBuildSnapshot_InvalidTimestamp(t *testing.T) {
	records := []schema.ProjectRecord{
		{ID: "bad", Title: "Unknown date", DegreeLabel: "PhD", Department: "History"},
		record("good", "", "PhD", "History", 0),
	}
	snap := BuildSnapshot(records, fixedNow)
	assert.Equal(t, 2, snap.TotalCount)
	assert.Equal(t, 1, snap.TrendTotal())
	assert.Equal(t, []schema.DepartmentCount{{Department: "History", Count: 2}}, snap.DepartmentRanking)
}

func TestBuildSnapshot_UnassignedDepartment(t *testing.T) {
	records := []schema.ProjectRecord{
		record("1", "", "", "", 0),
		record("2", "", "", "  ", 0),
		record("3", "", "", "Physics", 0),
	}
	snap := BuildSnapshot(records, fixedNow)
	assert.Equal(t, schema.Unassigned, snap.TopDepartment)
	assert.Equal(t, 2, snap.DepartmentRanking[0].Count)
}

// randomRecords produces a reproducible mixed record set.
func randomRecords(seed int64, n int) []schema.ProjectRecord {
	rng := rand.New(rand.NewSource(seed))
	degrees := []string{"BSc", "MSc Dissertation", "PhD Thesis", "Master of Science", "", "Diploma"}
	departments := []string{"Physics", "physics", "Chemistry", "Computer Science", "", "Biology", "History", "Law"}
	words := []string{"neural", "graph", "quantum", "ai", "of", "systems", "learning", "data", "survey"}

	records := make([]schema.ProjectRecord, 0, n)
	for i := range n {
		title := ""
		for range 1 + rng.Intn(5) {
			title += words[rng.Intn(len(words))] + " "
		}
		r := schema.ProjectRecord{
			ID:          fmt.Sprintf("r%d", i),
			Title:       title,
			DegreeLabel: degrees[rng.Intn(len(degrees))],
			Department:  departments[rng.Intn(len(departments))],
		}
		if rng.Intn(10) > 0 {
			r.CreatedAt = fixedNow.AddDate(0, -rng.Intn(12), -rng.Intn(28))
		}
		records = append(records, r)
	}
	return records
}

func TestBuildSnapshot_Properties(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		records := randomRecords(seed, int(seed)*7)
		snap := BuildSnapshot(records, fixedNow)

		assert.Len(t, snap.MonthlyTrend, schema.TrendMonths)
		assert.LessOrEqual(t, snap.TrendTotal(), snap.TotalCount)
		assert.Equal(t, len(records), snap.TotalCount)

		assert.LessOrEqual(t, len(snap.DepartmentRanking), schema.RankingLimit)
		for i := 1; i < len(snap.DepartmentRanking); i++ {
			assert.GreaterOrEqual(t, snap.DepartmentRanking[i-1].Count, snap.DepartmentRanking[i].Count)
		}

		degreeTotal := 0
		for bucket, count := range snap.DegreeDistribution {
			assert.Contains(t, []schema.DegreeBucket{schema.BSc, schema.MSc, schema.PhD}, bucket)
			degreeTotal += count
		}
		assert.Equal(t, snap.TotalCount, degreeTotal)

		// Idempotence: same input and same now give identical output.
		assert.Equal(t, snap, BuildSnapshot(records, fixedNow))
	}
}

func TestBuildSnapshot_DoesNotMutateInput(t *testing.T) {
	records := randomRecords(42, 50)
	before := make([]schema.ProjectRecord, len(records))
	copy(before, records)

	_ = BuildSnapshot(records, fixedNow)
	assert.Equal(t, before, records)
}

func TestBuildSnapshot_NowMovesWindow(t *testing.T) {
	records := []schema.ProjectRecord{
		{ID: "1", CreatedAt: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
	}
	june := BuildSnapshot(records, fixedNow)
	assert.Equal(t, 1, june.MonthlyTrend[0].Count)

	july := BuildSnapshot(records, fixedNow.AddDate(0, 1, 0))
	assert.Equal(t, 0, july.TrendTotal())
}
