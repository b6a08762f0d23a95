package algo

import (
	"math"

	"github.com/huangsam/scholarlens/schema"
)

// ComputeGrowthRate compares the last two buckets of a trend and returns the
// signed percentage change, rounded half away from zero.
// A previous count of zero yields 100 when the current count is positive, else 0.
func ComputeGrowthRate(trend []schema.MonthBucket) int {
	if len(trend) < 2 {
		return 0
	}
	current := trend[len(trend)-1].Count
	previous := trend[len(trend)-2].Count
	return GrowthPercent(previous, current)
}

// GrowthPercent returns the rounded percentage change from previous to current.
func GrowthPercent(previous, current int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}
