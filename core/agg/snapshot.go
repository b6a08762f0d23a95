// Package agg has aggregation logic that turns project records into analytics snapshots.
package agg

import (
	"sync"
	"time"

	"github.com/huangsam/scholarlens/core/algo"
	"github.com/huangsam/scholarlens/schema"
)

// options holds the tunable parts of a snapshot build.
type options struct {
	fallback schema.DegreeFallback
}

// Option customizes BuildSnapshot.
type Option func(*options)

// WithDegreeFallback selects where unrecognized degree labels are counted.
func WithDegreeFallback(fallback schema.DegreeFallback) Option {
	return func(o *options) {
		if fallback != "" {
			o.fallback = fallback
		}
	}
}

// BuildSnapshot computes the analytics snapshot of records anchored at now.
// The input must not be mutated during the call. Each part of the snapshot is
// computed on its own goroutine; they only read records and write disjoint fields,
// so the result is identical for identical input.
func BuildSnapshot(records []schema.ProjectRecord, now time.Time, opts ...Option) schema.AnalyticsSnapshot {
	o := options{fallback: schema.FallbackBSc}
	for _, opt := range opts {
		opt(&o)
	}

	snap := schema.AnalyticsSnapshot{
		GeneratedFor: now,
		TotalCount:   len(records),
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		snap.DegreeDistribution = BuildDegreeDistribution(records, o.fallback)
	}()
	go func() {
		defer wg.Done()
		snap.MonthlyTrend = BuildMonthlyTrend(records, now)
		snap.GrowthRatePercent = algo.ComputeGrowthRate(snap.MonthlyTrend)
	}()
	go func() {
		defer wg.Done()
		snap.DepartmentRanking = algo.RankDepartments(records, schema.RankingLimit)
		snap.TopDepartment = algo.TopDepartment(snap.DepartmentRanking)
	}()
	go func() {
		defer wg.Done()
		snap.TopTopic = ExtractTopTopic(records)
	}()
	wg.Wait()

	return snap
}
