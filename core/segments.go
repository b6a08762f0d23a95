package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/scholarlens/core/agg"
	"github.com/huangsam/scholarlens/core/algo"
	"github.com/huangsam/scholarlens/schema"
	"golang.org/x/sync/errgroup"
)

// segmentKeyFunc returns the segment key of one record.
type segmentKeyFunc func(schema.ProjectRecord) string

// keyFuncFor returns the grouping function for a segment dimension.
func keyFuncFor(by schema.SegmentKey, fallback schema.DegreeFallback) (segmentKeyFunc, error) {
	switch by {
	case schema.SegmentDepartment:
		return func(r schema.ProjectRecord) string { return algo.DepartmentKey(r.Department) }, nil
	case schema.SegmentDegree:
		return func(r schema.ProjectRecord) string { return string(agg.NormalizeDegree(r.DegreeLabel, fallback)) }, nil
	case schema.SegmentSupervisor:
		return func(r schema.ProjectRecord) string {
			if s := strings.TrimSpace(r.Supervisor); s != "" {
				return s
			}
			return schema.Unassigned
		}, nil
	default:
		return nil, fmt.Errorf("invalid segment key '%s'. must be department, degree, supervisor", by)
	}
}

// groupRecords splits records by key, returning keys in first-seen order.
// Records keep their relative order inside each group.
func groupRecords(records []schema.ProjectRecord, keyOf segmentKeyFunc) ([]string, map[string][]schema.ProjectRecord) {
	var keys []string
	groups := make(map[string][]schema.ProjectRecord)
	for _, r := range records {
		k := keyOf(r)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	return keys, groups
}

// BuildSegments builds one snapshot per distinct key of the chosen dimension
// using at most workers goroutines. Segments are returned in first-seen key
// order regardless of scheduling.
func BuildSegments(ctx context.Context, records []schema.ProjectRecord, now time.Time, by schema.SegmentKey, workers int, fallback schema.DegreeFallback) (schema.SegmentResult, error) {
	keyOf, err := keyFuncFor(by, fallback)
	if err != nil {
		return schema.SegmentResult{}, err
	}
	keys, groups := groupRecords(records, keyOf)

	segments := make([]schema.Segment, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes to a unique index
			segments[i] = schema.Segment{
				Key:      key,
				By:       by,
				Snapshot: agg.BuildSnapshot(groups[key], now, agg.WithDegreeFallback(fallback)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return schema.SegmentResult{}, fmt.Errorf("failed to build segments: %w", err)
	}

	return schema.SegmentResult{By: by, Segments: segments}, nil
}
