package schema

import "time"

// HistoryStatus represents the status of the snapshot history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunMetadata describes how a snapshot was produced.
type RunMetadata struct {
	GeneratedAt    time.Time
	Source         SourceKind
	Filters        map[string]string
	DegreeFallback DegreeFallback
}

// SnapshotRunRecord represents a row from the scholarlens_snapshot_runs table.
type SnapshotRunRecord struct {
	RunID              int64
	GeneratedAt        time.Time
	AnchorTime         time.Time
	Source             string
	Filters            *string
	DegreeFallback     string
	TotalCount         int32
	GrowthRatePercent  int32
	TopTopic           string
	TopDepartment      string
	DegreeDistribution *string
	DepartmentRanking  *string
}

// TrendPointRecord represents a row from the scholarlens_trend_points table.
type TrendPointRecord struct {
	RunID      int64
	Position   int32
	Label      string
	MonthStart time.Time
	MonthEnd   time.Time
	Count      int32
}
