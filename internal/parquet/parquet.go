// Package parquet provides data structures and functions for exporting snapshot
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/scholarlens/schema"
	"github.com/parquet-go/parquet-go"
)

// SnapshotRun represents a single recorded snapshot with its run metadata.
// This struct maps to the scholarlens_snapshot_runs database table.
type SnapshotRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// GeneratedAt is when the snapshot was produced
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// AnchorTime is the clock the trend window was anchored to
	AnchorTime time.Time `parquet:"anchor_time,snappy"`

	// Source is the kind of record source (csv, json, sqlite, ...)
	Source string `parquet:"source,snappy"`

	// Filters contains the JSON-encoded record filters (nullable)
	Filters *string `parquet:"filters,optional,snappy"`

	// DegreeFallback is the strategy used for unrecognized degree labels
	DegreeFallback string `parquet:"degree_fallback,snappy"`

	TotalCount        int32  `parquet:"total_count,snappy"`
	GrowthRatePercent int32  `parquet:"growth_rate,snappy"`
	TopTopic          string `parquet:"top_topic,snappy"`
	TopDepartment     string `parquet:"top_department,snappy"`

	// DegreeDistribution contains the JSON-encoded bucket counts (nullable)
	DegreeDistribution *string `parquet:"degree_distribution,optional,snappy"`

	// DepartmentRanking contains the JSON-encoded ranking (nullable)
	DepartmentRanking *string `parquet:"department_ranking,optional,snappy"`
}

// TrendPoint represents one month of a recorded trend.
// This struct maps to the scholarlens_trend_points database table.
type TrendPoint struct {
	// RunID references the parent snapshot run
	RunID int64 `parquet:"run_id,snappy"`

	// Position is the zero-based index of the month, oldest first
	Position int32 `parquet:"position,snappy"`

	Label      string    `parquet:"label,snappy"`
	MonthStart time.Time `parquet:"month_start,snappy"`
	MonthEnd   time.Time `parquet:"month_end,snappy"`
	Count      int32     `parquet:"project_count,snappy"`
}

// WriteSnapshotRunsParquet writes a slice of SnapshotRun structs to a Parquet file.
func WriteSnapshotRunsParquet(data []SnapshotRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTrendPointsParquet writes a slice of TrendPoint structs to a Parquet file.
func WriteTrendPointsParquet(data []TrendPoint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using the schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertSnapshotRunRecords converts schema.SnapshotRunRecord to SnapshotRun for Parquet export.
func ConvertSnapshotRunRecords(records []schema.SnapshotRunRecord) []SnapshotRun {
	result := make([]SnapshotRun, len(records))
	for i, record := range records {
		result[i] = SnapshotRun{
			RunID:              record.RunID,
			GeneratedAt:        record.GeneratedAt,
			AnchorTime:         record.AnchorTime,
			Source:             record.Source,
			Filters:            record.Filters,
			DegreeFallback:     record.DegreeFallback,
			TotalCount:         record.TotalCount,
			GrowthRatePercent:  record.GrowthRatePercent,
			TopTopic:           record.TopTopic,
			TopDepartment:      record.TopDepartment,
			DegreeDistribution: record.DegreeDistribution,
			DepartmentRanking:  record.DepartmentRanking,
		}
	}
	return result
}

// ConvertTrendPointRecords converts schema.TrendPointRecord to TrendPoint for Parquet export.
func ConvertTrendPointRecords(records []schema.TrendPointRecord) []TrendPoint {
	result := make([]TrendPoint, len(records))
	for i, record := range records {
		result[i] = TrendPoint{
			RunID:      record.RunID,
			Position:   record.Position,
			Label:      record.Label,
			MonthStart: record.MonthStart,
			MonthEnd:   record.MonthEnd,
			Count:      record.Count,
		}
	}
	return result
}
