package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
)

// WriteSegmentResults outputs the segments, dispatching based on the output format configured.
func WriteSegmentResults(w io.Writer, result schema.SegmentResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONSegments(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVSegments(w, result); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAMLSegments(w, result); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	default:
		if err := writeSegmentsTable(w, result, cfg, duration); err != nil {
			return fmt.Errorf("error writing segments table output: %w", err)
		}
	}
	return nil
}

// writeSegmentsTable prints one row per segment.
func writeSegmentsTable(w io.Writer, result schema.SegmentResult, cfg *contract.Config, duration time.Duration) error {
	// Three free-text columns share the remaining width
	labelWidth := max(getMaxLabelWidth(cfg, 3)/3, minLabelWidth)
	fmtGrowth := growthFormatter(cfg.UseColors)

	table := newTable(w, "Rank", segmentHeader(result.By), "Projects", "Growth", "Top Topic", "Top Department")
	var data [][]string
	for i, seg := range result.Segments {
		key := seg.Key
		if result.By == schema.SegmentSupervisor {
			key = schema.AbbreviateName(key)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateLabel(key, labelWidth),
			strconv.Itoa(seg.Snapshot.TotalCount),
			fmtGrowth(seg.Snapshot.GrowthRatePercent),
			truncateLabel(seg.Snapshot.TopTopic, labelWidth),
			truncateLabel(seg.Snapshot.TopDepartment, labelWidth),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Built %d segments by %s in %v with %d workers\n", len(result.Segments), result.By, duration, cfg.Workers)
	return err
}

// segmentHeader returns the display header for a segment key.
func segmentHeader(by schema.SegmentKey) string {
	switch by {
	case schema.SegmentDepartment:
		return "Department"
	case schema.SegmentDegree:
		return "Degree"
	case schema.SegmentSupervisor:
		return "Supervisor"
	default:
		return "Segment"
	}
}
