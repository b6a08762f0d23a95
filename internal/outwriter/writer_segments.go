package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/scholarlens/schema"
)

// writeJSONSegments marshals the schema.SegmentResult to JSON and writes it.
func writeJSONSegments(w io.Writer, result schema.SegmentResult) error {
	return writeJSON(w, result)
}

// writeYAMLSegments marshals the schema.SegmentResult to YAML and writes it.
func writeYAMLSegments(w io.Writer, result schema.SegmentResult) error {
	return writeYAML(w, result)
}

// writeCSVSegments writes one summary row per segment.
func writeCSVSegments(w io.Writer, result schema.SegmentResult) error {
	header := []string{"by", "key", "total_count", "growth_rate_percent", "top_topic", "top_department"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, seg := range result.Segments {
			row := []string{
				string(result.By),
				seg.Key,
				strconv.Itoa(seg.Snapshot.TotalCount),
				strconv.Itoa(seg.Snapshot.GrowthRatePercent),
				seg.Snapshot.TopTopic,
				seg.Snapshot.TopDepartment,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
