package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
)

// Sections of the snapshot CSV output.
const (
	sectionSummary    = "summary"
	sectionTrend      = "trend"
	sectionDepartment = "department"
	sectionDegree     = "degree"
)

// writeJSONSnapshot marshals the schema.AnalyticsSnapshot to JSON and writes it.
func writeJSONSnapshot(w io.Writer, snap schema.AnalyticsSnapshot) error {
	return writeJSON(w, snap)
}

// writeYAMLSnapshot marshals the schema.AnalyticsSnapshot to YAML and writes it.
func writeYAMLSnapshot(w io.Writer, snap schema.AnalyticsSnapshot) error {
	return writeYAML(w, snap)
}

// writeCSVSnapshot flattens the snapshot into section,key,value rows.
// Trend rows are keyed by the bucket start month so that equal labels from
// different years stay distinct.
func writeCSVSnapshot(w io.Writer, snap schema.AnalyticsSnapshot) error {
	return writeCSVWithHeader(w, []string{"section", "key", "value"}, func(cw *csv.Writer) error {
		rows := [][]string{
			{sectionSummary, "generated_for", snap.GeneratedFor.Format(contract.DateTimeFormat)},
			{sectionSummary, "total_count", strconv.Itoa(snap.TotalCount)},
			{sectionSummary, "growth_rate_percent", strconv.Itoa(snap.GrowthRatePercent)},
			{sectionSummary, "top_topic", snap.TopTopic},
			{sectionSummary, "top_department", snap.TopDepartment},
		}
		for _, b := range snap.MonthlyTrend {
			rows = append(rows, []string{sectionTrend, b.Start.Format("2006-01"), strconv.Itoa(b.Count)})
		}
		for _, d := range snap.DepartmentRanking {
			rows = append(rows, []string{sectionDepartment, d.Department, strconv.Itoa(d.Count)})
		}
		for _, bucket := range schema.OrderedDegrees(snap.DegreeDistribution) {
			rows = append(rows, []string{sectionDegree, string(bucket), strconv.Itoa(snap.DegreeDistribution[bucket])})
		}
		return cw.WriteAll(rows)
	})
}
