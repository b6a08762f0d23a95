package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSnapshotResults outputs the snapshot, dispatching based on the output format configured.
func WriteSnapshotResults(w io.Writer, snap schema.AnalyticsSnapshot, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONSnapshot(w, snap); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVSnapshot(w, snap); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAMLSnapshot(w, snap); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := writeSnapshotTables(w, snap, cfg, duration); err != nil {
			return fmt.Errorf("error writing snapshot table output: %w", err)
		}
	}
	return nil
}

// newTable creates a table with the given headers and right-aligned rows.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

// renderTable writes rows into the table and renders it.
func renderTable(table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSnapshotTables prints the snapshot as summary, trend, department and degree tables.
func writeSnapshotTables(w io.Writer, snap schema.AnalyticsSnapshot, cfg *contract.Config, duration time.Duration) error {
	labelWidth := getMaxLabelWidth(cfg, 1)
	fmtGrowth := growthFormatter(cfg.UseColors)

	if _, err := fmt.Fprintf(w, "Snapshot for %s\n", snap.GeneratedFor.Format(contract.DateTimeFormat)); err != nil {
		return err
	}
	if !cfg.Filter.IsEmpty() {
		if _, err := fmt.Fprintf(w, "Filters: %s\n", schema.FormatFilters(cfg.Filter.AsMap())); err != nil {
			return err
		}
	}

	// --- 1. Summary ---
	summary := newTable(w, "Metric", "Value")
	if err := renderTable(summary, [][]string{
		{"Total Projects", strconv.Itoa(snap.TotalCount)},
		{"Growth Rate", fmtGrowth(snap.GrowthRatePercent)},
		{"Top Topic", truncateLabel(snap.TopTopic, labelWidth)},
		{"Top Department", truncateLabel(snap.TopDepartment, labelWidth)},
	}); err != nil {
		return err
	}

	// --- 2. Monthly trend ---
	trend := newTable(w, "Month", "Start", "Projects")
	var trendRows [][]string
	for _, b := range snap.MonthlyTrend {
		trendRows = append(trendRows, []string{b.Label, b.Start.Format("2006-01"), strconv.Itoa(b.Count)})
	}
	if err := renderTable(trend, trendRows); err != nil {
		return err
	}

	// --- 3. Departments ---
	if len(snap.DepartmentRanking) > 0 {
		departments := newTable(w, "Rank", "Department", "Projects")
		var rows [][]string
		for i, d := range snap.DepartmentRanking {
			rows = append(rows, []string{strconv.Itoa(i + 1), truncateLabel(d.Department, labelWidth), strconv.Itoa(d.Count)})
		}
		if err := renderTable(departments, rows); err != nil {
			return err
		}
	}

	// --- 4. Degrees ---
	if len(snap.DegreeDistribution) > 0 {
		degrees := newTable(w, "Degree", "Projects")
		var rows [][]string
		for _, bucket := range schema.OrderedDegrees(snap.DegreeDistribution) {
			rows = append(rows, []string{string(bucket), strconv.Itoa(snap.DegreeDistribution[bucket])})
		}
		if err := renderTable(degrees, rows); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Snapshot completed in %v. History backend: %s\n", duration, cfg.HistoryBackend)
	return err
}
