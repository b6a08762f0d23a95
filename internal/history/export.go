package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/internal/parquet"
)

// ExecuteHistoryExport exports recorded runs and trend points to Parquet files
// named outputFile.runs.parquet and outputFile.trend_points.parquet.
func ExecuteHistoryExport(w io.Writer, mgr contract.HistoryManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no snapshot history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total snapshot runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total trend points: %d\n", status.TableSizes[trendPointsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}
	points, err := store.GetAllTrendPoints()
	if err != nil {
		return fmt.Errorf("failed to retrieve trend points: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	parquetRuns := parquet.ConvertSnapshotRunRecords(runs)
	if err := parquet.WriteSnapshotRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d snapshot runs to: %s\n", len(parquetRuns), runsFile)

	pointsFile := outputFile + ".trend_points.parquet"
	parquetPoints := parquet.ConvertTrendPointRecords(points)
	if err := parquet.WriteTrendPointsParquet(parquetPoints, pointsFile); err != nil {
		return fmt.Errorf("failed to write trend points: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d trend points to: %s\n", len(parquetPoints), pointsFile)

	return nil
}
