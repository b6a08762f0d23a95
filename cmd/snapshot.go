package cmd

import (
	"github.com/huangsam/scholarlens/core"
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/spf13/cobra"
)

// snapshotCmd computes the analytics snapshot of all matching records.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show the analytics snapshot of project records.",
	Long: `Load project records and compute one analytics snapshot.

The snapshot contains:
- Degree distribution (BSc, MSc, PhD and optionally Unknown)
- Monthly trend over the six calendar months ending at --now
- Top five departments by project count
- Growth rate of the current month against the previous one
- Most frequent title word of five or more characters

Filters model the usual views: a system dashboard (no filter), a department
view (--department) and a lecturer view (--supervisor).

Examples:
  # Snapshot of every project in a CSV export
  scholarlens snapshot --input projects.csv

  # Department view anchored at a fixed month
  scholarlens snapshot --input projects.csv --department "Computer Science" --now 2024-06-15T00:00:00Z

  # Lecturer view over verified projects read from PostgreSQL
  scholarlens snapshot --source postgresql --input "host=localhost dbname=uni" --supervisor "Ada Lovelace" --status verified

  # Track snapshots over time and write JSON
  scholarlens snapshot --input projects.csv --history-backend sqlite --output json --output-file snapshot.json`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("snapshot", core.ExecuteSnapshot),
}

// runExecutor adapts an executor into a cobra Run function that exits on failure.
func runExecutor(name string, executeFunc core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := executeFunc(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run "+name, err)
		}
	}
}
