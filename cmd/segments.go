package cmd

import (
	"github.com/huangsam/scholarlens/core"
	"github.com/spf13/cobra"
)

// segmentsCmd computes one snapshot per department, degree or supervisor.
var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Show one analytics snapshot per department, degree or supervisor.",
	Long: `Split the matching records by a dimension and compute a snapshot for each group.

Segments keep the order in which their key first appears in the records.
Records with a blank department or supervisor land in the Unassigned segment.

Examples:
  # Compare departments side by side
  scholarlens segments --input projects.csv --by department

  # Degree levels within one department
  scholarlens segments --input projects.csv --by degree --department Physics

  # Supervisor workload as CSV
  scholarlens segments --input projects.json --source json --by supervisor --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("segments", core.ExecuteSegments),
}
