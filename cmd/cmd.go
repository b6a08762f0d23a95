// Package cmd defines the command-line interface for scholarlens.
package cmd

import (
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source", string(schema.CSVSource), "Record source: csv or json or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to the records file, or database connection string for SQL sources")
	rootCmd.PersistentFlags().String("table", contract.DefaultTable, "Table holding project records for SQL sources")
	rootCmd.PersistentFlags().String("department", "", "Only include projects of this department")
	rootCmd.PersistentFlags().String("supervisor", "", "Only include projects of this supervisor")
	rootCmd.PersistentFlags().String("status", "", "Only include projects with this status")
	rootCmd.PersistentFlags().String("now", "", "Anchor time for the monthly trend in RFC3339 or time ago (default: current time)")
	rootCmd.PersistentFlags().String("degree-fallback", string(schema.FallbackBSc), "Bucket for unrecognized degree labels: bsc or unknown")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv or yaml")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for the history backend")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of segmentsCmd to Viper
	segmentsCmd.Flags().String("by", "", "Segment dimension: department or degree or supervisor")
	if err := viper.BindPFlags(segmentsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding segments flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
