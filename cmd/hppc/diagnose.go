package main

import (
	"fmt"

	"github.com/hpp-embedded/hpp/internal/persist"
	"github.com/hpp-embedded/hpp/pkg/hpp"
	"github.com/spf13/cobra"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <snapshot-file>",
	Short: "Scan a persisted store snapshot for structural issues",
	Long: `diagnose loads a snapshot written by internal/persist.SaveSnapshot and
reports malformed struct headers, dangling var/array/string references, and
scratch frame keys left behind by a run that never reached its cleanup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagnose(args[0])
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(snapshotPath string) error {
	s, err := persist.LoadSnapshot(snapshotPath)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	engine := hpp.Open(s)
	report := engine.Diagnose()

	if jsonOut {
		return printJSON(report.Findings)
	}
	printInfo("%s", report.FormatText())
	if report.HasErrors() {
		return fmt.Errorf("diagnose found %d issue(s)", len(report.Findings))
	}
	return nil
}
