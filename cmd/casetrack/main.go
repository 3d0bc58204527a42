package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/cli"
	"github.com/example/casetrack/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "casetrack",
		Short:   "casetrack - housing case management over a resilient local store",
		Version: version.String(),
		Long: `casetrack tracks housing applicants through the PSH workflow.
All data lives in a checksummed local store with automatic backup and
rollback; sibling instances stay in sync over a shared bus.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ApplicantCmd())
	rootCmd.AddCommand(cli.TemplateCmd())
	rootCmd.AddCommand(cli.StageInfoCmd())
	rootCmd.AddCommand(cli.BackupCmd())
	rootCmd.AddCommand(cli.SyncCmd())
	rootCmd.AddCommand(cli.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
