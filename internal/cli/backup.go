package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/wire"
)

// BackupCmd returns the backup command
func BackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage auto-backup snapshots and exports",
	}

	cmd.AddCommand(backupNowCmd())
	cmd.AddCommand(backupListCmd())
	cmd.AddCommand(backupExportCmd())
	cmd.AddCommand(backupWatchCmd())

	return cmd
}

func backupNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Take a snapshot immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				if err := rt.Backup.Run(ctx); err != nil {
					return fmt.Errorf("backup failed: %w", err)
				}
				fmt.Println("✓ Snapshot taken")
				return nil
			})
		},
	}
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List retained snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				backups, err := rt.Backup.List(ctx)
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					fmt.Println("No snapshots retained yet.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "KEY\tTIMESTAMP\tAPPLICANTS\tTEMPLATES")
				fmt.Fprintln(w, "---\t---------\t----------\t---------")
				for _, b := range backups {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
						b.Key, b.Data.Timestamp, len(b.Data.Applicants), len(b.Data.EmailTemplates))
				}
				w.Flush()
				return nil
			})
		},
	}
}

func backupExportCmd() *cobra.Command {
	var filename string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the emergency export file",
		Long: `Write the full-state emergency export: current data plus every
retained snapshot, as one JSON file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				path, err := rt.Backup.ExportNow(ctx, filename)
				if err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				fmt.Printf("✓ Exported to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filename, "file", "", "Export filename (default timestamped)")

	return cmd
}

func backupWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the backup scheduler until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				fmt.Println("Backup scheduler running. Ctrl-C to stop.")
				rt.Backup.Start(ctx)
				return nil
			})
		},
	}
}
