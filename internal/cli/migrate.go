package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/wire"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Push local data to the remote mirror",
		Long: `Push all local data (applicants, email templates, stage information)
to the configured sqlite mirror. The local store stays authoritative.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				if !rt.Mirror.Enabled() {
					return fmt.Errorf("no mirror configured; set mirror_path in the config")
				}
				report, err := rt.Mirror.Migrate(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("✓ Migrated %d applicants, %d templates, %d stage records\n",
					report.Applicants, report.Templates, report.StageInfos)
				return nil
			})
		},
	}
}
