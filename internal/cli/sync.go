package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Observe the cross-instance sync bus",
	}

	cmd.AddCommand(syncWatchCmd())

	return cmd
}

func syncWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print updates from sibling instances until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				if rt.Config.RedisAddr == "" {
					return fmt.Errorf("sync is disabled; set redis_addr in the config")
				}

				rt.Sync.OnApplicants(func(applicants []models.Applicant) {
					fmt.Printf("applicants updated: %d records\n", len(applicants))
				})
				rt.Sync.OnTemplates(func(templates []models.EmailTemplate) {
					fmt.Printf("templates updated: %d records\n", len(templates))
				})
				rt.Sync.OnStageInfo(func(infos []models.StageInfo) {
					fmt.Printf("stage information updated: %d records\n", len(infos))
				})

				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := rt.Sync.Start(ctx); err != nil {
					return fmt.Errorf("subscribing to sync bus: %w", err)
				}
				fmt.Println("Watching sync bus. Ctrl-C to stop.")
				<-ctx.Done()
				return nil
			})
		},
	}
}
