package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the board and store status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				applicants := rt.Tracker.ListApplicants(ctx)

				counts := make(map[string]int)
				for _, a := range applicants {
					counts[a.CurrentStage]++
				}

				fmt.Printf("Applicants: %d\n\n", len(applicants))
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "STAGE\tTITLE\tCOUNT")
				fmt.Fprintln(w, "-----\t-----\t-----")
				for _, id := range stage.IDs() {
					fmt.Fprintf(w, "%s\t%s\t%d\n", id, stage.Title(id), counts[id])
				}
				w.Flush()

				fmt.Println()
				for _, key := range primary.LogicalKeys() {
					fmt.Printf("Version %s: %d\n", key, rt.Store.Version(ctx, key))
				}

				backups, err := rt.Backup.List(ctx)
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					fmt.Println("Auto backups: none yet")
				} else {
					fmt.Printf("Auto backups: %d retained, newest %s\n", len(backups), backups[0].Data.Timestamp)
				}

				if rt.Config.RedisAddr != "" {
					fmt.Printf("Sync: enabled (%s)\n", rt.Config.RedisAddr)
				} else {
					fmt.Println("Sync: disabled")
				}
				if rt.Mirror.Enabled() {
					fmt.Printf("Mirror: enabled (%s)\n", rt.Config.MirrorPath)
				} else {
					fmt.Println("Mirror: disabled")
				}

				// Surface overdue cases: anyone past their stage's typical days.
				var overdue []models.Applicant
				for _, a := range applicants {
					limit := stage.TypicalDays(a.CurrentStage)
					if limit == 0 || len(a.StageHistory) == 0 {
						continue
					}
					entered := a.StageHistory[len(a.StageHistory)-1].Timestamp
					if workingDaysSince(entered, time.Now()) > limit {
						overdue = append(overdue, a)
					}
				}
				if len(overdue) > 0 {
					fmt.Println()
					fmt.Printf("Overdue (%d):\n", len(overdue))
					for _, a := range overdue {
						fmt.Printf("  %s  %s (%s)\n", a.ID, a.Name, a.CurrentStage)
					}
				}

				return nil
			})
		},
	}
}

// workingDaysSince counts weekdays between then and now.
func workingDaysSince(then, now time.Time) int {
	if !then.Before(now) {
		return 0
	}
	days := 0
	for d := then; d.Before(now); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
