package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/wire"
)

// StageInfoCmd returns the stageinfo command
func StageInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stageinfo",
		Short: "Browse stage reference information",
	}

	cmd.AddCommand(stageInfoListCmd())
	cmd.AddCommand(stageInfoShowCmd())

	return cmd
}

func stageInfoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workflow stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				infos := []models.StageInfo{}
				rt.Store.Load(ctx, primary.KeyStageInfo, &infos)

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tTYPICAL DAYS\tDURATION")
				fmt.Fprintln(w, "--\t-----\t------------\t--------")
				byID := make(map[string]models.StageInfo, len(infos))
				for _, info := range infos {
					byID[info.ID] = info
				}
				for _, id := range stage.IDs() {
					days := "-"
					if d := stage.TypicalDays(id); d > 0 {
						days = fmt.Sprintf("%d", d)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, stage.Title(id), days, byID[id].Duration)
				}
				w.Flush()
				return nil
			})
		},
	}
}

func stageInfoShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [stage-id]",
		Short: "Show stage reference details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				infos := []models.StageInfo{}
				rt.Store.Load(ctx, primary.KeyStageInfo, &infos)

				for _, info := range infos {
					if info.ID != args[0] {
						continue
					}
					fmt.Printf("Stage: %s\n", info.ID)
					fmt.Printf("Title: %s\n", info.Title)
					fmt.Printf("Duration: %s\n", info.Duration)
					fmt.Printf("Primary: %s\n", info.KeyStakeholders.Primary)
					for _, s := range info.KeyStakeholders.Supporting {
						fmt.Printf("Supporting: %s\n", s)
					}
					fmt.Printf("\n%s\n", info.Description)

					if len(info.RequiredActions) > 0 {
						fmt.Println("\nRequired actions:")
						for _, a := range info.RequiredActions {
							fmt.Printf("  - %s\n", a)
						}
					}
					if len(info.CommonDelays) > 0 {
						fmt.Println("\nCommon delays:")
						for _, d := range info.CommonDelays {
							fmt.Printf("  - %s\n", d)
						}
					}
					if len(info.Documents) > 0 {
						fmt.Println("\nDocuments:")
						for _, d := range info.Documents {
							required := ""
							if d.Required {
								required = " (required)"
							}
							fmt.Printf("  - %s: %s%s\n", d.Name, d.Filename, required)
						}
					}
					if len(info.Tips) > 0 {
						fmt.Println("\nTips:")
						for _, t := range info.Tips {
							fmt.Printf("  - %s\n", t)
						}
					}
					fmt.Printf("\nNext steps: %s\n", info.NextSteps)
					return nil
				}
				return fmt.Errorf("stage %s not found", args[0])
			})
		},
	}
}
