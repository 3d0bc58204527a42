package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/wire"
)

// TemplateCmd returns the template command
func TemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage email templates",
	}

	cmd.AddCommand(templateListCmd())
	cmd.AddCommand(templateShowCmd())
	cmd.AddCommand(templateAddCmd())
	cmd.AddCommand(templateRemoveCmd())

	return cmd
}

func loadTemplates(ctx context.Context, rt *wire.Runtime) []models.EmailTemplate {
	templates := []models.EmailTemplate{}
	rt.Store.Load(ctx, primary.KeyTemplates, &templates)
	return templates
}

func saveTemplates(ctx context.Context, rt *wire.Runtime, templates []models.EmailTemplate) error {
	if !rt.Store.Save(ctx, primary.KeyTemplates, templates) {
		return fmt.Errorf("saving templates failed")
	}
	rt.Sync.PublishTemplates(ctx, templates)
	return nil
}

func templateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List email templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				templates := loadTemplates(ctx, rt)
				if len(templates) == 0 {
					fmt.Println("No templates stored.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSTAGE\tRECIPIENTS")
				fmt.Fprintln(w, "--\t----\t-----\t----------")
				for _, t := range templates {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.StageID, strings.Join(t.Recipients, ", "))
				}
				w.Flush()
				return nil
			})
		},
	}
}

func templateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [template-id]",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				for _, t := range loadTemplates(ctx, rt) {
					if t.ID != args[0] {
						continue
					}
					fmt.Printf("Template: %s\n", t.ID)
					fmt.Printf("Name: %s\n", t.Name)
					if t.StageID != "" {
						fmt.Printf("Stage: %s\n", t.StageID)
					}
					fmt.Printf("Recipients: %s\n", strings.Join(t.Recipients, ", "))
					fmt.Printf("Subject: %s\n\n", t.Subject)
					fmt.Println(t.Body)
					return nil
				}
				return fmt.Errorf("template %s not found", args[0])
			})
		},
	}
}

func templateAddCmd() *cobra.Command {
	var subject, body, stageID string
	var recipients []string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an email template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stageID != "" && !stage.IsValid(stageID) {
				return fmt.Errorf("unknown stage %q", stageID)
			}
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				templates := loadTemplates(ctx, rt)
				t := models.EmailTemplate{
					ID:         uuid.NewString(),
					Name:       args[0],
					Subject:    subject,
					Body:       body,
					StageID:    stageID,
					Recipients: recipients,
				}
				templates = append(templates, t)
				if err := saveTemplates(ctx, rt, templates); err != nil {
					return err
				}
				fmt.Printf("✓ Added template %s: %s\n", t.ID, t.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&body, "body", "", "Message body")
	cmd.Flags().StringVar(&stageID, "stage", "", "Associated stage")
	cmd.Flags().StringSliceVar(&recipients, "to", nil, "Recipient addresses")

	return cmd
}

func templateRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [template-id]",
		Short: "Remove an email template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				templates := loadTemplates(ctx, rt)
				kept := templates[:0]
				for _, t := range templates {
					if t.ID != args[0] {
						kept = append(kept, t)
					}
				}
				if len(kept) == len(templates) {
					return fmt.Errorf("template %s not found", args[0])
				}
				if err := saveTemplates(ctx, rt, kept); err != nil {
					return err
				}
				fmt.Printf("✓ Template %s removed\n", args[0])
				return nil
			})
		},
	}
}
