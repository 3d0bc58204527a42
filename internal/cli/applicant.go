package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/wire"
)

// ApplicantCmd returns the applicant command
func ApplicantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applicant",
		Short: "Manage housing applicants",
		Long:  `Add, inspect, and move applicants through the housing workflow.`,
	}

	cmd.AddCommand(applicantAddCmd())
	cmd.AddCommand(applicantListCmd())
	cmd.AddCommand(applicantShowCmd())
	cmd.AddCommand(applicantMoveCmd())
	cmd.AddCommand(applicantNoteCmd())
	cmd.AddCommand(applicantDocCmd())
	cmd.AddCommand(applicantActionCmd())
	cmd.AddCommand(applicantContactCmd())
	cmd.AddCommand(applicantCorrectTimestampCmd())
	cmd.AddCommand(applicantRemoveCmd())

	return cmd
}

func applicantAddCmd() *cobra.Command {
	var req primary.AddApplicantRequest

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new applicant",
		Long: `Add an applicant to the board in the first workflow stage.

Examples:
  casetrack applicant add "Jane Doe" --unit 4B
  casetrack applicant add "Jane Doe" --case-manager "Sam Lee" --phone 555-0100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				req.Name = args[0]
				a, err := rt.Tracker.AddApplicant(ctx, req)
				if err != nil {
					return fmt.Errorf("failed to add applicant: %w", err)
				}
				fmt.Printf("✓ Added applicant %s: %s (%s)\n", a.ID, a.Name, stage.Title(a.CurrentStage))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Unit, "unit", "", "Unit number")
	cmd.Flags().StringVar(&req.HMISNumber, "hmis", "", "HMIS number")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.CaseManager, "case-manager", "", "Case manager name")

	return cmd
}

func applicantListCmd() *cobra.Command {
	var stageFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applicants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				applicants := rt.Tracker.ListApplicants(ctx)
				if len(applicants) == 0 {
					fmt.Println("No applicants yet.")
					fmt.Println()
					fmt.Println("Add your first applicant:")
					fmt.Println("  casetrack applicant add \"Jane Doe\"")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tUNIT\tSTAGE\tCASE MANAGER")
				fmt.Fprintln(w, "--\t----\t----\t-----\t------------")
				for _, a := range applicants {
					if stageFilter != "" && a.CurrentStage != stageFilter {
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Unit, a.CurrentStage, a.CaseManager)
				}
				w.Flush()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stageFilter, "stage", "", "Only show applicants in this stage")

	return cmd
}

func applicantShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [applicant-id]",
		Short: "Show applicant details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				a, err := rt.Tracker.GetApplicant(ctx, args[0])
				if err != nil {
					return err
				}

				fmt.Printf("Applicant: %s\n", a.ID)
				fmt.Printf("Name: %s\n", a.Name)
				fmt.Printf("Stage: %s (%s)\n", a.CurrentStage, stage.Title(a.CurrentStage))
				if a.Unit != "" {
					fmt.Printf("Unit: %s\n", a.Unit)
				}
				if a.HMISNumber != "" {
					fmt.Printf("HMIS: %s\n", a.HMISNumber)
				}
				if a.Phone != "" || a.Email != "" {
					fmt.Printf("Contact: %s %s\n", a.Phone, a.Email)
				}
				if a.CaseManager != "" {
					fmt.Printf("Case Manager: %s %s %s\n", a.CaseManager, a.CaseManagerPhone, a.CaseManagerEmail)
				}
				fmt.Printf("Documents: ssCard=%t birthCertificate=%t id=%t\n",
					a.Documents.SSCard, a.Documents.BirthCertificate, a.Documents.ID)

				if len(a.FamilyMembers) > 0 {
					fmt.Printf("\nFamily (%d):\n", len(a.FamilyMembers))
					for _, m := range a.FamilyMembers {
						fmt.Printf("  %s  %s (%s, %d)\n", m.ID, m.Name, m.Relationship, m.Age)
					}
				}

				fmt.Printf("\nStage history (%d):\n", len(a.StageHistory))
				for _, tr := range a.StageHistory {
					from := tr.FromStage
					if from == "" {
						from = "-"
					}
					fmt.Printf("  %s  %s -> %s by %s", tr.Timestamp.Format(time.RFC3339), from, tr.ToStage, tr.MovedBy)
					if tr.Note != "" {
						fmt.Printf(" (%s)", tr.Note)
					}
					fmt.Printf("  [%s]\n", tr.ID)
				}

				if len(a.ManualNotes) > 0 {
					fmt.Printf("\nNotes (%d):\n", len(a.ManualNotes))
					for _, n := range a.ManualNotes {
						fmt.Printf("  %s  [%s] %s: %s  [%s]\n", n.Timestamp.Format(time.RFC3339), n.NoteType, n.AddedBy, n.Note, n.ID)
					}
				}

				if len(a.CompletedActionItems) > 0 {
					fmt.Printf("\nCompleted action items (%d):\n", len(a.CompletedActionItems))
					for _, item := range a.CompletedActionItems {
						fmt.Printf("  ✓ %s\n", item)
					}
				}

				return nil
			})
		},
	}
}

func applicantMoveCmd() *cobra.Command {
	var movedBy string
	var note string

	cmd := &cobra.Command{
		Use:   "move [applicant-id] [stage]",
		Short: "Move an applicant to another stage",
		Long: `Move an applicant to another workflow stage, recording the transition.

Examples:
  casetrack applicant move applicant_123 application-packet
  casetrack applicant move applicant_123 background-check --note "packet complete" --by "Sam"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				if movedBy == "" {
					movedBy = rt.Config.DefaultActor
				}
				err := rt.Tracker.MoveApplicant(ctx, primary.MoveApplicantRequest{
					ApplicantID: args[0],
					ToStage:     args[1],
					MovedBy:     movedBy,
					Note:        note,
				})
				if err != nil {
					return fmt.Errorf("failed to move applicant: %w", err)
				}
				fmt.Printf("✓ Moved %s to %s\n", args[0], stage.Title(args[1]))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&movedBy, "by", "", "Who performed the move")
	cmd.Flags().StringVar(&note, "note", "", "Note attached to the transition")

	return cmd
}

func applicantNoteCmd() *cobra.Command {
	var noteType string
	var addedBy string

	cmd := &cobra.Command{
		Use:   "note [applicant-id] [text]",
		Short: "Add a note to an applicant's case",
		Long: `Add a manual note. Types: phone_call, email, outreach, general.

Examples:
  casetrack applicant note applicant_123 "left a voicemail" --type phone_call`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				if addedBy == "" {
					addedBy = rt.Config.DefaultActor
				}
				err := rt.Tracker.AddNote(ctx, primary.AddNoteRequest{
					ApplicantID: args[0],
					Note:        args[1],
					NoteType:    noteType,
					AddedBy:     addedBy,
				})
				if err != nil {
					return fmt.Errorf("failed to add note: %w", err)
				}
				fmt.Println("✓ Note added")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&noteType, "type", "", "Note type (default general)")
	cmd.Flags().StringVar(&addedBy, "by", "", "Note author")

	return cmd
}

func applicantDocCmd() *cobra.Command {
	var familyMemberID string

	cmd := &cobra.Command{
		Use:   "doc [applicant-id] [document]",
		Short: "Toggle a collected document",
		Long: `Toggle one of the collected-document flags: ssCard, birthCertificate, id.

Examples:
  casetrack applicant doc applicant_123 ssCard
  casetrack applicant doc applicant_123 id --family family_456`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				err := rt.Tracker.ToggleDocument(ctx, primary.ToggleDocumentRequest{
					ApplicantID:    args[0],
					FamilyMemberID: familyMemberID,
					Document:       args[1],
				})
				if err != nil {
					return fmt.Errorf("failed to toggle document: %w", err)
				}
				fmt.Printf("✓ Toggled %s\n", args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&familyMemberID, "family", "", "Family member id (default the applicant)")

	return cmd
}

func applicantActionCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "action [applicant-id] [item]",
		Short: "Mark an action item complete",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				if undo {
					if err := rt.Tracker.UncompleteActionItem(ctx, args[0], args[1]); err != nil {
						return err
					}
					fmt.Println("✓ Action item reopened")
					return nil
				}
				if err := rt.Tracker.CompleteActionItem(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("✓ Action item completed")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen instead of complete")

	return cmd
}

func applicantContactCmd() *cobra.Command {
	var req primary.UpdateContactRequest

	cmd := &cobra.Command{
		Use:   "contact [applicant-id]",
		Short: "Update contact fields",
		Long:  `Update an applicant's contact fields. Flags left unset are unchanged.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				req.ApplicantID = args[0]
				if err := rt.Tracker.UpdateContact(ctx, req); err != nil {
					return fmt.Errorf("failed to update contact: %w", err)
				}
				fmt.Println("✓ Contact updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Unit, "unit", "", "Unit number")
	cmd.Flags().StringVar(&req.CaseManager, "case-manager", "", "Case manager name")
	cmd.Flags().StringVar(&req.CaseManagerPhone, "cm-phone", "", "Case manager phone")
	cmd.Flags().StringVar(&req.CaseManagerEmail, "cm-email", "", "Case manager email")

	return cmd
}

func applicantCorrectTimestampCmd() *cobra.Command {
	var transitionID string
	var noteID string

	cmd := &cobra.Command{
		Use:   "correct-timestamp [applicant-id] [timestamp]",
		Short: "Correct a recorded timestamp",
		Long: `Correct the timestamp of one stage transition or manual note.
Timestamps accept RFC3339 or YYYY-MM-DD.

Examples:
  casetrack applicant correct-timestamp applicant_123 2025-03-15 --transition tr_789
  casetrack applicant correct-timestamp applicant_123 2025-03-15T09:00:00Z --note note_456`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				err := rt.Tracker.CorrectTimestamp(ctx, primary.CorrectTimestampRequest{
					ApplicantID:  args[0],
					TransitionID: transitionID,
					NoteID:       noteID,
					Timestamp:    args[1],
				})
				if err != nil {
					return fmt.Errorf("failed to correct timestamp: %w", err)
				}
				fmt.Println("✓ Timestamp corrected")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&transitionID, "transition", "", "Stage transition id")
	cmd.Flags().StringVar(&noteID, "note", "", "Manual note id")

	return cmd
}

func applicantRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove [applicant-id]",
		Short: "Remove an applicant",
		Long: `Remove an applicant permanently.

WARNING: This is a destructive operation and requires --force.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("removing an applicant is permanent; re-run with --force")
			}
			return withRuntime(func(ctx context.Context, rt *wire.Runtime) error {
				if err := rt.Tracker.RemoveApplicant(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("✓ Applicant %s removed\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Confirm permanent removal")

	return cmd
}
