package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casetrack/internal/config"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/seed"
	"github.com/example/casetrack/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var redisAddr string
	var mirrorPath string
	var buildingID string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a casetrack workspace",
		Long: `Initialize a casetrack workspace in the current directory.

Creates .casetrack/config.json and the local store, and seeds the stage
information catalog and starter email templates on first run.

Examples:
  casetrack init
  casetrack init --redis localhost:6379 --mirror .casetrack/mirror.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir()
			if err != nil {
				return err
			}

			cfg, err := config.Load(dir)
			if err != nil {
				cfg = config.Default()
			}
			if redisAddr != "" {
				cfg.RedisAddr = redisAddr
			}
			if mirrorPath != "" {
				cfg.MirrorPath = mirrorPath
			}
			if buildingID != "" {
				cfg.BuildingID = buildingID
			}
			if err := config.Save(dir, cfg); err != nil {
				return err
			}
			fmt.Printf("Initialized casetrack workspace in %s\n", dir)

			// Reload so DataDir and the other defaults are filled in.
			cfg, err = config.Load(dir)
			if err != nil {
				return err
			}
			rt, err := wire.New(cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			seeded, err := seedDefaults(context.Background(), rt)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Println("✓ Seeded stage information and starter email templates")
			}

			fmt.Println("✓ Store ready")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  casetrack applicant add \"Jane Doe\" --unit 4B")
			fmt.Println("  casetrack status")
			return nil
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for cross-instance sync")
	cmd.Flags().StringVar(&mirrorPath, "mirror", "", "SQLite path for the remote mirror")
	cmd.Flags().StringVar(&buildingID, "building", "", "Building identifier for the mirror")

	return cmd
}

// seedDefaults writes the catalog data for any logical key still empty.
func seedDefaults(ctx context.Context, rt *wire.Runtime) (bool, error) {
	seeded := false

	templates := []models.EmailTemplate{}
	if !rt.Store.Load(ctx, primary.KeyTemplates, &templates) {
		if !rt.Store.Save(ctx, primary.KeyTemplates, seed.Templates()) {
			return seeded, fmt.Errorf("failed to seed email templates")
		}
		seeded = true
	}

	infos := []models.StageInfo{}
	if !rt.Store.Load(ctx, primary.KeyStageInfo, &infos) {
		if !rt.Store.Save(ctx, primary.KeyStageInfo, seed.StageInfos()) {
			return seeded, fmt.Errorf("failed to seed stage information")
		}
		seeded = true
	}

	return seeded, nil
}
