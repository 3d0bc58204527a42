// Package cli contains the cobra commands for casetrack.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/example/casetrack/internal/config"
	"github.com/example/casetrack/internal/wire"
)

// workDir resolves the directory holding .casetrack. CASETRACK_DIR overrides
// the working directory, mirroring how the tool is pointed at a shared data
// folder.
func workDir() (string, error) {
	if dir := os.Getenv("CASETRACK_DIR"); dir != "" {
		return dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return dir, nil
}

// withRuntime loads the config, builds the runtime, runs fn, and tears the
// runtime down. Commands that need services go through here.
func withRuntime(fn func(ctx context.Context, rt *wire.Runtime) error) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("no casetrack workspace here (run `casetrack init` first): %w", err)
	}

	rt, err := wire.New(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(context.Background(), rt)
}
