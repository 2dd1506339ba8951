// Package cli provides the command-line interface for mosaic.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mosaic/internal/config"
	"github.com/bnema/mosaic/internal/logging"
)

// NewRootCmd creates the root command for mosaic.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mosaic",
		Short: "Multi-panel tab layout engine",
		Long: `Mosaic models a window as a recursively split tree of panels, each panel
holding an ordered list of tabs. The CLI inspects, validates and rewrites
serialized layout trees, persists per-window snapshots, and ships an
interactive playground for exercising drag-and-drop restructuring.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := logging.New(logging.Config{
				Level:      logging.ParseLevel(cfg.Logging.Level),
				Format:     cfg.Logging.Format,
				TimeFormat: logging.DefaultConfig().TimeFormat,
			})
			cmd.SetContext(logging.WithContext(cmd.Context(), logger))
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("mosaic %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(
		versionCmd,
		NewValidateCmd(),
		NewBoundsCmd(),
		NewApplyCmd(),
		NewSchemaCmd(),
		NewSnapshotCmd(),
		NewPlayCmd(),
	)
	return rootCmd
}
