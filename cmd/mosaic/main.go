// Command mosaic inspects, rewrites and persists multi-panel tab layouts.
package main

import (
	"context"
	"os"

	"github.com/bnema/mosaic/internal/cli"
	"github.com/bnema/mosaic/internal/logging"
)

// Build-time variables set via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	log := logging.NewFromEnv()

	rootCmd := cli.NewRootCmd(version, commit, buildDate)
	ctx := logging.WithContext(context.Background(), log)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
