package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/mosaic/pkg/layout"
)

// NewValidateCmd creates the validate command: decode layout files and check
// every tree invariant.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate serialized layout trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mu sync.Mutex
			results := make([]string, len(args))

			g := new(errgroup.Group)
			for i, path := range args {
				g.Go(func() error {
					tree, err := readLayoutFile(path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					mu.Lock()
					results[i] = fmt.Sprintf("%s: ok (%d panels, %d tabs)",
						path, len(tree.Panels()), len(tree.Tabs()))
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for _, line := range results {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

// readLayoutFile reads and decodes a JSON layout file, validating it.
func readLayoutFile(path string) (*layout.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return layout.DecodeJSON(data)
}
