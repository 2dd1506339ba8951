package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/mosaic/pkg/layout"
)

// NewBoundsCmd creates the bounds command: compute every panel's rectangle
// for a given container size.
func NewBoundsCmd() *cobra.Command {
	var (
		width   float64
		height  float64
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "bounds FILE...",
		Short: "Compute panel rectangles for a container size",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("container size %gx%g is not positive", width, height)
			}
			container := layout.Rect{Width: width, Height: height}

			var mu sync.Mutex
			results := make([]string, len(args))

			g := new(errgroup.Group)
			for i, path := range args {
				g.Go(func() error {
					tree, err := readLayoutFile(path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					rendered, err := renderBounds(path, tree, container, asJSON)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					mu.Lock()
					results[i] = rendered
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for _, out := range results {
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 800, "container width")
	cmd.Flags().Float64Var(&height, "height", 600, "container height")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	return cmd
}

func renderBounds(path string, tree *layout.Tree, container layout.Rect, asJSON bool) (string, error) {
	bounds := tree.Bounds(container)

	ids := make([]string, 0, len(bounds))
	for id := range bounds {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	if asJSON {
		ordered := make(map[string]layout.Rect, len(bounds))
		for id, rect := range bounds {
			ordered[string(id)] = rect
		}
		data, err := json.MarshalIndent(map[string]any{
			"file":   path,
			"bounds": ordered,
		}, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%gx%g):\n", path, container.Width, container.Height)
	for _, id := range ids {
		r := bounds[layout.PanelID(id)]
		fmt.Fprintf(&b, "  %-12s x=%-8.1f y=%-8.1f w=%-8.1f h=%-8.1f\n", id, r.X, r.Y, r.Width, r.Height)
	}
	return b.String(), nil
}
