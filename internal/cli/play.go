package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/mosaic/internal/cli/model"
	"github.com/bnema/mosaic/internal/cli/styles"
	"github.com/bnema/mosaic/internal/config"
	"github.com/bnema/mosaic/pkg/layout"
)

// NewPlayCmd creates the play command: an interactive terminal playground
// for exercising splits, tab moves and drop zones against a live tree.
func NewPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [FILE]",
		Short: "Interactive layout playground",
		Long: `Play opens a terminal playground where every keystroke drives the layout
engine: open tabs, split panels, and move tabs between panels through the
same drag-and-drop pipeline a windowing host would use. An optional FILE
seeds the playground with a serialized layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tree *layout.Tree
			if len(args) == 1 {
				var err error
				tree, err = readLayoutFile(args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
			}

			metrics := config.Get().Layout.Metrics()
			m := model.NewPlayground(tree, metrics, styles.DefaultTheme())

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("playground exited: %w", err)
			}
			return nil
		},
	}
}
