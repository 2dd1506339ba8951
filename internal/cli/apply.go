package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/mosaic/internal/config"
	"github.com/bnema/mosaic/internal/logging"
	"github.com/bnema/mosaic/pkg/layout"
)

// NewApplyCmd creates the apply command: perform one drop operation on a
// serialized layout and emit the resulting tree.
func NewApplyCmd() *cobra.Command {
	var (
		tabID  string
		target string
		zone   string
		index  int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a drop operation to a layout",
		Long: `Apply rewrites a layout as if the given tab had been dropped on the target
panel: "header" inserts into the tab order, "body" fills an empty panel, and
"left", "right", "top" or "bottom" split the target.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.FromContext(cmd.Context())

			tree, err := readLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			metrics := config.Get().Layout.Metrics()
			drop := layout.Drop{
				Tab:    layout.TabID(tabID),
				Target: layout.PanelID(target),
				Kind:   layout.ZoneKind(zone),
				Index:  index,
			}
			next, err := layout.NewRestructurer(metrics).Restructure(tree, drop.Tab, drop)
			if err != nil {
				return err
			}
			if next.Equal(tree) {
				log.Info().Str("tab", tabID).Str("target", target).Msg("drop is a no-op")
			}

			data, err := layout.EncodeJSON(next)
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}

	cmd.Flags().StringVar(&tabID, "tab", "", "id of the dragged tab")
	cmd.Flags().StringVar(&target, "target", "", "id of the target panel")
	cmd.Flags().StringVar(&zone, "zone", "header", "drop zone kind: header, body, left, right, top, bottom")
	cmd.Flags().IntVar(&index, "index", 0, "insertion index for header drops")
	cmd.Flags().StringVar(&out, "out", "-", "output file, or - for stdout")
	_ = cmd.MarkFlagRequired("tab")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
