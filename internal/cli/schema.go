package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mosaic/internal/config"
)

// NewSchemaCmd creates the schema command: print the configuration JSON
// schema.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.SchemaJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
