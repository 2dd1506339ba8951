package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/mosaic/internal/config"
	"github.com/bnema/mosaic/internal/persistence/sqlite"
	"github.com/bnema/mosaic/pkg/layout"
)

// NewSnapshotCmd creates the snapshot command group: persist and restore
// per-window layouts in the snapshot database.
func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Persist and restore window layout snapshots",
	}
	cmd.AddCommand(
		newSnapshotSaveCmd(),
		newSnapshotRestoreCmd(),
		newSnapshotListCmd(),
		newSnapshotDeleteCmd(),
	)
	return cmd
}

// openSnapshotDB opens the snapshot database at the configured path.
func openSnapshotDB(ctx context.Context) (*sql.DB, error) {
	dbPath := config.Get().Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = config.GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}
	return sqlite.NewConnection(ctx, dbPath)
}

func withSnapshotRepo(cmd *cobra.Command, fn func(context.Context, *sqlite.SnapshotRepository) error) error {
	ctx := cmd.Context()
	db, err := openSnapshotDB(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", closeErr)
		}
	}()
	return fn(ctx, sqlite.NewSnapshotRepository(db))
}

func newSnapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save WINDOW_ID FILE",
		Short: "Save a layout file as the snapshot for a window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readLayoutFile(args[1])
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			return withSnapshotRepo(cmd, func(ctx context.Context, repo *sqlite.SnapshotRepository) error {
				if err := repo.Save(ctx, args[0], tree); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot for window %s (%d panels, %d tabs)\n",
					args[0], len(tree.Panels()), len(tree.Tabs()))
				return nil
			})
		},
	}
}

func newSnapshotRestoreCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "restore WINDOW_ID",
		Short: "Print the stored layout of a window as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshotRepo(cmd, func(ctx context.Context, repo *sqlite.SnapshotRepository) error {
				tree, err := repo.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if tree == nil {
					return fmt.Errorf("no snapshot for window %q", args[0])
				}
				data, err := layout.EncodeJSON(tree)
				if err != nil {
					return err
				}
				data = append(data, '\n')
				if out == "" || out == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				return os.WriteFile(out, data, 0o644)
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "-", "output file, or - for stdout")
	return cmd
}

func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshotRepo(cmd, func(ctx context.Context, repo *sqlite.SnapshotRepository) error {
				infos, err := repo.List(ctx)
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no snapshots")
					return nil
				}
				for _, info := range infos {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %3d panels %3d tabs  %s\n",
						info.WindowID, info.Panels, info.Tabs, info.SavedAt.Local().Format("2006-01-02 15:04:05"))
				}
				return nil
			})
		},
	}
}

func newSnapshotDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete WINDOW_ID",
		Short: "Delete the snapshot of a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshotRepo(cmd, func(ctx context.Context, repo *sqlite.SnapshotRepository) error {
				return repo.Delete(ctx, args[0])
			})
		},
	}
}
