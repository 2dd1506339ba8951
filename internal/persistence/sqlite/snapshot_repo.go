package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/mosaic/internal/logging"
	"github.com/bnema/mosaic/pkg/layout"
)

// SnapshotInfo describes one stored window layout without decoding it.
type SnapshotInfo struct {
	WindowID string
	Panels   int
	Tabs     int
	SavedAt  time.Time
}

// SnapshotRepository stores one serialized layout tree per window id.
// Layouts are encoded as CBOR blobs; the schema carries panel and tab
// counts so listings never decode the blob.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository wraps an open database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the layout for a window. Empty trees are stored too: a
// restored empty tree tells the host the window was closing.
func (r *SnapshotRepository) Save(ctx context.Context, windowID string, tree *layout.Tree) error {
	log := logging.FromContext(ctx)
	if windowID == "" {
		return errors.New("window id cannot be empty")
	}
	if err := tree.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid layout: %w", err)
	}

	blob, err := layout.EncodeCBOR(tree)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}

	panels := len(tree.Panels())
	tabs := len(tree.Tabs())
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO layout_snapshots (window_id, layout, panels, tabs, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (window_id) DO UPDATE SET
			layout = excluded.layout,
			panels = excluded.panels,
			tabs = excluded.tabs,
			saved_at = excluded.saved_at`,
		windowID, blob, panels, tabs, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	log.Debug().Str("window", windowID).Int("panels", panels).Int("tabs", tabs).Msg("layout snapshot saved")
	return nil
}

// Load returns the stored layout for a window, or (nil, nil) when none
// exists.
func (r *SnapshotRepository) Load(ctx context.Context, windowID string) (*layout.Tree, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT layout FROM layout_snapshots WHERE window_id = ?`, windowID).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	tree, err := layout.DecodeCBOR(blob)
	if err != nil {
		return nil, fmt.Errorf("stored snapshot for window %q is corrupt: %w", windowID, err)
	}
	return tree, nil
}

// List returns all stored snapshots, most recent first.
func (r *SnapshotRepository) List(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT window_id, panels, tabs, saved_at
		FROM layout_snapshots
		ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.WindowID, &info.Panels, &info.Tabs, &info.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes the snapshot for a window. Deleting a missing snapshot is
// not an error.
func (r *SnapshotRepository) Delete(ctx context.Context, windowID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM layout_snapshots WHERE window_id = ?`, windowID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
