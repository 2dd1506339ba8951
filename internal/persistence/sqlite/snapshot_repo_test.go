package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mosaic/pkg/layout"
)

func testRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	ctx := context.Background()

	db, err := NewConnection(ctx, t.TempDir()+"/snapshots.db")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewSnapshotRepository(db)
}

func testTree(t *testing.T) *layout.Tree {
	t.Helper()
	tree := layout.NewTree("p1", layout.Tab{ID: "a", Title: "shell", SessionRef: 1})
	r := layout.NewRestructurer(layout.DefaultMetrics())
	tree, err := r.SplitPanel(tree, "p1", layout.ZoneRight, "p2", layout.Tab{ID: "b", Title: "logs"})
	require.NoError(t, err)
	return tree
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	tree := testTree(t)

	require.NoError(t, repo.Save(ctx, "win-1", tree))

	got, err := repo.Load(ctx, "win-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(tree), "loaded layout must round-trip")
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	tree := testTree(t)

	require.NoError(t, repo.Save(ctx, "win-1", tree))

	smaller := tree.RemoveTab("b")
	require.NoError(t, repo.Save(ctx, "win-1", smaller))

	got, err := repo.Load(ctx, "win-1")
	require.NoError(t, err)
	assert.True(t, got.Equal(smaller))

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].Panels)
	assert.Equal(t, 1, infos[0].Tabs)
}

func TestSnapshotLoadMissing(t *testing.T) {
	repo := testRepo(t)

	got, err := repo.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotList(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "win-1", testTree(t)))
	require.NoError(t, repo.Save(ctx, "win-2", layout.NewTree("q1", layout.Tab{ID: "z", Title: "t"})))

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
}

func TestSnapshotDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "win-1", testTree(t)))
	require.NoError(t, repo.Delete(ctx, "win-1"))

	got, err := repo.Load(ctx, "win-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is not an error.
	require.NoError(t, repo.Delete(ctx, "win-1"))
}

func TestSnapshotRejectsInvalidTree(t *testing.T) {
	repo := testRepo(t)

	broken := &layout.Tree{Root: layout.NewLeaf(&layout.Panel{ID: "p1", Tabs: []layout.Tab{{ID: "a"}}, Active: 9})}
	require.Error(t, repo.Save(context.Background(), "win-1", broken))
}
