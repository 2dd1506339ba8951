package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPanelTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{Root: mustSplit(t, Horizontal, []float64{0.5, 0.5},
		leafPanel("p1", tb("a")),
		leafPanel("p2", tb("b")),
	)}
}

func TestDragSessionLifecycle(t *testing.T) {
	container := Rect{Width: 800, Height: 600}
	tree := twoPanelTree(t)

	s := NewDragSession(DefaultMetrics())
	require.Equal(t, DragIdle, s.Phase())

	require.NoError(t, s.Start(tb("a"), "p1"))
	require.Equal(t, DragActive, s.Phase())
	assert.Equal(t, TabID("a"), s.Tab().ID)
	assert.Equal(t, PanelID("p1"), s.Source())

	// Hover over p2's header.
	_, ok, err := s.Update(Point{X: 600, Y: 10}, tree, container)
	require.NoError(t, err)
	require.True(t, ok)

	drop, ok, err := s.End()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Drop{Tab: "a", Target: "p2", Kind: ZoneHeader, Index: 1}, drop)
	assert.Equal(t, DragEnded, s.Phase())
}

func TestDragSessionIllegalTransitions(t *testing.T) {
	container := Rect{Width: 800, Height: 600}
	tree := twoPanelTree(t)

	t.Run("update before start", func(t *testing.T) {
		s := NewDragSession(DefaultMetrics())
		_, _, err := s.Update(Point{}, tree, container)
		require.ErrorIs(t, err, ErrDragPhase)
	})

	t.Run("end before start", func(t *testing.T) {
		s := NewDragSession(DefaultMetrics())
		_, _, err := s.End()
		require.ErrorIs(t, err, ErrDragPhase)
	})

	t.Run("double start", func(t *testing.T) {
		s := NewDragSession(DefaultMetrics())
		require.NoError(t, s.Start(tb("a"), "p1"))
		require.ErrorIs(t, s.Start(tb("b"), "p2"), ErrDragPhase)
	})

	t.Run("no transition out of ended", func(t *testing.T) {
		s := NewDragSession(DefaultMetrics())
		require.NoError(t, s.Start(tb("a"), "p1"))
		_, _, err := s.End()
		require.NoError(t, err)

		require.ErrorIs(t, s.Start(tb("a"), "p1"), ErrDragPhase)
		_, _, err = s.Update(Point{}, tree, container)
		require.ErrorIs(t, err, ErrDragPhase)
		require.ErrorIs(t, s.Cancel(), ErrDragPhase)
	})
}

func TestDragSessionCancel(t *testing.T) {
	container := Rect{Width: 800, Height: 600}
	tree := twoPanelTree(t)

	s := NewDragSession(DefaultMetrics())
	require.NoError(t, s.Start(tb("a"), "p1"))
	_, ok, err := s.Update(Point{X: 600, Y: 10}, tree, container)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Cancel())
	assert.Equal(t, DragIdle, s.Phase())
	_, _, hovering := s.Hover()
	assert.False(t, hovering)

	// A cancelled session can start a fresh gesture.
	require.NoError(t, s.Start(tb("b"), "p2"))
}

func TestDragSessionHoverTracking(t *testing.T) {
	container := Rect{Width: 800, Height: 600}
	tree := twoPanelTree(t)

	s := NewDragSession(DefaultMetrics())
	require.NoError(t, s.Start(tb("a"), "p1"))

	t.Run("edge zone hover", func(t *testing.T) {
		// p2 spans x in [400,800); its left hover band starts at 400.
		zone, ok, err := s.Update(Point{X: 420, Y: 300}, tree, container)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ZoneLeft, zone.Kind)

		panelID, _, hovering := s.Hover()
		assert.True(t, hovering)
		assert.Equal(t, PanelID("p2"), panelID)
	})

	t.Run("central area clears hover", func(t *testing.T) {
		_, ok, err := s.Update(Point{X: 600, Y: 300}, tree, container)
		require.NoError(t, err)
		assert.False(t, ok)
		_, _, hovering := s.Hover()
		assert.False(t, hovering)
	})

	t.Run("pointer outside container clears hover", func(t *testing.T) {
		_, ok, err := s.Update(Point{X: -50, Y: -50}, tree, container)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("release without hover yields no decision", func(t *testing.T) {
		_, ok, err := s.End()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDragSessionFirstPanelInTraversalOrderWins(t *testing.T) {
	// Two panels share the edge at x=400. The point exactly on the edge
	// belongs to p2 by the contains convention, and hit-testing must stop
	// at the first matching panel in traversal order.
	container := Rect{Width: 800, Height: 600}
	tree := twoPanelTree(t)

	s := NewDragSession(DefaultMetrics())
	require.NoError(t, s.Start(tb("a"), "p1"))

	zone, ok, err := s.Update(Point{X: 400, Y: 10}, tree, container)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ZoneHeader, zone.Kind)

	panelID, _, _ := s.Hover()
	assert.Equal(t, PanelID("p2"), panelID)
}
