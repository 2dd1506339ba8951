package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertTiles checks the tiling invariant: panel rectangles exactly
// partition the container, no gaps and no overlaps beyond epsilon.
func assertTiles(t *testing.T, container Rect, bounds map[PanelID]Rect) {
	t.Helper()
	const eps = 1e-9

	var area float64
	rects := make([]Rect, 0, len(bounds))
	for id, r := range bounds {
		assert.GreaterOrEqual(t, r.X, container.X-eps, "panel %s left of container", id)
		assert.GreaterOrEqual(t, r.Y, container.Y-eps, "panel %s above container", id)
		assert.LessOrEqual(t, r.X+r.Width, container.X+container.Width+eps, "panel %s past right edge", id)
		assert.LessOrEqual(t, r.Y+r.Height, container.Y+container.Height+eps, "panel %s past bottom edge", id)
		area += r.Width * r.Height
		rects = append(rects, r)
	}
	assert.InDelta(t, container.Width*container.Height, area, 1e-6, "panel areas must sum to container area")

	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			overlapW := math.Min(rects[i].X+rects[i].Width, rects[j].X+rects[j].Width) - math.Max(rects[i].X, rects[j].X)
			overlapH := math.Min(rects[i].Y+rects[i].Height, rects[j].Y+rects[j].Height) - math.Max(rects[i].Y, rects[j].Y)
			if overlapW > eps && overlapH > eps {
				t.Errorf("rectangles %v and %v overlap", rects[i], rects[j])
			}
		}
	}
}

func TestBoundsSingleLeafFillsContainer(t *testing.T) {
	tree := NewTree("p1", tb("a"))
	container := Rect{Width: 800, Height: 600}

	bounds := tree.Bounds(container)
	require.Len(t, bounds, 1)
	assert.Equal(t, container, bounds["p1"])
}

func TestBoundsHorizontalSplit(t *testing.T) {
	tree := &Tree{Root: mustSplit(t, Horizontal, []float64{0.25, 0.75},
		leafPanel("p1", tb("a")),
		leafPanel("p2", tb("b")),
	)}
	bounds := tree.Bounds(Rect{Width: 800, Height: 600})

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 600}, bounds["p1"])
	assert.Equal(t, Rect{X: 200, Y: 0, Width: 600, Height: 600}, bounds["p2"])
}

func TestBoundsVerticalSplit(t *testing.T) {
	tree := &Tree{Root: mustSplit(t, Vertical, []float64{0.5, 0.5},
		leafPanel("p1", tb("a")),
		leafPanel("p2", tb("b")),
	)}
	bounds := tree.Bounds(Rect{Width: 800, Height: 600})

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 800, Height: 300}, bounds["p1"])
	assert.Equal(t, Rect{X: 0, Y: 300, Width: 800, Height: 300}, bounds["p2"])
}

func TestBoundsLastChildAbsorbsRemainder(t *testing.T) {
	// Ratios that do not divide the width evenly: the last child must end
	// exactly at the container edge.
	tree := &Tree{Root: mustSplit(t, Horizontal, []float64{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0},
		leafPanel("p1", tb("a")),
		leafPanel("p2", tb("b")),
		leafPanel("p3", tb("c")),
	)}
	container := Rect{Width: 1000, Height: 400}
	bounds := tree.Bounds(container)

	last := bounds["p3"]
	assert.Equal(t, container.Width, last.X+last.Width)
	assertTiles(t, container, bounds)
}

func TestBoundsTilingInvariantNestedTrees(t *testing.T) {
	trees := map[string]*Tree{
		"two deep": {Root: mustSplit(t, Horizontal, []float64{0.5, 0.5},
			leafPanel("p1", tb("a")),
			mustSplit(t, Vertical, []float64{0.3, 0.7},
				leafPanel("p2", tb("b")),
				leafPanel("p3", tb("c")),
			),
		)},
		"three deep uneven": {Root: mustSplit(t, Vertical, []float64{0.2, 0.8},
			leafPanel("p1", tb("a")),
			mustSplit(t, Horizontal, []float64{0.6, 0.4},
				mustSplit(t, Vertical, []float64{0.5, 0.5},
					leafPanel("p2", tb("b")),
					leafPanel("p3", tb("c")),
				),
				leafPanel("p4", tb("d")),
			),
		)},
		"same-direction nesting": {Root: mustSplit(t, Horizontal, []float64{0.5, 0.5},
			leafPanel("p1", tb("a")),
			mustSplit(t, Horizontal, []float64{0.5, 0.5},
				leafPanel("p2", tb("b")),
				leafPanel("p3", tb("c")),
			),
		)},
	}
	containers := []Rect{
		{Width: 800, Height: 600},
		{Width: 1920, Height: 1080},
		{X: 10, Y: 20, Width: 333, Height: 777},
		{Width: 1, Height: 1},
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			for _, container := range containers {
				bounds := tree.Bounds(container)
				require.Len(t, bounds, len(tree.Panels()))
				assertTiles(t, container, bounds)
			}
		})
	}
}

func TestBoundsEmptyTree(t *testing.T) {
	bounds := (&Tree{}).Bounds(Rect{Width: 800, Height: 600})
	assert.Empty(t, bounds)
}

func TestRectContainsEdgeConvention(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}

	assert.True(t, r.Contains(Point{X: 10, Y: 10}), "top-left corner is inside")
	assert.False(t, r.Contains(Point{X: 110, Y: 30}), "right edge is outside")
	assert.False(t, r.Contains(Point{X: 50, Y: 60}), "bottom edge is outside")
	assert.True(t, r.Contains(Point{X: 109.999, Y: 59.999}))
}
