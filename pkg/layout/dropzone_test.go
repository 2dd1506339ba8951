package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneAtHeader(t *testing.T) {
	panel := &Panel{ID: "p1", Tabs: []Tab{tb("a"), tb("b"), tb("c"), tb("d")}}
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 300}
	m := DefaultMetrics()

	tests := []struct {
		name      string
		pt        Point
		wantIndex int
	}{
		{name: "far left", pt: Point{X: 0, Y: 10}, wantIndex: 0},
		{name: "middle of first slot", pt: Point{X: 49, Y: 10}, wantIndex: 0},
		{name: "first boundary", pt: Point{X: 51, Y: 10}, wantIndex: 1},
		{name: "second boundary", pt: Point{X: 199, Y: 10}, wantIndex: 2},
		{name: "far right clamps to tab count", pt: Point{X: 399, Y: 10}, wantIndex: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, ok := ZoneAt(panel, bounds, m, tt.pt)
			require.True(t, ok)
			assert.Equal(t, ZoneHeader, zone.Kind)
			assert.Equal(t, tt.wantIndex, zone.Index)
			assert.Equal(t, m.HeaderRect(bounds), zone.Highlight)
		})
	}
}

func TestZoneAtEmptyPanelBody(t *testing.T) {
	panel := &Panel{ID: "p1"}
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 300}
	m := DefaultMetrics()

	zone, ok := ZoneAt(panel, bounds, m, Point{X: 200, Y: 150})
	require.True(t, ok)
	assert.Equal(t, ZoneBody, zone.Kind)
	assert.Equal(t, m.BodyRect(bounds), zone.Highlight)
}

func TestZoneAtEdges(t *testing.T) {
	panel := &Panel{ID: "p1", Tabs: []Tab{tb("a")}}
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 430}
	m := DefaultMetrics()
	// Body is y in [30, 430), so 400x400. Hover bands are 100 units deep.

	tests := []struct {
		name string
		pt   Point
		want ZoneKind
	}{
		{name: "left band", pt: Point{X: 50, Y: 230}, want: ZoneLeft},
		{name: "right band", pt: Point{X: 350, Y: 230}, want: ZoneRight},
		{name: "top band", pt: Point{X: 200, Y: 80}, want: ZoneTop},
		{name: "bottom band", pt: Point{X: 200, Y: 380}, want: ZoneBottom},
		{name: "corner resolves horizontal first", pt: Point{X: 50, Y: 50}, want: ZoneLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, ok := ZoneAt(panel, bounds, m, tt.pt)
			require.True(t, ok)
			assert.Equal(t, tt.want, zone.Kind)
		})
	}

	t.Run("center yields no zone", func(t *testing.T) {
		_, ok := ZoneAt(panel, bounds, m, Point{X: 200, Y: 230})
		assert.False(t, ok)
	})

	t.Run("outside panel yields no zone", func(t *testing.T) {
		_, ok := ZoneAt(panel, bounds, m, Point{X: 500, Y: 230})
		assert.False(t, ok)
	})
}

// TestZonePartition sweeps the body on a grid: every point must classify to
// exactly one zone or to the unclassified center, and the exact geometric
// center must classify to nothing.
func TestZonePartition(t *testing.T) {
	panel := &Panel{ID: "p1", Tabs: []Tab{tb("a")}}
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 430}
	m := DefaultMetrics()
	body := m.BodyRect(bounds)

	counts := map[ZoneKind]int{}
	center := 0
	const step = 7.0
	for x := body.X; x < body.X+body.Width; x += step {
		for y := body.Y; y < body.Y+body.Height; y += step {
			zone, ok := ZoneAt(panel, bounds, m, Point{X: x, Y: y})
			if !ok {
				center++
				continue
			}
			counts[zone.Kind]++
			assert.NotEqual(t, ZoneBody, zone.Kind, "populated panel must not yield body zone")
		}
	}
	for _, kind := range []ZoneKind{ZoneLeft, ZoneRight, ZoneTop, ZoneBottom} {
		assert.Positive(t, counts[kind], "zone %s never hit", kind)
	}
	assert.Positive(t, center, "central area never hit")

	_, ok := ZoneAt(panel, bounds, m, Point{
		X: body.X + body.Width/2,
		Y: body.Y + body.Height/2,
	})
	assert.False(t, ok, "geometric center of the body must yield no edge zone")
}

func TestZoneHighlightRects(t *testing.T) {
	panel := &Panel{ID: "p1", Tabs: []Tab{tb("a")}}
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 430}
	m := DefaultMetrics()
	body := m.BodyRect(bounds)

	zone, ok := ZoneAt(panel, bounds, m, Point{X: 10, Y: 230})
	require.True(t, ok)
	require.Equal(t, ZoneLeft, zone.Kind)
	// Hover band is 25% of the width, highlight half of that.
	assert.Equal(t, Rect{X: body.X, Y: body.Y, Width: 50, Height: body.Height}, zone.Highlight)

	zone, ok = ZoneAt(panel, bounds, m, Point{X: 200, Y: 420})
	require.True(t, ok)
	require.Equal(t, ZoneBottom, zone.Kind)
	assert.Equal(t, Rect{X: body.X, Y: body.Y + body.Height - 50, Width: body.Width, Height: 50}, zone.Highlight)
}

func TestHeaderRectClampsToPanelHeight(t *testing.T) {
	m := DefaultMetrics()
	short := Rect{X: 0, Y: 0, Width: 100, Height: 20}

	header := m.HeaderRect(short)
	assert.Equal(t, 20.0, header.Height)
	body := m.BodyRect(short)
	assert.Equal(t, 0.0, body.Height)
}
