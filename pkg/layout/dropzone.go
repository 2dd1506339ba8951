package layout

import "math"

// ZoneKind classifies where within a panel a drop would land.
type ZoneKind string

const (
	// ZoneHeader inserts the tab into the target panel's tab order.
	ZoneHeader ZoneKind = "header"
	// ZoneBody fills an empty panel with the dropped tab.
	ZoneBody ZoneKind = "body"
	// ZoneLeft, ZoneRight, ZoneTop and ZoneBottom split the target panel
	// along the implied axis, placing the dropped tab in a fresh panel.
	ZoneLeft   ZoneKind = "left"
	ZoneRight  ZoneKind = "right"
	ZoneTop    ZoneKind = "top"
	ZoneBottom ZoneKind = "bottom"
)

// Metrics holds the tunable geometry constants of the engine. Values come
// from host configuration; DefaultMetrics matches the host's defaults.
type Metrics struct {
	// HeaderHeight is the height of the tab header strip at the top of
	// every panel rectangle.
	HeaderHeight float64
	// HoverRatio is the fraction of the body's relevant dimension, from
	// each edge, that counts as an edge drop band.
	HoverRatio float64
	// HighlightRatio scales the hover band down to the highlight rectangle
	// reported for UI feedback. It has no effect on classification.
	HighlightRatio float64
	// SplitRatio is the share given to the freshly created panel on an
	// edge drop.
	SplitRatio float64
}

// DefaultMetrics returns the engine's stock geometry constants.
func DefaultMetrics() Metrics {
	return Metrics{
		HeaderHeight:   30,
		HoverRatio:     0.25,
		HighlightRatio: 0.5,
		SplitRatio:     0.5,
	}
}

// DropZone describes the drop target under the pointer: its kind, a
// highlight rectangle for UI feedback, and, for header zones, the insertion
// index into the target panel's tab order. Produced fresh on every
// pointer move and never persisted.
type DropZone struct {
	Kind      ZoneKind
	Highlight Rect
	Index     int
}

// HeaderRect returns the header strip carved from the top of a panel
// rectangle. The strip never exceeds the panel's own height.
func (m Metrics) HeaderRect(panel Rect) Rect {
	h := math.Min(m.HeaderHeight, panel.Height)
	return Rect{X: panel.X, Y: panel.Y, Width: panel.Width, Height: h}
}

// BodyRect returns the panel rectangle minus the header strip.
func (m Metrics) BodyRect(panel Rect) Rect {
	header := m.HeaderRect(panel)
	return Rect{
		X:      panel.X,
		Y:      panel.Y + header.Height,
		Width:  panel.Width,
		Height: panel.Height - header.Height,
	}
}

// ZoneAt classifies a pointer position against a panel's geometry. It
// reports false when the pointer misses the panel entirely or sits in the
// central body area of a populated panel, which accepts no drop.
//
// Priority: header first, then the empty-panel body, then the four edge
// hover bands (left, right, top, bottom — checked in that order, so a
// pointer in an overlapping corner resolves to the horizontal band).
func ZoneAt(panel *Panel, bounds Rect, m Metrics, pt Point) (DropZone, bool) {
	header := m.HeaderRect(bounds)
	body := m.BodyRect(bounds)

	if header.Contains(pt) {
		return DropZone{
			Kind:      ZoneHeader,
			Highlight: header,
			Index:     headerSlotIndex(panel, header, pt),
		}, true
	}

	if !body.Contains(pt) {
		return DropZone{}, false
	}

	if len(panel.Tabs) == 0 {
		return DropZone{Kind: ZoneBody, Highlight: body}, true
	}

	hoverW := body.Width * m.HoverRatio
	hoverH := body.Height * m.HoverRatio
	highlightW := hoverW * m.HighlightRatio
	highlightH := hoverH * m.HighlightRatio

	switch {
	case pt.X < body.X+hoverW:
		return DropZone{
			Kind:      ZoneLeft,
			Highlight: Rect{X: body.X, Y: body.Y, Width: highlightW, Height: body.Height},
		}, true
	case pt.X >= body.X+body.Width-hoverW:
		return DropZone{
			Kind:      ZoneRight,
			Highlight: Rect{X: body.X + body.Width - highlightW, Y: body.Y, Width: highlightW, Height: body.Height},
		}, true
	case pt.Y < body.Y+hoverH:
		return DropZone{
			Kind:      ZoneTop,
			Highlight: Rect{X: body.X, Y: body.Y, Width: body.Width, Height: highlightH},
		}, true
	case pt.Y >= body.Y+body.Height-hoverH:
		return DropZone{
			Kind:      ZoneBottom,
			Highlight: Rect{X: body.X, Y: body.Y + body.Height - highlightH, Width: body.Width, Height: highlightH},
		}, true
	default:
		// Central area of a populated panel: no drop here.
		return DropZone{}, false
	}
}

// headerSlotIndex maps the pointer's horizontal offset within the header to
// the nearest tab-slot boundary, clamped to [0, tabCount].
func headerSlotIndex(panel *Panel, header Rect, pt Point) int {
	count := len(panel.Tabs)
	if count == 0 || header.Width <= 0 {
		return 0
	}
	slotWidth := header.Width / float64(count)
	idx := int(math.Round((pt.X - header.X) / slotWidth))
	if idx < 0 {
		idx = 0
	}
	if idx > count {
		idx = count
	}
	return idx
}
