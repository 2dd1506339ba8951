package layout

// Geometry uses a top-left origin with y growing downward, the same
// convention the drop-zone classifier expects. Units are whatever the host
// supplies (typically logical pixels); the engine never converts them.

// Point is a pointer position in container coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in container coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the rectangle. The left and
// top edges are inclusive, the right and bottom edges exclusive, so adjacent
// rectangles never both claim a shared edge.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X < r.X+r.Width &&
		pt.Y >= r.Y && pt.Y < r.Y+r.Height
}

// Bounds computes the rectangle of every panel by recursive subdivision of
// the container. A leaf occupies its whole rectangle; a split divides its
// rectangle along its axis proportionally to its ratios. The last child of
// every split absorbs the floating-point remainder so children exactly tile
// the parent with no rounding gap.
func (t *Tree) Bounds(container Rect) map[PanelID]Rect {
	bounds := make(map[PanelID]Rect)
	if t.Empty() {
		return bounds
	}
	assignBounds(t.Root, container, bounds)
	return bounds
}

func assignBounds(n *Node, rect Rect, out map[PanelID]Rect) {
	if n.IsLeaf() {
		out[n.Panel.ID] = rect
		return
	}

	offset := 0.0
	total := rect.Width
	if n.Dir == Vertical {
		total = rect.Height
	}
	for i, child := range n.Children {
		extent := total * n.Ratios[i]
		if i == len(n.Children)-1 {
			extent = total - offset
		}
		childRect := rect
		if n.Dir == Horizontal {
			childRect.X = rect.X + offset
			childRect.Width = extent
		} else {
			childRect.Y = rect.Y + offset
			childRect.Height = extent
		}
		assignBounds(child, childRect, out)
		offset += extent
	}
}
