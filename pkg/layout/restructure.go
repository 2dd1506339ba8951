package layout

import (
	"fmt"
)

// Restructurer rewrites trees in response to resolved drops. It is pure:
// every method takes the prior tree and returns a new one, leaving the input
// untouched.
type Restructurer struct {
	// SplitRatio is the share given to the freshly created panel on an
	// edge drop or programmatic split.
	SplitRatio float64
}

// NewRestructurer builds a restructurer from the host's geometry metrics.
func NewRestructurer(m Metrics) *Restructurer {
	return &Restructurer{SplitRatio: m.SplitRatio}
}

// Restructure applies a drop decision with default metrics. Convenience for
// hosts that never tune the split ratio.
func Restructure(tree *Tree, tabID TabID, drop Drop) (*Tree, error) {
	return NewRestructurer(DefaultMetrics()).Restructure(tree, tabID, drop)
}

// Restructure produces the tree that results from dropping the given tab at
// the drop target. Drops that would leave the tab exactly where it started
// return the input tree unchanged. A drop referencing an unknown tab or
// panel, or a body drop on a populated panel, is a caller-side precondition
// violation reported as an error.
func (r *Restructurer) Restructure(tree *Tree, tabID TabID, drop Drop) (*Tree, error) {
	source, ok := tree.FindPanelWithTab(tabID)
	if !ok {
		return tree, fmt.Errorf("layout: dragged tab %q not in tree", tabID)
	}
	tab := source.Tabs[source.TabIndex(tabID)]
	target, ok := tree.FindPanel(drop.Target)
	if !ok {
		return tree, fmt.Errorf("layout: drop target panel %q not in tree", drop.Target)
	}

	switch drop.Kind {
	case ZoneHeader:
		return r.dropOnHeader(tree, tab, source, target, drop.Index), nil
	case ZoneBody:
		if len(target.Tabs) > 0 {
			return tree, fmt.Errorf("layout: body drop on populated panel %q", target.ID)
		}
		return r.dropOnBody(tree, tab, target), nil
	case ZoneLeft, ZoneRight, ZoneTop, ZoneBottom:
		return r.dropOnEdge(tree, tab, source, target, drop.Kind), nil
	default:
		return tree, fmt.Errorf("layout: unknown drop zone kind %q", drop.Kind)
	}
}

// dropOnHeader inserts the tab into the target panel's tab order at the
// requested slot, handling the same-panel reorder case where the removal of
// the tab shifts its own insertion index.
func (r *Restructurer) dropOnHeader(tree *Tree, tab Tab, source, target *Panel, index int) *Tree {
	if source.ID == target.ID {
		cur := source.TabIndex(tab.ID)
		adjusted := clampIndex(index, len(source.Tabs))
		if adjusted > cur {
			// The tab's own slot vanishes when it is lifted out, so a
			// rightward move lands one slot earlier.
			adjusted--
		}
		if adjusted == cur {
			return tree
		}
		return tree.UpdatePanel(target.ID, func(p Panel) Panel {
			tabs := append([]Tab(nil), p.Tabs[:cur]...)
			tabs = append(tabs, p.Tabs[cur+1:]...)
			p.Tabs = insertTab(tabs, adjusted, tab)
			p.Active = adjusted
			return p
		})
	}

	removed := tree.RemoveTab(tab.ID)
	return removed.UpdatePanel(target.ID, func(p Panel) Panel {
		at := clampIndex(index, len(p.Tabs))
		p.Tabs = insertTab(p.Tabs, at, tab)
		p.Active = at
		return p
	})
}

// dropOnBody makes the tab the sole tab of an empty panel.
func (r *Restructurer) dropOnBody(tree *Tree, tab Tab, target *Panel) *Tree {
	removed := tree.RemoveTab(tab.ID)
	return removed.UpdatePanel(target.ID, func(p Panel) Panel {
		p.Tabs = []Tab{tab}
		p.Active = 0
		return p
	})
}

// dropOnEdge replaces the target leaf with a split between a fresh panel
// holding only the dragged tab and the original target panel.
func (r *Restructurer) dropOnEdge(tree *Tree, tab Tab, source, target *Panel, edge ZoneKind) *Tree {
	if source.ID == target.ID && len(source.Tabs) == 1 {
		// Splitting a panel off of itself with its only tab reproduces
		// the starting layout.
		return tree
	}

	removed := tree.RemoveTab(tab.ID)
	fresh := &Panel{ID: derivePanelID(removed, tab.ID), Tabs: []Tab{tab}, Active: 0}
	root := replaceLeaf(removed.Root, target.ID, func(old *Node) *Node {
		return r.splitLeaf(old, fresh, edge)
	})
	return &Tree{Root: root}
}

// SplitPanel splits an existing panel along the given edge, seeding the new
// panel with a tab that must not already exist in the tree. This is the
// programmatic, non-drag split used by host commands.
func (r *Restructurer) SplitPanel(tree *Tree, targetID PanelID, edge ZoneKind, newPanelID PanelID, tab Tab) (*Tree, error) {
	switch edge {
	case ZoneLeft, ZoneRight, ZoneTop, ZoneBottom:
	default:
		return tree, fmt.Errorf("layout: cannot split along zone kind %q", edge)
	}
	if _, exists := tree.FindPanelWithTab(tab.ID); exists {
		return tree, fmt.Errorf("layout: tab %q already in tree", tab.ID)
	}
	if _, exists := tree.FindPanel(newPanelID); exists {
		return tree, fmt.Errorf("layout: panel id %q already in tree", newPanelID)
	}
	if _, ok := tree.FindPanel(targetID); !ok {
		return tree, fmt.Errorf("layout: split target panel %q not in tree", targetID)
	}
	fresh := &Panel{ID: newPanelID, Tabs: []Tab{tab}, Active: 0}
	root := replaceLeaf(tree.Root, targetID, func(old *Node) *Node {
		return r.splitLeaf(old, fresh, edge)
	})
	return &Tree{Root: root}, nil
}

// splitLeaf builds the split node for an edge drop: left/top place the fresh
// panel first, right/bottom place it last. left/right split horizontally,
// top/bottom vertically.
func (r *Restructurer) splitLeaf(old *Node, fresh *Panel, edge ZoneKind) *Node {
	ratio := r.SplitRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}

	dir := Horizontal
	if edge == ZoneTop || edge == ZoneBottom {
		dir = Vertical
	}

	freshLeaf := NewLeaf(fresh)
	var children []*Node
	var ratios []float64
	if edge == ZoneLeft || edge == ZoneTop {
		children = []*Node{freshLeaf, old}
		ratios = []float64{ratio, 1 - ratio}
	} else {
		children = []*Node{old, freshLeaf}
		ratios = []float64{1 - ratio, ratio}
	}
	split, err := NewSplit(dir, children, ratios)
	if err != nil {
		// Unreachable: two children with complementary positive ratios.
		panic(err)
	}
	return split
}

// replaceLeaf rewrites the tree with the leaf holding the given panel
// replaced by build(leaf). Other nodes are deep-copied.
func replaceLeaf(n *Node, id PanelID, build func(old *Node) *Node) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.Panel.ID == id {
			return build(n.clone())
		}
		return n.clone()
	}
	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = replaceLeaf(c, id, build)
	}
	return &Node{Dir: n.Dir, Children: children, Ratios: append([]float64(nil), n.Ratios...)}
}

// derivePanelID produces a panel id not present in the tree, derived from
// the dragged tab's id so that results are deterministic.
func derivePanelID(tree *Tree, tab TabID) PanelID {
	base := PanelID("panel-" + string(tab))
	id := base
	for i := 2; ; i++ {
		if _, exists := tree.FindPanel(id); !exists {
			return id
		}
		id = PanelID(fmt.Sprintf("%s-%d", base, i))
	}
}

func clampIndex(idx, count int) int {
	if idx < 0 {
		return 0
	}
	if idx > count {
		return count
	}
	return idx
}

func insertTab(tabs []Tab, at int, tab Tab) []Tab {
	out := make([]Tab, 0, len(tabs)+1)
	out = append(out, tabs[:at]...)
	out = append(out, tab)
	out = append(out, tabs[at:]...)
	return out
}
