// Package layout implements the multi-panel tab layout engine: a window's
// content area modeled as a recursively split tree of panels, each panel
// holding an ordered list of tabs. The package computes pixel geometry for
// every panel, classifies pointer positions into drop zones, tracks drag
// gestures, and rewrites the tree in response to drops.
//
// All tree operations are pure: they take a *Tree and return a new *Tree,
// never mutating the input. The caller owns "the current tree" and replaces
// it wholesale with each result. The package performs no I/O and no logging.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// TabID uniquely identifies a tab across the whole tree.
type TabID string

// PanelID uniquely identifies a panel across the whole tree.
type PanelID string

// Tab is an immutable leaf unit of content. SessionRef is an opaque handle
// to externally-owned content (conventionally a backend session number);
// the engine never interprets it.
type Tab struct {
	ID         TabID
	Title      string
	SessionRef int64
}

// Panel holds an ordered list of tabs plus the index of the active tab.
// A panel with zero tabs is a transient state that the restructurer prunes;
// it only survives long enough to act as a body drop target.
type Panel struct {
	ID     PanelID
	Tabs   []Tab
	Active int
}

// TabIndex returns the position of the tab with the given id, or -1.
func (p *Panel) TabIndex(id TabID) int {
	for i, tab := range p.Tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

// ActiveTab returns the active tab, or false if the panel is empty.
func (p *Panel) ActiveTab() (Tab, bool) {
	if len(p.Tabs) == 0 {
		return Tab{}, false
	}
	idx := p.Active
	if idx < 0 || idx >= len(p.Tabs) {
		idx = 0
	}
	return p.Tabs[idx], true
}

// clone returns a deep copy of the panel.
func (p *Panel) clone() *Panel {
	cp := *p
	cp.Tabs = append([]Tab(nil), p.Tabs...)
	return &cp
}

// Direction is the axis along which a split divides its rectangle.
type Direction string

const (
	// Horizontal splits divide width: children sit side by side.
	Horizontal Direction = "horizontal"
	// Vertical splits divide height: children stack top to bottom.
	Vertical Direction = "vertical"
)

// ratioTolerance bounds the acceptable drift of a split's ratio sum from 1.
const ratioTolerance = 1e-6

// Node is one position in the layout tree: either a leaf holding a panel, or
// a split dividing its rectangle among two or more children by ratio. A node
// is a leaf exactly when Panel is non-nil.
type Node struct {
	Panel *Panel

	Dir      Direction
	Children []*Node
	Ratios   []float64
}

// IsLeaf reports whether the node holds a panel rather than a split.
func (n *Node) IsLeaf() bool { return n.Panel != nil }

// NewLeaf wraps a panel in a leaf node.
func NewLeaf(panel *Panel) *Node {
	return &Node{Panel: panel}
}

// NewSplit builds a split node. It rejects fewer than two children, a ratio
// count that does not match the child count, non-positive ratios, and ratio
// sums that drift from 1 beyond tolerance. These are programming errors in
// the caller, not runtime conditions.
func NewSplit(dir Direction, children []*Node, ratios []float64) (*Node, error) {
	if dir != Horizontal && dir != Vertical {
		return nil, fmt.Errorf("layout: invalid split direction %q", dir)
	}
	if len(children) < 2 {
		return nil, fmt.Errorf("layout: split requires at least 2 children, got %d", len(children))
	}
	if len(ratios) != len(children) {
		return nil, fmt.Errorf("layout: ratio count %d does not match child count %d", len(ratios), len(children))
	}
	sum := 0.0
	for _, r := range ratios {
		if r <= 0 {
			return nil, fmt.Errorf("layout: split ratio %v is not positive", r)
		}
		sum += r
	}
	if math.Abs(sum-1.0) > ratioTolerance {
		return nil, fmt.Errorf("layout: split ratios sum to %v, want 1", sum)
	}
	return &Node{
		Dir:      dir,
		Children: append([]*Node(nil), children...),
		Ratios:   append([]float64(nil), ratios...),
	}, nil
}

// clone returns a deep copy of the subtree.
func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return NewLeaf(n.Panel.clone())
	}
	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.clone()
	}
	return &Node{
		Dir:      n.Dir,
		Children: children,
		Ratios:   append([]float64(nil), n.Ratios...),
	}
}

// Tree is the panel hierarchy of one window. A nil Root is the explicit
// empty state left behind when the last tab of the last panel is removed;
// the caller must handle it (typically by closing the window).
type Tree struct {
	Root *Node
}

// NewTree creates the initial tree for a window: a single panel wrapping the
// given tab.
func NewTree(panelID PanelID, tab Tab) *Tree {
	return &Tree{Root: NewLeaf(&Panel{ID: panelID, Tabs: []Tab{tab}, Active: 0})}
}

// Empty reports whether the tree holds no panels at all.
func (t *Tree) Empty() bool { return t == nil || t.Root == nil }

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t.Empty() {
		return &Tree{}
	}
	return &Tree{Root: t.Root.clone()}
}

// FindPanel returns the panel with the given id.
func (t *Tree) FindPanel(id PanelID) (*Panel, bool) {
	for _, p := range t.Panels() {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// FindPanelWithTab returns the panel whose tab list contains the given tab.
func (t *Tree) FindPanelWithTab(id TabID) (*Panel, bool) {
	for _, p := range t.Panels() {
		if p.TabIndex(id) >= 0 {
			return p, true
		}
	}
	return nil, false
}

// Panels returns every panel in the tree, left to right, depth first. The
// order is load-bearing: drag hit-testing resolves ties by taking the first
// panel in this order.
func (t *Tree) Panels() []*Panel {
	if t.Empty() {
		return nil
	}
	var panels []*Panel
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			panels = append(panels, n.Panel)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.Root)
	return panels
}

// Tabs returns every tab across all panels, in panel traversal order.
func (t *Tree) Tabs() []Tab {
	var tabs []Tab
	for _, p := range t.Panels() {
		tabs = append(tabs, p.Tabs...)
	}
	return tabs
}

// RemoveTab returns a new tree with the tab removed from whichever panel
// holds it. If the removal empties the panel, the panel is pruned and any
// single-child split it leaves behind collapses, cascading upward. Removing
// the only tab of the only panel yields the explicit empty tree. An unknown
// tab id returns the tree unchanged.
func (t *Tree) RemoveTab(id TabID) *Tree {
	if t.Empty() {
		return &Tree{}
	}
	if _, ok := t.FindPanelWithTab(id); !ok {
		return t
	}
	return &Tree{Root: removeTabFrom(t.Root, id)}
}

// removeTabFrom rewrites the subtree without the given tab, returning nil
// when the whole subtree prunes away.
func removeTabFrom(n *Node, id TabID) *Node {
	if n.IsLeaf() {
		idx := n.Panel.TabIndex(id)
		if idx < 0 {
			return n.clone()
		}
		panel := n.Panel.clone()
		panel.Tabs = append(panel.Tabs[:idx], panel.Tabs[idx+1:]...)
		if len(panel.Tabs) == 0 {
			return nil
		}
		panel.Active = clampActive(panel.Active, idx, len(panel.Tabs))
		return NewLeaf(panel)
	}

	children := make([]*Node, 0, len(n.Children))
	ratios := make([]float64, 0, len(n.Ratios))
	for i, c := range n.Children {
		rewritten := removeTabFrom(c, id)
		if rewritten == nil {
			continue
		}
		children = append(children, rewritten)
		ratios = append(ratios, n.Ratios[i])
	}
	switch len(children) {
	case 0:
		return nil
	case 1:
		// Single-child splits collapse to the child.
		return children[0]
	default:
		return &Node{Dir: n.Dir, Children: children, Ratios: normalizeRatios(ratios)}
	}
}

// clampActive adjusts a panel's active index after removing the tab at
// removed, keeping it inside the shrunk tab list.
func clampActive(active, removed, count int) int {
	if removed < active {
		active--
	}
	if active >= count {
		active = count - 1
	}
	if active < 0 {
		active = 0
	}
	return active
}

// normalizeRatios rescales ratios so they sum to 1 after a child was pruned.
func normalizeRatios(ratios []float64) []float64 {
	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	if sum <= 0 {
		even := make([]float64, len(ratios))
		for i := range even {
			even[i] = 1.0 / float64(len(ratios))
		}
		return even
	}
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		out[i] = r / sum
	}
	return out
}

// UpdatePanel returns a new tree with the named panel replaced by
// transform(panel). The transform receives a copy and returns the panel to
// store. If the panel is not found the tree is returned unchanged.
func (t *Tree) UpdatePanel(id PanelID, transform func(Panel) Panel) *Tree {
	if t.Empty() {
		return &Tree{}
	}
	if _, ok := t.FindPanel(id); !ok {
		return t
	}
	var rewrite func(*Node) *Node
	rewrite = func(n *Node) *Node {
		if n.IsLeaf() {
			if n.Panel.ID != id {
				return n.clone()
			}
			updated := transform(*n.Panel.clone())
			return NewLeaf(&updated)
		}
		children := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = rewrite(c)
		}
		return &Node{Dir: n.Dir, Children: children, Ratios: append([]float64(nil), n.Ratios...)}
	}
	return &Tree{Root: rewrite(t.Root)}
}

// ActivateTab returns a new tree with the given tab made active within its
// panel. Unknown tab ids leave the tree unchanged.
func (t *Tree) ActivateTab(id TabID) *Tree {
	panel, ok := t.FindPanelWithTab(id)
	if !ok {
		return t
	}
	return t.UpdatePanel(panel.ID, func(p Panel) Panel {
		p.Active = p.TabIndex(id)
		return p
	})
}

// Equal reports structural equality: same shape, directions, ratios (within
// tolerance), panel and tab ids, tab order, and active indices.
func (t *Tree) Equal(other *Tree) bool {
	return nodesEqual(treeRoot(t), treeRoot(other))
}

func treeRoot(t *Tree) *Node {
	if t == nil {
		return nil
	}
	return t.Root
}

func nodesEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		return panelsEqual(a.Panel, b.Panel)
	}
	if a.Dir != b.Dir || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if math.Abs(a.Ratios[i]-b.Ratios[i]) > ratioTolerance {
			return false
		}
		if !nodesEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func panelsEqual(a, b *Panel) bool {
	if a.ID != b.ID || a.Active != b.Active || len(a.Tabs) != len(b.Tabs) {
		return false
	}
	for i := range a.Tabs {
		if a.Tabs[i] != b.Tabs[i] {
			return false
		}
	}
	return true
}

// Validate checks every tree invariant: split arity and ratio consistency,
// unique panel ids, unique tab ids, and active indices within range. Decoded
// trees are validated before use.
func (t *Tree) Validate() error {
	if t.Empty() {
		return nil
	}
	panelIDs := make(map[PanelID]struct{})
	tabIDs := make(map[TabID]struct{})
	var check func(*Node) error
	check = func(n *Node) error {
		if n == nil {
			return errors.New("layout: nil node")
		}
		if n.IsLeaf() {
			p := n.Panel
			if p.ID == "" {
				return errors.New("layout: panel with empty id")
			}
			if _, dup := panelIDs[p.ID]; dup {
				return fmt.Errorf("layout: duplicate panel id %q", p.ID)
			}
			panelIDs[p.ID] = struct{}{}
			for _, tab := range p.Tabs {
				if tab.ID == "" {
					return fmt.Errorf("layout: panel %q has tab with empty id", p.ID)
				}
				if _, dup := tabIDs[tab.ID]; dup {
					return fmt.Errorf("layout: duplicate tab id %q", tab.ID)
				}
				tabIDs[tab.ID] = struct{}{}
			}
			if len(p.Tabs) > 0 && (p.Active < 0 || p.Active >= len(p.Tabs)) {
				return fmt.Errorf("layout: panel %q active index %d out of range [0,%d)", p.ID, p.Active, len(p.Tabs))
			}
			if len(p.Tabs) == 0 && p.Active != 0 {
				return fmt.Errorf("layout: empty panel %q has nonzero active index %d", p.ID, p.Active)
			}
			return nil
		}
		if _, err := NewSplit(n.Dir, n.Children, n.Ratios); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(t.Root)
}
