// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mosaic/internal/cli/styles"
	"github.com/bnema/mosaic/pkg/layout"
)

// The playground interacts with the engine in a fixed virtual container so
// that drop-zone geometry behaves like a real window regardless of the
// terminal size; only rendering uses terminal cells.
var virtualContainer = layout.Rect{Width: 1280, Height: 800}

// PlaygroundModel is the Bubble Tea model for the interactive layout
// playground. Every keystroke drives the real engine: splits and tab moves
// go through DragSession and the restructurer, never through ad-hoc tree
// edits.
type PlaygroundModel struct {
	tree    *layout.Tree
	metrics layout.Metrics
	theme   *styles.Theme

	help   help.Model
	keys   playKeyMap
	width  int
	height int

	active   int // index into tree.Panels()
	moveMode bool
	status   string
	tabSeq   int
	panelSeq int
}

// playKeyMap defines keybindings for the playground.
type playKeyMap struct {
	NewTab      key.Binding
	SplitRight  key.Binding
	SplitDown   key.Binding
	CloseTab    key.Binding
	NextPanel   key.Binding
	PrevTab     key.Binding
	NextTab     key.Binding
	Move        key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	MoveHeader  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultPlayKeys() playKeyMap {
	return playKeyMap{
		NewTab:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new tab")),
		SplitRight: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split right")),
		SplitDown:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "split down")),
		CloseTab:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close tab")),
		NextPanel:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		PrevTab:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev tab")),
		NextTab:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tab")),
		Move:       key.NewBinding(key.WithKeys("m", "esc"), key.WithHelp("m", "move mode")),
		MoveLeft:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "drop left")),
		MoveRight:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "drop right")),
		MoveUp:     key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "drop top")),
		MoveDown:   key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "drop bottom")),
		MoveHeader: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "drop on header")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k playKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewTab, k.SplitRight, k.SplitDown, k.CloseTab, k.NextPanel, k.Move, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k playKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewTab, k.SplitRight, k.SplitDown, k.CloseTab},
		{k.NextPanel, k.PrevTab, k.NextTab},
		{k.Move, k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown, k.MoveHeader},
		{k.Help, k.Quit},
	}
}

// NewPlayground creates a playground model seeded with the given tree, or a
// fresh single-panel tree when nil.
func NewPlayground(tree *layout.Tree, metrics layout.Metrics, theme *styles.Theme) PlaygroundModel {
	m := PlaygroundModel{
		metrics: metrics,
		theme:   theme,
		help:    help.New(),
		keys:    defaultPlayKeys(),
		status:  "welcome — press ? for help",
	}
	m.help.Styles.ShortKey = theme.HelpKey
	m.help.Styles.ShortDesc = theme.HelpDesc
	m.help.Styles.FullKey = theme.HelpKey
	m.help.Styles.FullDesc = theme.HelpDesc
	if tree == nil || tree.Empty() {
		m.tree = layout.NewTree("panel-1", layout.Tab{ID: "tab-1", Title: "tab-1"})
		m.tabSeq = 1
		m.panelSeq = 1
	} else {
		m.tree = tree
	}
	return m
}

// Tree returns the current tree; used by the play command to offer saving on
// exit and by tests.
func (m PlaygroundModel) Tree() *layout.Tree { return m.tree }

// Init implements tea.Model.
func (m PlaygroundModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m PlaygroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PlaygroundModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.moveMode {
		return m.handleMoveKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NewTab):
		m.addTab()
	case key.Matches(msg, m.keys.SplitRight):
		m.splitActive(layout.ZoneRight)
	case key.Matches(msg, m.keys.SplitDown):
		m.splitActive(layout.ZoneBottom)
	case key.Matches(msg, m.keys.CloseTab):
		m.closeActiveTab()
	case key.Matches(msg, m.keys.NextPanel):
		m.cyclePanel()
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.Move):
		if len(m.tree.Panels()) < 2 {
			m.status = "move needs at least two panels"
		} else {
			m.moveMode = true
			m.status = "move: h/j/k/l drop on next panel's edge, t on its header, m to leave"
		}
	}
	return m, nil
}

func (m PlaygroundModel) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Move):
		m.moveMode = false
		m.status = "move mode left"
	case key.Matches(msg, m.keys.MoveLeft):
		m.dropActiveTab(layout.ZoneLeft)
	case key.Matches(msg, m.keys.MoveRight):
		m.dropActiveTab(layout.ZoneRight)
	case key.Matches(msg, m.keys.MoveUp):
		m.dropActiveTab(layout.ZoneTop)
	case key.Matches(msg, m.keys.MoveDown):
		m.dropActiveTab(layout.ZoneBottom)
	case key.Matches(msg, m.keys.MoveHeader):
		m.dropActiveTab(layout.ZoneHeader)
	}
	return m, nil
}

func (m *PlaygroundModel) activePanel() (*layout.Panel, bool) {
	panels := m.tree.Panels()
	if len(panels) == 0 {
		return nil, false
	}
	if m.active >= len(panels) {
		m.active = len(panels) - 1
	}
	return panels[m.active], true
}

func (m *PlaygroundModel) nextTabID() layout.TabID {
	for {
		m.tabSeq++
		id := layout.TabID(fmt.Sprintf("tab-%d", m.tabSeq))
		if _, exists := m.tree.FindPanelWithTab(id); !exists {
			return id
		}
	}
}

func (m *PlaygroundModel) nextPanelID() layout.PanelID {
	for {
		m.panelSeq++
		id := layout.PanelID(fmt.Sprintf("panel-%d", m.panelSeq))
		if _, exists := m.tree.FindPanel(id); !exists {
			return id
		}
	}
}

func (m *PlaygroundModel) addTab() {
	panel, ok := m.activePanel()
	if !ok {
		m.tree = layout.NewTree("panel-1", layout.Tab{ID: m.nextTabID(), Title: "tab"})
		m.active = 0
		m.status = "started a fresh layout"
		return
	}
	id := m.nextTabID()
	m.tree = m.tree.UpdatePanel(panel.ID, func(p layout.Panel) layout.Panel {
		p.Tabs = append(p.Tabs, layout.Tab{ID: id, Title: string(id)})
		p.Active = len(p.Tabs) - 1
		return p
	})
	m.status = fmt.Sprintf("opened %s in %s", id, panel.ID)
}

func (m *PlaygroundModel) splitActive(edge layout.ZoneKind) {
	panel, ok := m.activePanel()
	if !ok {
		m.status = "layout is empty — press n"
		return
	}
	tabID := m.nextTabID()
	panelID := m.nextPanelID()
	next, err := layout.NewRestructurer(m.metrics).SplitPanel(
		m.tree, panel.ID, edge, panelID, layout.Tab{ID: tabID, Title: string(tabID)})
	if err != nil {
		m.status = err.Error()
		return
	}
	m.tree = next
	m.focusPanel(panelID)
	m.status = fmt.Sprintf("split %s, opened %s", panel.ID, tabID)
}

func (m *PlaygroundModel) closeActiveTab() {
	panel, ok := m.activePanel()
	if !ok {
		m.status = "layout is empty — press n"
		return
	}
	tab, ok := panel.ActiveTab()
	if !ok {
		return
	}
	m.tree = m.tree.RemoveTab(tab.ID)
	if m.tree.Empty() {
		m.active = 0
		m.status = "closed the last tab — press n to start over"
		return
	}
	m.status = fmt.Sprintf("closed %s", tab.ID)
}

func (m *PlaygroundModel) cyclePanel() {
	panels := m.tree.Panels()
	if len(panels) == 0 {
		return
	}
	m.active = (m.active + 1) % len(panels)
	m.status = fmt.Sprintf("focused %s", panels[m.active].ID)
}

func (m *PlaygroundModel) cycleTab(delta int) {
	panel, ok := m.activePanel()
	if !ok || len(panel.Tabs) == 0 {
		return
	}
	next := (panel.Active + delta + len(panel.Tabs)) % len(panel.Tabs)
	m.tree = m.tree.ActivateTab(panel.Tabs[next].ID)
	m.status = fmt.Sprintf("activated %s", panel.Tabs[next].ID)
}

func (m *PlaygroundModel) focusPanel(id layout.PanelID) {
	for i, p := range m.tree.Panels() {
		if p.ID == id {
			m.active = i
			return
		}
	}
}

// dropActiveTab simulates a full drag gesture: the active panel's active tab
// is picked up and dropped on the next panel, at a pointer position
// synthesized inside the requested zone. The gesture runs through
// DragSession so hit-testing and restructuring take the same path a real
// host would drive.
func (m *PlaygroundModel) dropActiveTab(kind layout.ZoneKind) {
	panels := m.tree.Panels()
	if len(panels) < 2 {
		m.moveMode = false
		m.status = "move needs at least two panels"
		return
	}
	source, ok := m.activePanel()
	if !ok {
		return
	}
	tab, ok := source.ActiveTab()
	if !ok {
		return
	}
	target := panels[(m.active+1)%len(panels)]
	bounds := m.tree.Bounds(virtualContainer)
	pt := pointInZone(bounds[target.ID], m.metrics, kind)

	session := layout.NewDragSession(m.metrics)
	if err := session.Start(tab, source.ID); err != nil {
		m.status = err.Error()
		return
	}
	if _, _, err := session.Update(pt, m.tree, virtualContainer); err != nil {
		m.status = err.Error()
		return
	}
	drop, ok, err := session.End()
	if err != nil {
		m.status = err.Error()
		return
	}
	if !ok {
		m.status = "no drop zone there"
		return
	}

	next, err := layout.NewRestructurer(m.metrics).Restructure(m.tree, drop.Tab, drop)
	if err != nil {
		m.status = err.Error()
		return
	}
	if next.Equal(m.tree) {
		m.status = "drop was a no-op"
		return
	}
	m.tree = next
	m.moveMode = false
	m.focusPanelWithTab(tab.ID)
	m.status = fmt.Sprintf("dropped %s on %s of %s", tab.ID, drop.Kind, drop.Target)
}

func (m *PlaygroundModel) focusPanelWithTab(id layout.TabID) {
	for i, p := range m.tree.Panels() {
		if p.TabIndex(id) >= 0 {
			m.active = i
			return
		}
	}
}

// pointInZone synthesizes a pointer position that classifies into the given
// zone of a panel rectangle.
func pointInZone(rect layout.Rect, metrics layout.Metrics, kind layout.ZoneKind) layout.Point {
	header := metrics.HeaderRect(rect)
	body := metrics.BodyRect(rect)
	switch kind {
	case layout.ZoneHeader:
		// Right end of the header strip: insert after the last tab.
		return layout.Point{X: header.X + header.Width - 1, Y: header.Y + header.Height/2}
	case layout.ZoneLeft:
		return layout.Point{X: body.X + 1, Y: body.Y + body.Height/2}
	case layout.ZoneRight:
		return layout.Point{X: body.X + body.Width - 2, Y: body.Y + body.Height/2}
	case layout.ZoneTop:
		return layout.Point{X: body.X + body.Width/2, Y: body.Y + 1}
	case layout.ZoneBottom:
		return layout.Point{X: body.X + body.Width/2, Y: body.Y + body.Height - 2}
	default:
		return layout.Point{X: body.X + body.Width/2, Y: body.Y + body.Height/2}
	}
}

// View implements tea.Model.
func (m PlaygroundModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	helpView := m.help.View(m.keys)
	statusView := m.renderStatus()
	bodyHeight := m.height - lipgloss.Height(helpView) - lipgloss.Height(statusView)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	if m.tree.Empty() {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.theme.PanelID.Render("empty layout — press n to open a tab"))
	} else {
		activeID := layout.PanelID("")
		if p, ok := (&m).activePanel(); ok {
			activeID = p.ID
		}
		body = m.renderNode(m.tree.Root, m.width, bodyHeight, activeID)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, statusView, helpView)
}

func (m PlaygroundModel) renderStatus() string {
	mode := "normal"
	if m.moveMode {
		mode = "move"
	}
	line := fmt.Sprintf("[%s] %s", mode, m.status)
	return m.theme.StatusBar.Width(m.width).Render(line)
}

// renderNode renders the subtree into a w x h cell block, allocating split
// extents by ratio with the last child absorbing the remainder, mirroring
// the engine's own bounds arithmetic.
func (m PlaygroundModel) renderNode(n *layout.Node, w, h int, activeID layout.PanelID) string {
	if n.IsLeaf() {
		return m.renderPanel(n.Panel, w, h, n.Panel.ID == activeID)
	}

	blocks := make([]string, len(n.Children))
	if n.Dir == layout.Horizontal {
		used := 0
		for i, child := range n.Children {
			cw := int(float64(w) * n.Ratios[i])
			if i == len(n.Children)-1 {
				cw = w - used
			}
			blocks[i] = m.renderNode(child, cw, h, activeID)
			used += cw
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}

	used := 0
	for i, child := range n.Children {
		ch := int(float64(h) * n.Ratios[i])
		if i == len(n.Children)-1 {
			ch = h - used
		}
		blocks[i] = m.renderNode(child, w, ch, activeID)
		used += ch
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m PlaygroundModel) renderPanel(p *layout.Panel, w, h int, active bool) string {
	border := m.theme.PanelBorder
	if active {
		border = m.theme.ActivePanelBorder
	}
	if active && m.moveMode {
		border = m.theme.DropTarget
	}

	innerW := w - 2
	innerH := h - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	var tabs []string
	for i, tab := range p.Tabs {
		style := m.theme.InactiveTab
		if i == p.Active {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(tab.Title))
	}
	tabBar := truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), innerW)

	var b strings.Builder
	b.WriteString(tabBar)
	b.WriteString("\n")
	b.WriteString(m.theme.PanelID.Render(truncate(fmt.Sprintf("%s · %d tabs", p.ID, len(p.Tabs)), innerW)))

	content := lipgloss.NewStyle().Width(innerW).Height(innerH).Render(b.String())
	return border.Render(content)
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(s)
}
