package layout

import (
	"errors"
	"fmt"
)

// DragPhase is the lifecycle state of a drag gesture.
type DragPhase int

const (
	// DragIdle is the state before Start and after Cancel.
	DragIdle DragPhase = iota
	// DragActive is the state between Start and End/Cancel.
	DragActive
	// DragEnded is terminal: a finished session is discarded and a new one
	// created for the next gesture.
	DragEnded
)

func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragActive:
		return "dragging"
	case DragEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrDragPhase is returned when a transition is attempted from the wrong
// phase; it signals a caller-side sequencing bug.
var ErrDragPhase = errors.New("layout: drag session in wrong phase")

// Drop is the committed decision of a finished drag: which tab moves, which
// panel receives it, and how.
type Drop struct {
	Tab    TabID
	Target PanelID
	Kind   ZoneKind
	Index  int
}

// DragSession tracks one drag gesture from pointer-down to pointer-up. The
// host creates one session per gesture, drives it from its pointer-event
// thread, and discards it once ended. The session holds no reference to any
// tree; the caller re-supplies the current tree on every position update, so
// stale inputs can produce stale geometry but never corrupt the session.
type DragSession struct {
	phase   DragPhase
	tab     Tab
	source  PanelID
	metrics Metrics

	hoverPanel PanelID
	hoverZone  DropZone
	hasHover   bool
}

// NewDragSession creates an idle session using the given geometry metrics.
func NewDragSession(m Metrics) *DragSession {
	return &DragSession{metrics: m}
}

// Phase returns the session's current lifecycle state.
func (s *DragSession) Phase() DragPhase { return s.phase }

// Tab returns the dragged tab recorded by Start.
func (s *DragSession) Tab() Tab { return s.tab }

// Source returns the panel the dragged tab came from.
func (s *DragSession) Source() PanelID { return s.source }

// Hover returns the currently hovered panel and zone, if any.
func (s *DragSession) Hover() (PanelID, DropZone, bool) {
	return s.hoverPanel, s.hoverZone, s.hasHover
}

// Start begins the gesture, recording the dragged tab and its origin and
// clearing any stale hover state. Legal only from idle.
func (s *DragSession) Start(tab Tab, source PanelID) error {
	if s.phase != DragIdle {
		return fmt.Errorf("%w: start from %s", ErrDragPhase, s.phase)
	}
	s.phase = DragActive
	s.tab = tab
	s.source = source
	s.clearHover()
	return nil
}

// Update re-evaluates the hover target for a new pointer position against
// the caller's current tree and container size. The first panel in traversal
// order whose rectangle contains the pointer wins; panels share edges only,
// so first-match is a deterministic tie-break. Legal only while dragging.
func (s *DragSession) Update(pt Point, tree *Tree, container Rect) (DropZone, bool, error) {
	if s.phase != DragActive {
		return DropZone{}, false, fmt.Errorf("%w: update from %s", ErrDragPhase, s.phase)
	}
	s.clearHover()
	bounds := tree.Bounds(container)
	for _, panel := range tree.Panels() {
		rect, ok := bounds[panel.ID]
		if !ok || !rect.Contains(pt) {
			continue
		}
		zone, ok := ZoneAt(panel, rect, s.metrics, pt)
		if ok {
			s.hoverPanel = panel.ID
			s.hoverZone = zone
			s.hasHover = true
		}
		break
	}
	return s.hoverZone, s.hasHover, nil
}

// End finishes the gesture. It returns the committed drop decision, or false
// when the pointer was released outside any valid zone (the caller treats
// that as a cancelled drag). Legal only while dragging; the session is
// terminal afterwards.
func (s *DragSession) End() (Drop, bool, error) {
	if s.phase != DragActive {
		return Drop{}, false, fmt.Errorf("%w: end from %s", ErrDragPhase, s.phase)
	}
	s.phase = DragEnded
	if !s.hasHover {
		return Drop{}, false, nil
	}
	return Drop{
		Tab:    s.tab.ID,
		Target: s.hoverPanel,
		Kind:   s.hoverZone.Kind,
		Index:  s.hoverZone.Index,
	}, true, nil
}

// Cancel aborts the gesture, returning the session to idle and discarding
// hover state without producing a decision. Cancelling an idle session is a
// no-op; cancelling an ended one is not legal.
func (s *DragSession) Cancel() error {
	if s.phase == DragEnded {
		return fmt.Errorf("%w: cancel from %s", ErrDragPhase, s.phase)
	}
	s.phase = DragIdle
	s.tab = Tab{}
	s.source = ""
	s.clearHover()
	return nil
}

func (s *DragSession) clearHover() {
	s.hoverPanel = ""
	s.hoverZone = DropZone{}
	s.hasHover = false
}
