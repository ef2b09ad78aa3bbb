package painting

import (
	"fmt"

	"l14paint/pkg/layout"
)

// ID addresses a paintable in its Tree.
type ID int

// PaintPhase selects which part of a box is painted. Phases run in
// declaration order, each over the whole tree.
type PaintPhase int

const (
	PhaseBackground PaintPhase = iota
	PhaseBorder
	PhaseForeground
	PhaseFocusOutline
	PhaseOverlay
)

// Phases lists the paint phases in paint order.
var Phases = []PaintPhase{PhaseBackground, PhaseBorder, PhaseForeground, PhaseFocusOutline, PhaseOverlay}

func (p PaintPhase) String() string {
	return [...]string{"Background", "Border", "Foreground", "FocusOutline", "Overlay"}[p]
}

// clipsOverflow reports the phases in which overflow clipping applies.
func (p PaintPhase) clipsOverflow() bool {
	return p == PhaseBackground || p == PhaseBorder || p == PhaseForeground
}

// HitTestType is the kind of hit-test query.
type HitTestType int

const (
	// HitTestExact finds the node under the point.
	HitTestExact HitTestType = iota
	// HitTestTextCursor finds where a text cursor should be placed and may
	// answer with a nearby fragment boundary.
	HitTestTextCursor
)

// HitTestResult is the answer to a hit test. TextOffset is a byte offset
// into the paintable's text, valid when HasTextOffset is set.
type HitTestResult struct {
	Paintable     Paintable
	TextOffset    int
	HasTextOffset bool
}

func (r HitTestResult) String() string {
	if r.HasTextOffset {
		return fmt.Sprintf("%s@%d", r.Paintable.Layout(), r.TextOffset)
	}
	return r.Paintable.Layout().String()
}

// Paintable is the paint-tree counterpart of one layout node.
type Paintable interface {
	ID() ID
	Layout() *layout.Box
	IsVisible() bool
	VisibleForHitTesting() bool
	Paint(ctx *PaintContext, phase PaintPhase)
	HitTest(p layout.Point, t HitTestType) (HitTestResult, bool)
}

// PaintableNode is the paintable of inline and text nodes. Their content
// is painted by the line boxes of the enclosing block container.
type PaintableNode struct {
	tree *Tree
	id   ID
	box  *layout.Box
}

var _ Paintable = (*PaintableNode)(nil)

func (n *PaintableNode) ID() ID              { return n.id }
func (n *PaintableNode) Layout() *layout.Box { return n.box }

func (n *PaintableNode) IsVisible() bool {
	return n.box.ComputedStyle().IsVisible()
}

func (n *PaintableNode) VisibleForHitTesting() bool {
	return !n.box.ComputedStyle().PointerEventsNone()
}

func (n *PaintableNode) Paint(ctx *PaintContext, phase PaintPhase) {}

func (n *PaintableNode) HitTest(p layout.Point, t HitTestType) (HitTestResult, bool) {
	return HitTestResult{}, false
}

// self returns the most derived paintable for this node.
func (n *PaintableNode) self() Paintable {
	return n.tree.Get(n.id)
}
