package painting

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"l14paint/pkg/layout"
)

// StackingContext groups the boxes painted as one layer. Child contexts
// are kept by z-index sign, each list in stable z-index order.
type StackingContext struct {
	tree   *Tree
	box    *PaintableBox
	parent *StackingContext

	negative []*StackingContext
	zero     []*StackingContext
	positive []*StackingContext
}

func newStackingContext(tree *Tree, box *PaintableBox, parent *StackingContext) *StackingContext {
	sc := &StackingContext{tree: tree, box: box, parent: parent}
	box.stackingContext = sc
	if parent != nil {
		parent.addChild(sc)
	}
	return sc
}

func (sc *StackingContext) Box() *PaintableBox      { return sc.box }
func (sc *StackingContext) Parent() *StackingContext { return sc.parent }
func (sc *StackingContext) ZIndex() int              { return sc.box.box.ZIndex() }

// Children returns the child contexts in paint order.
func (sc *StackingContext) Children() []*StackingContext {
	children := make([]*StackingContext, 0, len(sc.negative)+len(sc.zero)+len(sc.positive))
	children = append(children, sc.negative...)
	children = append(children, sc.zero...)
	return append(children, sc.positive...)
}

func (sc *StackingContext) addChild(child *StackingContext) {
	switch z := child.ZIndex(); {
	case z < 0:
		sc.negative = append(sc.negative, child)
	case z == 0:
		sc.zero = append(sc.zero, child)
	default:
		sc.positive = append(sc.positive, child)
	}
}

// sortChildren orders every child list of the subtree by z-index, keeping
// tree order among equal z-indices.
func (sc *StackingContext) sortChildren() {
	for _, list := range [][]*StackingContext{sc.negative, sc.zero, sc.positive} {
		sort.SliceStable(list, func(i, j int) bool { return list[i].ZIndex() < list[j].ZIndex() })
		for _, child := range list {
			child.sortChildren()
		}
	}
}

// Paint paints one phase of the context: its root box, child contexts with
// negative z-index, the in-flow descendants, then the remaining child
// contexts. All of it stays inside the root box's CSS clip.
func (sc *StackingContext) Paint(ctx *PaintContext, phase PaintPhase) {
	root := sc.tree.Get(sc.box.id)
	sc.box.withCSSClip(ctx, phase, func() {
		root.Paint(ctx, phase)
		for _, child := range sc.negative {
			child.Paint(ctx, phase)
		}
		sc.box.withClipOverflow(ctx, phase, func() {
			sc.paintDescendants(ctx, sc.box.box, phase)
		})
		for _, child := range sc.zero {
			child.Paint(ctx, phase)
		}
		for _, child := range sc.positive {
			child.Paint(ctx, phase)
		}
	})
}

// paintDescendants paints the children of box that belong to this context.
// Each box paints inside its CSS clip and its descendants inside its
// overflow clip.
func (sc *StackingContext) paintDescendants(ctx *PaintContext, box *layout.Box, phase PaintPhase) {
	for _, child := range box.Children {
		if child.EstablishesStackingContext() {
			continue
		}
		p := sc.tree.PaintableFor(child)
		if p == nil {
			continue
		}
		pb := sc.tree.BoxFor(child)
		if pb == nil {
			p.Paint(ctx, phase)
			sc.paintDescendants(ctx, child, phase)
			continue
		}
		pb.withCSSClip(ctx, phase, func() {
			p.Paint(ctx, phase)
			pb.withClipOverflow(ctx, phase, func() {
				sc.paintDescendants(ctx, child, phase)
			})
		})
	}
}

// HitTest searches the context front to back: positive z-index contexts,
// zero z-index contexts, the in-flow content and finally the negative
// z-index contexts, each list from the last painted to the first.
func (sc *StackingContext) HitTest(p layout.Point, t HitTestType) (HitTestResult, bool) {
	test := func(list []*StackingContext) (HitTestResult, bool) {
		for i := len(list) - 1; i >= 0; i-- {
			if r, ok := list[i].HitTest(p, t); ok && r.Paintable.VisibleForHitTesting() {
				return r, true
			}
		}
		return HitTestResult{}, false
	}
	if r, ok := test(sc.positive); ok {
		return r, true
	}
	if r, ok := test(sc.zero); ok {
		return r, true
	}
	if root, ok := sc.tree.Get(sc.box.id).(contentHitTester); ok {
		if r, ok := root.hitTestContents(p, t); ok && r.Paintable.VisibleForHitTesting() {
			return r, true
		}
	}
	return test(sc.negative)
}

// Dump writes the context tree, indented by depth.
func (sc *StackingContext) Dump(w io.Writer) {
	sc.dump(w, 0)
}

func (sc *StackingContext) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%sSC for %s %s z-index=%d\n", strings.Repeat("  ", depth),
		sc.box.box.DebugDescription(), sc.box.AbsoluteRect(), sc.ZIndex())
	for _, child := range sc.Children() {
		child.dump(w, depth+1)
	}
}
