package painting

import (
	"l14paint/pkg/layout"
)

// Tree owns the paintables of one document. Paintables refer to each other
// by ID or through the layout tree.
type Tree struct {
	doc        *layout.Document
	paintables []Paintable
	byBox      map[*layout.Box]ID
	stacking   bool // stacking context tree is current
}

// Build creates the paintables for a laid-out document, in tree order.
// Block containers get a PaintableWithLines, other boxes a PaintableBox,
// inline and text nodes a PaintableNode.
func Build(doc *layout.Document) *Tree {
	t := &Tree{doc: doc, byBox: make(map[*layout.Box]ID)}
	doc.Viewport.Walk(func(box *layout.Box) bool {
		t.add(box)
		return true
	})
	tracer().Debugf("built paint tree with %d paintables", len(t.paintables))
	return t
}

func (t *Tree) add(box *layout.Box) {
	id := ID(len(t.paintables))
	node := PaintableNode{tree: t, id: id, box: box}
	newBox := func() PaintableBox {
		return PaintableBox{
			PaintableNode:             node,
			offset:                    box.Offset,
			contentSize:               box.ContentSize,
			containingLineBoxFragment: box.ContainingLineBoxFragment,
		}
	}
	var p Paintable
	switch {
	case box.IsBlockContainer():
		p = &PaintableWithLines{PaintableBox: newBox(), lineBoxes: box.LineBoxes}
	case box.IsBox():
		pb := newBox()
		p = &pb
	default:
		p = &node
	}
	t.paintables = append(t.paintables, p)
	t.byBox[box] = id
}

// Get returns the paintable with the given ID.
func (t *Tree) Get(id ID) Paintable {
	return t.paintables[id]
}

// Len is the number of paintables.
func (t *Tree) Len() int {
	return len(t.paintables)
}

func (t *Tree) Document() *layout.Document {
	return t.doc
}

// PaintableFor returns the paintable of a layout node, or nil for nodes
// outside the tree.
func (t *Tree) PaintableFor(box *layout.Box) Paintable {
	if box == nil {
		return nil
	}
	id, ok := t.byBox[box]
	if !ok {
		return nil
	}
	return t.paintables[id]
}

// BoxFor returns the PaintableBox of a layout box, or nil when the node
// has no box paintable.
func (t *Tree) BoxFor(box *layout.Box) *PaintableBox {
	switch p := t.PaintableFor(box).(type) {
	case *PaintableWithLines:
		return &p.PaintableBox
	case *PaintableBox:
		return p
	}
	return nil
}

// Viewport returns the paintable of the viewport.
func (t *Tree) Viewport() *PaintableWithLines {
	return t.paintables[0].(*PaintableWithLines)
}

// Walk visits the paintables in tree order.
func (t *Tree) Walk(fn func(Paintable)) {
	for _, p := range t.paintables {
		fn(p)
	}
}

// BuildStackingContextTreeIfNeeded creates the stacking contexts unless
// they are current. The viewport roots the tree; every other box that
// establishes a stacking context gets one below the context of its nearest
// ancestor that has one.
func (t *Tree) BuildStackingContextTreeIfNeeded() {
	if t.stacking && t.Viewport().stackingContext != nil {
		return
	}
	viewport := &t.Viewport().PaintableBox
	root := newStackingContext(t, viewport, nil)
	for _, p := range t.paintables[1:] {
		pb := t.BoxFor(p.Layout())
		if pb == nil {
			continue
		}
		pb.InvalidateStackingContext()
		if !pb.box.EstablishesStackingContext() {
			continue
		}
		// pre-order: the enclosing context already exists
		newStackingContext(t, pb, pb.EnclosingStackingContext())
	}
	root.sortChildren()
	t.stacking = true
}

// InvalidateStackingContexts drops the stacking context tree. It is
// rebuilt on the next paint or hit test.
func (t *Tree) InvalidateStackingContexts() {
	for _, p := range t.paintables {
		if pb := t.BoxFor(p.Layout()); pb != nil {
			pb.InvalidateStackingContext()
		}
	}
	t.stacking = false
}

// StackingContext returns the root stacking context, building it if needed.
func (t *Tree) StackingContext() *StackingContext {
	t.BuildStackingContextTreeIfNeeded()
	return t.Viewport().stackingContext
}

// ClearCaches drops every memoized rect in the tree.
func (t *Tree) ClearCaches() {
	for _, p := range t.paintables {
		if pb := t.BoxFor(p.Layout()); pb != nil {
			pb.ClearCaches()
		}
	}
}

// Paint runs every phase over the whole stacking context tree.
func (t *Tree) Paint(ctx *PaintContext) {
	sc := t.StackingContext()
	for _, phase := range Phases {
		tracer().Debugf("paint phase %s", phase)
		sc.Paint(ctx, phase)
	}
}

// HitTest finds the paintable at p, in CSS pixels of the document.
func (t *Tree) HitTest(p layout.Point, ht HitTestType) (HitTestResult, bool) {
	return t.Viewport().HitTest(p, ht)
}
