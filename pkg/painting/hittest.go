package painting

import "l14paint/pkg/layout"

// contentHitTester is implemented by boxes. hitTestContents is the box's
// own hit test, without the viewport's delegation to its stacking context.
type contentHitTester interface {
	hitTestContents(p layout.Point, t HitTestType) (HitTestResult, bool)
}

// HitTest finds the paintable under p. The viewport answers through its
// stacking context, other boxes search their children in tree order before
// matching themselves.
func (b *PaintableBox) HitTest(p layout.Point, t HitTestType) (HitTestResult, bool) {
	if !b.IsVisible() {
		return HitTestResult{}, false
	}
	if b.box.IsViewport() {
		b.tree.BuildStackingContextTreeIfNeeded()
		return b.stackingContext.HitTest(p, t)
	}
	return b.hitTestContents(p, t)
}

func (b *PaintableBox) hitTestContents(p layout.Point, t HitTestType) (HitTestResult, bool) {
	if !b.IsVisible() || !b.AbsoluteBorderBoxRect().Contains(p) {
		return HitTestResult{}, false
	}
	for _, child := range b.box.Children {
		// stacking context roots are tested by their stacking context
		if child.EstablishesStackingContext() {
			continue
		}
		cp := b.tree.PaintableFor(child)
		if cp == nil {
			continue
		}
		result, ok := cp.HitTest(p, t)
		if !ok || !result.Paintable.VisibleForHitTesting() {
			continue
		}
		return result, true
	}
	if !b.VisibleForHitTesting() {
		return HitTestResult{}, false
	}
	return HitTestResult{Paintable: b.self()}, true
}

// HitTest of a box with inline content scans its fragments. For text
// cursor queries that miss every fragment, the nearest fragment boundary
// seen so far is the answer:
//   - fragments fully above the point offer their end offset, the lowest
//     one wins;
//   - on the point's row, a fragment to the right of the point offers its
//     start only while nothing has been offered yet;
//   - on the point's row, a fragment to the left of the point offers its
//     end.
//
// The text direction is not taken into account.
func (p *PaintableWithLines) HitTest(pt layout.Point, t HitTestType) (HitTestResult, bool) {
	if !p.box.ChildrenAreInline || p.box.IsViewport() {
		return p.PaintableBox.HitTest(pt, t)
	}
	return p.hitTestLines(pt, t)
}

func (p *PaintableWithLines) hitTestContents(pt layout.Point, t HitTestType) (HitTestResult, bool) {
	if !p.box.ChildrenAreInline {
		return p.PaintableBox.hitTestContents(pt, t)
	}
	return p.hitTestLines(pt, t)
}

func (p *PaintableWithLines) hitTestLines(pt layout.Point, t HitTestType) (HitTestResult, bool) {
	var lastGoodCandidate *HitTestResult
	candidate := func(frag *layout.LineBoxFragment, offset int) *HitTestResult {
		return &HitTestResult{Paintable: p.tree.PaintableFor(frag.Box), TextOffset: offset, HasTextOffset: true}
	}

	for li := range p.lineBoxes {
		for fi := range p.lineBoxes[li].Fragments {
			frag := &p.lineBoxes[li].Fragments[fi]
			if frag.Box.IsBox() && frag.Box.EstablishesStackingContext() {
				continue
			}
			rect, ok := p.fragmentAbsoluteRect(frag)
			if !ok {
				tracer().Debugf("hit test: fragment of %s has no containing block", frag.Box)
				continue
			}
			if rect.Contains(pt) {
				if frag.Box.IsBlockContainer() {
					if fp := p.tree.PaintableFor(frag.Box); fp != nil {
						return fp.HitTest(pt, t)
					}
				}
				return *candidate(frag, frag.TextIndexAt(pt.X-rect.X)), true
			}

			switch {
			case rect.Bottom()-1 <= pt.Y: // fully below the fragment
				lastGoodCandidate = candidate(frag, frag.End())
			case rect.Top() <= pt.Y: // vertically within the fragment
				if pt.X < rect.Left() {
					if lastGoodCandidate == nil { // first fragment of the line
						lastGoodCandidate = candidate(frag, frag.Start)
					}
				} else {
					lastGoodCandidate = candidate(frag, frag.End())
				}
			}
		}
	}

	if t == HitTestTextCursor && lastGoodCandidate != nil {
		return *lastGoodCandidate, true
	}
	if p.IsVisible() && p.AbsoluteBorderBoxRect().Contains(pt) {
		return HitTestResult{Paintable: p.self()}, true
	}
	return HitTestResult{}, false
}
