package painting

import (
	"fmt"
	"math"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
	"l14paint/pkg/layout"
)

// BordersData holds the four border edges of a box.
type BordersData struct {
	Top, Right, Bottom, Left css.BorderData
}

// PaintableBox paints one layout box: background, shadows, borders and the
// debug overlays. It owns the box's derived geometry and clip state.
type PaintableBox struct {
	PaintableNode

	offset                    layout.Point
	contentSize               layout.Size
	containingLineBoxFragment *layout.FragmentCoordinate

	absoluteRect      cached[layout.Rect]
	absolutePaintRect cached[layout.Rect]
	clipRect          cached[optionalRect]

	stackingContext *StackingContext
	overrideBorders *BordersData

	clippingOverflow      bool
	overflowCornerClipper *BorderRadiusCornerClipper
}

var _ Paintable = (*PaintableBox)(nil)

func (b *PaintableBox) Offset() layout.Point     { return b.offset }
func (b *PaintableBox) ContentSize() layout.Size { return b.contentSize }

// SetOffset moves the box and drops its cached absolute rects.
func (b *PaintableBox) SetOffset(p layout.Point) {
	b.offset = p
	b.invalidateGeometry()
}

// SetContentSize resizes the box and drops its cached absolute rects.
func (b *PaintableBox) SetContentSize(s layout.Size) {
	b.contentSize = s
	b.invalidateGeometry()
}

func (b *PaintableBox) invalidateGeometry() {
	b.absoluteRect.invalidate()
	b.absolutePaintRect.invalidate()
}

// ClearCaches drops every memoized rect, including the clip rect.
func (b *PaintableBox) ClearCaches() {
	b.invalidateGeometry()
	b.clipRect.invalidate()
}

// SetContainingLineBoxFragment places the box through a fragment of its
// containing block's line boxes.
func (b *PaintableBox) SetContainingLineBoxFragment(c *layout.FragmentCoordinate) {
	b.containingLineBoxFragment = c
	b.invalidateGeometry()
}

// SetOverrideBorders replaces the computed borders, as tables do for
// collapsed borders.
func (b *PaintableBox) SetOverrideBorders(borders *BordersData) {
	b.overrideBorders = borders
}

func (b *PaintableBox) StackingContext() *StackingContext {
	return b.stackingContext
}

// InvalidateStackingContext drops the box's stacking context.
func (b *PaintableBox) InvalidateStackingContext() {
	b.stackingContext = nil
}

// EnclosingStackingContext returns the stacking context of the nearest
// ancestor that has one. The viewport always has one; running off the tree
// is a construction bug.
func (b *PaintableBox) EnclosingStackingContext() *StackingContext {
	for ancestor := b.box.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if pb := b.tree.BoxFor(ancestor); pb != nil && pb.stackingContext != nil {
			return pb.stackingContext
		}
	}
	panic(fmt.Sprintf("painting: no enclosing stacking context for %s", b.box))
}

// containingBlock returns the paintable of the layout containing block.
func (b *PaintableBox) containingBlock() *PaintableBox {
	cb := b.box.ContainingBlock()
	if cb == nil {
		return nil
	}
	return b.tree.BoxFor(cb)
}

// EffectiveOffset is the offset of the content box within the containing
// block: the placing fragment's offset when there is one, plus the inset of
// a relatively positioned box.
func (b *PaintableBox) EffectiveOffset() layout.Point {
	offset := b.offset
	if c := b.containingLineBoxFragment; c != nil {
		offset = b.placingFragment(*c).Offset
	}
	if b.box.Position() == css.PositionRelative {
		offset = offset.Translated(b.box.Inset.Left, b.box.Inset.Top)
	}
	return offset
}

func (b *PaintableBox) placingFragment(c layout.FragmentCoordinate) *layout.LineBoxFragment {
	cb := b.box.ContainingBlock()
	var lines []layout.LineBox
	if cb != nil {
		if pl, ok := b.tree.PaintableFor(cb).(*PaintableWithLines); ok {
			lines = pl.lineBoxes
		}
	}
	if c.LineBoxIndex < 0 || c.LineBoxIndex >= len(lines) ||
		c.FragmentIndex < 0 || c.FragmentIndex >= len(lines[c.LineBoxIndex].Fragments) {
		panic(fmt.Sprintf("painting: %s placed by unknown fragment %d/%d", b.box, c.LineBoxIndex, c.FragmentIndex))
	}
	return &lines[c.LineBoxIndex].Fragments[c.FragmentIndex]
}

// AbsoluteRect is the content box in document coordinates.
func (b *PaintableBox) AbsoluteRect() layout.Rect {
	return b.absoluteRect.get(func() layout.Rect {
		rect := layout.RectAt(b.EffectiveOffset(), b.contentSize)
		for cb := b.containingBlock(); cb != nil; cb = cb.containingBlock() {
			o := cb.EffectiveOffset()
			rect = rect.Translated(o.X, o.Y)
		}
		return rect
	})
}

// AbsolutePosition is the origin of the content box.
func (b *PaintableBox) AbsolutePosition() layout.Point {
	return b.AbsoluteRect().Location()
}

func (b *PaintableBox) AbsolutePaddingBoxRect() layout.Rect {
	p := b.box.Padding
	return b.AbsoluteRect().Inflated(p.Top, p.Right, p.Bottom, p.Left)
}

func (b *PaintableBox) AbsoluteBorderBoxRect() layout.Rect {
	w := b.box.Border
	return b.AbsolutePaddingBoxRect().Inflated(w.Top, w.Right, w.Bottom, w.Left)
}

func (b *PaintableBox) AbsoluteMarginBoxRect() layout.Rect {
	m := b.box.Margin
	return b.AbsoluteBorderBoxRect().Inflated(m.Top, m.Right, m.Bottom, m.Left)
}

// AbsolutePaintRect covers everything the box paints itself: the border
// box, scrollable overflow on visible axes and outer box shadows.
func (b *PaintableBox) AbsolutePaintRect() layout.Rect {
	return b.absolutePaintRect.get(func() layout.Rect {
		rect := b.AbsoluteBorderBoxRect()
		style := b.box.ComputedStyle()
		if o := b.box.ScrollableOverflow; o != nil {
			pos := b.AbsolutePosition()
			overflow := o.Translated(pos.X, pos.Y)
			if style.GetOverflowX() == css.OverflowVisible {
				rect = rect.UnitedHorizontally(overflow)
			}
			if style.GetOverflowY() == css.OverflowVisible {
				rect = rect.UnitedVertically(overflow)
			}
		}
		for _, shadow := range b.resolveBoxShadowData() {
			if shadow.Placement != css.ShadowOuter {
				continue
			}
			inflate := shadow.SpreadDistance + shadow.BlurRadius
			shadowRect := b.AbsoluteBorderBoxRect().
				Inflated(inflate, inflate, inflate, inflate).
				Translated(shadow.OffsetX, shadow.OffsetY)
			rect = rect.United(shadowRect)
		}
		return rect
	})
}

// CalculateOverflowClippedRect composes the clip that applies to the box's
// descendants. Plain boxes inherit the clip of their containing block;
// stacking context roots start afresh. Boxes clipping overflow on both axes
// narrow it to their padding box.
func (b *PaintableBox) CalculateOverflowClippedRect() (layout.Rect, bool) {
	clip := b.clipRect.get(func() optionalRect {
		var clip optionalRect
		if !b.box.EstablishesStackingContext() {
			if cb := b.containingBlock(); cb != nil {
				clip.rect, clip.ok = cb.CalculateOverflowClippedRect()
			}
		}
		if b.clipsOverflow() {
			padding := b.AbsolutePaddingBoxRect()
			if clip.ok {
				clip.rect = clip.rect.Intersected(padding)
			} else {
				clip = optionalRect{rect: padding, ok: true}
			}
		}
		return clip
	})
	return clip.rect, clip.ok
}

func (b *PaintableBox) clipsOverflow() bool {
	style := b.box.ComputedStyle()
	return style.GetOverflowX() != css.OverflowVisible && style.GetOverflowY() != css.OverflowVisible
}

func (b *PaintableBox) hidesOverflow() bool {
	style := b.box.ComputedStyle()
	return style.GetOverflowX() == css.OverflowHidden && style.GetOverflowY() == css.OverflowHidden
}

// applyClipOverflowRect pushes the overflow clip for the box's descendants.
// It is a no-op outside the clipping phases and when already applied.
func (b *PaintableBox) applyClipOverflowRect(ctx *PaintContext, phase PaintPhase) {
	if !phase.clipsOverflow() {
		return
	}
	clip, ok := b.CalculateOverflowClippedRect()
	if !ok {
		return
	}
	if !b.clippingOverflow {
		ctx.Painter.Save()
		ctx.Painter.AddClipRect(ctx.EnclosingDeviceRect(clip))
		b.clippingOverflow = true
	}
	if clip.IsEmpty() || !b.hidesOverflow() {
		return
	}
	radii := b.normalizedBorderRadii(true)
	if !radii.HasAny() {
		return
	}
	clipper, err := NewBorderRadiusCornerClipper(ctx, ctx.RoundedDeviceRect(clip), ctx.DeviceRadii(radii))
	if err != nil {
		tracer().Errorf("overflow corner clipper for %s: %v", b.box, err)
		return
	}
	b.overflowCornerClipper = clipper
	clipper.SampleUnderCorners(ctx.Painter)
}

// clearClipOverflowRect undoes applyClipOverflowRect.
func (b *PaintableBox) clearClipOverflowRect(ctx *PaintContext, phase PaintPhase) {
	if !phase.clipsOverflow() {
		return
	}
	if b.clippingOverflow {
		ctx.Painter.Restore()
		b.clippingOverflow = false
	}
	if b.overflowCornerClipper != nil {
		b.overflowCornerClipper.BlitCornerClipping(ctx.Painter)
		b.overflowCornerClipper = nil
	}
}

// withClipOverflow runs fn with the box's overflow clip applied.
func (b *PaintableBox) withClipOverflow(ctx *PaintContext, phase PaintPhase, fn func()) {
	b.applyClipOverflowRect(ctx, phase)
	defer b.clearClipOverflowRect(ctx, phase)
	fn()
}

// cssClipRect resolves clip: rect(...) of an absolutely positioned box
// against its border box. Auto edges fall on the border box edges.
func (b *PaintableBox) cssClipRect() (layout.Rect, bool) {
	if !b.box.IsAbsolutelyPositioned() {
		return layout.Rect{}, false
	}
	clip, ok := b.box.ComputedStyle().GetClip()
	if !ok {
		return layout.Rect{}, false
	}
	border := b.AbsoluteBorderBoxRect()
	lc := b.box.LengthContext()
	top, left, right, bottom := 0.0, 0.0, border.Width, border.Height
	if clip.HasTop {
		top = clip.Top.ToPx(lc)
	}
	if clip.HasLeft {
		left = clip.Left.ToPx(lc)
	}
	if clip.HasRight {
		right = clip.Right.ToPx(lc)
	}
	if clip.HasBottom {
		bottom = clip.Bottom.ToPx(lc)
	}
	return layout.Rect{X: border.X + left, Y: border.Y + top, Width: right - left, Height: bottom - top}, true
}

// withCSSClip runs fn inside the box's clip: rect(...). The inspector
// overlay is never clipped.
func (b *PaintableBox) withCSSClip(ctx *PaintContext, phase PaintPhase, fn func()) {
	rect, ok := b.cssClipRect()
	if !ok || phase == PhaseOverlay {
		fn()
		return
	}
	defer gfx.SaveState(ctx.Painter)()
	ctx.Painter.AddClipRect(ctx.RoundedDeviceRect(rect))
	fn()
}

// IsOutOfView reports whether nothing the box paints can reach the
// painter's clip.
func (b *PaintableBox) IsOutOfView(ctx *PaintContext) bool {
	return ctx.WouldBeFullyClippedByPainter(ctx.EnclosingDeviceRect(b.AbsolutePaintRect()))
}

// Paint paints the box's own contribution to one phase.
func (b *PaintableBox) Paint(ctx *PaintContext, phase PaintPhase) {
	if !b.IsVisible() || b.IsOutOfView(ctx) {
		return
	}
	switch phase {
	case PhaseBackground:
		b.paintBackdropFilter(ctx)
		b.paintBackground(ctx)
		b.paintBoxShadow(ctx)
	case PhaseBorder:
		b.paintBorder(ctx)
	case PhaseOverlay:
		if doc := b.box.Document; doc != nil && doc.Inspected == b.box {
			b.paintInspectorOverlay(ctx)
		}
		if b.box.IsFocused() {
			r := ctx.EnclosingDeviceRect(b.AbsoluteBorderBoxRect()).Inset(-4)
			ctx.Painter.DrawFocusRect(r, ctx.Palette.FocusOutline)
		}
	}
}

// normalizedBorderRadii resolves the corner radii against the border box,
// scales them down proportionally when adjacent radii overlap and, when
// shrink is set, reduces them by the border widths for padding box use.
func (b *PaintableBox) normalizedBorderRadii(shrink bool) gfx.CornerRadii {
	style := b.box.ComputedStyle()
	border := b.AbsoluteBorderBoxRect()
	lc := b.box.LengthContext()
	resolve := func(c css.Corner) gfx.CornerRadius {
		r := style.GetBorderRadius(c)
		hctx, vctx := lc, lc
		hctx.PercentBasis, vctx.PercentBasis = border.Width, border.Height
		return gfx.CornerRadius{
			Horizontal: math.Max(0, r.Horizontal.ToPx(hctx)),
			Vertical:   math.Max(0, r.Vertical.ToPx(vctx)),
		}
	}
	radii := gfx.CornerRadii{
		TopLeft:     resolve(css.CornerTopLeft),
		TopRight:    resolve(css.CornerTopRight),
		BottomRight: resolve(css.CornerBottomRight),
		BottomLeft:  resolve(css.CornerBottomLeft),
	}

	f := 1.0
	fit := func(length, a, b float64) {
		if sum := a + b; sum > 0 && length/sum < f {
			f = length / sum
		}
	}
	fit(border.Width, radii.TopLeft.Horizontal, radii.TopRight.Horizontal)
	fit(border.Width, radii.BottomLeft.Horizontal, radii.BottomRight.Horizontal)
	fit(border.Height, radii.TopLeft.Vertical, radii.BottomLeft.Vertical)
	fit(border.Height, radii.TopRight.Vertical, radii.BottomRight.Vertical)
	scale := func(c *gfx.CornerRadius, dh, dv float64) {
		c.Horizontal = c.Horizontal * f
		c.Vertical = c.Vertical * f
		if shrink {
			c.Horizontal = math.Max(0, c.Horizontal-dh)
			c.Vertical = math.Max(0, c.Vertical-dv)
		}
	}
	w := b.box.Border
	scale(&radii.TopLeft, w.Left, w.Top)
	scale(&radii.TopRight, w.Right, w.Top)
	scale(&radii.BottomRight, w.Right, w.Bottom)
	scale(&radii.BottomLeft, w.Left, w.Bottom)
	return radii
}
