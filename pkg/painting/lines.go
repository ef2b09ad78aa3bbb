package painting

import (
	"image"
	"math"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
	"l14paint/pkg/layout"
)

var (
	debugGreen   = css.Color{R: 0, G: 255, B: 0, A: 1}
	debugRed     = css.Color{R: 255, G: 0, B: 0, A: 1}
	debugMagenta = css.Color{R: 255, G: 0, B: 255, A: 1}
)

// PaintableWithLines is a block container that may own line boxes.
type PaintableWithLines struct {
	PaintableBox
	lineBoxes []layout.LineBox
}

var _ Paintable = (*PaintableWithLines)(nil)

func (p *PaintableWithLines) LineBoxes() []layout.LineBox { return p.lineBoxes }

// SetLineBoxes replaces the line boxes after a layout pass.
func (p *PaintableWithLines) SetLineBoxes(lines []layout.LineBox) {
	p.lineBoxes = lines
}

// fragmentAbsoluteRect places a fragment relative to the content box of its
// node's containing block.
func (p *PaintableWithLines) fragmentAbsoluteRect(frag *layout.LineBoxFragment) (layout.Rect, bool) {
	cb := frag.Box.ContainingBlock()
	if cb == nil {
		return layout.Rect{}, false
	}
	pb := p.tree.BoxFor(cb)
	if pb == nil {
		return layout.Rect{}, false
	}
	origin := pb.AbsolutePosition()
	return layout.RectAt(frag.Offset.Translated(origin.X, origin.Y), frag.Size), true
}

// Paint paints the box itself and then, per phase, its line box fragments.
func (p *PaintableWithLines) Paint(ctx *PaintContext, phase PaintPhase) {
	if !p.IsVisible() {
		return
	}
	p.PaintableBox.Paint(ctx, phase)
	if len(p.lineBoxes) == 0 {
		return
	}

	p.withLineClip(ctx, phase, func() {
		if phase == PhaseForeground {
			// all shadows go under all glyphs
			p.forEachTextFragment(func(frag *layout.LineBoxFragment, abs layout.Rect) {
				paintTextShadow(ctx, frag, abs, resolveTextShadowData(frag.Box))
			})
		}
		for li := range p.lineBoxes {
			for fi := range p.lineBoxes[li].Fragments {
				frag := &p.lineBoxes[li].Fragments[fi]
				abs, ok := p.fragmentAbsoluteRect(frag)
				if !ok {
					continue
				}
				if ctx.WouldBeFullyClippedByPainter(ctx.EnclosingDeviceRect(abs)) {
					continue
				}
				if ctx.ShowLineBoxBorders && phase == PhaseForeground {
					r := ctx.EnclosingDeviceRect(abs)
					ctx.Painter.DrawRect(r, debugGreen)
					y := r.Min.Y + ctx.RoundedDevicePixels(frag.Baseline)
					ctx.Painter.DrawLine(image.Pt(r.Min.X, y), image.Pt(r.Max.X-1, y), debugRed, 1, gfx.LineSolid)
				}
				if frag.Box.IsText() {
					p.paintTextFragment(ctx, frag, abs, phase)
				}
			}
		}
	})

	if phase == PhaseFocusOutline {
		p.forEachTextFragment(func(frag *layout.LineBoxFragment, abs layout.Rect) {
			parent := frag.Box.ParentElement()
			if parent == nil || frag.Box.Document == nil || frag.Box.Document.FocusedElement != parent {
				return
			}
			ctx.Painter.DrawFocusRect(ctx.EnclosingDeviceRect(abs).Inset(-4), ctx.Palette.FocusOutline)
		})
	}
}

func (p *PaintableWithLines) forEachTextFragment(fn func(*layout.LineBoxFragment, layout.Rect)) {
	for li := range p.lineBoxes {
		for fi := range p.lineBoxes[li].Fragments {
			frag := &p.lineBoxes[li].Fragments[fi]
			if !frag.Box.IsText() {
				continue
			}
			if abs, ok := p.fragmentAbsoluteRect(frag); ok {
				fn(frag, abs)
			}
		}
	}
}

// withLineClip runs fn with the line content clipped to the padding box and
// scrolled, when the box clips overflow on both axes. Fragments only draw
// in the foreground phase, so that is the only phase that clips.
func (p *PaintableWithLines) withLineClip(ctx *PaintContext, phase PaintPhase, fn func()) {
	if phase != PhaseForeground || !p.clipsOverflow() {
		fn()
		return
	}
	clip := ctx.RoundedDeviceRect(p.AbsolutePaddingBoxRect())
	ctx.Painter.Save()
	ctx.Painter.AddClipRect(clip)

	var clipper *BorderRadiusCornerClipper
	if radii := p.normalizedBorderRadii(true); radii.HasAny() {
		c, err := NewBorderRadiusCornerClipper(ctx, clip, ctx.DeviceRadii(radii))
		if err != nil {
			tracer().Errorf("line box corner clipper for %s: %v", p.box, err)
		} else {
			clipper = c
			clipper.SampleUnderCorners(ctx.Painter)
		}
	}
	defer func() {
		ctx.Painter.Restore()
		if clipper != nil {
			clipper.BlitCornerClipping(ctx.Painter)
		}
	}()

	scroll := p.box.ScrollOffset
	ctx.Painter.Translate(image.Pt(-ctx.RoundedDevicePixels(scroll.X), -ctx.RoundedDevicePixels(scroll.Y)))
	fn()
}

// paintTextFragment draws the glyphs of one fragment with its selection,
// decorations and caret.
func (p *PaintableWithLines) paintTextFragment(ctx *PaintContext, frag *layout.LineBoxFragment, abs layout.Rect, phase PaintPhase) {
	if phase != PhaseForeground {
		return
	}
	text := frag.Box
	rect := ctx.RoundedDeviceRect(abs)
	if doc := text.Document; doc != nil && doc.Inspected == text {
		ctx.Painter.DrawRect(rect, debugMagenta)
	}

	style := text.ComputedStyle()
	font := text.UsedFont()
	baselineStart := image.Pt(rect.Min.X, rect.Min.Y+ctx.RoundedDevicePixels(frag.Baseline))
	ctx.Painter.DrawTextRun(baselineStart, frag.Text(), font, style.GetColor())

	if sel := selectionRect(ctx, frag, abs, font); !sel.Empty() {
		ctx.Painter.FillRect(sel, ctx.Palette.Selection)
		restore := gfx.SaveState(ctx.Painter)
		ctx.Painter.AddClipRect(sel)
		ctx.Painter.DrawTextRun(baselineStart, frag.Text(), font, ctx.Palette.SelectionText)
		restore()
	}

	paintTextDecoration(ctx, frag, abs)
	paintCursorIfNeeded(ctx, frag, abs)
}

// selectionRect is the device rect of the selected part of a fragment.
func selectionRect(ctx *PaintContext, frag *layout.LineBoxFragment, abs layout.Rect, font gfx.Font) image.Rectangle {
	doc := frag.Box.Document
	if doc == nil {
		return image.Rectangle{}
	}
	start, end, ok := doc.SelectedRange(frag.Box.Node, len(frag.Box.Text))
	if !ok || end <= frag.Start || start >= frag.End() {
		return image.Rectangle{}
	}
	start, end = max(start, frag.Start)-frag.Start, min(end, frag.End())-frag.Start
	text := frag.Text()
	start, end = min(start, len(text)), min(end, len(text))
	x0, x1 := font.Width(text[:start]), font.Width(text[:end])
	return ctx.EnclosingDeviceRect(layout.Rect{X: abs.X + x0, Y: abs.Y, Width: x1 - x0, Height: abs.Height})
}

// paintTextDecoration draws underline, overline and line-through in the
// decoration style. Lines sit relative to a baseline derived from the
// font's pixel size.
func paintTextDecoration(ctx *PaintContext, frag *layout.LineBoxFragment, abs layout.Rect) {
	text := frag.Box
	style := text.ComputedStyle()
	lines := style.GetTextDecorationLines()
	if len(lines) == 0 {
		return
	}
	font := text.UsedFont()
	glyphHeight := font.PixelSize()
	baseline := abs.Height/2 - (glyphHeight+4)/2 + glyphHeight
	color := style.GetTextDecorationColor()

	cssThickness := math.Max(glyphHeight*0.1, 1)
	if l, ok := style.GetTextDecorationThickness(); ok {
		lc := text.LengthContext()
		lc.PercentBasis = lc.FontSize
		cssThickness = l.ToPx(lc)
	}
	thickness := ctx.RoundedDevicePixels(cssThickness)

	for _, line := range lines {
		var y float64
		switch line {
		case css.TextDecorationNone, css.TextDecorationBlink:
			return
		case css.TextDecorationUnderline:
			y = baseline + 2
		case css.TextDecorationOverline:
			y = baseline - glyphHeight
		case css.TextDecorationLineThrough:
			y = baseline - font.XHeight()*0.5
		}
		start := ctx.RoundedDevicePoint(abs.TopLeft().Translated(0, y))
		end := ctx.RoundedDevicePoint(abs.TopRight().Translated(-1, y))

		switch style.GetTextDecorationStyle() {
		case css.TextDecorationStyleDouble:
			var shift int
			switch line {
			case css.TextDecorationOverline:
				shift = -thickness - ctx.RoundedDevicePixels(1)
			case css.TextDecorationLineThrough:
				shift = -thickness / 2
			}
			start.Y += shift
			end.Y += shift
			ctx.Painter.DrawLine(start, end, color, thickness, gfx.LineSolid)
			gap := image.Pt(0, thickness+1)
			ctx.Painter.DrawLine(start.Add(gap), end.Add(gap), color, thickness, gfx.LineSolid)
		case css.TextDecorationStyleDashed:
			ctx.Painter.DrawLine(start, end, color, thickness, gfx.LineDashed)
		case css.TextDecorationStyleDotted:
			ctx.Painter.DrawLine(start, end, color, thickness, gfx.LineDotted)
		case css.TextDecorationStyleWavy:
			ctx.Painter.DrawTriangleWave(start, end, color, thickness+1, thickness)
		default:
			ctx.Painter.DrawLine(start, end, color, thickness, gfx.LineSolid)
		}
	}
}

// paintCursorIfNeeded draws the caret when it sits inside this fragment of
// an editable node and the focused document is in the visible blink state.
func paintCursorIfNeeded(ctx *PaintContext, frag *layout.LineBoxFragment, abs layout.Rect) {
	text := frag.Box
	doc := text.Document
	if doc == nil || !doc.FocusedContext || !doc.CursorBlinkOn {
		return
	}
	if doc.Cursor.Node == nil || doc.Cursor.Node != text.Node {
		return
	}
	offset := doc.Cursor.Offset
	if offset < frag.Start || offset > frag.End() {
		return
	}
	if !text.IsEditable() {
		return
	}
	before := frag.Text()
	before = before[:min(offset-frag.Start, len(before))]
	x := text.UsedFont().Width(before)
	caret := layout.Rect{X: abs.X + x, Y: abs.Y, Width: 1, Height: abs.Height}
	ctx.Painter.DrawRect(ctx.RoundedDeviceRect(caret), text.ComputedStyle().GetColor())
}
