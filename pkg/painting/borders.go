package painting

import (
	"image"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
)

// borders returns the edges to paint. An edge whose used width is zero
// paints as no border, whatever its style says.
func (b *PaintableBox) borders() BordersData {
	if b.overrideBorders != nil {
		return *b.overrideBorders
	}
	style := b.box.ComputedStyle()
	edge := func(side css.Side, width float64) css.BorderData {
		if width == 0 {
			return css.BorderData{}
		}
		return style.GetBorderData(side)
	}
	w := b.box.Border
	return BordersData{
		Top:    edge(css.SideTop, w.Top),
		Right:  edge(css.SideRight, w.Right),
		Bottom: edge(css.SideBottom, w.Bottom),
		Left:   edge(css.SideLeft, w.Left),
	}
}

func (b *PaintableBox) paintBorder(ctx *PaintContext) {
	rect := ctx.RoundedDeviceRect(b.AbsoluteBorderBoxRect())
	paintAllBorders(ctx, rect, ctx.DeviceRadii(b.normalizedBorderRadii(false)), b.borders())
}

// paintAllBorders paints the four edges of a border box in device pixels.
// Rounded boxes with one uniform solid border are stroked as a whole;
// otherwise each edge is a mitered trapezoid.
func paintAllBorders(ctx *PaintContext, rect image.Rectangle, radii gfx.CornerRadii, borders BordersData) {
	widths := [4]int{
		ctx.RoundedDevicePixels(borders.Top.Width),
		ctx.RoundedDevicePixels(borders.Right.Width),
		ctx.RoundedDevicePixels(borders.Bottom.Width),
		ctx.RoundedDevicePixels(borders.Left.Width),
	}
	edges := [4]css.BorderData{borders.Top, borders.Right, borders.Bottom, borders.Left}

	if radii.HasAny() && uniform(edges) && edges[0].IsVisible() {
		ctx.Painter.DrawRoundedRect(rect, edges[0].Color, radii, widths[0])
		return
	}

	inner := image.Rect(rect.Min.X+widths[3], rect.Min.Y+widths[0], rect.Max.X-widths[1], rect.Max.Y-widths[2])
	for side := css.SideTop; side <= css.SideLeft; side++ {
		if !edges[side].IsVisible() || widths[side] == 0 {
			continue
		}
		paintBorderEdge(ctx, side, rect, inner, edges[side], widths[side])
	}
}

func uniform(edges [4]css.BorderData) bool {
	for _, e := range edges[1:] {
		if e != edges[0] {
			return false
		}
	}
	return edges[0].Style == css.BorderStyleSolid
}

// trapezoid returns the mitered polygon of one edge between the outer and
// the inner rect.
func trapezoid(side css.Side, outer, inner image.Rectangle) []image.Point {
	switch side {
	case css.SideTop:
		return []image.Point{outer.Min, {outer.Max.X, outer.Min.Y}, {inner.Max.X, inner.Min.Y}, inner.Min}
	case css.SideRight:
		return []image.Point{{outer.Max.X, outer.Min.Y}, outer.Max, inner.Max, {inner.Max.X, inner.Min.Y}}
	case css.SideBottom:
		return []image.Point{{outer.Min.X, outer.Max.Y}, outer.Max, inner.Max, {inner.Min.X, inner.Max.Y}}
	default:
		return []image.Point{outer.Min, {outer.Min.X, outer.Max.Y}, {inner.Min.X, inner.Max.Y}, inner.Min}
	}
}

// lerpRect moves each edge of outer a fraction f of the way to inner.
func lerpRect(outer, inner image.Rectangle, f float64) image.Rectangle {
	l := func(a, b int) int { return a + int(float64(b-a)*f+0.5) }
	return image.Rect(l(outer.Min.X, inner.Min.X), l(outer.Min.Y, inner.Min.Y), l(outer.Max.X, inner.Max.X), l(outer.Max.Y, inner.Max.Y))
}

func paintBorderEdge(ctx *PaintContext, side css.Side, outer, inner image.Rectangle, edge css.BorderData, width int) {
	p := ctx.Painter
	c := edge.Color
	// top and left edges are the "shadow" side of inset and groove
	dark, light := c.Darken(0.5), c.Lighten(0.3)
	shadowSide := side == css.SideTop || side == css.SideLeft

	switch edge.Style {
	case css.BorderStyleDashed, css.BorderStyleDotted:
		style := gfx.LineDashed
		if edge.Style == css.BorderStyleDotted {
			style = gfx.LineDotted
		}
		from, to := edgeLine(side, outer, width)
		p.DrawLine(from, to, c, width, style)
	case css.BorderStyleDouble:
		if width < 3 {
			p.FillPolygon(trapezoid(side, outer, inner), c)
			return
		}
		p.FillPolygon(trapezoid(side, outer, lerpRect(outer, inner, 1.0/3)), c)
		p.FillPolygon(trapezoid(side, lerpRect(outer, inner, 2.0/3), inner), c)
	case css.BorderStyleInset, css.BorderStyleOutset:
		fill := light
		if (edge.Style == css.BorderStyleInset) == shadowSide {
			fill = dark
		}
		p.FillPolygon(trapezoid(side, outer, inner), fill)
	case css.BorderStyleGroove, css.BorderStyleRidge:
		first, second := dark, light
		if (edge.Style == css.BorderStyleGroove) != shadowSide {
			first, second = light, dark
		}
		middle := lerpRect(outer, inner, 0.5)
		p.FillPolygon(trapezoid(side, outer, middle), first)
		p.FillPolygon(trapezoid(side, middle, inner), second)
	default:
		p.FillPolygon(trapezoid(side, outer, inner), c)
	}
}

// edgeLine returns the start and end of a line of the given thickness that
// covers one edge, as DrawLine expects it.
func edgeLine(side css.Side, outer image.Rectangle, width int) (image.Point, image.Point) {
	switch side {
	case css.SideTop:
		return outer.Min, image.Pt(outer.Max.X-1, outer.Min.Y)
	case css.SideRight:
		return image.Pt(outer.Max.X-width, outer.Min.Y), image.Pt(outer.Max.X-width, outer.Max.Y-1)
	case css.SideBottom:
		return image.Pt(outer.Min.X, outer.Max.Y-width), image.Pt(outer.Max.X-1, outer.Max.Y-width)
	default:
		return outer.Min, image.Pt(outer.Min.X, outer.Max.Y-1)
	}
}
