package gfx

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

type painterState struct {
	clip      image.Rectangle // untranslated target coordinates
	translate image.Point
}

// GGPainter paints onto an RGBA bitmap through a gg.Context. gg's own
// Push/Pop does not restore the clip mask, so the painter keeps its own
// stack of rectangular clips and rebuilds the mask on Restore.
type GGPainter struct {
	dc    *gg.Context
	state painterState
	stack []painterState
}

// NewGGPainter creates a painter with a fresh bitmap of the given size.
func NewGGPainter(width, height int) *GGPainter {
	return NewGGPainterForRGBA(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewGGPainterForRGBA paints onto an existing bitmap.
func NewGGPainterForRGBA(im *image.RGBA) *GGPainter {
	dc := gg.NewContextForRGBA(im)
	dc.SetLineCapButt()
	return &GGPainter{
		dc:    dc,
		state: painterState{clip: im.Bounds()},
	}
}

// Image returns the target bitmap.
func (p *GGPainter) Image() *image.RGBA {
	return p.dc.Image().(*image.RGBA)
}

// SavePNG writes the target bitmap.
func (p *GGPainter) SavePNG(path string) error {
	return p.dc.SavePNG(path)
}

// Clear fills the whole target, ignoring the clip.
func (p *GGPainter) Clear(c color.Color) {
	draw.Draw(p.Image(), p.Image().Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (p *GGPainter) Save() {
	p.stack = append(p.stack, p.state)
}

func (p *GGPainter) Restore() {
	if len(p.stack) == 0 {
		tracer().Errorf("gfx: restore without matching save")
		return
	}
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.applyClip()
}

// Depth is the number of unmatched saves.
func (p *GGPainter) Depth() int {
	return len(p.stack)
}

func (p *GGPainter) AddClipRect(r image.Rectangle) {
	p.state.clip = p.state.clip.Intersect(r.Add(p.state.translate))
	p.applyClip()
}

func (p *GGPainter) applyClip() {
	p.dc.ResetClip()
	if p.state.clip == p.Image().Bounds() {
		return
	}
	c := p.state.clip
	p.dc.DrawRectangle(float64(c.Min.X), float64(c.Min.Y), float64(c.Dx()), float64(c.Dy()))
	p.dc.Clip()
}

func (p *GGPainter) ClipRect() image.Rectangle {
	return p.state.clip.Sub(p.state.translate)
}

func (p *GGPainter) Translate(d image.Point) {
	p.state.translate = p.state.translate.Add(d)
}

func (p *GGPainter) rect(r image.Rectangle) (x, y, w, h float64) {
	r = r.Add(p.state.translate)
	return float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy())
}

func (p *GGPainter) FillRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	p.dc.DrawRectangle(p.rect(r))
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *GGPainter) FillRectWithRoundedCorners(r image.Rectangle, c color.Color, radii CornerRadii) {
	if r.Empty() {
		return
	}
	if !radii.HasAny() {
		p.FillRect(r, c)
		return
	}
	x, y, w, h := p.rect(r)
	roundedRectPath(p.dc, x, y, w, h, radii)
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *GGPainter) FillPolygon(points []image.Point, c color.Color) {
	if len(points) < 3 {
		return
	}
	for i, pt := range points {
		pt = pt.Add(p.state.translate)
		if i == 0 {
			p.dc.MoveTo(float64(pt.X), float64(pt.Y))
		} else {
			p.dc.LineTo(float64(pt.X), float64(pt.Y))
		}
	}
	p.dc.ClosePath()
	p.dc.SetColor(c)
	p.dc.Fill()
}

// DrawRect draws a one pixel outline along the inside of r.
func (p *GGPainter) DrawRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	p.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	p.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	p.FillRect(image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), c)
	p.FillRect(image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), c)
}

func (p *GGPainter) DrawRoundedRect(r image.Rectangle, c color.Color, radii CornerRadii, thickness int) {
	if r.Empty() || thickness <= 0 {
		return
	}
	x, y, w, h := p.rect(r)
	t := float64(thickness)
	inset := func(cr CornerRadius) CornerRadius {
		return CornerRadius{math.Max(0, cr.Horizontal-t/2), math.Max(0, cr.Vertical-t/2)}
	}
	radii = CornerRadii{inset(radii.TopLeft), inset(radii.TopRight), inset(radii.BottomRight), inset(radii.BottomLeft)}
	roundedRectPath(p.dc, x+t/2, y+t/2, w-t, h-t, radii)
	p.dc.SetColor(c)
	p.dc.SetLineWidth(t)
	p.dc.Stroke()
}

func (p *GGPainter) DrawLine(from, to image.Point, c color.Color, thickness int, style LineStyle) {
	if thickness <= 0 {
		thickness = 1
	}
	from, to = from.Add(p.state.translate), to.Add(p.state.translate)
	t := float64(thickness)
	// Pixel centres: a horizontal line occupies rows [y, y+thickness).
	fx, fy := float64(from.X), float64(from.Y)
	tx, ty := float64(to.X), float64(to.Y)
	if from.Y == to.Y {
		fy += t / 2
		ty += t / 2
		tx++
	} else if from.X == to.X {
		fx += t / 2
		tx += t / 2
		ty++
	}
	switch style {
	case LineDashed:
		p.dc.SetDash(3*t, 3*t)
	case LineDotted:
		p.dc.SetDash(t, t)
	}
	p.dc.SetColor(c)
	p.dc.SetLineWidth(t)
	p.dc.DrawLine(fx, fy, tx, ty)
	p.dc.Stroke()
	p.dc.SetDash()
}

// DrawTriangleWave strokes a zigzag between from and to. Only horizontal
// waves are supported.
func (p *GGPainter) DrawTriangleWave(from, to image.Point, c color.Color, amplitude, thickness int) {
	if amplitude <= 0 || to.X <= from.X {
		return
	}
	from, to = from.Add(p.state.translate), to.Add(p.state.translate)
	a := float64(amplitude)
	y := float64(from.Y) + 0.5
	p.dc.MoveTo(float64(from.X), y)
	up := true
	for x := float64(from.X) + a; ; x += a {
		if x > float64(to.X) {
			x = float64(to.X)
		}
		dy := a / 2
		if up {
			dy = -dy
		}
		p.dc.LineTo(x, y+dy)
		up = !up
		if x >= float64(to.X) {
			break
		}
	}
	p.dc.SetColor(c)
	p.dc.SetLineWidth(float64(thickness))
	p.dc.Stroke()
}

func (p *GGPainter) DrawTextRun(baselineStart image.Point, text string, f Font, c color.Color) {
	if text == "" {
		return
	}
	pt := baselineStart.Add(p.state.translate)
	p.dc.SetFontFace(f.Face())
	p.dc.SetColor(c)
	p.dc.DrawString(text, float64(pt.X), float64(pt.Y))
}

func (p *GGPainter) DrawText(r image.Rectangle, text string, f Font, align TextAlignment, c color.Color) {
	x, y, w, h := p.rect(r)
	p.dc.SetFontFace(f.Face())
	p.dc.SetColor(c)
	switch align {
	case AlignCenter:
		p.dc.DrawStringAnchored(text, x+w/2, y+h/2, 0.5, 0.35)
	default:
		p.dc.DrawStringAnchored(text, x, y, 0, 1)
	}
}

// DrawFocusRect draws a dotted one pixel outline.
func (p *GGPainter) DrawFocusRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	x, y, w, h := p.rect(r)
	p.dc.DrawRectangle(x+0.5, y+0.5, w-1, h-1)
	p.dc.SetDash(1, 1)
	p.dc.SetColor(c)
	p.dc.SetLineWidth(1)
	p.dc.Stroke()
	p.dc.SetDash()
}

func (p *GGPainter) DrawImage(img image.Image, at image.Point) {
	at = at.Add(p.state.translate)
	p.dc.DrawImage(img, at.X, at.Y)
}

func (p *GGPainter) ReadPixels(r image.Rectangle, dst *image.RGBA, dstAt image.Point) {
	r = r.Add(p.state.translate)
	draw.Draw(dst, image.Rectangle{Min: dstAt, Max: dstAt.Add(r.Size())}, p.Image(), r.Min, draw.Src)
}

func (p *GGPainter) BlitOver(src image.Image, at image.Point) {
	p.blit(src, at, draw.Over)
}

func (p *GGPainter) Blit(src image.Image, at image.Point) {
	p.blit(src, at, draw.Src)
}

func (p *GGPainter) blit(src image.Image, at image.Point, op draw.Op) {
	at = at.Add(p.state.translate)
	b := src.Bounds()
	dr := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	clipped := dr.Intersect(p.state.clip)
	if clipped.Empty() {
		return
	}
	sp := b.Min.Add(clipped.Min.Sub(dr.Min))
	draw.Draw(p.Image(), clipped, src, sp, op)
}

// roundedRectPath appends a rounded rectangle path, clockwise from the top
// left corner.
func roundedRectPath(dc *gg.Context, x, y, w, h float64, r CornerRadii) {
	dc.NewSubPath()
	dc.MoveTo(x+r.TopLeft.Horizontal, y)
	dc.LineTo(x+w-r.TopRight.Horizontal, y)
	if !r.TopRight.IsZero() {
		dc.DrawEllipticalArc(x+w-r.TopRight.Horizontal, y+r.TopRight.Vertical,
			r.TopRight.Horizontal, r.TopRight.Vertical, -math.Pi/2, 0)
	}
	dc.LineTo(x+w, y+h-r.BottomRight.Vertical)
	if !r.BottomRight.IsZero() {
		dc.DrawEllipticalArc(x+w-r.BottomRight.Horizontal, y+h-r.BottomRight.Vertical,
			r.BottomRight.Horizontal, r.BottomRight.Vertical, 0, math.Pi/2)
	}
	dc.LineTo(x+r.BottomLeft.Horizontal, y+h)
	if !r.BottomLeft.IsZero() {
		dc.DrawEllipticalArc(x+r.BottomLeft.Horizontal, y+h-r.BottomLeft.Vertical,
			r.BottomLeft.Horizontal, r.BottomLeft.Vertical, math.Pi/2, math.Pi)
	}
	dc.LineTo(x, y+r.TopLeft.Vertical)
	if !r.TopLeft.IsZero() {
		dc.DrawEllipticalArc(x+r.TopLeft.Horizontal, y+r.TopLeft.Vertical,
			r.TopLeft.Horizontal, r.TopLeft.Vertical, math.Pi, 3*math.Pi/2)
	}
	dc.ClosePath()
}
