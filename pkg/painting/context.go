package painting

import (
	"image"
	"math"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
	"l14paint/pkg/images"
	"l14paint/pkg/layout"
)

// Palette holds the system colours used for highlighting and debug overlays.
type Palette struct {
	Selection     css.Color
	SelectionText css.Color
	FocusOutline  css.Color
	Tooltip       css.Color
	TooltipText   css.Color
	ThreedShadow1 css.Color
}

// DefaultPalette is a light theme.
func DefaultPalette() Palette {
	return Palette{
		Selection:     css.Color{R: 0x3d, G: 0x7d, B: 0xd8, A: 1},
		SelectionText: css.White,
		FocusOutline:  css.Color{R: 0x1b, G: 0x5c, B: 0xc4, A: 1},
		Tooltip:       css.Color{R: 0xff, G: 0xff, B: 0xe1, A: 1},
		TooltipText:   css.Black,
		ThreedShadow1: css.Color{R: 0x80, G: 0x80, B: 0x80, A: 1},
	}
}

// PaintContext carries everything a paint pass needs besides the tree:
// the drawing target, CSS→device conversion, the viewport, the palette and
// debug switches.
type PaintContext struct {
	Painter gfx.Painter
	// Scale is the number of device pixels per CSS pixel.
	Scale   float64
	Palette Palette
	// Viewport is the visible part of the document in CSS pixels.
	Viewport layout.Rect

	ShowLineBoxBorders bool

	// DefaultFont is the UI font used for inspector labels.
	DefaultFont gfx.Font
	// AllocateBitmap provides scratch bitmaps for corner clipping, shadows
	// and backdrop filters. It may fail; callers degrade gracefully.
	AllocateBitmap func(w, h int) (*image.RGBA, error)
	// LoadImage resolves background image URLs.
	LoadImage func(url string) (image.Image, error)
}

// NewPaintContext creates a context with the default palette, font and
// allocator.
func NewPaintContext(p gfx.Painter, viewport layout.Rect, scale float64) *PaintContext {
	if scale <= 0 {
		scale = 1
	}
	return &PaintContext{
		Painter:     p,
		Scale:       scale,
		Palette:     DefaultPalette(),
		Viewport:    viewport,
		DefaultFont: gfx.DefaultFont(),
		AllocateBitmap: func(w, h int) (*image.RGBA, error) {
			return gfx.AllocateBitmap(w, h, gfx.MaxBitmapPixels)
		},
		LoadImage: images.LoadImage,
	}
}

func (ctx *PaintContext) RoundedDevicePixels(v float64) int {
	return int(math.Round(v * ctx.Scale))
}

func (ctx *PaintContext) RoundedDevicePoint(p layout.Point) image.Point {
	return image.Pt(ctx.RoundedDevicePixels(p.X), ctx.RoundedDevicePixels(p.Y))
}

// RoundedDeviceRect rounds origin and size independently.
func (ctx *PaintContext) RoundedDeviceRect(r layout.Rect) image.Rectangle {
	x, y := ctx.RoundedDevicePixels(r.X), ctx.RoundedDevicePixels(r.Y)
	return image.Rect(x, y, x+ctx.RoundedDevicePixels(r.Width), y+ctx.RoundedDevicePixels(r.Height))
}

// EnclosingDeviceRect is the smallest device rect covering r.
func (ctx *PaintContext) EnclosingDeviceRect(r layout.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X*ctx.Scale)),
		int(math.Floor(r.Y*ctx.Scale)),
		int(math.Ceil(r.Right()*ctx.Scale)),
		int(math.Ceil(r.Bottom()*ctx.Scale)),
	)
}

// DeviceViewportRect is the viewport in device pixels.
func (ctx *PaintContext) DeviceViewportRect() image.Rectangle {
	return ctx.RoundedDeviceRect(ctx.Viewport)
}

// CSSPoint converts a device pixel position to CSS pixels.
func (ctx *PaintContext) CSSPoint(p image.Point) layout.Point {
	return layout.Point{X: float64(p.X) / ctx.Scale, Y: float64(p.Y) / ctx.Scale}
}

// DeviceRadii scales CSS pixel radii to device pixels.
func (ctx *PaintContext) DeviceRadii(r gfx.CornerRadii) gfx.CornerRadii {
	scale := func(c gfx.CornerRadius) gfx.CornerRadius {
		return gfx.CornerRadius{Horizontal: c.Horizontal * ctx.Scale, Vertical: c.Vertical * ctx.Scale}
	}
	return gfx.CornerRadii{
		TopLeft:     scale(r.TopLeft),
		TopRight:    scale(r.TopRight),
		BottomRight: scale(r.BottomRight),
		BottomLeft:  scale(r.BottomLeft),
	}
}

// WouldBeFullyClippedByPainter reports whether nothing of r would survive
// the painter's current clip.
func (ctx *PaintContext) WouldBeFullyClippedByPainter(r image.Rectangle) bool {
	return !r.Overlaps(ctx.Painter.ClipRect())
}

func (ctx *PaintContext) allocateBitmap(w, h int) (*image.RGBA, error) {
	if ctx.AllocateBitmap == nil {
		return gfx.AllocateBitmap(w, h, gfx.MaxBitmapPixels)
	}
	return ctx.AllocateBitmap(w, h)
}
