package gfx

import (
	"image"
	"image/color"
)

// LineStyle selects the stroke pattern of DrawLine.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
)

// TextAlignment positions DrawText inside its rectangle.
type TextAlignment int

const (
	AlignTopLeft TextAlignment = iota
	AlignCenter
)

// CornerRadius is one elliptical corner in device pixels.
type CornerRadius struct {
	Horizontal float64
	Vertical   float64
}

func (c CornerRadius) IsZero() bool {
	return c.Horizontal <= 0 || c.Vertical <= 0
}

// CornerRadii holds the four corners of a rounded rectangle.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft CornerRadius
}

// HasAny reports whether at least one corner is rounded.
func (r CornerRadii) HasAny() bool {
	return !r.TopLeft.IsZero() || !r.TopRight.IsZero() || !r.BottomRight.IsZero() || !r.BottomLeft.IsZero()
}

// Painter is the drawing target of the paint phases. All coordinates are
// device pixels relative to the current translation. The clip is always a
// rectangle; Save and Restore push and pop clip and translation together.
type Painter interface {
	Save()
	Restore()
	AddClipRect(r image.Rectangle)
	// ClipRect is the current clip in the translated coordinate space.
	ClipRect() image.Rectangle
	Translate(d image.Point)

	FillRect(r image.Rectangle, c color.Color)
	FillRectWithRoundedCorners(r image.Rectangle, c color.Color, radii CornerRadii)
	FillPolygon(points []image.Point, c color.Color)
	DrawRect(r image.Rectangle, c color.Color)
	DrawRoundedRect(r image.Rectangle, c color.Color, radii CornerRadii, thickness int)
	DrawLine(from, to image.Point, c color.Color, thickness int, style LineStyle)
	DrawTriangleWave(from, to image.Point, c color.Color, amplitude, thickness int)
	DrawTextRun(baselineStart image.Point, text string, f Font, c color.Color)
	DrawText(r image.Rectangle, text string, f Font, align TextAlignment, c color.Color)
	DrawFocusRect(r image.Rectangle, c color.Color)
	DrawImage(img image.Image, at image.Point)

	// ReadPixels copies the target pixels under r into dst at dstAt.
	ReadPixels(r image.Rectangle, dst *image.RGBA, dstAt image.Point)
	// BlitOver composites src over the target at at, honouring the clip.
	BlitOver(src image.Image, at image.Point)
	// Blit replaces the target pixels at at with src, honouring the clip.
	Blit(src image.Image, at image.Point)
}

// SaveState saves the painter state and returns the matching restore, to be
// used as `defer gfx.SaveState(p)()`.
func SaveState(p Painter) func() {
	p.Save()
	return p.Restore
}
