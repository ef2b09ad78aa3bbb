package gfx

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font is the metrics contract used for text painting and caret placement.
type Font interface {
	Face() font.Face
	// PixelSize is the nominal glyph height in CSS pixels.
	PixelSize() float64
	Width(s string) float64
	GlyphWidth(r rune) float64
	GlyphSpacing() float64
	XHeight() float64
}

// FaceFont adapts an x/image font.Face.
type FaceFont struct {
	face      font.Face
	pixelSize float64
	spacing   float64
}

// NewFaceFont wraps face. pixelSize of 0 takes the face's line height.
func NewFaceFont(face font.Face, pixelSize float64) *FaceFont {
	if pixelSize <= 0 {
		pixelSize = fixedToFloat(face.Metrics().Height)
	}
	return &FaceFont{face: face, pixelSize: pixelSize}
}

var defaultFont = NewFaceFont(basicfont.Face7x13, 13)

// DefaultFont is the built-in 7x13 bitmap font. It is always available.
func DefaultFont() *FaceFont {
	return defaultFont
}

func (f *FaceFont) Face() font.Face      { return f.face }
func (f *FaceFont) PixelSize() float64   { return f.pixelSize }
func (f *FaceFont) GlyphSpacing() float64 { return f.spacing }

func (f *FaceFont) Width(s string) float64 {
	w := fixedToFloat(font.MeasureString(f.face, s))
	if n := len([]rune(s)); n > 1 {
		w += float64(n-1) * f.spacing
	}
	return w
}

func (f *FaceFont) GlyphWidth(r rune) float64 {
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		adv, _ = f.face.GlyphAdvance('?')
	}
	return fixedToFloat(adv)
}

func (f *FaceFont) XHeight() float64 {
	if xh := fixedToFloat(f.face.Metrics().XHeight); xh > 0 {
		return xh
	}
	return f.pixelSize / 2
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
