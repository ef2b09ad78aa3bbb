package css

import "strings"

// TextDecorationLine is one value of text-decoration-line.
type TextDecorationLine string

const (
	TextDecorationNone        TextDecorationLine = "none"
	TextDecorationUnderline   TextDecorationLine = "underline"
	TextDecorationOverline    TextDecorationLine = "overline"
	TextDecorationLineThrough TextDecorationLine = "line-through"
	TextDecorationBlink       TextDecorationLine = "blink"
)

// TextDecorationStyle is the stroke style of decoration lines.
type TextDecorationStyle string

const (
	TextDecorationStyleSolid  TextDecorationStyle = "solid"
	TextDecorationStyleDouble TextDecorationStyle = "double"
	TextDecorationStyleDotted TextDecorationStyle = "dotted"
	TextDecorationStyleDashed TextDecorationStyle = "dashed"
	TextDecorationStyleWavy   TextDecorationStyle = "wavy"
)

func isDecorationLine(v string) bool {
	switch TextDecorationLine(v) {
	case TextDecorationNone, TextDecorationUnderline, TextDecorationOverline,
		TextDecorationLineThrough, TextDecorationBlink:
		return true
	}
	return false
}

func isDecorationStyle(v string) bool {
	switch TextDecorationStyle(v) {
	case TextDecorationStyleSolid, TextDecorationStyleDouble, TextDecorationStyleDotted,
		TextDecorationStyleDashed, TextDecorationStyleWavy:
		return true
	}
	return false
}

// expandTextDecoration splits "underline dotted red 2px".
func expandTextDecoration(style *Style, value string) {
	var lines []string
	for _, part := range splitTopLevel(value, ' ') {
		switch {
		case isDecorationLine(part):
			lines = append(lines, part)
		case isDecorationStyle(part):
			style.Set("text-decoration-style", part)
		case part == "auto" || part == "from-font":
			style.Set("text-decoration-thickness", part)
		default:
			if _, ok := ParseLengthValue(part); ok {
				style.Set("text-decoration-thickness", part)
			} else {
				style.Set("text-decoration-color", part)
			}
		}
	}
	if len(lines) > 0 {
		style.Set("text-decoration-line", strings.Join(lines, " "))
	}
}

// GetTextDecorationLines returns the decoration lines in declaration order.
func (s *Style) GetTextDecorationLines() []TextDecorationLine {
	v, ok := s.Get("text-decoration-line")
	if !ok {
		return nil
	}
	var lines []TextDecorationLine
	for _, part := range strings.Fields(v) {
		if isDecorationLine(part) {
			lines = append(lines, TextDecorationLine(part))
		}
	}
	return lines
}

// GetTextDecorationStyle returns text-decoration-style (default: solid).
func (s *Style) GetTextDecorationStyle() TextDecorationStyle {
	if v, ok := s.Get("text-decoration-style"); ok && isDecorationStyle(v) {
		return TextDecorationStyle(v)
	}
	return TextDecorationStyleSolid
}

// GetTextDecorationColor returns text-decoration-color (default: currentColor).
func (s *Style) GetTextDecorationColor() Color {
	if v, ok := s.Get("text-decoration-color"); ok {
		if c, ok := ParseColor(v); ok {
			return c
		}
	}
	return s.GetColor()
}

// GetTextDecorationThickness returns the thickness; ok is false for auto.
func (s *Style) GetTextDecorationThickness() (Length, bool) {
	v, ok := s.Get("text-decoration-thickness")
	if !ok || v == "auto" || v == "from-font" {
		return Length{}, false
	}
	return ParseLengthValue(v)
}
