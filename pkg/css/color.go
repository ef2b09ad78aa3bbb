package css

import (
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) sRGB colour with alpha in [0,1].
// It implements color.Color so it can be handed to a painter directly.
type Color struct {
	R, G, B uint8
	A       float64
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{255, 255, 255, 1}
	Transparent = Color{0, 0, 0, 0}
)

// RGBA implements color.Color (alpha-premultiplied, 16 bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(c.R) * 0x101 * alpha / 0xffff
	g = uint32(c.G) * 0x101 * alpha / 0xffff
	b = uint32(c.B) * 0x101 * alpha / 0xffff
	return r, g, b, alpha
}

// WithAlpha returns the colour with alpha given in 0..255, the way palettes
// specify translucent overlays.
func (c Color) WithAlpha(a uint8) Color {
	c.A = float64(a) / 255
	return c
}

// IsTransparent reports a fully transparent colour.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// Darken scales the RGB channels by f (0..1).
func (c Color) Darken(f float64) Color {
	c.R = uint8(float64(c.R) * f)
	c.G = uint8(float64(c.G) * f)
	c.B = uint8(float64(c.B) * f)
	return c
}

// Lighten moves the RGB channels towards white by f (0..1).
func (c Color) Lighten(f float64) Color {
	c.R = c.R + uint8(float64(255-c.R)*f)
	c.G = c.G + uint8(float64(255-c.G)*f)
	c.B = c.B + uint8(float64(255-c.B)*f)
	return c
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0, 1},
	"green":   {0, 128, 0, 1},
	"blue":    {0, 0, 255, 1},
	"yellow":  {255, 255, 0, 1},
	"cyan":    {0, 255, 255, 1},
	"magenta": {255, 0, 255, 1},
	"white":   {255, 255, 255, 1},
	"black":   {0, 0, 0, 1},
	"gray":    {128, 128, 128, 1},
	"grey":    {128, 128, 128, 1},
	"orange":  {255, 165, 0, 1},
	"purple":  {128, 0, 128, 1},
	"pink":    {255, 192, 203, 1},
	"brown":   {165, 42, 42, 1},
	"lime":    {0, 255, 0, 1},
	"navy":    {0, 0, 128, 1},
	"teal":    {0, 128, 128, 1},
	"silver":  {192, 192, 192, 1},
	"maroon":  {128, 0, 0, 1},
	"olive":   {128, 128, 0, 1},
	"aqua":    {0, 255, 255, 1},
	"fuchsia": {255, 0, 255, 1},
}

// ParseColor parses named colours, transparent, #rgb, #rrggbb, #rrggbbaa,
// rgb() and rgba().
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if colorStr == "transparent" {
		return Transparent, true
	}
	if color, ok := namedColors[colorStr]; ok {
		return color, true
	}
	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}
	if strings.HasPrefix(colorStr, "rgb(") || strings.HasPrefix(colorStr, "rgba(") {
		return parseRGBFunction(colorStr)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 || len(hex) == 4 {
		var long strings.Builder
		for _, r := range hex {
			long.WriteRune(r)
			long.WriteRune(r)
		}
		hex = long.String()
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	if len(hex) == 6 {
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 1}, true
	}
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), float64(uint8(v)) / 255}, true
}

func parseRGBFunction(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	args := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		arg := args[i]
		var f float64
		var err error
		if strings.HasSuffix(arg, "%") {
			f, err = strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
			f = f * 255 / 100
		} else {
			f, err = strconv.ParseFloat(arg, 64)
		}
		if err != nil {
			return Color{}, false
		}
		ch[i] = uint8(clamp01(f/255) * 255)
	}
	c := Color{ch[0], ch[1], ch[2], 1}
	if len(args) == 4 {
		arg := args[3]
		var a float64
		var err error
		if strings.HasSuffix(arg, "%") {
			a, err = strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
			a /= 100
		} else {
			a, err = strconv.ParseFloat(arg, 64)
		}
		if err != nil {
			return Color{}, false
		}
		c.A = clamp01(a)
	}
	return c, true
}
