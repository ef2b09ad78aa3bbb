package css

import (
	"strconv"
	"strings"
)

// Length is a CSS length that may still use relative units.
type Length struct {
	Value float64
	Unit  string // "px", "em", "rem", "ex", "vw", "vh", "%", "pt", "pc", "cm", "mm", "in"
}

// Px is a convenience constructor for an absolute pixel length.
func Px(v float64) Length {
	return Length{Value: v, Unit: "px"}
}

// LengthContext carries what relative units resolve against: the owning
// box's font metrics, the root font size and the viewport.
type LengthContext struct {
	FontSize       float64
	RootFontSize   float64
	XHeight        float64 // 0 means 0.5em
	ViewportWidth  float64
	ViewportHeight float64
	PercentBasis   float64 // reference length for percentages
}

var unitSuffixes = []string{"rem", "em", "ex", "px", "vw", "vh", "pt", "pc", "cm", "mm", "in", "%"}

// ParseLengthValue parses "12px", "1.5em", "50%" or a unitless number.
// Unitless numbers are only accepted for zero or treated as pixels.
func ParseLengthValue(val string) (Length, bool) {
	val = strings.TrimSpace(strings.ToLower(val))
	if val == "" {
		return Length{}, false
	}
	unit := ""
	for _, u := range unitSuffixes {
		if strings.HasSuffix(val, u) {
			unit = u
			break
		}
	}
	num, err := strconv.ParseFloat(strings.TrimSuffix(val, unit), 64)
	if err != nil {
		return Length{}, false
	}
	if unit == "" {
		unit = "px"
	}
	return Length{Value: num, Unit: unit}, true
}

// IsAbsolute reports whether the length resolves without a context.
func (l Length) IsAbsolute() bool {
	switch l.Unit {
	case "px", "pt", "pc", "cm", "mm", "in", "":
		return true
	}
	return false
}

// IsPercentage reports a percentage length.
func (l Length) IsPercentage() bool {
	return l.Unit == "%"
}

// ToPx resolves the length to CSS pixels.
func (l Length) ToPx(ctx LengthContext) float64 {
	switch l.Unit {
	case "px", "":
		return l.Value
	case "pt":
		return l.Value * 96 / 72
	case "pc":
		return l.Value * 16
	case "in":
		return l.Value * 96
	case "cm":
		return l.Value * 96 / 2.54
	case "mm":
		return l.Value * 96 / 25.4
	case "em":
		return l.Value * ctx.fontSize()
	case "rem":
		root := ctx.RootFontSize
		if root == 0 {
			root = 16
		}
		return l.Value * root
	case "ex":
		if ctx.XHeight > 0 {
			return l.Value * ctx.XHeight
		}
		return l.Value * ctx.fontSize() / 2
	case "vw":
		return l.Value * ctx.ViewportWidth / 100
	case "vh":
		return l.Value * ctx.ViewportHeight / 100
	case "%":
		return l.Value * ctx.PercentBasis / 100
	}
	return l.Value
}

func (ctx LengthContext) fontSize() float64 {
	if ctx.FontSize == 0 {
		return 16
	}
	return ctx.FontSize
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit
}
