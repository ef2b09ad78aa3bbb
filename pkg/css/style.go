package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Style holds the resolved computed values of one element as a property map.
// Values are produced by the style engine; this package only reads them.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// GetLength returns a length property converted to pixels. Only absolute
// units are accepted; relative units need a LengthContext (see GetLengthValue).
func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	l, ok := ParseLengthValue(val)
	if !ok || !l.IsAbsolute() {
		return 0, false
	}
	return l.ToPx(LengthContext{}), true
}

// GetLengthValue returns the unresolved length of a property.
func (s *Style) GetLengthValue(property string) (Length, bool) {
	val, ok := s.Get(property)
	if !ok {
		return Length{}, false
	}
	return ParseLengthValue(val)
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// GetMargin returns the margin values for all four sides
func (s *Style) GetMargin() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("margin-top"),
		Right:  s.getLengthOrZero("margin-right"),
		Bottom: s.getLengthOrZero("margin-bottom"),
		Left:   s.getLengthOrZero("margin-left"),
	}
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("padding-top"),
		Right:  s.getLengthOrZero("padding-right"),
		Bottom: s.getLengthOrZero("padding-bottom"),
		Left:   s.getLengthOrZero("padding-left"),
	}
}

// GetBorderWidth returns the used border width for all four sides.
// A side whose border style is none or hidden has zero width.
func (s *Style) GetBorderWidth() BoxEdge {
	return BoxEdge{
		Top:    s.GetBorderData(SideTop).Width,
		Right:  s.GetBorderData(SideRight).Width,
		Bottom: s.GetBorderData(SideBottom).Width,
		Left:   s.GetBorderData(SideLeft).Width,
	}
}

// getLengthOrZero returns the length value or 0 if not found
func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

// Position type constants
type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
	PositionSticky   PositionType = "sticky"
)

// GetPosition returns the position type (default: static)
func (s *Style) GetPosition() PositionType {
	if pos, ok := s.Get("position"); ok {
		switch pos {
		case "relative":
			return PositionRelative
		case "absolute":
			return PositionAbsolute
		case "fixed":
			return PositionFixed
		case "sticky":
			return PositionSticky
		}
	}
	return PositionStatic
}

// PositionOffset holds the resolved inset of a positioned element.
type PositionOffset struct {
	Top       float64
	Right     float64
	Bottom    float64
	Left      float64
	HasTop    bool
	HasRight  bool
	HasBottom bool
	HasLeft   bool
}

// GetPositionOffset returns positioning offset values
func (s *Style) GetPositionOffset() PositionOffset {
	offset := PositionOffset{}

	if top, ok := s.GetLength("top"); ok {
		offset.Top = top
		offset.HasTop = true
	}
	if right, ok := s.GetLength("right"); ok {
		offset.Right = right
		offset.HasRight = true
	}
	if bottom, ok := s.GetLength("bottom"); ok {
		offset.Bottom = bottom
		offset.HasBottom = true
	}
	if left, ok := s.GetLength("left"); ok {
		offset.Left = left
		offset.HasLeft = true
	}
	return offset
}

// GetZIndex returns the z-index value. ok is false for z-index: auto.
func (s *Style) GetZIndex() (z int, ok bool) {
	zindex, present := s.Get("z-index")
	if !present || zindex == "auto" || zindex == "" {
		return 0, false
	}
	if _, err := fmt.Sscanf(zindex, "%d", &z); err != nil {
		return 0, false
	}
	return z, true
}

// Overflow is the value of overflow-x / overflow-y.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowClip    Overflow = "clip"
	OverflowScroll  Overflow = "scroll"
	OverflowAuto    Overflow = "auto"
)

func parseOverflow(v string) Overflow {
	switch Overflow(strings.TrimSpace(v)) {
	case OverflowHidden:
		return OverflowHidden
	case OverflowClip:
		return OverflowClip
	case OverflowScroll:
		return OverflowScroll
	case OverflowAuto:
		return OverflowAuto
	}
	return OverflowVisible
}

// GetOverflowX returns overflow-x (default: visible).
func (s *Style) GetOverflowX() Overflow {
	if v, ok := s.Get("overflow-x"); ok {
		return parseOverflow(v)
	}
	return OverflowVisible
}

// GetOverflowY returns overflow-y (default: visible).
func (s *Style) GetOverflowY() Overflow {
	if v, ok := s.Get("overflow-y"); ok {
		return parseOverflow(v)
	}
	return OverflowVisible
}

// GetOpacity returns opacity clamped to [0,1] (default: 1).
func (s *Style) GetOpacity() float64 {
	v, ok := s.Get("opacity")
	if !ok {
		return 1
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 1
	}
	return clamp01(f)
}

// HasTransform reports whether transform is set to something other than none.
func (s *Style) HasTransform() bool {
	v, ok := s.Get("transform")
	return ok && v != "" && v != "none"
}

// IsVisible reports whether visibility is visible (the default).
func (s *Style) IsVisible() bool {
	v, ok := s.Get("visibility")
	return !ok || (v != "hidden" && v != "collapse")
}

// PointerEventsNone reports pointer-events: none.
func (s *Style) PointerEventsNone() bool {
	v, ok := s.Get("pointer-events")
	return ok && v == "none"
}

// ParseInlineStyle parses a declaration block ("color: red; margin: 4px")
// into a Style, expanding the shorthands the painter reads.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	declarations := strings.Split(styleAttr, ";")
	for _, decl := range declarations {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])

		expandShorthand(style, property, value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin":
		expandBoxProperty(style, "margin", "", value)
	case "padding":
		expandBoxProperty(style, "padding", "", value)
	case "border":
		expandBorderProperty(style, "border", value)
	case "border-top", "border-right", "border-bottom", "border-left":
		expandBorderProperty(style, property, value)
	case "border-width", "border-style", "border-color":
		style.Set(property, value)
		expandBoxProperty(style, "border", strings.TrimPrefix(property, "border"), value)
	case "border-radius":
		expandBorderRadius(style, value)
	case "overflow":
		parts := strings.Fields(value)
		if len(parts) == 0 {
			return
		}
		style.Set("overflow-x", parts[0])
		style.Set("overflow-y", parts[len(parts)-1])
	case "text-decoration":
		expandTextDecoration(style, value)
	case "background":
		expandBackground(style, value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands margin/padding/border-* shorthand
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
//
//	"10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, prefix, suffix, value string) {
	parts := strings.Fields(value)
	var t, r, b, l string
	switch len(parts) {
	case 1:
		t, r, b, l = parts[0], parts[0], parts[0], parts[0]
	case 2:
		t, r, b, l = parts[0], parts[1], parts[0], parts[1]
	case 3:
		t, r, b, l = parts[0], parts[1], parts[2], parts[1]
	case 4:
		t, r, b, l = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	style.Set(prefix+"-top"+suffix, t)
	style.Set(prefix+"-right"+suffix, r)
	style.Set(prefix+"-bottom"+suffix, b)
	style.Set(prefix+"-left"+suffix, l)
}

// expandBorderProperty expands border shorthand
// Format: "1px solid black" or "2px dotted #FF0000"
func expandBorderProperty(style *Style, prefix, value string) {
	sides := []string{"-top", "-right", "-bottom", "-left"}
	if prefix != "border" {
		sides = []string{strings.TrimPrefix(prefix, "border")}
	}
	set := func(suffix, v string) {
		if prefix == "border" {
			style.Set("border"+suffix, v)
		}
		for _, side := range sides {
			style.Set("border"+side+suffix, v)
		}
	}
	for _, part := range splitTopLevel(value, ' ') {
		if _, ok := ParseLengthValue(part); ok {
			set("-width", part)
		} else if _, ok := parseBorderStyle(part); ok {
			set("-style", part)
		} else {
			set("-color", part)
		}
	}
}

// FontWeight represents the font-weight property value
type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// GetFontWeight returns the font-weight value (default: normal)
func (s *Style) GetFontWeight() FontWeight {
	if weight, ok := s.Get("font-weight"); ok {
		switch weight {
		case "bold", "bolder", "600", "700", "800", "900":
			return FontWeightBold
		}
	}
	return FontWeightNormal
}

// IsItalic reports font-style italic or oblique.
func (s *Style) IsItalic() bool {
	v, ok := s.Get("font-style")
	return ok && (v == "italic" || v == "oblique")
}

// IsMonospace reports a monospace generic family in font-family.
func (s *Style) IsMonospace() bool {
	v, ok := s.Get("font-family")
	return ok && strings.Contains(strings.ToLower(v), "monospace")
}

// GetFontSize returns the font-size in pixels (default: 16px)
func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok {
		return size
	}
	return 16.0
}

// GetColor returns the text color (default: black)
func (s *Style) GetColor() Color {
	if colorStr, ok := s.Get("color"); ok {
		if color, ok := ParseColor(colorStr); ok {
			return color
		}
	}
	return Black
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayNone        DisplayType = "none"
)

// GetDisplay returns the display value (default: block)
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "inline":
			return DisplayInline
		case "inline-block":
			return DisplayInlineBlock
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// splitTopLevel splits on sep outside of parentheses, dropping empty parts.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == sep && depth == 0:
			if p := strings.TrimSpace(s[start:i]); p != "" {
				parts = append(parts, p)
			}
			start = i + len(string(r))
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
