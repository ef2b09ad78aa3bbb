package css

import "strings"

// ShadowPlacement tells whether a box shadow is drawn outside the border box
// or inside the padding box.
type ShadowPlacement int

const (
	ShadowOuter ShadowPlacement = iota
	ShadowInner
)

// ShadowStyleValue is one layer of box-shadow or text-shadow as computed by
// the style engine. Its lengths may still be relative.
type ShadowStyleValue struct {
	Color          Color
	OffsetX        Length
	OffsetY        Length
	BlurRadius     Length
	SpreadDistance Length
	Placement      ShadowPlacement
}

// GetBoxShadow returns the box-shadow layers in declaration order.
func (s *Style) GetBoxShadow() []ShadowStyleValue {
	v, ok := s.Get("box-shadow")
	if !ok {
		return nil
	}
	return ParseShadowList(v, s.GetColor())
}

// GetTextShadow returns the text-shadow layers in declaration order.
// Text shadows are never inset.
func (s *Style) GetTextShadow() []ShadowStyleValue {
	v, ok := s.Get("text-shadow")
	if !ok {
		return nil
	}
	layers := ParseShadowList(v, s.GetColor())
	for i := range layers {
		layers[i].Placement = ShadowOuter
	}
	return layers
}

// ParseShadowList parses a comma separated shadow list such as
// "2px 2px 4px red, inset 0 0 1em rgba(0,0,0,.5)". currentColor is used for
// layers without an explicit colour.
func ParseShadowList(value string, currentColor Color) []ShadowStyleValue {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return nil
	}
	var layers []ShadowStyleValue
	for _, layer := range splitTopLevel(value, ',') {
		if sv, ok := parseShadow(layer, currentColor); ok {
			layers = append(layers, sv)
		}
	}
	return layers
}

func parseShadow(layer string, currentColor Color) (ShadowStyleValue, bool) {
	sv := ShadowStyleValue{Color: currentColor, Placement: ShadowOuter}
	var lengths []Length
	for _, token := range splitTopLevel(layer, ' ') {
		if token == "inset" {
			sv.Placement = ShadowInner
			continue
		}
		if l, ok := ParseLengthValue(token); ok {
			lengths = append(lengths, l)
			continue
		}
		if c, ok := ParseColor(token); ok {
			sv.Color = c
			continue
		}
		return ShadowStyleValue{}, false
	}
	if len(lengths) < 2 || len(lengths) > 4 {
		return ShadowStyleValue{}, false
	}
	sv.OffsetX, sv.OffsetY = lengths[0], lengths[1]
	sv.BlurRadius, sv.SpreadDistance = Px(0), Px(0)
	if len(lengths) > 2 {
		sv.BlurRadius = lengths[2]
	}
	if len(lengths) > 3 {
		sv.SpreadDistance = lengths[3]
	}
	return sv, true
}
