package css

import "strings"

// Side names one edge of a box.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	return [...]string{"top", "right", "bottom", "left"}[s]
}

// BorderStyle is the line style of one border edge.
type BorderStyle string

const (
	BorderStyleNone   BorderStyle = "none"
	BorderStyleHidden BorderStyle = "hidden"
	BorderStyleSolid  BorderStyle = "solid"
	BorderStyleDashed BorderStyle = "dashed"
	BorderStyleDotted BorderStyle = "dotted"
	BorderStyleDouble BorderStyle = "double"
	BorderStyleGroove BorderStyle = "groove"
	BorderStyleRidge  BorderStyle = "ridge"
	BorderStyleInset  BorderStyle = "inset"
	BorderStyleOutset BorderStyle = "outset"
)

func parseBorderStyle(v string) (BorderStyle, bool) {
	switch bs := BorderStyle(strings.TrimSpace(v)); bs {
	case BorderStyleNone, BorderStyleHidden, BorderStyleSolid, BorderStyleDashed,
		BorderStyleDotted, BorderStyleDouble, BorderStyleGroove, BorderStyleRidge,
		BorderStyleInset, BorderStyleOutset:
		return bs, true
	}
	return BorderStyleNone, false
}

// BorderData is the computed value of one border edge.
type BorderData struct {
	Color Color
	Style BorderStyle
	Width float64
}

// IsVisible reports whether the edge paints anything.
func (b BorderData) IsVisible() bool {
	return b.Width > 0 && b.Style != BorderStyleNone && b.Style != BorderStyleHidden && !b.Color.IsTransparent()
}

// GetBorderData returns the computed border of one side. Colours fall back
// from the per-side value to border-color and then to currentColor.
func (s *Style) GetBorderData(side Side) BorderData {
	prefix := "border-" + side.String()
	data := BorderData{Style: BorderStyleNone, Color: s.GetColor()}

	if v, ok := s.Get(prefix + "-style"); ok {
		data.Style, _ = parseBorderStyle(v)
	} else if v, ok := s.Get("border-style"); ok {
		data.Style, _ = parseBorderStyle(v)
	}
	if data.Style == BorderStyleNone || data.Style == BorderStyleHidden {
		return data
	}

	data.Width = 3 // medium
	if w, ok := s.GetLength(prefix + "-width"); ok {
		data.Width = w
	} else if w, ok := s.GetLength("border-width"); ok {
		data.Width = w
	}

	if colorStr, ok := s.Get(prefix + "-color"); ok {
		if c, ok := ParseColor(colorStr); ok {
			data.Color = c
		}
	} else if colorStr, ok := s.Get("border-color"); ok {
		if c, ok := ParseColor(colorStr); ok {
			data.Color = c
		}
	}
	return data
}

// Corner names one corner of a box.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

var cornerProperties = [...]string{
	"border-top-left-radius",
	"border-top-right-radius",
	"border-bottom-right-radius",
	"border-bottom-left-radius",
}

// BorderRadius is the computed radius of one corner; percentages refer to
// the border box width (Horizontal) and height (Vertical).
type BorderRadius struct {
	Horizontal Length
	Vertical   Length
}

// GetBorderRadius returns the computed radius of one corner.
func (s *Style) GetBorderRadius(c Corner) BorderRadius {
	v, ok := s.Get(cornerProperties[c])
	if !ok {
		return BorderRadius{}
	}
	parts := strings.Fields(v)
	if len(parts) == 0 {
		return BorderRadius{}
	}
	h, ok := ParseLengthValue(parts[0])
	if !ok {
		return BorderRadius{}
	}
	vert := h
	if len(parts) > 1 {
		if l, ok := ParseLengthValue(parts[1]); ok {
			vert = l
		}
	}
	return BorderRadius{Horizontal: h, Vertical: vert}
}

// expandBorderRadius expands "a b c d / e f g h" into the four corners.
func expandBorderRadius(style *Style, value string) {
	horizontal, vertical := value, value
	if i := strings.IndexByte(value, '/'); i >= 0 {
		horizontal, vertical = value[:i], value[i+1:]
	}
	h := expandFour(strings.Fields(horizontal))
	v := expandFour(strings.Fields(vertical))
	if h == nil || v == nil {
		return
	}
	// corner order: top-left, top-right, bottom-right, bottom-left
	for i, prop := range cornerProperties {
		style.Set(prop, h[i]+" "+v[i])
	}
}

func expandFour(parts []string) []string {
	switch len(parts) {
	case 1:
		return []string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		return []string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		return []string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		return parts
	}
	return nil
}

// ClipRect is the computed value of the (deprecated) clip property.
// Auto edges are reported through the Has* flags being false.
type ClipRect struct {
	Top, Right, Bottom, Left             Length
	HasTop, HasRight, HasBottom, HasLeft bool
}

// GetClip returns clip: rect(...). ok is false for clip: auto.
func (s *Style) GetClip() (ClipRect, bool) {
	v, ok := s.Get("clip")
	if !ok {
		return ClipRect{}, false
	}
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "rect(") || !strings.HasSuffix(v, ")") {
		return ClipRect{}, false
	}
	args := strings.FieldsFunc(v[5:len(v)-1], func(r rune) bool { return r == ',' || r == ' ' })
	if len(args) != 4 {
		return ClipRect{}, false
	}
	var cr ClipRect
	edges := []*Length{&cr.Top, &cr.Right, &cr.Bottom, &cr.Left}
	flags := []*bool{&cr.HasTop, &cr.HasRight, &cr.HasBottom, &cr.HasLeft}
	for i, arg := range args {
		if arg == "auto" {
			continue
		}
		l, ok := ParseLengthValue(arg)
		if !ok {
			return ClipRect{}, false
		}
		*edges[i] = l
		*flags[i] = true
	}
	return cr, true
}
