package css

import (
	"strconv"
	"strings"
)

// BackgroundRepeatType is the value of background-repeat.
type BackgroundRepeatType string

const (
	BackgroundRepeatRepeat   BackgroundRepeatType = "repeat"
	BackgroundRepeatRepeatX  BackgroundRepeatType = "repeat-x"
	BackgroundRepeatRepeatY  BackgroundRepeatType = "repeat-y"
	BackgroundRepeatNoRepeat BackgroundRepeatType = "no-repeat"
)

// BackgroundPosition is a resolved background-position in pixels.
type BackgroundPosition struct {
	X, Y float64
}

// BackgroundLayer is one background-image layer with its repeat and position.
type BackgroundLayer struct {
	Image    string
	Repeat   BackgroundRepeatType
	Position BackgroundPosition
}

// ParseURLValue extracts the target of url(...), with or without quotes.
func ParseURLValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	inner := strings.TrimSpace(v[4 : len(v)-1])
	inner = strings.Trim(inner, `"'`)
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return "", false
	}
	return inner, true
}

// GetBackgroundColor returns background-color (default: transparent).
func (s *Style) GetBackgroundColor() Color {
	if v, ok := s.Get("background-color"); ok {
		if c, ok := ParseColor(v); ok {
			return c
		}
	}
	return Transparent
}

// GetBackgroundImage returns the URL of the first background image.
func (s *Style) GetBackgroundImage() (string, bool) {
	layers := s.GetBackgroundLayers()
	if len(layers) == 0 {
		return "", false
	}
	return layers[0].Image, true
}

// GetBackgroundRepeat returns background-repeat of the first layer.
func (s *Style) GetBackgroundRepeat() BackgroundRepeatType {
	v, ok := s.Get("background-repeat")
	if !ok {
		return BackgroundRepeatRepeat
	}
	return parseRepeat(splitTopLevel(v, ',')[0])
}

func parseRepeat(v string) BackgroundRepeatType {
	switch BackgroundRepeatType(strings.TrimSpace(v)) {
	case BackgroundRepeatRepeatX:
		return BackgroundRepeatRepeatX
	case BackgroundRepeatRepeatY:
		return BackgroundRepeatRepeatY
	case BackgroundRepeatNoRepeat:
		return BackgroundRepeatNoRepeat
	}
	return BackgroundRepeatRepeat
}

// GetBackgroundPosition returns background-position of the first layer.
func (s *Style) GetBackgroundPosition() BackgroundPosition {
	v, ok := s.Get("background-position")
	if !ok {
		return BackgroundPosition{}
	}
	return parsePosition(splitTopLevel(v, ',')[0])
}

func parsePosition(v string) BackgroundPosition {
	var pos BackgroundPosition
	parts := strings.Fields(v)
	if len(parts) > 0 {
		pos.X, _ = ParseLength(parts[0])
	}
	if len(parts) > 1 {
		pos.Y, _ = ParseLength(parts[1])
	}
	return pos
}

// GetBackgroundLayers returns all background-image layers in paint order
// (first layer on top, as declared). Repeat and position lists are cycled.
func (s *Style) GetBackgroundLayers() []BackgroundLayer {
	v, ok := s.Get("background-image")
	if !ok {
		return nil
	}
	var repeats, positions []string
	if r, ok := s.Get("background-repeat"); ok {
		repeats = splitTopLevel(r, ',')
	}
	if p, ok := s.Get("background-position"); ok {
		positions = splitTopLevel(p, ',')
	}
	var layers []BackgroundLayer
	for i, img := range splitTopLevel(v, ',') {
		url, ok := ParseURLValue(img)
		if !ok {
			continue
		}
		layer := BackgroundLayer{Image: url, Repeat: BackgroundRepeatRepeat}
		if len(repeats) > 0 {
			layer.Repeat = parseRepeat(repeats[i%len(repeats)])
		}
		if len(positions) > 0 {
			layer.Position = parsePosition(positions[i%len(positions)])
		}
		layers = append(layers, layer)
	}
	return layers
}

// expandBackground expands "red url(bg.png) -46px 0 no-repeat".
func expandBackground(style *Style, value string) {
	var position []string
	for _, part := range splitTopLevel(value, ' ') {
		switch {
		case strings.HasPrefix(part, "url("):
			style.Set("background-image", part)
		case part == "none":
			style.Set("background-image", "none")
		case part == string(BackgroundRepeatRepeat) || part == string(BackgroundRepeatRepeatX) ||
			part == string(BackgroundRepeatRepeatY) || part == string(BackgroundRepeatNoRepeat):
			style.Set("background-repeat", part)
		default:
			if _, ok := ParseLengthValue(part); ok {
				position = append(position, part)
			} else if _, ok := ParseColor(part); ok {
				style.Set("background-color", part)
			}
		}
	}
	if len(position) > 0 {
		style.Set("background-position", strings.Join(position, " "))
	}
}

// FilterFunction is one entry of a filter / backdrop-filter list.
type FilterFunction struct {
	Name   string // grayscale, invert, sepia, brightness, opacity
	Amount float64
}

// GetBackdropFilter returns the backdrop-filter functions; nil for none.
func (s *Style) GetBackdropFilter() []FilterFunction {
	v, ok := s.Get("backdrop-filter")
	if !ok || strings.TrimSpace(v) == "none" {
		return nil
	}
	var filters []FilterFunction
	for _, fn := range splitTopLevel(v, ' ') {
		open := strings.IndexByte(fn, '(')
		if open <= 0 || !strings.HasSuffix(fn, ")") {
			continue
		}
		name := fn[:open]
		arg := strings.TrimSpace(fn[open+1 : len(fn)-1])
		amount := 1.0
		if arg != "" {
			pct := strings.HasSuffix(arg, "%")
			f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
			if err != nil {
				continue
			}
			if pct {
				f /= 100
			}
			amount = f
		}
		switch name {
		case "grayscale", "invert", "sepia", "opacity":
			amount = clamp01(amount)
		case "brightness":
			if amount < 0 {
				amount = 0
			}
		default:
			continue
		}
		filters = append(filters, FilterFunction{Name: name, Amount: amount})
	}
	return filters
}
