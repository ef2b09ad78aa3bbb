package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthResolution(t *testing.T) {
	ctx := LengthContext{FontSize: 20, RootFontSize: 10, ViewportWidth: 800, ViewportHeight: 600, PercentBasis: 50}
	cases := map[string]float64{
		"12px": 12,
		"2em":  40,
		"2rem": 20,
		"1ex":  10,
		"10vw": 80,
		"50vh": 300,
		"50%":  25,
		"72pt": 96,
		"1in":  96,
		"0":    0,
	}
	for in, want := range cases {
		l, ok := ParseLengthValue(in)
		require.True(t, ok, in)
		assert.InDelta(t, want, l.ToPx(ctx), 1e-9, in)
	}
	_, ok := ParseLengthValue("red")
	assert.False(t, ok)
	_, ok = ParseLength("2em")
	assert.False(t, ok, "relative lengths need a context")
}

func TestParseColorForms(t *testing.T) {
	c, ok := ParseColor("#f00")
	require.True(t, ok)
	assert.Equal(t, Color{255, 0, 0, 1}, c)

	c, ok = ParseColor("rgba(0, 0, 255, 0.5)")
	require.True(t, ok)
	assert.Equal(t, Color{0, 0, 255, 0.5}, c)

	c, ok = ParseColor("#00ff0080")
	require.True(t, ok)
	assert.Equal(t, uint8(255), c.G)
	assert.InDelta(t, 128.0/255, c.A, 1e-9)

	c, ok = ParseColor("transparent")
	require.True(t, ok)
	assert.True(t, c.IsTransparent())

	_, ok = ParseColor("nope")
	assert.False(t, ok)
}

func TestColorRGBAIsPremultiplied(t *testing.T) {
	r, _, _, a := Color{255, 0, 0, 0.5}.RGBA()
	assert.InDelta(t, 0x7fff, float64(a), 1)
	assert.InDelta(t, 0x7fff, float64(r), 1)
}

func TestBorderDataFallbacks(t *testing.T) {
	s := ParseInlineStyle("color: blue; border-style: solid; border-left: 4px dashed red")
	top := s.GetBorderData(SideTop)
	assert.Equal(t, BorderStyleSolid, top.Style)
	assert.Equal(t, 3.0, top.Width, "medium")
	assert.Equal(t, Color{0, 0, 255, 1}, top.Color, "currentColor")

	left := s.GetBorderData(SideLeft)
	assert.Equal(t, BorderStyleDashed, left.Style)
	assert.Equal(t, 4.0, left.Width)
	assert.Equal(t, Color{255, 0, 0, 1}, left.Color)

	none := ParseInlineStyle("border-width: 5px").GetBorderData(SideBottom)
	assert.Zero(t, none.Width)
	assert.False(t, none.IsVisible())
}

func TestBorderRadiusShorthand(t *testing.T) {
	s := ParseInlineStyle("border-radius: 10px 20% / 5px")
	tl := s.GetBorderRadius(CornerTopLeft)
	assert.Equal(t, Px(10), tl.Horizontal)
	assert.Equal(t, Px(5), tl.Vertical)
	tr := s.GetBorderRadius(CornerTopRight)
	assert.Equal(t, Length{Value: 20, Unit: "%"}, tr.Horizontal)
	assert.Equal(t, Px(5), tr.Vertical)
	assert.Equal(t, tl, s.GetBorderRadius(CornerBottomRight))
}

func TestClipRect(t *testing.T) {
	s := ParseInlineStyle("clip: rect(5px, auto, 40px, 10px)")
	cr, ok := s.GetClip()
	require.True(t, ok)
	assert.True(t, cr.HasTop)
	assert.False(t, cr.HasRight)
	assert.Equal(t, Px(40), cr.Bottom)
	assert.Equal(t, Px(10), cr.Left)

	_, ok = ParseInlineStyle("clip: auto").GetClip()
	assert.False(t, ok)
}

func TestShadowList(t *testing.T) {
	layers := ParseShadowList("2px 3px 4px 1px red, inset 0 0 1em rgba(0,0,0,0.5)", Black)
	require.Len(t, layers, 2)
	assert.Equal(t, ShadowOuter, layers[0].Placement)
	assert.Equal(t, Px(4), layers[0].BlurRadius)
	assert.Equal(t, Px(1), layers[0].SpreadDistance)
	assert.Equal(t, Color{255, 0, 0, 1}, layers[0].Color)
	assert.Equal(t, ShadowInner, layers[1].Placement)
	assert.Equal(t, Length{Value: 1, Unit: "em"}, layers[1].BlurRadius)

	assert.Empty(t, ParseShadowList("none", Black))
	assert.Empty(t, ParseShadowList("2px", Black), "one length is not a shadow")

	s := ParseInlineStyle("color: green; text-shadow: inset 1px 1px")
	ts := s.GetTextShadow()
	require.Len(t, ts, 1)
	assert.Equal(t, ShadowOuter, ts[0].Placement)
	assert.Equal(t, Color{0, 128, 0, 1}, ts[0].Color)
}

func TestTextDecorationShorthand(t *testing.T) {
	s := ParseInlineStyle("color: red; text-decoration: underline overline wavy 2px")
	assert.Equal(t, []TextDecorationLine{TextDecorationUnderline, TextDecorationOverline}, s.GetTextDecorationLines())
	assert.Equal(t, TextDecorationStyleWavy, s.GetTextDecorationStyle())
	th, ok := s.GetTextDecorationThickness()
	require.True(t, ok)
	assert.Equal(t, Px(2), th)
	assert.Equal(t, Color{255, 0, 0, 1}, s.GetTextDecorationColor())

	_, ok = ParseInlineStyle("text-decoration-thickness: auto").GetTextDecorationThickness()
	assert.False(t, ok)
}

func TestBackgroundLayersCycleRepeatAndPosition(t *testing.T) {
	s := NewStyle()
	s.Set("background-image", "url(a.png), url(b.png), url(c.png)")
	s.Set("background-repeat", "no-repeat, repeat-x")
	s.Set("background-position", "1px 2px")
	layers := s.GetBackgroundLayers()
	require.Len(t, layers, 3)
	assert.Equal(t, "b.png", layers[1].Image)
	assert.Equal(t, BackgroundRepeatRepeatX, layers[1].Repeat)
	assert.Equal(t, BackgroundRepeatNoRepeat, layers[2].Repeat)
	assert.Equal(t, BackgroundPosition{X: 1, Y: 2}, layers[2].Position)
}

func TestBackdropFilter(t *testing.T) {
	s := ParseInlineStyle("backdrop-filter: grayscale(50%) brightness(1.5) blur(3px) invert()")
	f := s.GetBackdropFilter()
	require.Len(t, f, 3)
	assert.Equal(t, FilterFunction{Name: "grayscale", Amount: 0.5}, f[0])
	assert.Equal(t, FilterFunction{Name: "brightness", Amount: 1.5}, f[1])
	assert.Equal(t, FilterFunction{Name: "invert", Amount: 1}, f[2])
	assert.Nil(t, ParseInlineStyle("backdrop-filter: none").GetBackdropFilter())
}

func TestZIndexAndPredicates(t *testing.T) {
	s := ParseInlineStyle("z-index: -3; opacity: 0.4; transform: rotate(3deg); pointer-events: none; visibility: hidden")
	z, ok := s.GetZIndex()
	require.True(t, ok)
	assert.Equal(t, -3, z)
	assert.Equal(t, 0.4, s.GetOpacity())
	assert.True(t, s.HasTransform())
	assert.True(t, s.PointerEventsNone())
	assert.False(t, s.IsVisible())

	_, ok = ParseInlineStyle("z-index: auto").GetZIndex()
	assert.False(t, ok)
	var nilStyle *Style
	assert.True(t, nilStyle.IsVisible())
}

func TestOverflowShorthand(t *testing.T) {
	s := ParseInlineStyle("overflow: hidden visible")
	assert.Equal(t, OverflowHidden, s.GetOverflowX())
	assert.Equal(t, OverflowVisible, s.GetOverflowY())
}
