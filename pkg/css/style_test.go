package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxShorthandExpansion(t *testing.T) {
	cases := map[string]BoxEdge{
		"margin: 4px":                   {4, 4, 4, 4},
		"margin: 1px 2px":               {1, 2, 1, 2},
		"margin: 1px 2px 3px":           {1, 2, 3, 2},
		"margin: 1px 2px 3px 4px":       {1, 2, 3, 4},
		"margin: 1px; margin-left: 9px": {1, 1, 1, 9},
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseInlineStyle(in).GetMargin(), in)
	}
	assert.Equal(t, BoxEdge{5, 6, 5, 6}, ParseInlineStyle("padding: 5px 6px").GetPadding())
	assert.Equal(t, BoxEdge{}, ParseInlineStyle("margin: 1px 2px 3px 4px 5px").GetMargin(), "five values are invalid")
}

func TestBorderShorthandSetsEverySide(t *testing.T) {
	s := ParseInlineStyle("border: 2px dotted #00ff00; border-top: none")
	assert.Equal(t, BoxEdge{0, 2, 2, 2}, s.GetBorderWidth())
	right := s.GetBorderData(SideRight)
	assert.Equal(t, BorderStyleDotted, right.Style)
	assert.Equal(t, Color{0, 255, 0, 1}, right.Color)
	assert.True(t, right.IsVisible())
	assert.False(t, s.GetBorderData(SideTop).IsVisible())
}

func TestGetBoxShadowKeepsRelativeLengths(t *testing.T) {
	s := ParseInlineStyle("color: #0a141e; box-shadow: 1em 2px 0.5rem -3px, inset 4px 4px 8px #0000ff")
	layers := s.GetBoxShadow()
	require.Len(t, layers, 2)

	outer := layers[0]
	assert.Equal(t, ShadowOuter, outer.Placement)
	assert.Equal(t, Color{10, 20, 30, 1}, outer.Color, "currentColor")
	assert.Equal(t, Length{Value: 1, Unit: "em"}, outer.OffsetX)
	assert.Equal(t, Px(2), outer.OffsetY)
	assert.Equal(t, Px(-3), outer.SpreadDistance)
	ctx := LengthContext{FontSize: 20, RootFontSize: 10}
	assert.Equal(t, 20.0, outer.OffsetX.ToPx(ctx))
	assert.Equal(t, 5.0, outer.BlurRadius.ToPx(ctx))

	inner := layers[1]
	assert.Equal(t, ShadowInner, inner.Placement)
	assert.Equal(t, Color{0, 0, 255, 1}, inner.Color)
	assert.Equal(t, Px(0), inner.SpreadDistance)

	assert.Nil(t, NewStyle().GetBoxShadow())
	dropped := ParseInlineStyle("box-shadow: 1px 1px, bogus 2px 2px, 1px 2px 3px 4px 5px").GetBoxShadow()
	assert.Len(t, dropped, 1, "invalid layers are dropped")
}

func TestGetTextShadowLengths(t *testing.T) {
	layers := ParseInlineStyle("text-shadow: 0.1em 0.1em 2px").GetTextShadow()
	require.Len(t, layers, 1)
	assert.Equal(t, Length{Value: 0.1, Unit: "em"}, layers[0].OffsetX)
	assert.Equal(t, Px(2), layers[0].BlurRadius)
	assert.Equal(t, Px(0), layers[0].SpreadDistance)
	assert.Equal(t, Black, layers[0].Color)
	assert.Nil(t, NewStyle().GetTextShadow())
}

func TestGetBorderRadiusPercentages(t *testing.T) {
	s := ParseInlineStyle("border-radius: 50%")
	for c := CornerTopLeft; c <= CornerBottomLeft; c++ {
		r := s.GetBorderRadius(c)
		assert.True(t, r.Horizontal.IsPercentage())
		assert.Equal(t, 100.0, r.Horizontal.ToPx(LengthContext{PercentBasis: 200}))
		assert.Equal(t, 40.0, r.Vertical.ToPx(LengthContext{PercentBasis: 80}))
	}

	s = ParseInlineStyle("border-radius: 1px 2px 3px")
	assert.Equal(t, Px(2), s.GetBorderRadius(CornerBottomLeft).Horizontal)

	s = NewStyle()
	s.Set("border-bottom-left-radius", "10% 4px")
	bl := s.GetBorderRadius(CornerBottomLeft)
	assert.Equal(t, Length{Value: 10, Unit: "%"}, bl.Horizontal)
	assert.Equal(t, Px(4), bl.Vertical)
	assert.Equal(t, BorderRadius{}, s.GetBorderRadius(CornerTopLeft))
}

func TestGetClipAutoEdges(t *testing.T) {
	cr, ok := ParseInlineStyle("clip: rect(auto, auto, auto, auto)").GetClip()
	require.True(t, ok)
	assert.Equal(t, ClipRect{}, cr)

	cr, ok = ParseInlineStyle("clip: rect(1px 2px 3px 4px)").GetClip()
	require.True(t, ok)
	assert.True(t, cr.HasTop && cr.HasRight && cr.HasBottom && cr.HasLeft)
	assert.Equal(t, Px(2), cr.Right)

	for _, in := range []string{"clip: rect(1px, 2px)", "clip: rect(1px, wide, 3px, 4px)", "clip: inset(1px)"} {
		_, ok := ParseInlineStyle(in).GetClip()
		assert.False(t, ok, in)
	}
}

func TestOverflowGetters(t *testing.T) {
	s := ParseInlineStyle("overflow: scroll")
	assert.Equal(t, OverflowScroll, s.GetOverflowX())
	assert.Equal(t, OverflowScroll, s.GetOverflowY())

	s = ParseInlineStyle("overflow-x: clip")
	assert.Equal(t, OverflowClip, s.GetOverflowX())
	assert.Equal(t, OverflowVisible, s.GetOverflowY())

	assert.Equal(t, OverflowVisible, ParseInlineStyle("overflow: bogus").GetOverflowX())
}

func TestVisibilityAndPointerEvents(t *testing.T) {
	assert.True(t, NewStyle().IsVisible())
	assert.True(t, ParseInlineStyle("visibility: visible").IsVisible())
	assert.False(t, ParseInlineStyle("visibility: collapse").IsVisible())

	assert.False(t, NewStyle().PointerEventsNone())
	assert.False(t, ParseInlineStyle("pointer-events: auto").PointerEventsNone())
	assert.True(t, ParseInlineStyle("pointer-events: none").PointerEventsNone())
}

func TestPositionAndDisplay(t *testing.T) {
	s := ParseInlineStyle("position: sticky; top: 5px; left: 2em; display: inline-block")
	assert.Equal(t, PositionSticky, s.GetPosition())
	assert.Equal(t, DisplayInlineBlock, s.GetDisplay())
	off := s.GetPositionOffset()
	assert.True(t, off.HasTop)
	assert.Equal(t, 5.0, off.Top)
	assert.False(t, off.HasLeft, "relative insets need a length context")

	assert.Equal(t, PositionStatic, NewStyle().GetPosition())
	assert.Equal(t, DisplayBlock, NewStyle().GetDisplay())
}

func TestFontGetters(t *testing.T) {
	s := ParseInlineStyle("font-weight: 700; font-style: oblique; font-family: Courier, Monospace; font-size: 12pt")
	assert.Equal(t, FontWeightBold, s.GetFontWeight())
	assert.True(t, s.IsItalic())
	assert.True(t, s.IsMonospace())
	assert.Equal(t, 16.0, s.GetFontSize())

	d := NewStyle()
	assert.Equal(t, FontWeightNormal, d.GetFontWeight())
	assert.Equal(t, 16.0, d.GetFontSize())
	assert.Equal(t, Black, d.GetColor())
}

func TestOpacityClamps(t *testing.T) {
	assert.Equal(t, 1.0, ParseInlineStyle("opacity: 1.7").GetOpacity())
	assert.Equal(t, 0.0, ParseInlineStyle("opacity: -1").GetOpacity())
	assert.Equal(t, 1.0, ParseInlineStyle("opacity: half").GetOpacity())
}
