package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURLValue(t *testing.T) {
	cases := map[string]string{
		"url(tile.png)":                 "tile.png",
		"url('tile.png')":               "tile.png",
		`url("tile.png")`:               "tile.png",
		"url(  'spaced.png'  )":         "spaced.png",
		"url(data:image/png;base64,AA)": "data:image/png;base64,AA",
	}
	for in, want := range cases {
		got, ok := ParseURLValue(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"url()", "url('')", "none", "", "tile.png"} {
		_, ok := ParseURLValue(in)
		assert.False(t, ok, in)
	}
}

func TestBackgroundDefaults(t *testing.T) {
	s := NewStyle()
	assert.Equal(t, Transparent, s.GetBackgroundColor())
	assert.Equal(t, BackgroundRepeatRepeat, s.GetBackgroundRepeat())
	assert.Equal(t, BackgroundPosition{}, s.GetBackgroundPosition())
	assert.Nil(t, s.GetBackgroundLayers())
	_, ok := s.GetBackgroundImage()
	assert.False(t, ok)
}

func TestBackgroundShorthandSplitsIntoLonghands(t *testing.T) {
	s := ParseInlineStyle("background: #ff0000 url('sprite.png') -46px 0 no-repeat")
	assert.Equal(t, Color{255, 0, 0, 1}, s.GetBackgroundColor())
	img, ok := s.GetBackgroundImage()
	require.True(t, ok)
	assert.Equal(t, "sprite.png", img)
	assert.Equal(t, BackgroundRepeatNoRepeat, s.GetBackgroundRepeat())
	assert.Equal(t, BackgroundPosition{X: -46, Y: 0}, s.GetBackgroundPosition())

	colorOnly := ParseInlineStyle("background: transparent")
	assert.True(t, colorOnly.GetBackgroundColor().IsTransparent())
	assert.Nil(t, colorOnly.GetBackgroundLayers())

	none := ParseInlineStyle("background: none")
	_, ok = none.GetBackgroundImage()
	assert.False(t, ok, "none is not an image layer")
}

func TestBackgroundLayersSkipNonURLEntries(t *testing.T) {
	s := NewStyle()
	s.Set("background-image", "url(a.png), none, url(c.png)")
	s.Set("background-repeat", "no-repeat, repeat-y, repeat-x")
	s.Set("background-position", "3px 4px, 0 0, 5px 6px")

	layers := s.GetBackgroundLayers()
	require.Len(t, layers, 2)
	assert.Equal(t, BackgroundLayer{Image: "a.png", Repeat: BackgroundRepeatNoRepeat, Position: BackgroundPosition{X: 3, Y: 4}}, layers[0])
	// c.png keeps its declared index for the repeat and position lists
	assert.Equal(t, BackgroundLayer{Image: "c.png", Repeat: BackgroundRepeatRepeatX, Position: BackgroundPosition{X: 5, Y: 6}}, layers[1])
}

func TestBackgroundRepeatAndPositionReadFirstLayer(t *testing.T) {
	s := NewStyle()
	s.Set("background-repeat", "repeat-y, no-repeat")
	s.Set("background-position", "7px, 1px 1px")
	assert.Equal(t, BackgroundRepeatRepeatY, s.GetBackgroundRepeat())
	assert.Equal(t, BackgroundPosition{X: 7}, s.GetBackgroundPosition())

	s.Set("background-repeat", "space")
	assert.Equal(t, BackgroundRepeatRepeat, s.GetBackgroundRepeat(), "unsupported keywords repeat")
}
