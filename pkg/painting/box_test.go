package painting

import (
	"image"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14paint/pkg/gfx"
	"l14paint/pkg/layout"
)

// newTestDocument builds viewport > html > body, all at the origin and
// sized to a 200x200 viewport.
func newTestDocument() (*layout.Document, *layout.Box) {
	doc := layout.NewDocument(layout.Size{Width: 200, Height: 200})
	html := doc.Viewport.AppendChild(doc.NewBlock("html", ""))
	html.ContentSize = layout.Size{Width: 200, Height: 200}
	body := html.AppendChild(doc.NewBlock("body", ""))
	body.ContentSize = layout.Size{Width: 200, Height: 200}
	return doc, body
}

// place sets the layout geometry of a box.
func place(b *layout.Box, x, y, w, h float64) *layout.Box {
	b.Offset = layout.Point{X: x, Y: y}
	b.ContentSize = layout.Size{Width: w, Height: h}
	return b
}

func newRecordingContext() (*gfx.Recorder, *PaintContext) {
	rec := gfx.NewRecorder(image.Rect(0, 0, 200, 200), nil)
	return rec, NewPaintContext(rec, layout.Rect{Width: 200, Height: 200}, 1)
}

func TestAbsoluteRectWalksContainingBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "l14paint.painting")
	defer teardown()
	//
	doc, body := newTestDocument()
	place(body, 8, 8, 184, 184)
	outer := place(body.AppendChild(doc.NewBlock("div", "padding: 5px; border: 2px solid black")), 10, 20, 100, 50)
	inner := place(outer.AppendChild(doc.NewBlock("div", "margin: 3px")), 4, 6, 30, 10)
	tree := Build(doc)

	pb := tree.BoxFor(inner)
	require.NotNil(t, pb)
	assert.Equal(t, layout.Rect{X: 22, Y: 34, Width: 30, Height: 10}, pb.AbsoluteRect())

	ob := tree.BoxFor(outer)
	assert.Equal(t, layout.Rect{X: 18, Y: 28, Width: 100, Height: 50}, ob.AbsoluteRect())
	assert.Equal(t, layout.Rect{X: 13, Y: 23, Width: 110, Height: 60}, ob.AbsolutePaddingBoxRect())
	assert.Equal(t, layout.Rect{X: 11, Y: 21, Width: 114, Height: 64}, ob.AbsoluteBorderBoxRect())
	assert.Equal(t, layout.Rect{X: 19, Y: 31, Width: 36, Height: 16}, pb.AbsoluteMarginBoxRect())
}

func TestRelativeInsetIsAddedToOffset(t *testing.T) {
	doc, body := newTestDocument()
	rel := place(body.AppendChild(doc.NewBlock("div", "position: relative; left: 5px; top: -3px")), 10, 10, 20, 20)
	tree := Build(doc)
	assert.Equal(t, layout.Point{X: 15, Y: 7}, tree.BoxFor(rel).EffectiveOffset())
}

func TestOffsetFromContainingLineBoxFragment(t *testing.T) {
	doc, body := newTestDocument()
	p := place(body.AppendChild(doc.NewBlock("p", "")), 0, 40, 200, 20)
	ib := place(p.AppendChild(doc.NewBox("span", "")), 99, 99, 30, 12)
	ib.ContainingLineBoxFragment = &layout.FragmentCoordinate{LineBoxIndex: 0, FragmentIndex: 1}
	p.ChildrenAreInline = true
	p.LineBoxes = []layout.LineBox{{Fragments: []layout.LineBoxFragment{
		{Box: ib, Offset: layout.Point{X: 0, Y: 0}, Size: layout.Size{Width: 10, Height: 12}},
		{Box: ib, Offset: layout.Point{X: 50, Y: 4}, Size: layout.Size{Width: 30, Height: 12}},
	}}}
	tree := Build(doc)
	assert.Equal(t, layout.Rect{X: 50, Y: 44, Width: 30, Height: 12}, tree.BoxFor(ib).AbsoluteRect())

	ib.ContainingLineBoxFragment.FragmentIndex = 7
	broken := Build(doc)
	assert.Panics(t, func() { broken.BoxFor(ib).AbsoluteRect() })
}

func TestAbsolutePaintRectIncludesOuterShadows(t *testing.T) {
	doc, body := newTestDocument()
	div := place(body.AppendChild(doc.NewBlock("div", "box-shadow: 0 0 4px 2px black")), 20, 20, 40, 40)
	inset := place(body.AppendChild(doc.NewBlock("div", "box-shadow: inset 0 0 4px 2px black")), 20, 80, 40, 40)
	tree := Build(doc)

	pb := tree.BoxFor(div)
	border := pb.AbsoluteBorderBoxRect()
	assert.Equal(t, border.Inflated(6, 6, 6, 6), pb.AbsolutePaintRect())

	ib := tree.BoxFor(inset)
	assert.Equal(t, ib.AbsoluteBorderBoxRect(), ib.AbsolutePaintRect(), "inner shadows stay inside")
}

func TestAbsolutePaintRectIncludesVisibleOverflow(t *testing.T) {
	doc, body := newTestDocument()
	visible := place(body.AppendChild(doc.NewBlock("div", "")), 10, 10, 20, 20)
	visible.ScrollableOverflow = &layout.Rect{X: 0, Y: 0, Width: 60, Height: 50}
	hidden := place(body.AppendChild(doc.NewBlock("div", "overflow-x: hidden")), 10, 40, 20, 20)
	hidden.ScrollableOverflow = &layout.Rect{X: 0, Y: 0, Width: 60, Height: 50}
	tree := Build(doc)

	assert.Equal(t, layout.Rect{X: 10, Y: 10, Width: 60, Height: 50}, tree.BoxFor(visible).AbsolutePaintRect())
	assert.Equal(t, layout.Rect{X: 10, Y: 40, Width: 20, Height: 50}, tree.BoxFor(hidden).AbsolutePaintRect(),
		"only the visible axis grows")
}

func TestGeometryIsMemoizedUntilMutated(t *testing.T) {
	doc, body := newTestDocument()
	div := place(body.AppendChild(doc.NewBlock("div", "overflow: hidden")), 10, 10, 20, 20)
	tree := Build(doc)
	pb := tree.BoxFor(div)

	assert.False(t, pb.absoluteRect.isValid())
	first := pb.AbsoluteRect()
	assert.True(t, pb.absoluteRect.isValid())
	assert.Equal(t, first, pb.AbsoluteRect())
	pb.AbsolutePaintRect()
	_, ok := pb.CalculateOverflowClippedRect()
	require.True(t, ok)
	assert.True(t, pb.clipRect.isValid())

	// layout moves are invisible until the paintable is told
	div.Offset = layout.Point{X: 50, Y: 50}
	assert.Equal(t, first, pb.AbsoluteRect())

	pb.SetOffset(layout.Point{X: 30, Y: 10})
	assert.False(t, pb.absoluteRect.isValid())
	assert.False(t, pb.absolutePaintRect.isValid())
	assert.True(t, pb.clipRect.isValid(), "the clip rect is not geometry")
	assert.Equal(t, layout.Rect{X: 30, Y: 10, Width: 20, Height: 20}, pb.AbsoluteRect())

	pb.SetContentSize(layout.Size{Width: 5, Height: 5})
	assert.False(t, pb.absoluteRect.isValid())
	assert.Equal(t, layout.Rect{X: 30, Y: 10, Width: 5, Height: 5}, pb.AbsoluteRect())

	tree.ClearCaches()
	assert.False(t, pb.clipRect.isValid())
	assert.False(t, pb.absoluteRect.isValid())
}

func TestClipRectPassesThroughWithoutClippingAncestors(t *testing.T) {
	doc, body := newTestDocument()
	outer := place(body.AppendChild(doc.NewBlock("div", "")), 10, 10, 100, 100)
	inner := place(outer.AppendChild(doc.NewBlock("div", "")), 5, 5, 20, 20)
	tree := Build(doc)

	_, ok := tree.BoxFor(inner).CalculateOverflowClippedRect()
	assert.False(t, ok)
	_, ok = tree.BoxFor(outer).CalculateOverflowClippedRect()
	assert.False(t, ok)
}

func TestClipRectIsWithinPaddingBox(t *testing.T) {
	doc, body := newTestDocument()
	outer := place(body.AppendChild(doc.NewBlock("div", "overflow: hidden; padding: 4px; border: 1px solid black")), 10, 10, 100, 100)
	mid := place(outer.AppendChild(doc.NewBlock("div", "")), 0, 0, 50, 50)
	inner := place(mid.AppendChild(doc.NewBlock("div", "overflow: scroll")), 80, 80, 60, 60)
	stacked := place(outer.AppendChild(doc.NewBlock("div", "position: relative; z-index: 1")), 0, 0, 300, 300)
	tree := Build(doc)

	ob := tree.BoxFor(outer)
	clip, ok := ob.CalculateOverflowClippedRect()
	require.True(t, ok)
	assert.Equal(t, ob.AbsolutePaddingBoxRect(), clip)

	clip, ok = tree.BoxFor(mid).CalculateOverflowClippedRect()
	require.True(t, ok)
	assert.Equal(t, ob.AbsolutePaddingBoxRect(), clip, "inherited from the containing block")

	ib := tree.BoxFor(inner)
	clip, ok = ib.CalculateOverflowClippedRect()
	require.True(t, ok)
	padding := ib.AbsolutePaddingBoxRect()
	assert.Equal(t, padding.Intersected(ob.AbsolutePaddingBoxRect()), clip)
	assert.Equal(t, clip, clip.Intersected(padding), "clip lies inside the padding box")

	_, ok = tree.BoxFor(stacked).CalculateOverflowClippedRect()
	assert.False(t, ok, "stacking context roots start without a clip")
}

func TestCSSClipRect(t *testing.T) {
	doc, body := newTestDocument()
	abs := place(body.AppendChild(doc.NewBox("div", "position: absolute; clip: rect(2px, 12px, auto, auto)")), 20, 30, 40, 40)
	static := place(body.AppendChild(doc.NewBox("div", "clip: rect(2px, 12px, auto, auto)")), 20, 30, 40, 40)
	tree := Build(doc)

	r, ok := tree.BoxFor(abs).cssClipRect()
	require.True(t, ok)
	assert.Equal(t, layout.Rect{X: 20, Y: 32, Width: 12, Height: 38}, r)

	_, ok = tree.BoxFor(static).cssClipRect()
	assert.False(t, ok, "clip only applies to absolutely positioned boxes")
}

func TestNormalizedBorderRadii(t *testing.T) {
	doc, body := newTestDocument()
	div := place(body.AppendChild(doc.NewBlock("div", "border-radius: 30px; border: 4px solid black")), 0, 0, 32, 32)
	tree := Build(doc)
	pb := tree.BoxFor(div)

	// 40x40 border box: two 30px radii shrink to 20px each
	radii := pb.normalizedBorderRadii(false)
	assert.InDelta(t, 20, radii.TopLeft.Horizontal, 1e-9)
	assert.InDelta(t, 20, radii.BottomRight.Vertical, 1e-9)

	shrunk := pb.normalizedBorderRadii(true)
	assert.InDelta(t, 16, shrunk.TopLeft.Horizontal, 1e-9)
	assert.InDelta(t, 16, shrunk.TopLeft.Vertical, 1e-9)
}

func TestBordersWithZeroWidthPaintAsNone(t *testing.T) {
	doc, body := newTestDocument()
	div := place(body.AppendChild(doc.NewBlock("div", "border: 0px solid black; border-top: 2px solid red")), 0, 0, 10, 10)
	tree := Build(doc)
	pb := tree.BoxFor(div)

	b := pb.borders()
	assert.True(t, b.Top.IsVisible())
	assert.False(t, b.Left.IsVisible())

	override := BordersData{}
	pb.SetOverrideBorders(&override)
	assert.False(t, pb.borders().Top.IsVisible())
}

func TestDevicePixelConversion(t *testing.T) {
	ctx := NewPaintContext(gfx.NewRecorder(image.Rect(0, 0, 400, 400), nil), layout.Rect{Width: 200, Height: 200}, 2)
	assert.Equal(t, image.Rect(0, 0, 400, 400), ctx.DeviceViewportRect())
	assert.Equal(t, image.Rect(2, 2, 7, 7), ctx.EnclosingDeviceRect(layout.Rect{X: 1.2, Y: 1.2, Width: 2, Height: 2}))
	assert.Equal(t, layout.Point{X: 12.5, Y: 4}, ctx.CSSPoint(image.Pt(25, 8)))
}
