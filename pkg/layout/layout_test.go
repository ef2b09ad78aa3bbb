package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectOperations(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	assert.Equal(t, 30.0, r.Right())
	assert.Equal(t, 20.0, r.Bottom())
	assert.True(t, r.Contains(Point{10, 10}))
	assert.False(t, r.Contains(Point{30, 15}), "right edge is exclusive")

	assert.Equal(t, Rect{5, 8, 30, 14}, r.Inflated(2, 5, 2, 5))
	assert.Equal(t, Rect{20, 15, 10, 5}, r.Intersected(Rect{20, 15, 50, 50}))
	assert.True(t, r.Intersected(Rect{100, 100, 5, 5}).IsEmpty())
	assert.Equal(t, Rect{0, 10, 30, 10}, r.UnitedHorizontally(Rect{0, 0, 5, 5}))
	assert.Equal(t, Rect{10, 0, 20, 20}, r.UnitedVertically(Rect{0, 0, 5, 5}))
	assert.Equal(t, r, r.United(Rect{}))
	assert.Equal(t, "20x10 @ 10,10", r.String())
}

func newTestDocument() (*Document, *Box, *Box) {
	doc := NewDocument(Size{800, 600})
	html := doc.Viewport.AppendChild(doc.NewBlock("html", ""))
	body := html.AppendChild(doc.NewBlock("body", "margin: 8px"))
	return doc, html, body
}

func TestContainingBlock(t *testing.T) {
	doc, html, body := newTestDocument()
	rel := body.AppendChild(doc.NewBlock("div#rel", "position: relative"))
	inline := rel.AppendChild(doc.NewInline("span", ""))
	abs := inline.AppendChild(doc.NewBox("div#abs", "position: absolute"))
	fixed := rel.AppendChild(doc.NewBox("div#fixed", "position: fixed"))
	text := inline.AppendChild(doc.NewText("hello"))

	assert.Nil(t, doc.Viewport.ContainingBlock())
	assert.Equal(t, doc.Viewport, html.ContainingBlock())
	assert.Equal(t, html, body.ContainingBlock())
	assert.Equal(t, rel, abs.ContainingBlock(), "nearest positioned ancestor box")
	assert.Equal(t, doc.Viewport, fixed.ContainingBlock())
	assert.Equal(t, rel, text.ContainingBlock())
	assert.Equal(t, rel, inline.ContainingBlock())

	orphan := body.AppendChild(doc.NewBox("div", "position: absolute"))
	assert.Equal(t, doc.Viewport, orphan.ContainingBlock())
}

func TestEstablishesStackingContext(t *testing.T) {
	doc, _, body := newTestDocument()
	cases := []struct {
		style string
		want  bool
	}{
		{"", false},
		{"position: relative", false},
		{"position: relative; z-index: 0", true},
		{"position: absolute; z-index: -1", true},
		{"position: static; z-index: 3", false},
		{"position: fixed", true},
		{"position: sticky", true},
		{"opacity: 0.5", true},
		{"transform: rotate(3deg)", true},
	}
	for _, c := range cases {
		b := body.AppendChild(doc.NewBlock("div", c.style))
		assert.Equal(t, c.want, b.EstablishesStackingContext(), c.style)
	}
	assert.True(t, doc.Viewport.EstablishesStackingContext())
	inline := body.AppendChild(doc.NewInline("span", "opacity: 0.5"))
	assert.False(t, inline.EstablishesStackingContext(), "inline nodes never qualify")

	z := body.AppendChild(doc.NewBlock("div", "position: relative; z-index: -4"))
	assert.Equal(t, -4, z.ZIndex())
}

func TestTextIndexAt(t *testing.T) {
	doc, _, body := newTestDocument()
	text := body.AppendChild(doc.NewText("hello world"))
	// default font: 7px advance, no spacing
	f := LineBoxFragment{Box: text, Start: 6, Length: 5, Size: Size{35, 13}}
	assert.Equal(t, "world", f.Text())
	assert.Equal(t, 6, f.TextIndexAt(-3))
	assert.Equal(t, 6, f.TextIndexAt(0))
	assert.Equal(t, 6, f.TextIndexAt(6.9))
	assert.Equal(t, 7, f.TextIndexAt(7))
	assert.Equal(t, 8, f.TextIndexAt(15))
	assert.Equal(t, 11, f.TextIndexAt(40))
	assert.Equal(t, 11, f.End())

	box := body.AppendChild(doc.NewBox("img", ""))
	bf := LineBoxFragment{Box: box}
	assert.Equal(t, 0, bf.TextIndexAt(5))
}

func TestNewElementParsesIDAndClasses(t *testing.T) {
	n := newElement("div#main.note.wide")
	assert.Equal(t, "div", n.Data)
	require.Len(t, n.Attr, 2)
	assert.Equal(t, "main", n.Attr[0].Val)
	assert.Equal(t, "note wide", n.Attr[1].Val)

	doc, _, body := newTestDocument()
	b := body.AppendChild(doc.NewBlock("p#x.a", ""))
	assert.Equal(t, "p#x.a", b.DebugDescription())
	assert.Equal(t, b.Node, doc.ElementByID("x"))
	assert.Equal(t, b, doc.BoxFor(b.Node))
	assert.Equal(t, "(anonymous BlockContainer)", doc.NewBlock("", "").DebugDescription())
}

func TestBoxModelFromStyle(t *testing.T) {
	doc, _, body := newTestDocument()
	b := body.AppendChild(doc.NewBlock("div", "position: relative; left: 5px; bottom: 3px; padding: 2px; border: 1px solid black"))
	assert.Equal(t, 5.0, b.Inset.Left)
	assert.Equal(t, -3.0, b.Inset.Top)
	assert.Equal(t, 2.0, b.Padding.Right)
	assert.Equal(t, 1.0, b.Border.Bottom)
	assert.Equal(t, 8.0, body.Margin.Left)
}

func TestRootAndBodyDetection(t *testing.T) {
	doc, html, body := newTestDocument()
	assert.True(t, html.IsRootElement())
	assert.False(t, body.IsRootElement())
	assert.Equal(t, html, doc.RootElement())
	assert.Equal(t, body, doc.Body())

	assert.True(t, doc.ShouldUseBodyBackground())
	body.Style.Set("background-color", "red")
	assert.Equal(t, uint8(255), doc.BackgroundColor().R)
	html.Style.Set("background-color", "white")
	assert.False(t, doc.ShouldUseBodyBackground())
}

func TestFocusAndEditing(t *testing.T) {
	doc, _, body := newTestDocument()
	div := body.AppendChild(doc.NewBlock("div", ""))
	div.SetAttribute("contenteditable", "true")
	text := div.AppendChild(doc.NewText("abc"))

	assert.True(t, text.IsEditable())
	assert.Equal(t, div.Node, text.ParentElement())
	assert.Equal(t, div.ComputedStyle(), text.ComputedStyle())

	doc.FocusedElement = div.Node
	assert.True(t, div.IsFocused())
	assert.False(t, body.IsFocused())

	plain := body.AppendChild(doc.NewText("x"))
	assert.False(t, plain.IsEditable())
}

func TestSelectedRange(t *testing.T) {
	doc, _, body := newTestDocument()
	a := body.AppendChild(doc.NewText("first"))
	b := body.AppendChild(doc.NewText("second"))
	c := body.AppendChild(doc.NewText("third"))

	_, _, ok := doc.SelectedRange(a.Node, 5)
	assert.False(t, ok, "no selection")

	doc.Selection = Selection{Start: CursorPosition{a.Node, 2}, End: CursorPosition{c.Node, 3}}
	start, end, ok := doc.SelectedRange(a.Node, 5)
	assert.True(t, ok)
	assert.Equal(t, [2]int{2, 5}, [2]int{start, end})

	start, end, ok = doc.SelectedRange(b.Node, 6)
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 6}, [2]int{start, end})

	start, end, ok = doc.SelectedRange(c.Node, 5)
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	doc.Selection = Selection{Start: CursorPosition{b.Node, 1}, End: CursorPosition{b.Node, 4}}
	_, _, ok = doc.SelectedRange(a.Node, 5)
	assert.False(t, ok)
	start, end, _ = doc.SelectedRange(b.Node, 6)
	assert.Equal(t, [2]int{1, 4}, [2]int{start, end})
}
