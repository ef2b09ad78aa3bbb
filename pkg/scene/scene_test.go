package scene

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14paint/pkg/layout"
)

func TestLoadBuildsTreeAndState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "l14paint.scene")
	defer teardown()
	//
	s, doc, err := Load("testdata/paragraph.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Scale, "scale defaults to 1")
	assert.Equal(t, layout.Size{Width: 240, Height: 120}, doc.Viewport.ContentSize)

	body := doc.Body()
	require.NotNil(t, body)
	assert.Equal(t, layout.Point{X: 8, Y: 8}, body.Offset)

	p := doc.BoxFor(doc.ElementByID("input"))
	require.NotNil(t, p)
	assert.True(t, p.ChildrenAreInline)
	assert.True(t, p.IsEditable())
	require.Len(t, p.LineBoxes, 1)
	frag := p.LineBoxes[0].Fragments[0]
	assert.Equal(t, "Hello, world", frag.Text())
	assert.Equal(t, layout.Size{Width: 84, Height: 13}, frag.Size, "builtin font metrics")
	assert.Equal(t, 11.0, frag.Baseline)

	assert.Equal(t, p.Node, doc.FocusedElement)
	assert.True(t, doc.FocusedContext)
	assert.True(t, doc.CursorBlinkOn)
	assert.Equal(t, 5, doc.Cursor.Offset)
	assert.Equal(t, frag.Box.Node, doc.Cursor.Node)
	assert.False(t, doc.Selection.IsEmpty())

	card := doc.BoxFor(doc.ElementByID("card"))
	require.NotNil(t, card)
	assert.Equal(t, "BlockContainer<div#card>", card.String())
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse(strings.NewReader("viewport: [0, 10]\n"))
	assert.Error(t, err, "empty viewport")

	_, err = Parse(strings.NewReader("viewport: [10, 10]\ncolour: red\n"))
	assert.Error(t, err, "unknown field")

	s, err := Parse(strings.NewReader("viewport: [10, 10]\nscale: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Scale)
}

func TestDocumentReportsUnknownNodes(t *testing.T) {
	s, err := Parse(strings.NewReader("viewport: [10, 10]\nroot:\n  - kind: table\n"))
	require.NoError(t, err)
	_, err = s.Document()
	assert.ErrorIs(t, err, ErrUnknownNode)

	s, err = Parse(strings.NewReader("viewport: [10, 10]\nfocus: nowhere\nroot:\n  - tag: html\n"))
	require.NoError(t, err)
	_, err = s.Document()
	assert.ErrorIs(t, err, ErrUnknownNode)

	s, err = Parse(strings.NewReader(`
viewport: [10, 10]
root:
  - tag: p
    lines:
      - - {node: missing, start: 0, length: 1}
`))
	require.NoError(t, err)
	_, err = s.Document()
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestDocumentRejectsMisplacedLinesAndDuplicates(t *testing.T) {
	s, err := Parse(strings.NewReader(`
viewport: [10, 10]
root:
  - kind: inline
    tag: span
    lines:
      - - {node: x}
`))
	require.NoError(t, err)
	_, err = s.Document()
	assert.Error(t, err)

	s, err = Parse(strings.NewReader("viewport: [10, 10]\nroot:\n  - tag: div#a\n  - tag: div#a\n"))
	require.NoError(t, err)
	_, err = s.Document()
	assert.Error(t, err)
}

func TestFragmentGeometryOverrides(t *testing.T) {
	s, err := Parse(strings.NewReader(`
viewport: [100, 100]
root:
  - tag: p
    children:
      - {kind: box, tag: img#pic, size: [30, 20], placed-by: [0, 0]}
    lines:
      - - {node: pic, offset: [5, 0], baseline: 20}
`))
	require.NoError(t, err)
	doc, err := s.Document()
	require.NoError(t, err)
	img := doc.BoxFor(doc.ElementByID("pic"))
	require.NotNil(t, img.ContainingLineBoxFragment)
	frag := img.Parent.LineBoxes[0].Fragments[0]
	assert.Equal(t, layout.Size{Width: 30, Height: 20}, frag.Size, "boxes default to their content size")
	assert.Equal(t, 20.0, frag.Baseline)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load("testdata/does-not-exist.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
