/*
Package scene reads laid-out documents from YAML.

A scene describes the result of a layout pass: the box tree with final
geometry, the line boxes of block containers and the document state the
painter consults (focus, caret, selection, inspected node). Example:

	viewport: [400, 300]
	focus: input
	root:
	  - kind: block
	    tag: html
	    size: [400, 300]
	    children:
	      - kind: block
	        tag: p#input
	        style: "border: 1px solid black"
	        offset: [8, 8]
	        size: [200, 13]
	        children:
	          - {kind: text, name: hello, text: "Hello, world"}
	        lines:
	          - - {node: hello, start: 0, length: 12, offset: [0, 0]}

Nodes are referenced by their name, or by the id given in their tag.
*/
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
	"l14paint/pkg/layout"
	"l14paint/pkg/text"
)

// tracer traces with key 'l14paint.scene'.
func tracer() tracing.Trace {
	return tracing.Select("l14paint.scene")
}

// ErrUnknownNode is returned for node kinds the scene format does not know
// and for references to node names that do not exist.
var ErrUnknownNode = errors.New("unknown node")

// Scene is the YAML form of a laid-out document.
type Scene struct {
	Viewport  [2]float64 `yaml:"viewport"`
	Scale     float64    `yaml:"scale"`
	FontDir   string     `yaml:"fonts"`
	Focus     string     `yaml:"focus"`
	Inspect   string     `yaml:"inspect"`
	Caret     *Caret     `yaml:"caret"`
	Selection *Range     `yaml:"selection"`
	Root      []Node     `yaml:"root"`

	// Match names a reference scene, relative to this one, that must
	// render to the same pixels.
	Match string `yaml:"match"`
}

// Node is one layout box.
type Node struct {
	Kind     string            `yaml:"kind"` // block, box, inline, text
	Name     string            `yaml:"name"`
	Tag      string            `yaml:"tag"`
	Style    string            `yaml:"style"`
	Text     string            `yaml:"text"`
	Attrs    map[string]string `yaml:"attrs"`
	Offset   [2]float64        `yaml:"offset"`
	Size     [2]float64        `yaml:"size"`
	Scroll   [2]float64        `yaml:"scroll"`
	Overflow *[4]float64       `yaml:"overflow"`  // x, y, width, height
	PlacedBy *[2]int           `yaml:"placed-by"` // line, fragment
	Children []Node            `yaml:"children"`
	Lines    [][]Fragment      `yaml:"lines"`
}

// Fragment is one line box fragment. Size and baseline default to the
// metrics of the node's font.
type Fragment struct {
	Node     string      `yaml:"node"`
	Start    int         `yaml:"start"`
	Length   int         `yaml:"length"`
	Offset   [2]float64  `yaml:"offset"`
	Size     *[2]float64 `yaml:"size"`
	Baseline *float64    `yaml:"baseline"`
}

// Position is a text position: a named text node and a byte offset.
type Position struct {
	Node   string `yaml:"node"`
	Offset int    `yaml:"offset"`
}

// Caret is the text cursor.
type Caret struct {
	Position `yaml:",inline"`
	Hidden   bool `yaml:"hidden"` // in the invisible blink state
}

// Range is a selection.
type Range struct {
	Start Position `yaml:"start"`
	End   Position `yaml:"end"`
}

// Parse decodes a scene. Unknown fields are errors.
func Parse(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if s.Viewport[0] <= 0 || s.Viewport[1] <= 0 {
		return nil, fmt.Errorf("scene viewport %vx%v: must not be empty", s.Viewport[0], s.Viewport[1])
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	return &s, nil
}

// Load reads and builds the scene file at path.
func Load(path string) (*Scene, *layout.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, err := s.Document()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, doc, nil
}

// builder collects the named boxes while the tree is created and resolves
// the references once it is complete.
type builder struct {
	doc   *layout.Document
	fonts *text.Fonts
	named map[string]*layout.Box
	lines []pendingLines
}

type pendingLines struct {
	box   *layout.Box
	lines [][]Fragment
}

// Document builds the layout tree and document state.
func (s *Scene) Document() (*layout.Document, error) {
	b := &builder{
		doc:   layout.NewDocument(layout.Size{Width: s.Viewport[0], Height: s.Viewport[1]}),
		named: make(map[string]*layout.Box),
	}
	if s.FontDir != "" {
		b.fonts = text.NewFonts(text.FontConfigIn(s.FontDir))
	}
	for i := range s.Root {
		if err := b.add(b.doc.Viewport, &s.Root[i]); err != nil {
			return nil, err
		}
	}
	for _, p := range b.lines {
		if err := b.resolveLines(p.box, p.lines); err != nil {
			return nil, err
		}
	}
	if err := b.resolveState(s); err != nil {
		return nil, err
	}
	tracer().Debugf("scene with %d named nodes", len(b.named))
	return b.doc, nil
}

func (b *builder) add(parent *layout.Box, n *Node) error {
	var box *layout.Box
	switch n.Kind {
	case "block", "":
		box = b.doc.NewBlock(n.Tag, n.Style)
	case "box":
		box = b.doc.NewBox(n.Tag, n.Style)
	case "inline":
		box = b.doc.NewInline(n.Tag, n.Style)
	case "text":
		box = b.doc.NewText(n.Text)
	default:
		return fmt.Errorf("node kind %q: %w", n.Kind, ErrUnknownNode)
	}
	parent.AppendChild(box)
	for k, v := range n.Attrs {
		box.SetAttribute(k, v)
	}
	box.Offset = layout.Point{X: n.Offset[0], Y: n.Offset[1]}
	box.ContentSize = layout.Size{Width: n.Size[0], Height: n.Size[1]}
	box.ScrollOffset = layout.Point{X: n.Scroll[0], Y: n.Scroll[1]}
	if o := n.Overflow; o != nil {
		box.ScrollableOverflow = &layout.Rect{X: o[0], Y: o[1], Width: o[2], Height: o[3]}
	}
	if pb := n.PlacedBy; pb != nil {
		box.ContainingLineBoxFragment = &layout.FragmentCoordinate{LineBoxIndex: pb[0], FragmentIndex: pb[1]}
	}
	if b.fonts != nil && box.Style != nil && n.Style != "" {
		box.Font = b.fontFor(box.Style)
	}
	if err := b.name(box, n); err != nil {
		return err
	}
	for i := range n.Children {
		if err := b.add(box, &n.Children[i]); err != nil {
			return err
		}
	}
	if len(n.Lines) > 0 {
		if !box.IsBlockContainer() {
			return fmt.Errorf("%s has line boxes but is not a block container", box)
		}
		box.ChildrenAreInline = true
		b.lines = append(b.lines, pendingLines{box: box, lines: n.Lines})
	}
	return nil
}

func (b *builder) fontFor(style *css.Style) gfx.Font {
	family, _ := style.Get("font-family")
	ahem := strings.Contains(strings.ToLower(family), "ahem")
	return b.fonts.Font(style.GetFontWeight() == css.FontWeightBold, style.IsItalic(), style.IsMonospace(), ahem, style.GetFontSize())
}

func (b *builder) name(box *layout.Box, n *Node) error {
	name := n.Name
	if name == "" && box.Node != nil {
		for _, a := range box.Node.Attr {
			if a.Key == "id" {
				name = a.Val
			}
		}
	}
	if name == "" {
		return nil
	}
	if _, dup := b.named[name]; dup {
		return fmt.Errorf("node name %q is used twice", name)
	}
	b.named[name] = box
	return nil
}

func (b *builder) lookup(name string) (*layout.Box, error) {
	box, ok := b.named[name]
	if !ok {
		return nil, fmt.Errorf("node %q: %w", name, ErrUnknownNode)
	}
	return box, nil
}

func (b *builder) resolveLines(container *layout.Box, lines [][]Fragment) error {
	container.LineBoxes = make([]layout.LineBox, 0, len(lines))
	for _, line := range lines {
		lb := layout.LineBox{Fragments: make([]layout.LineBoxFragment, 0, len(line))}
		for _, f := range line {
			box, err := b.lookup(f.Node)
			if err != nil {
				return err
			}
			frag := layout.LineBoxFragment{
				Box:    box,
				Start:  f.Start,
				Length: f.Length,
				Offset: layout.Point{X: f.Offset[0], Y: f.Offset[1]},
			}
			font := box.UsedFont()
			if f.Size != nil {
				frag.Size = layout.Size{Width: f.Size[0], Height: f.Size[1]}
			} else if box.IsText() {
				frag.Size = layout.Size{Width: font.Width(frag.Text()), Height: font.PixelSize()}
			} else {
				frag.Size = box.ContentSize
			}
			if f.Baseline != nil {
				frag.Baseline = *f.Baseline
			} else {
				frag.Baseline = float64(font.Face().Metrics().Ascent) / 64
			}
			lb.Fragments = append(lb.Fragments, frag)
		}
		container.LineBoxes = append(container.LineBoxes, lb)
	}
	return nil
}

func (b *builder) resolveState(s *Scene) error {
	if s.Focus != "" {
		box, err := b.lookup(s.Focus)
		if err != nil {
			return fmt.Errorf("focus: %w", err)
		}
		b.doc.FocusedElement = box.Node
	}
	if s.Inspect != "" {
		box, err := b.lookup(s.Inspect)
		if err != nil {
			return fmt.Errorf("inspect: %w", err)
		}
		b.doc.Inspected = box
	}
	position := func(p Position) (layout.CursorPosition, error) {
		box, err := b.lookup(p.Node)
		if err != nil {
			return layout.CursorPosition{}, err
		}
		return layout.CursorPosition{Node: box.Node, Offset: p.Offset}, nil
	}
	if c := s.Caret; c != nil {
		pos, err := position(c.Position)
		if err != nil {
			return fmt.Errorf("caret: %w", err)
		}
		b.doc.Cursor = pos
		b.doc.FocusedContext = true
		b.doc.CursorBlinkOn = !c.Hidden
	}
	if r := s.Selection; r != nil {
		start, err := position(r.Start)
		if err != nil {
			return fmt.Errorf("selection: %w", err)
		}
		end, err := position(r.End)
		if err != nil {
			return fmt.Errorf("selection: %w", err)
		}
		b.doc.Selection = layout.Selection{Start: start, End: end}
	}
	return nil
}
