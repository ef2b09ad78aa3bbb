package layout

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"l14paint/pkg/css"
)

// CursorPosition is a caret or selection boundary: a DOM node and a byte
// offset into its text.
type CursorPosition struct {
	Node   *html.Node
	Offset int
}

// Selection is a range in document order, Start before End.
type Selection struct {
	Start CursorPosition
	End   CursorPosition
}

// IsEmpty reports a collapsed or unset selection.
func (s Selection) IsEmpty() bool {
	return s.Start.Node == nil || s.End.Node == nil || s.Start == s.End
}

// Document carries the laid-out tree together with the document state the
// painter consults: focus, caret, selection and the inspected node.
type Document struct {
	DOM      *html.Node // html.DocumentNode
	Viewport *Box

	FocusedElement *html.Node
	Inspected      *Box
	Cursor         CursorPosition
	CursorBlinkOn  bool // caret currently in its visible blink state
	FocusedContext bool // the browsing context has focus
	Selection      Selection

	order map[*html.Node]int
}

// NewDocument creates an empty document whose viewport has the given size.
func NewDocument(viewport Size) *Document {
	d := &Document{DOM: &html.Node{Type: html.DocumentNode}}
	d.Viewport = &Box{
		Kind:        KindViewport,
		Node:        d.DOM,
		Style:       css.NewStyle(),
		Document:    d,
		ContentSize: viewport,
	}
	return d
}

// NewBlock creates a detached block container for an element. tag may carry
// an id and classes ("div#main.note"); an empty tag makes an anonymous box.
func (d *Document) NewBlock(tag, style string) *Box {
	return d.newElementBox(KindBlockContainer, tag, style)
}

// NewBox creates a detached box that never owns line boxes.
func (d *Document) NewBox(tag, style string) *Box {
	return d.newElementBox(KindBox, tag, style)
}

// NewInline creates a detached inline element.
func (d *Document) NewInline(tag, style string) *Box {
	return d.newElementBox(KindInline, tag, style)
}

// NewText creates a detached text node.
func (d *Document) NewText(text string) *Box {
	return &Box{
		Kind:     KindText,
		Node:     &html.Node{Type: html.TextNode, Data: text},
		Document: d,
		Text:     text,
	}
}

func (d *Document) newElementBox(kind BoxKind, tag, style string) *Box {
	b := &Box{Kind: kind, Document: d, Style: css.ParseInlineStyle(style)}
	if tag != "" {
		b.Node = newElement(tag)
		if style != "" {
			b.Node.Attr = append(b.Node.Attr, html.Attribute{Key: "style", Val: style})
		}
	}
	b.Margin = b.Style.GetMargin()
	b.Padding = b.Style.GetPadding()
	b.Border = b.Style.GetBorderWidth()
	b.Inset = resolveInset(b.Style)
	return b
}

// newElement parses "tag#id.class1.class2" into a detached element.
func newElement(spec string) *html.Node {
	tag, rest := spec, ""
	if i := strings.IndexAny(spec, "#."); i >= 0 {
		tag, rest = spec[:i], spec[i:]
	}
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	var classes []string
	for rest != "" {
		sigil := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "#.")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		rest = rest[end:]
		if sigil == '#' {
			n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: name})
		} else {
			classes = append(classes, name)
		}
	}
	if len(classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	return n
}

// resolveInset turns top/right/bottom/left into the offsets of a relatively
// positioned box: left wins over right, top over bottom.
func resolveInset(style *css.Style) css.BoxEdge {
	po := style.GetPositionOffset()
	var inset css.BoxEdge
	switch {
	case po.HasLeft:
		inset.Left = po.Left
	case po.HasRight:
		inset.Left = -po.Right
	}
	switch {
	case po.HasTop:
		inset.Top = po.Top
	case po.HasBottom:
		inset.Top = -po.Bottom
	}
	inset.Right, inset.Bottom = -inset.Left, -inset.Top
	return inset
}

// SetAttribute sets a DOM attribute on the box's element.
func (b *Box) SetAttribute(key, val string) {
	if b.Node == nil {
		return
	}
	for i := range b.Node.Attr {
		if b.Node.Attr[i].Key == key {
			b.Node.Attr[i].Val = val
			return
		}
	}
	b.Node.Attr = append(b.Node.Attr, html.Attribute{Key: key, Val: val})
}

// RootElement returns the layout box of the document element, if any.
func (d *Document) RootElement() *Box {
	return d.find(func(b *Box) bool { return b.IsRootElement() })
}

// Body returns the layout box of <body>, if any.
func (d *Document) Body() *Box {
	return d.find(func(b *Box) bool { return b.IsBody() })
}

// BoxFor returns the layout box generated by a DOM node.
func (d *Document) BoxFor(node *html.Node) *Box {
	if node == nil {
		return nil
	}
	return d.find(func(b *Box) bool { return b.Node == node })
}

// ElementByID finds an element by its id attribute.
func (d *Document) ElementByID(id string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, a := range c.Attr {
					if a.Key == "id" && a.Val == id {
						found = c
						return
					}
				}
			}
			walk(c)
		}
	}
	walk(d.DOM)
	return found
}

func (d *Document) find(pred func(*Box) bool) *Box {
	if d.Viewport == nil {
		return nil
	}
	var found *Box
	d.Viewport.Walk(func(b *Box) bool {
		if found != nil {
			return false
		}
		if pred(b) {
			found = b
			return false
		}
		return true
	})
	return found
}

// ShouldUseBodyBackground applies the body→root background propagation
// rule: the root element has no background image and a transparent colour.
func (d *Document) ShouldUseBodyBackground() bool {
	root, body := d.RootElement(), d.Body()
	if root == nil || body == nil {
		return false
	}
	if _, ok := root.Style.GetBackgroundImage(); ok {
		return false
	}
	return root.Style.GetBackgroundColor().IsTransparent()
}

// BackgroundColor is the body's background colour, used when propagated.
func (d *Document) BackgroundColor() css.Color {
	if body := d.Body(); body != nil {
		return body.Style.GetBackgroundColor()
	}
	return css.Transparent
}

// BackgroundLayers are the body's background layers, used when propagated.
func (d *Document) BackgroundLayers() []css.BackgroundLayer {
	if body := d.Body(); body != nil {
		return body.Style.GetBackgroundLayers()
	}
	return nil
}

// SelectedRange returns the selected byte range [start, end) of a node
// whose text has the given length.
func (d *Document) SelectedRange(node *html.Node, length int) (start, end int, ok bool) {
	s := d.Selection
	if s.IsEmpty() || node == nil {
		return 0, 0, false
	}
	switch {
	case node == s.Start.Node && node == s.End.Node:
		start, end = s.Start.Offset, s.End.Offset
	case node == s.Start.Node:
		start, end = s.Start.Offset, length
	case node == s.End.Node:
		start, end = 0, s.End.Offset
	case d.treeOrder(s.Start.Node) < d.treeOrder(node) && d.treeOrder(node) < d.treeOrder(s.End.Node):
		start, end = 0, length
	default:
		return 0, 0, false
	}
	start, end = clampInt(start, 0, length), clampInt(end, 0, length)
	return start, end, start < end
}

func (d *Document) treeOrder(n *html.Node) int {
	if d.order == nil {
		d.order = make(map[*html.Node]int)
		i := 0
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			d.order[n] = i
			i++
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(d.DOM)
	}
	if i, ok := d.order[n]; ok {
		return i
	}
	return -1
}
