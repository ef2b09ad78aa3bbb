package layout

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
)

// BoxKind distinguishes the layout node classes the painter treats
// differently.
type BoxKind int

const (
	KindViewport       BoxKind = iota // the initial containing block
	KindBlockContainer                // block box that may own line boxes
	KindBox                           // any other box (replaced elements, inline-blocks without lines)
	KindInline                        // inline element, painted through line fragments
	KindText                          // text run
)

func (k BoxKind) String() string {
	return [...]string{"Viewport", "BlockContainer", "Box", "Inline", "Text"}[k]
}

// Box is one node of the finished layout tree. Geometry is final: the
// painter reads it and never computes it.
type Box struct {
	Kind     BoxKind
	Node     *html.Node // DOM node, nil for anonymous boxes
	Style    *css.Style // computed values; text nodes use their parent's
	Document *Document
	Parent   *Box
	Children []*Box
	Text     string // text for rendering (KindText)

	Offset      Point // relative to the containing block's content box
	ContentSize Size
	Margin      css.BoxEdge
	Padding     css.BoxEdge
	Border      css.BoxEdge
	Inset       css.BoxEdge // used offsets of a relatively positioned box

	// ContainingLineBoxFragment is set when the box is placed by a fragment
	// of its containing block's line boxes instead of by Offset.
	ContainingLineBoxFragment *FragmentCoordinate

	LineBoxes          []LineBox
	ChildrenAreInline  bool
	ScrollOffset       Point
	ScrollableOverflow *Rect // relative to the box's content origin

	Font gfx.Font
}

// IsBox reports nodes that get a PaintableBox.
func (b *Box) IsBox() bool {
	return b.Kind == KindViewport || b.Kind == KindBlockContainer || b.Kind == KindBox
}

// IsBlockContainer reports nodes that may own line boxes.
func (b *Box) IsBlockContainer() bool {
	return b.Kind == KindViewport || b.Kind == KindBlockContainer
}

func (b *Box) IsViewport() bool { return b.Kind == KindViewport }
func (b *Box) IsText() bool     { return b.Kind == KindText }

// ComputedStyle returns the box's style, inherited from the parent for
// text nodes. It never returns nil.
func (b *Box) ComputedStyle() *css.Style {
	for n := b; n != nil; n = n.Parent {
		if n.Style != nil && n.Kind != KindText {
			return n.Style
		}
	}
	return css.NewStyle()
}

// UsedFont returns the font of the box or of its nearest ancestor.
func (b *Box) UsedFont() gfx.Font {
	for n := b; n != nil; n = n.Parent {
		if n.Font != nil {
			return n.Font
		}
	}
	return gfx.DefaultFont()
}

// Position returns the position scheme; text nodes are always static.
func (b *Box) Position() css.PositionType {
	if b.Kind == KindText || b.Style == nil {
		return css.PositionStatic
	}
	return b.Style.GetPosition()
}

func (b *Box) IsPositioned() bool {
	return b.Position() != css.PositionStatic
}

func (b *Box) IsAbsolutelyPositioned() bool {
	p := b.Position()
	return p == css.PositionAbsolute || p == css.PositionFixed
}

func (b *Box) isElement(a atom.Atom) bool {
	return b.Node != nil && b.Node.Type == html.ElementNode && b.Node.DataAtom == a
}

// IsBody reports the layout box of the <body> element.
func (b *Box) IsBody() bool {
	return b.isElement(atom.Body)
}

// IsRootElement reports the layout box of the document element.
func (b *Box) IsRootElement() bool {
	return b.Node != nil && b.Node.Type == html.ElementNode &&
		b.Node.Parent != nil && b.Node.Parent.Type == html.DocumentNode
}

// IsFocused reports whether the box's element has focus.
func (b *Box) IsFocused() bool {
	return b.Node != nil && b.Document != nil && b.Document.FocusedElement == b.Node
}

// ParentElement returns the nearest DOM element above the box's node.
func (b *Box) ParentElement() *html.Node {
	if b.Node == nil {
		return nil
	}
	for n := b.Node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// IsEditable reports whether the box's DOM node is inside an editing host
// or a text control.
func (b *Box) IsEditable() bool {
	for n := b.Node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if n.DataAtom == atom.Input || n.DataAtom == atom.Textarea {
			return true
		}
		for _, a := range n.Attr {
			if a.Key == "contenteditable" {
				return a.Val != "false"
			}
		}
	}
	return false
}

// LengthContext is what relative lengths of this box resolve against.
func (b *Box) LengthContext() css.LengthContext {
	style := b.ComputedStyle()
	lc := css.LengthContext{
		FontSize:     style.GetFontSize(),
		RootFontSize: 16,
	}
	if f := b.UsedFont(); f != nil {
		lc.XHeight = f.XHeight()
	}
	if d := b.Document; d != nil {
		if root := d.RootElement(); root != nil && root.Style != nil {
			lc.RootFontSize = root.Style.GetFontSize()
		}
		if d.Viewport != nil {
			lc.ViewportWidth = d.Viewport.ContentSize.Width
			lc.ViewportHeight = d.Viewport.ContentSize.Height
		}
	}
	return lc
}

// AppendChild attaches child in the layout tree and, when the child has a
// detached DOM node, under the nearest DOM node of b.
func (b *Box) AppendChild(child *Box) *Box {
	child.Parent = b
	if child.Document == nil {
		child.Document = b.Document
	}
	b.Children = append(b.Children, child)
	if child.Node != nil && child.Node.Parent == nil {
		for n := b; n != nil; n = n.Parent {
			if n.Node != nil {
				n.Node.AppendChild(child.Node)
				break
			}
		}
		if child.Document != nil {
			child.Document.order = nil
		}
	}
	return child
}

// Walk visits b and its descendants in tree order. Returning false from fn
// skips the children of that node.
func (b *Box) Walk(fn func(*Box) bool) {
	if !fn(b) {
		return
	}
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// DebugDescription names the box for inspector labels and traces.
func (b *Box) DebugDescription() string {
	if b.Node == nil {
		return fmt.Sprintf("(anonymous %s)", b.Kind)
	}
	switch b.Node.Type {
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	}
	var s strings.Builder
	s.WriteString(b.Node.Data)
	for _, a := range b.Node.Attr {
		switch a.Key {
		case "id":
			s.WriteString("#" + a.Val)
		case "class":
			for _, c := range strings.Fields(a.Val) {
				s.WriteString("." + c)
			}
		}
	}
	return s.String()
}

func (b *Box) String() string {
	return fmt.Sprintf("%s<%s>", b.Kind, b.DebugDescription())
}
