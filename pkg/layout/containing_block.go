package layout

import "l14paint/pkg/css"

// ContainingBlock finds the containing block of a layout node
// For absolute positioned elements: nearest positioned ancestor box
// For fixed: the viewport
// For text, inline and static/relative boxes: nearest block container
// The viewport has none.
func (b *Box) ContainingBlock() *Box {
	if b.IsViewport() {
		return nil
	}
	switch b.Position() {
	case css.PositionAbsolute:
		return b.findNearestPositionedAncestor()

	case css.PositionFixed:
		return b.viewport()
	}
	for current := b.Parent; current != nil; current = current.Parent {
		if current.IsBlockContainer() {
			return current
		}
	}
	return nil
}

// findNearestPositionedAncestor finds the nearest ancestor box with
// position != static, falling back to the viewport
func (b *Box) findNearestPositionedAncestor() *Box {
	for current := b.Parent; current != nil; current = current.Parent {
		if current.IsBox() && current.IsPositioned() {
			return current
		}
	}
	return b.viewport()
}

func (b *Box) viewport() *Box {
	if b.Document != nil && b.Document.Viewport != nil {
		return b.Document.Viewport
	}
	current := b
	for current.Parent != nil {
		current = current.Parent
	}
	if current.IsViewport() {
		return current
	}
	return nil
}
