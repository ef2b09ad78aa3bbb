package layout

import "l14paint/pkg/css"

// EstablishesStackingContext returns true if the box roots a new stacking
// context. Only boxes qualify; inline and text nodes never do.
func (b *Box) EstablishesStackingContext() bool {
	if b == nil || !b.IsBox() {
		return false
	}
	if b.IsViewport() {
		return true
	}
	style := b.Style
	if style == nil {
		return false
	}

	// Positioned elements with z-index != auto create a stacking context
	switch b.Position() {
	case css.PositionAbsolute, css.PositionRelative:
		if _, ok := style.GetZIndex(); ok {
			return true
		}
	case css.PositionFixed, css.PositionSticky:
		return true
	}

	// Elements with opacity < 1 create a stacking context
	if style.GetOpacity() < 1 {
		return true
	}

	// Elements with transform != none create a stacking context
	return style.HasTransform()
}

// ZIndex is the z-index used for stacking order; auto counts as 0.
func (b *Box) ZIndex() int {
	if b.Style == nil {
		return 0
	}
	z, _ := b.Style.GetZIndex()
	return z
}
