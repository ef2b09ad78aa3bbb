package layout

// FragmentCoordinate addresses one fragment in the line boxes of a block
// container.
type FragmentCoordinate struct {
	LineBoxIndex  int
	FragmentIndex int
}

// LineBox represents a line of inline content
type LineBox struct {
	Fragments []LineBoxFragment
}

// LineBoxFragment is a contiguous run of one inline-level node on a line:
// a slice [Start, Start+Length) of a text node, or the placement of an
// inline-level box (Length 0).
type LineBoxFragment struct {
	Box      *Box
	Start    int   // byte offset into Box.Text
	Length   int   // byte length
	Offset   Point // relative to the containing block's content box
	Size     Size
	Baseline float64 // distance of the alphabetic baseline from the fragment top
}

// Text returns the fragment's slice of its text node.
func (f *LineBoxFragment) Text() string {
	if f.Box == nil || !f.Box.IsText() {
		return ""
	}
	text := f.Box.Text
	start := clampInt(f.Start, 0, len(text))
	end := clampInt(f.Start+f.Length, start, len(text))
	return text[start:end]
}

// End is the text offset just past the fragment.
func (f *LineBoxFragment) End() int {
	return f.Start + f.Length
}

// TextIndexAt maps an x position relative to the fragment's left edge to a
// text offset: the offset of the first glyph whose right edge (plus half the
// glyph spacing) lies beyond x. Non-text fragments always answer 0.
func (f *LineBoxFragment) TextIndexAt(relativeX float64) int {
	if f.Box == nil || !f.Box.IsText() {
		return 0
	}
	if relativeX < 0 {
		return f.Start
	}
	font := f.Box.UsedFont()
	spacing := font.GlyphSpacing()
	widthSoFar := 0.0
	for i, r := range f.Text() {
		glyphWidth := font.GlyphWidth(r)
		if widthSoFar+glyphWidth+spacing/2 > relativeX {
			return f.Start + i
		}
		widthSoFar += glyphWidth + spacing
	}
	return f.End()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
