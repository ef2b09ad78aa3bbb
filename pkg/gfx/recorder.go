package gfx

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Op is one recorded painter call.
type Op struct {
	Name  string
	Rect  image.Rectangle
	From  image.Point
	To    image.Point
	Color color.Color
	Text  string
	Depth int // save depth at the time of the call
}

func (op Op) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", op.Depth), op.Name)
	if op.Rect != (image.Rectangle{}) {
		fmt.Fprintf(&b, " %v", op.Rect)
	}
	if op.From != op.To {
		fmt.Fprintf(&b, " %v-%v", op.From, op.To)
	}
	if op.Text != "" {
		fmt.Fprintf(&b, " %q", op.Text)
	}
	return b.String()
}

// Recorder logs every call and tracks the clip and save stack. If Inner is
// set, calls are forwarded to it as well.
type Recorder struct {
	Inner Painter
	Ops   []Op

	bounds image.Rectangle
	state  painterState
	stack  []painterState
}

// NewRecorder records calls for a target of the given bounds.
func NewRecorder(bounds image.Rectangle, inner Painter) *Recorder {
	return &Recorder{Inner: inner, bounds: bounds, state: painterState{clip: bounds}}
}

// Depth is the number of unmatched saves.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// Names returns the op names in call order, optionally filtered.
func (r *Recorder) Names(filter ...string) []string {
	var names []string
	for _, op := range r.Ops {
		if len(filter) == 0 || contains(filter, op.Name) {
			names = append(names, op.Name)
		}
	}
	return names
}

// Dump renders the op log, one call per line.
func (r *Recorder) Dump() string {
	var b strings.Builder
	for _, op := range r.Ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (r *Recorder) record(op Op) {
	op.Depth = len(r.stack)
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Save() {
	r.record(Op{Name: "Save"})
	r.stack = append(r.stack, r.state)
	if r.Inner != nil {
		r.Inner.Save()
	}
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		panic("gfx: restore without matching save")
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.record(Op{Name: "Restore"})
	if r.Inner != nil {
		r.Inner.Restore()
	}
}

func (r *Recorder) AddClipRect(rect image.Rectangle) {
	r.record(Op{Name: "AddClipRect", Rect: rect})
	r.state.clip = r.state.clip.Intersect(rect.Add(r.state.translate))
	if r.Inner != nil {
		r.Inner.AddClipRect(rect)
	}
}

func (r *Recorder) ClipRect() image.Rectangle {
	return r.state.clip.Sub(r.state.translate)
}

func (r *Recorder) Translate(d image.Point) {
	r.record(Op{Name: "Translate", To: d})
	r.state.translate = r.state.translate.Add(d)
	if r.Inner != nil {
		r.Inner.Translate(d)
	}
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.record(Op{Name: "FillRect", Rect: rect, Color: c})
	if r.Inner != nil {
		r.Inner.FillRect(rect, c)
	}
}

func (r *Recorder) FillRectWithRoundedCorners(rect image.Rectangle, c color.Color, radii CornerRadii) {
	r.record(Op{Name: "FillRectWithRoundedCorners", Rect: rect, Color: c})
	if r.Inner != nil {
		r.Inner.FillRectWithRoundedCorners(rect, c, radii)
	}
}

func (r *Recorder) FillPolygon(points []image.Point, c color.Color) {
	var bounds image.Rectangle
	for i, p := range points {
		pr := image.Rectangle{Min: p, Max: p}
		if i == 0 {
			bounds = pr
		} else {
			bounds.Min.X, bounds.Min.Y = min(bounds.Min.X, p.X), min(bounds.Min.Y, p.Y)
			bounds.Max.X, bounds.Max.Y = max(bounds.Max.X, p.X), max(bounds.Max.Y, p.Y)
		}
	}
	r.record(Op{Name: "FillPolygon", Rect: bounds, Color: c})
	if r.Inner != nil {
		r.Inner.FillPolygon(points, c)
	}
}

func (r *Recorder) DrawRect(rect image.Rectangle, c color.Color) {
	r.record(Op{Name: "DrawRect", Rect: rect, Color: c})
	if r.Inner != nil {
		r.Inner.DrawRect(rect, c)
	}
}

func (r *Recorder) DrawRoundedRect(rect image.Rectangle, c color.Color, radii CornerRadii, thickness int) {
	r.record(Op{Name: "DrawRoundedRect", Rect: rect, Color: c})
	if r.Inner != nil {
		r.Inner.DrawRoundedRect(rect, c, radii, thickness)
	}
}

func (r *Recorder) DrawLine(from, to image.Point, c color.Color, thickness int, style LineStyle) {
	r.record(Op{Name: "DrawLine", From: from, To: to, Color: c})
	if r.Inner != nil {
		r.Inner.DrawLine(from, to, c, thickness, style)
	}
}

func (r *Recorder) DrawTriangleWave(from, to image.Point, c color.Color, amplitude, thickness int) {
	r.record(Op{Name: "DrawTriangleWave", From: from, To: to, Color: c})
	if r.Inner != nil {
		r.Inner.DrawTriangleWave(from, to, c, amplitude, thickness)
	}
}

func (r *Recorder) DrawTextRun(baselineStart image.Point, text string, f Font, c color.Color) {
	r.record(Op{Name: "DrawTextRun", From: baselineStart, Text: text, Color: c})
	if r.Inner != nil {
		r.Inner.DrawTextRun(baselineStart, text, f, c)
	}
}

func (r *Recorder) DrawText(rect image.Rectangle, text string, f Font, align TextAlignment, c color.Color) {
	r.record(Op{Name: "DrawText", Rect: rect, Text: text, Color: c})
	if r.Inner != nil {
		r.Inner.DrawText(rect, text, f, align, c)
	}
}

func (r *Recorder) DrawFocusRect(rect image.Rectangle, c color.Color) {
	r.record(Op{Name: "DrawFocusRect", Rect: rect, Color: c})
	if r.Inner != nil {
		r.Inner.DrawFocusRect(rect, c)
	}
}

func (r *Recorder) DrawImage(img image.Image, at image.Point) {
	r.record(Op{Name: "DrawImage", Rect: img.Bounds().Sub(img.Bounds().Min).Add(at)})
	if r.Inner != nil {
		r.Inner.DrawImage(img, at)
	}
}

func (r *Recorder) ReadPixels(rect image.Rectangle, dst *image.RGBA, dstAt image.Point) {
	r.record(Op{Name: "ReadPixels", Rect: rect})
	if r.Inner != nil {
		r.Inner.ReadPixels(rect, dst, dstAt)
	}
}

func (r *Recorder) BlitOver(src image.Image, at image.Point) {
	r.record(Op{Name: "BlitOver", Rect: src.Bounds().Sub(src.Bounds().Min).Add(at)})
	if r.Inner != nil {
		r.Inner.BlitOver(src, at)
	}
}

func (r *Recorder) Blit(src image.Image, at image.Point) {
	r.record(Op{Name: "Blit", Rect: src.Bounds().Sub(src.Bounds().Min).Add(at)})
	if r.Inner != nil {
		r.Inner.Blit(src, at)
	}
}
