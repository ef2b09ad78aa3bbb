package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"l14paint/pkg/gfx"
	"l14paint/pkg/layout"
	"l14paint/pkg/painting"
	"l14paint/pkg/scene"
)

// viewer holds one loaded scene and its paintable tree.
type viewer struct {
	doc     *layout.Document
	tree    *painting.Tree
	scale   float64
	ctx     *painting.PaintContext
	lines   bool
	inspect bool
	img     *canvas.Image
	status  *widget.Label
}

func (v *viewer) repaint() {
	vp := v.doc.Viewport.ContentSize
	p := gfx.NewGGPainter(int(math.Ceil(vp.Width*v.scale)), int(math.Ceil(vp.Height*v.scale)))
	p.Clear(color.White)
	ctx := painting.NewPaintContext(p, layout.Rect{Width: vp.Width, Height: vp.Height}, v.scale)
	ctx.ShowLineBoxBorders = v.lines
	v.tree.Paint(ctx)
	v.ctx = ctx
	v.img.Image = p.Image()
	v.img.Refresh()
}

// toCSS converts a position on the scene view to CSS pixels, through the
// device pixels of the last paint.
func (v *viewer) toCSS(pos fyne.Position) layout.Point {
	dip := float64(1)
	if c := fyne.CurrentApp().Driver().CanvasForObject(v.img); c != nil {
		dip = float64(c.Scale())
	}
	return v.ctx.CSSPoint(image.Pt(int(float64(pos.X)*dip), int(float64(pos.Y)*dip)))
}

// placeCaret moves the caret to the text position under pos.
func (v *viewer) placeCaret(pos fyne.Position) {
	pt := v.toCSS(pos)
	r, ok := v.tree.HitTest(pt, painting.HitTestTextCursor)
	if !ok {
		v.status.SetText(fmt.Sprintf("%.0f,%.0f: nothing", pt.X, pt.Y))
		return
	}
	v.status.SetText(fmt.Sprintf("%.0f,%.0f: %s", pt.X, pt.Y, r))
	if r.HasTextOffset {
		v.doc.Cursor = layout.CursorPosition{Node: r.Paintable.Layout().Node, Offset: r.TextOffset}
		v.doc.FocusedContext = true
		v.doc.CursorBlinkOn = true
		v.repaint()
	}
}

// hover shows the inspector overlay for the box under pos.
func (v *viewer) hover(pos fyne.Position) {
	if !v.inspect {
		return
	}
	r, ok := v.tree.HitTest(v.toCSS(pos), painting.HitTestExact)
	var box *layout.Box
	if ok {
		box = r.Paintable.Layout()
		for box != nil && !box.IsBox() {
			box = box.Parent
		}
	}
	if box != v.doc.Inspected {
		v.doc.Inspected = box
		v.repaint()
	}
}

// sceneView shows the rendered scene and forwards pointer events.
type sceneView struct {
	widget.BaseWidget
	v *viewer
}

var (
	_ fyne.Tappable     = (*sceneView)(nil)
	_ desktop.Hoverable = (*sceneView)(nil)
)

func newSceneView(v *viewer) *sceneView {
	sv := &sceneView{v: v}
	sv.ExtendBaseWidget(sv)
	return sv
}

func (sv *sceneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sv.v.img)
}

func (sv *sceneView) Tapped(e *fyne.PointEvent)       { sv.v.placeCaret(e.Position) }
func (sv *sceneView) MouseIn(e *desktop.MouseEvent)    { sv.v.hover(e.Position) }
func (sv *sceneView) MouseMoved(e *desktop.MouseEvent) { sv.v.hover(e.Position) }
func (sv *sceneView) MouseOut()                        {}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <scene.yaml>\n", os.Args[0])
		os.Exit(1)
	}
	s, doc, err := scene.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("l14: " + os.Args[1])
	v := &viewer{
		doc:    doc,
		tree:   painting.Build(doc),
		scale:  s.Scale,
		img:    canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		status: widget.NewLabel("Click to place the caret"),
	}
	v.img.FillMode = canvas.ImageFillOriginal
	v.repaint()

	lines := widget.NewCheck("Line boxes", func(on bool) {
		v.lines = on
		v.repaint()
	})
	inspect := widget.NewCheck("Inspect", func(on bool) {
		v.inspect = on
		if !on {
			v.doc.Inspected = nil
			v.repaint()
		}
	})
	topBar := container.NewHBox(lines, inspect)
	content := container.NewBorder(topBar, v.status, nil, nil, container.NewScroll(newSceneView(v)))
	w.SetContent(content)
	w.Resize(fyne.NewSize(float32(doc.Viewport.ContentSize.Width*s.Scale)+40, float32(doc.Viewport.ContentSize.Height*s.Scale)+100))
	w.ShowAndRun()
}
