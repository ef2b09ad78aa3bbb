package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"l14paint/pkg/gfx"
	"l14paint/pkg/images"
	"l14paint/pkg/layout"
	"l14paint/pkg/painting"
	"l14paint/pkg/scene"
)

func main() {
	output := flag.String("o", "output.png", "output PNG file path")
	scale := flag.Float64("scale", 0, "device pixels per CSS pixel (default: from the scene)")
	lines := flag.Bool("lines", false, "outline line box fragments")
	ops := flag.Bool("ops", false, "print the painter operations instead of writing a PNG")
	stacking := flag.Bool("sc", false, "print the stacking context tree")
	hit := flag.String("hit", "", "hit test at `x,y` (CSS pixels) and print the result")
	cursor := flag.Bool("cursor", false, "hit test for caret placement instead of exact hits")
	tlevel := flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: l14show [flags] <scene.yaml>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.l14paint.painting": *tlevel,
		"trace.l14paint.scene":    *tlevel,
		"trace.l14paint.text":     *tlevel,
		"trace.l14paint.gfx":      *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring tracing: %v\n", err)
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	s, doc, err := scene.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}
	if *scale <= 0 {
		*scale = s.Scale
	}
	tree := painting.Build(doc)

	if *stacking {
		tree.StackingContext().Dump(os.Stdout)
	}
	if *hit != "" {
		var x, y float64
		if _, err := fmt.Sscanf(*hit, "%g,%g", &x, &y); err != nil {
			fmt.Fprintf(os.Stderr, "Error: -hit wants x,y: %v\n", err)
			os.Exit(1)
		}
		ht := painting.HitTestExact
		if *cursor {
			ht = painting.HitTestTextCursor
		}
		if r, ok := tree.HitTest(layout.Point{X: x, Y: y}, ht); ok {
			fmt.Printf("hit %g,%g: %s\n", x, y, r)
		} else {
			fmt.Printf("hit %g,%g: nothing\n", x, y)
		}
	}
	if *stacking || (*hit != "" && !*ops) {
		return
	}

	vp := doc.Viewport.ContentSize
	width, height := int(math.Ceil(vp.Width**scale)), int(math.Ceil(vp.Height**scale))
	target := gfx.NewGGPainter(width, height)
	target.Clear(color.White)

	var painter gfx.Painter = target
	var rec *gfx.Recorder
	if *ops {
		rec = gfx.NewRecorder(image.Rect(0, 0, width, height), target)
		painter = rec
	}
	ctx := painting.NewPaintContext(painter, layout.Rect{Width: vp.Width, Height: vp.Height}, *scale)
	ctx.ShowLineBoxBorders = *lines
	ctx.LoadImage = images.NewImageCache(func(uri string) ([]byte, error) {
		if !filepath.IsAbs(uri) {
			uri = filepath.Join(filepath.Dir(path), uri)
		}
		return os.ReadFile(uri)
	}).Load

	fmt.Fprintf(os.Stderr, "Painting %dx%d...\n", width, height)
	tree.Paint(ctx)

	if rec != nil {
		fmt.Print(rec.Dump())
		return
	}
	if err := target.SavePNG(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Saved to %s\n", *output)
}
