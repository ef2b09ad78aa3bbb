package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"l14paint/pkg/gfx"
	"l14paint/pkg/images"
	"l14paint/pkg/layout"
	"l14paint/pkg/painting"
	"l14paint/pkg/scene"
)

// tracer traces with key 'l14paint.visualtest'.
func tracer() tracing.Trace {
	return tracing.Select("l14paint.visualtest")
}

// RenderOptions controls how a document is rasterized.
type RenderOptions struct {
	Scale float64
	// BaseDir resolves relative background image URLs. Empty means the
	// working directory.
	BaseDir            string
	ShowLineBoxBorders bool
}

// Render paints doc onto a white canvas of the viewport size in device
// pixels.
func Render(doc *layout.Document, opts RenderOptions) *image.RGBA {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	vp := doc.Viewport.ContentSize
	w := int(math.Ceil(vp.Width * scale))
	h := int(math.Ceil(vp.Height * scale))
	p := gfx.NewGGPainter(w, h)
	p.Clear(color.White)

	ctx := painting.NewPaintContext(p, layout.Rect{Width: vp.Width, Height: vp.Height}, scale)
	ctx.ShowLineBoxBorders = opts.ShowLineBoxBorders
	ctx.LoadImage = images.NewImageCache(fileImageFetcher(opts.BaseDir)).Load
	painting.Build(doc).Paint(ctx)
	return p.Image()
}

// fileImageFetcher loads images from the filesystem relative to basePath.
func fileImageFetcher(basePath string) images.ImageFetcher {
	return func(uri string) ([]byte, error) {
		if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
			return nil, fmt.Errorf("unsupported URI scheme: %s", uri)
		}
		if basePath == "" || filepath.IsAbs(uri) {
			return os.ReadFile(uri)
		}
		return os.ReadFile(filepath.Join(basePath, uri))
	}
}

// RenderScene loads a scene file and renders it at the scene's scale.
func RenderScene(path string) (*image.RGBA, *scene.Scene, error) {
	s, doc, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	img := Render(doc, RenderOptions{Scale: s.Scale, BaseDir: filepath.Dir(path)})
	return img, s, nil
}

// RenderSceneToFile renders a scene file to a PNG file.
func RenderSceneToFile(scenePath, outputPath string) error {
	img, _, err := RenderScene(scenePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}

// UpdateReferenceImage regenerates the reference image of a scene.
// Use this when rendering behaviour changed on purpose.
func UpdateReferenceImage(scenePath, referencePath string) error {
	tracer().Infof("updating reference image %s", referencePath)
	return RenderSceneToFile(scenePath, referencePath)
}

// ReferencePath is where the reference image of a scene lives.
func ReferencePath(scenePath string) string {
	dir, file := filepath.Split(scenePath)
	return filepath.Join(dir, "reference", strings.TrimSuffix(file, filepath.Ext(file))+".png")
}
