package painting

import (
	"image"
	"math"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
	"l14paint/pkg/layout"
)

// paintBackground fills the background and draws the image layers. The
// root element paints over the whole viewport, taking the body's background
// when it propagates; the body then paints nothing.
func (b *PaintableBox) paintBackground(ctx *PaintContext) {
	doc := b.box.Document
	propagates := doc != nil && doc.ShouldUseBodyBackground()
	if b.box.IsBody() && propagates {
		return
	}

	style := b.box.ComputedStyle()
	color := style.GetBackgroundColor()
	layers := style.GetBackgroundLayers()

	var rect layout.Rect
	if b.box.IsRootElement() {
		rect = ctx.Viewport
		if propagates {
			color = doc.BackgroundColor()
			layers = doc.BackgroundLayers()
		}
	} else {
		rect = b.AbsolutePaddingBoxRect()
		// with a border, fill under it too so rounded corners leave no gap
		if w := b.box.Border; w.Top != 0 || w.Right != 0 || w.Bottom != 0 || w.Left != 0 {
			rect = b.AbsoluteBorderBoxRect()
		}
	}

	paintBackgroundLayers(ctx, ctx.RoundedDeviceRect(rect), color, layers, ctx.DeviceRadii(b.normalizedBorderRadii(false)))
}

func paintBackgroundLayers(ctx *PaintContext, rect image.Rectangle, color css.Color, layers []css.BackgroundLayer, radii gfx.CornerRadii) {
	if rect.Empty() {
		return
	}
	if !color.IsTransparent() {
		if radii.HasAny() {
			ctx.Painter.FillRectWithRoundedCorners(rect, color, radii)
		} else {
			ctx.Painter.FillRect(rect, color)
		}
	}
	if len(layers) == 0 || ctx.LoadImage == nil {
		return
	}
	defer gfx.SaveState(ctx.Painter)()
	ctx.Painter.AddClipRect(rect)
	// the first layer is on top
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		img, err := ctx.LoadImage(layer.Image)
		if err != nil {
			tracer().Errorf("background image %q: %v", layer.Image, err)
			continue
		}
		tileBackgroundImage(ctx, rect, img, layer)
	}
}

// tileBackgroundImage repeats img over rect starting at the layer position.
func tileBackgroundImage(ctx *PaintContext, rect image.Rectangle, img image.Image, layer css.BackgroundLayer) {
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	origin := rect.Min.Add(image.Pt(ctx.RoundedDevicePixels(layer.Position.X), ctx.RoundedDevicePixels(layer.Position.Y)))

	// tile starts: walk back from the position until the first tile covers
	// the rect's leading edge
	startX, startY := origin.X, origin.Y
	endX, endY := origin.X+1, origin.Y+1
	if layer.Repeat == css.BackgroundRepeatRepeat || layer.Repeat == css.BackgroundRepeatRepeatX {
		startX -= int(math.Ceil(float64(startX-rect.Min.X)/float64(size.X))) * size.X
		endX = rect.Max.X
	}
	if layer.Repeat == css.BackgroundRepeatRepeat || layer.Repeat == css.BackgroundRepeatRepeatY {
		startY -= int(math.Ceil(float64(startY-rect.Min.Y)/float64(size.Y))) * size.Y
		endY = rect.Max.Y
	}
	for y := startY; y < endY; y += size.Y {
		for x := startX; x < endX; x += size.X {
			ctx.Painter.DrawImage(img, image.Pt(x, y))
		}
	}
}

// paintBackdropFilter filters the pixels already painted behind the border
// box.
func (b *PaintableBox) paintBackdropFilter(ctx *PaintContext) {
	filters := b.box.ComputedStyle().GetBackdropFilter()
	if len(filters) == 0 {
		return
	}
	rect := ctx.EnclosingDeviceRect(b.AbsoluteBorderBoxRect()).Intersect(ctx.Painter.ClipRect())
	if rect.Empty() {
		return
	}
	bitmap, err := ctx.allocateBitmap(rect.Dx(), rect.Dy())
	if err != nil {
		tracer().Errorf("backdrop filter of %s: %v", b.box, err)
		return
	}
	ctx.Painter.ReadPixels(rect, bitmap, image.Point{})
	applyFilters(bitmap, filters)
	ctx.Painter.Blit(bitmap, rect.Min)
}

// applyFilters runs the filter functions over a premultiplied bitmap.
func applyFilters(im *image.RGBA, filters []css.FilterFunction) {
	for i := 0; i+3 < len(im.Pix); i += 4 {
		a := float64(im.Pix[i+3])
		if a == 0 {
			continue
		}
		// work on straight colour
		r := float64(im.Pix[i]) * 255 / a
		g := float64(im.Pix[i+1]) * 255 / a
		bl := float64(im.Pix[i+2]) * 255 / a
		for _, f := range filters {
			switch f.Name {
			case "grayscale":
				y := 0.2126*r + 0.7152*g + 0.0722*bl
				r, g, bl = mix(r, y, f.Amount), mix(g, y, f.Amount), mix(bl, y, f.Amount)
			case "sepia":
				sr := 0.393*r + 0.769*g + 0.189*bl
				sg := 0.349*r + 0.686*g + 0.168*bl
				sb := 0.272*r + 0.534*g + 0.131*bl
				r, g, bl = mix(r, sr, f.Amount), mix(g, sg, f.Amount), mix(bl, sb, f.Amount)
			case "invert":
				r, g, bl = mix(r, 255-r, f.Amount), mix(g, 255-g, f.Amount), mix(bl, 255-bl, f.Amount)
			case "brightness":
				r, g, bl = r*f.Amount, g*f.Amount, bl*f.Amount
			case "opacity":
				a *= f.Amount
			}
		}
		im.Pix[i] = clampChannel(r * a / 255)
		im.Pix[i+1] = clampChannel(g * a / 255)
		im.Pix[i+2] = clampChannel(bl * a / 255)
		im.Pix[i+3] = clampChannel(a)
	}
}

func mix(from, to, f float64) float64 {
	return from + (to-from)*f
}

func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v+0.5)))
}
