package painting

import (
	"image"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
	"l14paint/pkg/layout"
)

// ShadowData is one shadow layer with its lengths resolved to CSS pixels.
type ShadowData struct {
	Color          css.Color
	OffsetX        float64
	OffsetY        float64
	BlurRadius     float64
	SpreadDistance float64
	Placement      css.ShadowPlacement
}

func resolveShadows(layers []css.ShadowStyleValue, lc css.LengthContext) []ShadowData {
	if len(layers) == 0 {
		return nil
	}
	resolved := make([]ShadowData, 0, len(layers))
	for _, layer := range layers {
		resolved = append(resolved, ShadowData{
			Color:          layer.Color,
			OffsetX:        layer.OffsetX.ToPx(lc),
			OffsetY:        layer.OffsetY.ToPx(lc),
			BlurRadius:     layer.BlurRadius.ToPx(lc),
			SpreadDistance: layer.SpreadDistance.ToPx(lc),
			Placement:      layer.Placement,
		})
	}
	return resolved
}

// resolveBoxShadowData resolves box-shadow against the box's font metrics,
// keeping layer order and placement.
func (b *PaintableBox) resolveBoxShadowData() []ShadowData {
	return resolveShadows(b.box.ComputedStyle().GetBoxShadow(), b.box.LengthContext())
}

// resolveTextShadowData resolves the text-shadow of a text node.
func resolveTextShadowData(text *layout.Box) []ShadowData {
	return resolveShadows(text.ComputedStyle().GetTextShadow(), text.LengthContext())
}

// paintBoxShadow paints outer shadows outside the border box and inner
// shadows inside the padding box. The first layer ends up on top.
func (b *PaintableBox) paintBoxShadow(ctx *PaintContext) {
	shadows := b.resolveBoxShadowData()
	if len(shadows) == 0 {
		return
	}
	border := ctx.RoundedDeviceRect(b.AbsoluteBorderBoxRect())
	padding := ctx.RoundedDeviceRect(b.AbsolutePaddingBoxRect())
	outerRadii := ctx.DeviceRadii(b.normalizedBorderRadii(false))
	innerRadii := ctx.DeviceRadii(b.normalizedBorderRadii(true))
	for i := len(shadows) - 1; i >= 0; i-- {
		s := shadows[i]
		if s.Color.IsTransparent() {
			continue
		}
		var err error
		if s.Placement == css.ShadowOuter {
			err = paintOuterBoxShadow(ctx, border, outerRadii, s)
		} else {
			err = paintInnerBoxShadow(ctx, padding, innerRadii, s)
		}
		if err != nil {
			tracer().Errorf("box shadow of %s: %v", b.box, err)
			return
		}
	}
}

func paintOuterBoxShadow(ctx *PaintContext, border image.Rectangle, radii gfx.CornerRadii, s ShadowData) error {
	spread := ctx.RoundedDevicePixels(s.SpreadDistance)
	blur := ctx.RoundedDevicePixels(s.BlurRadius)
	offset := image.Pt(ctx.RoundedDevicePixels(s.OffsetX), ctx.RoundedDevicePixels(s.OffsetY))
	shadowRect := border.Inset(-spread).Add(offset)
	if shadowRect.Empty() {
		return nil
	}
	if blur == 0 && !radii.HasAny() && !shadowRect.Overlaps(border) {
		ctx.Painter.FillRect(shadowRect, s.Color)
		return nil
	}
	bounds := shadowRect.Inset(-2 * blur)
	bitmap, err := ctx.allocateBitmap(bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}
	sp := gfx.NewGGPainterForRGBA(bitmap)
	sp.Translate(bounds.Min.Mul(-1))
	sp.FillRectWithRoundedCorners(shadowRect, s.Color, expandRadii(radii, float64(spread)))
	gfx.BlurRGBA(bitmap, float64(blur))
	// the shadow only shows outside the border box
	gfx.ClearRoundedRect(bitmap, border.Sub(bounds.Min), radii)
	ctx.Painter.BlitOver(bitmap, bounds.Min)
	return nil
}

func paintInnerBoxShadow(ctx *PaintContext, padding image.Rectangle, radii gfx.CornerRadii, s ShadowData) error {
	if padding.Empty() {
		return nil
	}
	spread := ctx.RoundedDevicePixels(s.SpreadDistance)
	blur := ctx.RoundedDevicePixels(s.BlurRadius)
	offset := image.Pt(ctx.RoundedDevicePixels(s.OffsetX), ctx.RoundedDevicePixels(s.OffsetY))
	bitmap, err := ctx.allocateBitmap(padding.Dx(), padding.Dy())
	if err != nil {
		return err
	}
	sp := gfx.NewGGPainterForRGBA(bitmap)
	sp.Clear(s.Color)
	hole := padding.Add(offset).Inset(spread).Sub(padding.Min)
	if !hole.Empty() {
		gfx.ClearRoundedRect(bitmap, hole, expandRadii(radii, -float64(spread)))
	}
	gfx.BlurRGBA(bitmap, float64(blur))
	if radii.HasAny() {
		// cut the rounded padding box corners back out
		cutRoundedCorners(bitmap, radii)
	}
	ctx.Painter.BlitOver(bitmap, padding.Min)
	return nil
}

func cutRoundedCorners(bitmap *image.RGBA, radii gfx.CornerRadii) {
	mask := bitmap.Bounds()
	for y := mask.Min.Y; y < mask.Max.Y; y++ {
		for x := mask.Min.X; x < mask.Max.X; x++ {
			gfx.ScaleAlpha(bitmap, x, y, gfx.RoundedRectCoverage(mask, radii, x, y))
		}
	}
}

func expandRadii(r gfx.CornerRadii, by float64) gfx.CornerRadii {
	grow := func(c gfx.CornerRadius) gfx.CornerRadius {
		if c.IsZero() {
			return c
		}
		return gfx.CornerRadius{Horizontal: max(0, c.Horizontal+by), Vertical: max(0, c.Vertical+by)}
	}
	return gfx.CornerRadii{
		TopLeft:     grow(r.TopLeft),
		TopRight:    grow(r.TopRight),
		BottomRight: grow(r.BottomRight),
		BottomLeft:  grow(r.BottomLeft),
	}
}

// paintTextShadow paints the shadows of one text fragment. Each layer is
// drawn into a scratch bitmap with room for the blur and composited under
// the fragment position.
func paintTextShadow(ctx *PaintContext, frag *layout.LineBoxFragment, abs layout.Rect, shadows []ShadowData) {
	if len(shadows) == 0 {
		return
	}
	font := frag.Box.UsedFont()
	drawRect := ctx.EnclosingDeviceRect(abs)
	baseline := ctx.RoundedDevicePixels(frag.Baseline)
	for i := len(shadows) - 1; i >= 0; i-- {
		s := shadows[i]
		blur := ctx.RoundedDevicePixels(s.BlurRadius)
		offset := image.Pt(ctx.RoundedDevicePixels(s.OffsetX), ctx.RoundedDevicePixels(s.OffsetY))
		margin := 2 * blur
		bitmap, err := ctx.allocateBitmap(drawRect.Dx()+2*margin, drawRect.Dy()+2*margin)
		if err != nil {
			tracer().Errorf("text shadow of %s: %v", frag.Box, err)
			return
		}
		sp := gfx.NewGGPainterForRGBA(bitmap)
		sp.DrawTextRun(image.Pt(margin, margin+baseline), frag.Text(), font, s.Color)
		gfx.BlurRGBA(bitmap, float64(blur))
		ctx.Painter.BlitOver(bitmap, drawRect.Min.Add(offset).Sub(image.Pt(margin, margin)))
	}
}
