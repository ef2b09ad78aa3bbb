package painting

import (
	"fmt"
	"image"

	"l14paint/pkg/css"
	"l14paint/pkg/gfx"
)

var (
	inspectorMargin  = css.Color{R: 255, G: 255, B: 0, A: 1}
	inspectorPadding = css.Color{R: 0, G: 255, B: 255, A: 1}
	inspectorBorder  = css.Color{R: 0, G: 255, B: 0, A: 1}
	inspectorContent = css.Color{R: 255, G: 0, B: 255, A: 1}
)

// paintInspectorOverlay highlights the box model of the inspected box and
// labels it with its description, size and position.
func (b *PaintableBox) paintInspectorOverlay(ctx *PaintContext) {
	border := b.AbsoluteBorderBoxRect()
	areas := []struct {
		rect  image.Rectangle
		color css.Color
	}{
		{ctx.EnclosingDeviceRect(b.AbsoluteMarginBoxRect()), inspectorMargin},
		{ctx.EnclosingDeviceRect(b.AbsolutePaddingBoxRect()), inspectorPadding},
		{ctx.EnclosingDeviceRect(border), inspectorBorder},
		{ctx.EnclosingDeviceRect(b.AbsoluteRect()), inspectorContent},
	}
	for _, a := range areas {
		ctx.Painter.FillRect(a.rect, a.color.WithAlpha(100))
		ctx.Painter.DrawRect(a.rect, a.color)
	}

	label := b.box.DebugDescription() +
		fmt.Sprintf(" %gx%g @ %g,%g", border.Width, border.Height, border.X, border.Y)
	font := ctx.DefaultFont
	if font == nil {
		font = gfx.DefaultFont()
	}
	deviceBorder := ctx.EnclosingDeviceRect(border)
	size := image.Pt(int(font.Width(label))+4, int(font.PixelSize())+4)
	labelRect := image.Rectangle{Min: image.Pt(deviceBorder.Min.X, deviceBorder.Max.Y)}
	labelRect.Max = labelRect.Min.Add(size)
	if labelRect.Max.Y > ctx.DeviceViewportRect().Max.Y {
		labelRect = labelRect.Sub(image.Pt(0, size.Y+deviceBorder.Dy()))
	}
	ctx.Painter.FillRect(labelRect, ctx.Palette.Tooltip)
	ctx.Painter.DrawRect(labelRect, ctx.Palette.ThreedShadow1)
	ctx.Painter.DrawText(labelRect, label, font, gfx.AlignCenter, ctx.Palette.TooltipText)
}
