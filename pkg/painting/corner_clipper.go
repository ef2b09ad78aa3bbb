package painting

import (
	"errors"
	"fmt"
	"image"

	"l14paint/pkg/gfx"
)

// ErrNoCornerRadius is returned when a corner clipper is requested for a
// rect without rounded corners.
var ErrNoCornerRadius = errors.New("no rounded corner to clip")

// BorderRadiusCornerClipper gives a rectangular clip rounded, anti-aliased
// corners. It samples the pixels under each corner before the clipped
// content is painted, with the parts inside the rounded rect made
// transparent, and composites the samples back afterwards. Whatever the
// content painted outside the rounded corners is thereby covered again.
//
// The four corners are packed into one bitmap: top-left and top-right side
// by side on top, bottom-left and bottom-right below.
type BorderRadiusCornerClipper struct {
	rect    image.Rectangle
	radii   gfx.CornerRadii
	corners [4]clippedCorner
	bitmap  *image.RGBA
	sampled bool
}

type clippedCorner struct {
	area   image.Rectangle // target pixels under the corner
	packed image.Point     // position of the sample in the bitmap
}

// NewBorderRadiusCornerClipper prepares a clipper for the device rect with
// the given device radii. It fails when the scratch bitmap cannot be
// allocated.
func NewBorderRadiusCornerClipper(ctx *PaintContext, rect image.Rectangle, radii gfx.CornerRadii) (*BorderRadiusCornerClipper, error) {
	if !radii.HasAny() {
		return nil, ErrNoCornerRadius
	}
	c := &BorderRadiusCornerClipper{rect: rect, radii: radii}
	size := func(r gfx.CornerRadius) image.Point {
		if r.IsZero() {
			return image.Point{}
		}
		return image.Pt(ceilInt(r.Horizontal), ceilInt(r.Vertical))
	}
	tl, tr, br, bl := size(radii.TopLeft), size(radii.TopRight), size(radii.BottomRight), size(radii.BottomLeft)
	c.corners = [4]clippedCorner{
		{area: image.Rectangle{Min: rect.Min, Max: rect.Min.Add(tl)}, packed: image.Point{}},
		{area: image.Rect(rect.Max.X-tr.X, rect.Min.Y, rect.Max.X, rect.Min.Y+tr.Y), packed: image.Pt(tl.X, 0)},
		{area: image.Rect(rect.Max.X-br.X, rect.Max.Y-br.Y, rect.Max.X, rect.Max.Y), packed: image.Pt(bl.X, max(tl.Y, tr.Y))},
		{area: image.Rect(rect.Min.X, rect.Max.Y-bl.Y, rect.Min.X+bl.X, rect.Max.Y), packed: image.Pt(0, max(tl.Y, tr.Y))},
	}
	w := max(tl.X+tr.X, bl.X+br.X)
	h := max(tl.Y, tr.Y) + max(bl.Y, br.Y)
	bitmap, err := ctx.allocateBitmap(w, h)
	if err != nil {
		return nil, fmt.Errorf("corner clipper %v: %w", rect, err)
	}
	c.bitmap = bitmap
	return c, nil
}

func ceilInt(f float64) int {
	i := int(f)
	if float64(i) < f {
		i++
	}
	return i
}

// SampleUnderCorners copies the pixels under the corners, keeping only
// what lies outside the rounded rect.
func (c *BorderRadiusCornerClipper) SampleUnderCorners(p gfx.Painter) {
	for _, corner := range c.corners {
		if corner.area.Empty() {
			continue
		}
		p.ReadPixels(corner.area, c.bitmap, corner.packed)
		for y := 0; y < corner.area.Dy(); y++ {
			for x := 0; x < corner.area.Dx(); x++ {
				coverage := gfx.RoundedRectCoverage(c.rect, c.radii, corner.area.Min.X+x, corner.area.Min.Y+y)
				gfx.ScaleAlpha(c.bitmap, corner.packed.X+x, corner.packed.Y+y, 1-coverage)
			}
		}
	}
	c.sampled = true
}

// BlitCornerClipping composites the samples back over the corners.
func (c *BorderRadiusCornerClipper) BlitCornerClipping(p gfx.Painter) {
	if !c.sampled {
		return
	}
	for _, corner := range c.corners {
		if corner.area.Empty() {
			continue
		}
		sample := c.bitmap.SubImage(image.Rectangle{Min: corner.packed, Max: corner.packed.Add(corner.area.Size())})
		p.BlitOver(sample, corner.area.Min)
	}
}
