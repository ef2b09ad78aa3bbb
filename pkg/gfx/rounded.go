package gfx

import "image"

// insideRoundedRect reports whether the point (x, y) lies inside r with its
// corners cut by the elliptical radii.
func insideRoundedRect(r image.Rectangle, radii CornerRadii, x, y float64) bool {
	x0, y0, x1, y1 := float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)
	if x < x0 || x >= x1 || y < y0 || y >= y1 {
		return false
	}
	inEllipse := func(cx, cy float64, c CornerRadius) bool {
		dx := (x - cx) / c.Horizontal
		dy := (y - cy) / c.Vertical
		return dx*dx+dy*dy <= 1
	}
	if c := radii.TopLeft; !c.IsZero() && x < x0+c.Horizontal && y < y0+c.Vertical {
		return inEllipse(x0+c.Horizontal, y0+c.Vertical, c)
	}
	if c := radii.TopRight; !c.IsZero() && x > x1-c.Horizontal && y < y0+c.Vertical {
		return inEllipse(x1-c.Horizontal, y0+c.Vertical, c)
	}
	if c := radii.BottomRight; !c.IsZero() && x > x1-c.Horizontal && y > y1-c.Vertical {
		return inEllipse(x1-c.Horizontal, y1-c.Vertical, c)
	}
	if c := radii.BottomLeft; !c.IsZero() && x < x0+c.Horizontal && y > y1-c.Vertical {
		return inEllipse(x0+c.Horizontal, y1-c.Vertical, c)
	}
	return true
}

const coverageSamples = 4

// RoundedRectCoverage returns the fraction of pixel (px, py) covered by the
// rounded rectangle, estimated with 4×4 supersampling.
func RoundedRectCoverage(r image.Rectangle, radii CornerRadii, px, py int) float64 {
	hits := 0
	for sy := 0; sy < coverageSamples; sy++ {
		for sx := 0; sx < coverageSamples; sx++ {
			x := float64(px) + (float64(sx)+0.5)/coverageSamples
			y := float64(py) + (float64(sy)+0.5)/coverageSamples
			if insideRoundedRect(r, radii, x, y) {
				hits++
			}
		}
	}
	return float64(hits) / (coverageSamples * coverageSamples)
}

// ScaleAlpha multiplies the premultiplied pixel at (x, y) by f.
func ScaleAlpha(im *image.RGBA, x, y int, f float64) {
	if f >= 1 || !(image.Point{x, y}).In(im.Rect) {
		return
	}
	i := im.PixOffset(x, y)
	for k := 0; k < 4; k++ {
		im.Pix[i+k] = uint8(float64(im.Pix[i+k])*f + 0.5)
	}
}

// ClearRoundedRect erases the pixels of im covered by the rounded rectangle
// r, anti-aliasing its edges. r is given in im's coordinate space.
func ClearRoundedRect(im *image.RGBA, r image.Rectangle, radii CornerRadii) {
	area := r.Intersect(im.Rect)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			ScaleAlpha(im, x, y, 1-RoundedRectCoverage(r, radii, x, y))
		}
	}
}
