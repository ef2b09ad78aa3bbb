package gfx

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// BlurRGBA blurs im in place with a Gaussian whose standard deviation is
// half the CSS blur radius. imaging works on straight alpha; the result is
// premultiplied again when drawn back.
func BlurRGBA(im *image.RGBA, radius float64) {
	sigma := radius / 2
	if sigma <= 0 || im.Rect.Empty() {
		return
	}
	blurred := imaging.Blur(im, sigma)
	draw.Draw(im, im.Rect, blurred, image.Point{}, draw.Src)
}
