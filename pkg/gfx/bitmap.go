package gfx

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrEmptyBitmap    = errors.New("bitmap has no pixels")
	ErrBitmapTooLarge = errors.New("bitmap exceeds allocation limit")
)

// MaxBitmapPixels bounds scratch bitmaps allocated while painting.
const MaxBitmapPixels = 16 << 20

// AllocateBitmap allocates a transparent scratch bitmap of w×h pixels,
// refusing empty sizes and anything above limit pixels.
func AllocateBitmap(w, h, limit int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("allocate %dx%d: %w", w, h, ErrEmptyBitmap)
	}
	if limit > 0 && w*h > limit {
		return nil, fmt.Errorf("allocate %dx%d: %w", w, h, ErrBitmapTooLarge)
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}
