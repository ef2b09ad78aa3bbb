package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // max colour channel difference found
}

// DifferentPercent is the share of differing pixels, 0-100.
func (r *CompareResult) DifferentPercent() float64 {
	if r.TotalPixels == 0 {
		return 0
	}
	return float64(r.DifferentPixels) / float64(r.TotalPixels) * 100
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance is the maximum difference per colour channel (0-255).
	// Anti-aliased edges of rounded corners and text need 2-5.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within the radius.
	FuzzyRadius int

	// MaxDifferentPercent passes a comparison whose share of differing
	// pixels stays at or below it.
	MaxDifferentPercent float64

	// SaveDiffImage writes a diff image to DiffImagePath on mismatch:
	// differences in red over a grey copy of the actual image.
	SaveDiffImage bool
	DiffImagePath string
}

// DefaultOptions returns the options used for scene reftests.
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// CompareImages compares two PNG files pixel by pixel.
func CompareImages(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("actual image: %w", err)
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("expected image: %w", err)
	}
	return Compare(actual, expected, opts)
}

// Compare compares two images pixel by pixel. Images of different bounds
// never match and report an error.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}
	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
	}
	var diffImg *image.RGBA
	if opts.SaveDiffImage {
		diffImg = image.NewRGBA(bounds)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := actual.At(x, y)
			diff := channelDiff(a, expected.At(x, y))
			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}
			if diff > opts.Tolerance &&
				!(opts.FuzzyRadius > 0 && fuzzyMatch(a, expected, x, y, opts.FuzzyRadius, opts.Tolerance)) {
				result.Match = false
				result.DifferentPixels++
				if diffImg != nil {
					diffImg.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
				continue
			}
			if diffImg != nil {
				diffImg.Set(x, y, color.GrayModel.Convert(a))
			}
		}
	}
	if !result.Match && opts.MaxDifferentPercent > 0 && result.DifferentPercent() <= opts.MaxDifferentPercent {
		result.Match = true
	}
	if diffImg != nil && !result.Match && opts.DiffImagePath != "" {
		if err := savePNG(diffImg, opts.DiffImagePath); err != nil {
			return result, fmt.Errorf("save diff image: %w", err)
		}
	}
	return result, nil
}

// channelDiff is the largest 8-bit channel difference of two colours.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absInt(int(ar>>8)-int(br>>8)),
		absInt(int(ag>>8)-int(bg>>8)),
		absInt(int(ab>>8)-int(bb>>8)),
		absInt(int(aa>>8)-int(ba>>8)),
	)
}

// fuzzyMatch checks if the actual colour a matches any expected pixel
// within radius of (x, y).
func fuzzyMatch(a color.Color, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(a, expected.At(p.X, p.Y)) <= tolerance {
				return true
			}
		}
	}
	return false
}

func loadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func savePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
