package text

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/fogleman/gg"
	"github.com/npillmayer/schuko/tracing"

	"l14paint/pkg/gfx"
)

// tracer traces with key 'l14paint.text'.
func tracer() tracing.Trace {
	return tracing.Select("l14paint.text")
}

// FontConfig holds paths to font files used for text painting and metrics.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
	Monospace  string
	MonoBold   string
	Ahem       string // test font where all glyphs are 1em x 1em squares
}

// defaultFontsDir returns the fonts directory next to the executable or,
// failing that, relative to this source file.
func defaultFontsDir() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "..", "fonts")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "fonts")
}

// DefaultFontConfig returns a FontConfig using the bundled Atkinson Hyperlegible fonts.
func DefaultFontConfig() FontConfig {
	return FontConfigIn(defaultFontsDir())
}

// FontConfigIn returns the Atkinson Hyperlegible font set located in dir.
func FontConfigIn(dir string) FontConfig {
	return FontConfig{
		Regular:    filepath.Join(dir, "AtkinsonHyperlegible-Regular.ttf"),
		Bold:       filepath.Join(dir, "AtkinsonHyperlegible-Bold.ttf"),
		Italic:     filepath.Join(dir, "AtkinsonHyperlegible-Italic.ttf"),
		BoldItalic: filepath.Join(dir, "AtkinsonHyperlegible-BoldItalic.ttf"),
		Monospace:  filepath.Join(dir, "AtkinsonHyperlegibleMono-Regular.otf"),
		MonoBold:   filepath.Join(dir, "AtkinsonHyperlegibleMono-Bold.otf"),
		Ahem:       filepath.Join(dir, "Ahem.ttf"),
	}
}

// FontPath returns the font path for the given style combination.
func (fc FontConfig) FontPath(bold, italic, mono, ahem bool) string {
	// Ahem takes precedence over all other fonts
	if ahem && fc.Ahem != "" {
		return fc.Ahem
	}
	if mono {
		if bold && fc.MonoBold != "" {
			return fc.MonoBold
		}
		if fc.Monospace != "" {
			return fc.Monospace
		}
		// fall through to proportional if no mono font configured
	}
	if bold && italic && fc.BoldItalic != "" {
		return fc.BoldItalic
	}
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	if italic && fc.Italic != "" {
		return fc.Italic
	}
	return fc.Regular
}

// LoadFont loads a TrueType font file at the given pixel size.
func LoadFont(path string, size float64) (*gfx.FaceFont, error) {
	face, err := gg.LoadFontFace(path, size)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	return gfx.NewFaceFont(face, size), nil
}

// Fonts hands out fonts of one FontConfig, loading each file and size once.
// Fonts that cannot be loaded are replaced by the built-in bitmap font.
type Fonts struct {
	config FontConfig
	mu     sync.Mutex
	faces  map[fontKey]gfx.Font
}

type fontKey struct {
	path string
	size float64
}

// NewFonts creates a font cache for config.
func NewFonts(config FontConfig) *Fonts {
	return &Fonts{config: config, faces: make(map[fontKey]gfx.Font)}
}

// Font returns the font for a style combination and size. It never fails.
func (f *Fonts) Font(bold, italic, mono, ahem bool, size float64) gfx.Font {
	key := fontKey{path: f.config.FontPath(bold, italic, mono, ahem), size: size}
	f.mu.Lock()
	defer f.mu.Unlock()
	if font, ok := f.faces[key]; ok {
		return font
	}
	var font gfx.Font
	if key.path == "" {
		font = gfx.DefaultFont()
	} else if loaded, err := LoadFont(key.path, size); err != nil {
		tracer().Infof("%v, using the built-in font", err)
		font = gfx.DefaultFont()
	} else {
		font = loaded
	}
	f.faces[key] = font
	return font
}
