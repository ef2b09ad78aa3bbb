package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNotDataURI is returned for strings that are not base64 data: URIs.
var ErrNotDataURI = errors.New("not a base64 data URI")

// ImageFetcher retrieves the raw bytes of an image reference that is not a
// data URI.
type ImageFetcher func(uri string) ([]byte, error)

// ImageCache caches loaded images
type ImageCache struct {
	cache   map[string]image.Image
	fetcher ImageFetcher
	mu      sync.RWMutex
}

// NewImageCache creates a cache. A nil fetcher reads from the filesystem.
func NewImageCache(fetcher ImageFetcher) *ImageCache {
	return &ImageCache{cache: make(map[string]image.Image), fetcher: fetcher}
}

// Global image cache
var globalCache = NewImageCache(nil)

// SetImageFetcher replaces the fetcher of the global cache and drops its
// contents.
func SetImageFetcher(fetcher ImageFetcher) {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	globalCache.fetcher = fetcher
	globalCache.cache = make(map[string]image.Image)
}

// LoadImage loads an image through the global cache.
func LoadImage(uri string) (image.Image, error) {
	return globalCache.Load(uri)
}

// Load returns the decoded image for uri: a data: URI, a file: URL or a
// path handed to the fetcher.
func (c *ImageCache) Load(uri string) (image.Image, error) {
	// Check cache first
	c.mu.RLock()
	if img, ok := c.cache[uri]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	fetcher := c.fetcher
	c.mu.RUnlock()

	var img image.Image
	var err error
	if IsDataURI(uri) {
		img, err = LoadImageFromDataURI(uri)
	} else {
		img, err = fetchAndDecode(uri, fetcher)
	}
	if err != nil {
		return nil, err
	}

	// Cache the image
	c.mu.Lock()
	c.cache[uri] = img
	c.mu.Unlock()

	return img, nil
}

func fetchAndDecode(uri string, fetcher ImageFetcher) (image.Image, error) {
	var data []byte
	var err error
	if fetcher != nil {
		data, err = fetcher(uri)
	} else {
		path := uri
		if u, perr := url.Parse(uri); perr == nil && u.Scheme == "file" {
			path = u.Path
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load image %q: %w", uri, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", uri, err)
	}
	return img, nil
}

// IsDataURI reports whether s is a data: URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// LoadImageFromDataURI decodes a base64 data: URI.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, ErrNotDataURI
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("data URI payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	return img, nil
}

// GetImageDimensions returns the width and height of an image
func GetImageDimensions(uri string) (width, height int, err error) {
	img, err := LoadImage(uri)
	if err != nil {
		return 0, 0, err
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
