package loader

import (
	"fmt"
	"os"
	"sync"

	"github.com/ironsheep/shrink-png/internal/shrink"
)

// Cache provides thread-safe caching of source file contents to avoid
// redundant disk reads.
//
// Entries are keyed by the exact path string passed to Load. Different paths to
// the same file (e.g., relative vs absolute) result in separate entries.
//
// # Memory Management
//
// Cached files remain in memory until explicitly removed via Evict() or Clear().
// A file that changes on disk keeps serving the old bytes until evicted.
type Cache struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewCache creates and initializes a new empty cache.
func NewCache() *Cache {
	return &Cache{
		files: make(map[string][]byte),
	}
}

// Load returns the contents of path, reading it from disk on first use.
//
// The returned slice is shared with the cache and must not be modified.
func (c *Cache) Load(path string) ([]byte, error) {
	c.mu.RLock()
	if data, ok := c.files[path]; ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	c.mu.Lock()
	c.files[path] = data
	c.mu.Unlock()

	return data, nil
}

// Clear removes all files from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.files = make(map[string][]byte)
	c.mu.Unlock()
}

// Evict removes a specific file from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.files, path)
	c.mu.Unlock()
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// ImageInfo contains metadata about a PNG file, read from its header only.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// ColorFormat is the PNG color type: "grayscale", "rgb", "indexed",
	// "grayscale-alpha" or "rgba".
	ColorFormat shrink.PixelFormat `json:"color_format"`

	// BitDepth is the number of bits per sample.
	BitDepth int `json:"bit_depth"`

	// Interlaced reports Adam7 interlacing.
	Interlaced bool `json:"interlaced"`

	// MimeType is the sniffed content type of the file, e.g. "image/png".
	MimeType string `json:"mime_type"`

	// Supported reports whether the file can be shrunk.
	Supported bool `json:"supported"`

	// FileSizeBytes is the size of the file in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads a file through cache and describes it.
//
// Parameters:
//   - cache: The cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Header metadata of the image.
//   - error: Non-nil if the file cannot be read or is not a valid PNG stream.
func LoadImageInfo(cache *Cache, path string) (*ImageInfo, error) {
	data, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	hdr, err := shrink.Inspect(data)
	if err != nil {
		return nil, err
	}

	return &ImageInfo{
		Width:         hdr.Width,
		Height:        hdr.Height,
		ColorFormat:   hdr.Format,
		BitDepth:      int(hdr.Depth),
		Interlaced:    hdr.Interlaced,
		MimeType:      shrink.DetectMIME(data),
		Supported:     hdr.Depth == shrink.Depth8 && hdr.Format.Supported(),
		FileSizeBytes: int64(len(data)),
	}, nil
}
