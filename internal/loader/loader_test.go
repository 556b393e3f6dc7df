package loader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestNewCache(t *testing.T) {
	cache := NewCache()
	if cache == nil {
		t.Fatal("NewCache returned nil")
	}
	if cache.files == nil {
		t.Fatal("NewCache did not initialize files map")
	}
}

func TestCache_Load(t *testing.T) {
	cache := NewCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	data1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data1) == 0 {
		t.Fatal("Load returned no data")
	}

	// Remove the file; the second load must come from the cache
	os.Remove(imgPath)

	data2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if &data1[0] != &data2[0] {
		t.Error("second Load did not return cached data")
	}
}

func TestCache_Load_NonExistent(t *testing.T) {
	cache := NewCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	if n := cache.Len(); n != 0 {
		t.Errorf("Clear did not empty cache: %d files remain", n)
	}
}

func TestCache_Evict(t *testing.T) {
	cache := NewCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)

	cache.mu.RLock()
	_, exists := cache.files[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove file from cache")
	}

	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)

	var wg sync.WaitGroup
	errors := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errors <- err
			}
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})
	defer os.Remove(imgPath)

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.ColorFormat.String() != "rgb" {
		t.Errorf("ColorFormat: got %s, want rgb", info.ColorFormat)
	}
	if info.BitDepth != 8 {
		t.Errorf("BitDepth: got %d, want 8", info.BitDepth)
	}
	if info.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", info.MimeType)
	}
	if !info.Supported {
		t.Error("Supported should be true for an 8-bit RGB image")
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_SixteenBitUnsupported(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test-gray16-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	png.Encode(tmpFile, image.NewGray16(image.Rect(0, 0, 4, 4)))
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	info, err := LoadImageInfo(NewCache(), tmpFile.Name())
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.BitDepth != 16 {
		t.Errorf("BitDepth: got %d, want 16", info.BitDepth)
	}
	if info.Supported {
		t.Error("Supported should be false for a 16-bit image")
	}
}

func TestLoadImageInfo_NotPNG(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = LoadImageInfo(NewCache(), tmpFile.Name())
	if err == nil {
		t.Error("LoadImageInfo should fail for invalid image data")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	_, err := LoadImageInfo(NewCache(), "/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}
