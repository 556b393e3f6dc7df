package shrink

import "fmt"

// PixelFormat is the channel layout of a PNG image. The values match the
// color type byte stored in the IHDR chunk.
type PixelFormat uint8

const (
	Grayscale      PixelFormat = 0
	RGB            PixelFormat = 2
	Indexed        PixelFormat = 3
	GrayscaleAlpha PixelFormat = 4
	RGBA           PixelFormat = 6
)

// SamplesPerPixel returns the number of samples one pixel occupies in a
// decoded buffer, or 0 for an unknown color type.
func (f PixelFormat) SamplesPerPixel() int {
	switch f {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

// Supported reports whether the resampler and encoder handle f.
func (f PixelFormat) Supported() bool {
	return f == Grayscale || f == RGB || f == RGBA
}

func (f PixelFormat) valid() bool {
	return f.SamplesPerPixel() != 0
}

func (f PixelFormat) String() string {
	switch f {
	case Grayscale:
		return "grayscale"
	case RGB:
		return "rgb"
	case Indexed:
		return "indexed"
	case GrayscaleAlpha:
		return "grayscale-alpha"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// MarshalText encodes f by name.
func (f PixelFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses one of the names produced by String.
func (f *PixelFormat) UnmarshalText(text []byte) error {
	for _, c := range []PixelFormat{Grayscale, RGB, Indexed, GrayscaleAlpha, RGBA} {
		if string(text) == c.String() {
			*f = c
			return nil
		}
	}
	return fmt.Errorf("unknown pixel format %q", text)
}

// BitDepth is the number of bits per sample.
type BitDepth uint8

// Depth8 is the only bit depth this package reads or writes.
const Depth8 BitDepth = 8

// Raster is a fully decoded, non-interlaced frame. Samples are stored row by
// row with no padding between rows.
type Raster struct {
	Width   int
	Height  int
	Format  PixelFormat
	Depth   BitDepth
	Samples []byte
}

// Stride returns the number of samples in one row.
func (r *Raster) Stride() int {
	return r.Width * r.Format.SamplesPerPixel()
}

// Validate checks that the sample buffer holds exactly one frame.
func (r *Raster) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("non-positive size %dx%d", r.Width, r.Height)
	}
	if !r.Format.valid() {
		return fmt.Errorf("unknown pixel format %d", uint8(r.Format))
	}
	if want := r.Stride() * r.Height; len(r.Samples) != want {
		return fmt.Errorf("sample buffer holds %d samples, want %d", len(r.Samples), want)
	}
	return nil
}

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
