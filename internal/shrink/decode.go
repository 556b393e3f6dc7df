package shrink

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // Register PNG format decoder

	"github.com/disintegration/imaging"
)

// MaxPixels bounds the pixel count Decode accepts. The decoder allocates up to
// four bytes per pixel from the IHDR size alone, so larger claims are refused
// before any pixel data is read.
const MaxPixels = 1 << 26

// Decode parses a PNG stream into a Raster holding one full frame.
//
// The IHDR chunk is checked first and any bit depth other than 8 is rejected
// with ErrUnsupportedFormat before pixel data is read. All five color types
// decode; indexed images yield palette indices and grayscale with alpha yields
// two samples per pixel. Transparency chunks are not carried into the raster.
func Decode(data []byte) (*Raster, error) {
	hdr, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	if hdr.Depth != Depth8 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, hdr.Depth)
	}
	if int64(hdr.Width)*int64(hdr.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, hdr.Width, hdr.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Dx() != hdr.Width || b.Dy() != hdr.Height {
		return nil, fmt.Errorf("%w: decoded %dx%d, header says %dx%d",
			ErrDecode, b.Dx(), b.Dy(), hdr.Width, hdr.Height)
	}

	r := &Raster{
		Width:  hdr.Width,
		Height: hdr.Height,
		Format: hdr.Format,
		Depth:  hdr.Depth,
	}
	r.Samples = make([]byte, r.Stride()*r.Height)
	if err := flatten(img, r); err != nil {
		return nil, err
	}
	return r, nil
}

// flatten copies the decoded pixels into r.Samples using the layout of
// r.Format. The concrete image type depends on the color type and on whether
// the stream carried a tRNS chunk.
func flatten(img image.Image, r *Raster) error {
	spp := r.Format.SamplesPerPixel()
	switch src := img.(type) {
	case *image.Gray:
		if r.Format != Grayscale {
			break
		}
		for y := 0; y < r.Height; y++ {
			copy(r.Samples[y*r.Stride():(y+1)*r.Stride()], src.Pix[y*src.Stride:])
		}
		return nil

	case *image.Paletted:
		if r.Format != Indexed {
			break
		}
		for y := 0; y < r.Height; y++ {
			copy(r.Samples[y*r.Stride():(y+1)*r.Stride()], src.Pix[y*src.Stride:])
		}
		return nil

	case *image.RGBA:
		if r.Format != RGB {
			break
		}
		pickChannels(r, src.Pix, src.Stride, []int{0, 1, 2})
		return nil

	case *image.NRGBA:
		var channels []int
		switch r.Format {
		case Grayscale:
			channels = []int{0}
		case GrayscaleAlpha:
			channels = []int{0, 3}
		case RGB:
			channels = []int{0, 1, 2}
		case RGBA:
			channels = []int{0, 1, 2, 3}
		}
		if len(channels) != spp {
			break
		}
		pickChannels(r, src.Pix, src.Stride, channels)
		return nil
	}
	return fmt.Errorf("%w: %s image decoded as %T", ErrDecode, r.Format, img)
}

// pickChannels copies the listed channels of a 4-byte-per-pixel buffer into r.
func pickChannels(r *Raster, pix []byte, stride int, channels []int) {
	i := 0
	for y := 0; y < r.Height; y++ {
		row := pix[y*stride:]
		for x := 0; x < r.Width; x++ {
			for _, c := range channels {
				r.Samples[i] = row[x*4+c]
				i++
			}
		}
	}
}
