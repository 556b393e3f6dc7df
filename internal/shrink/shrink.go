package shrink

import "fmt"

// Options configures Shrink. A nil *Options is valid and uses the defaults.
type Options struct {
	Compression CompressionLevel
}

// Result describes one completed shrink.
type Result struct {
	Source Dimensions  `json:"source"`
	Target Dimensions  `json:"target"`
	Format PixelFormat `json:"color_format"`
	Depth  BitDepth    `json:"bit_depth"`
	Data   []byte      `json:"-"`
}

// Transform shrinks a PNG image to fit inside maxWidth x maxHeight, keeping
// its aspect ratio, and returns it re-encoded as PNG with the same color type
// and bit depth. Images that already fit keep their size and pixel data.
func Transform(src []byte, maxWidth, maxHeight int) ([]byte, error) {
	res, err := Shrink(src, maxWidth, maxHeight, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Shrink is Transform with options, also reporting the geometry involved.
// The first failing stage's error is returned unchanged.
func Shrink(src []byte, maxWidth, maxHeight int, opts *Options) (*Result, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("%w: bounding box %dx%d", ErrInvalidBounds, maxWidth, maxHeight)
	}

	raster, err := Decode(src)
	if err != nil {
		return nil, err
	}
	target, err := Plan(raster.Width, raster.Height, maxWidth, maxHeight)
	if err != nil {
		return nil, err
	}
	samples, err := Resample(raster, target)
	if err != nil {
		return nil, err
	}

	var encOpts EncodeOptions
	if opts != nil {
		encOpts.Compression = opts.Compression
	}
	data, err := EncodeWithOptions(target.Width, target.Height, raster.Format, raster.Depth, samples, &encOpts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Source: Dimensions{Width: raster.Width, Height: raster.Height},
		Target: target,
		Format: raster.Format,
		Depth:  raster.Depth,
		Data:   data,
	}, nil
}
