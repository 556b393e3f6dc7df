package shrink

import (
	"fmt"
	"math"
)

// Plan returns the size an image of srcWidth x srcHeight takes when shrunk to
// fit inside maxWidth x maxHeight with its aspect ratio kept.
//
// The scale factor is min(maxWidth/srcWidth, maxHeight/srcHeight). A factor of
// 1 or more leaves the source size unchanged; images are never enlarged.
// Otherwise each side is scaled and rounded up independently, so no side
// collapses to zero and a side may exceed its bound by less than one pixel.
//
// Zero or negative arguments are rejected with ErrInvalidBounds.
func Plan(srcWidth, srcHeight, maxWidth, maxHeight int) (Dimensions, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return Dimensions{}, fmt.Errorf("%w: source size %dx%d", ErrInvalidBounds, srcWidth, srcHeight)
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return Dimensions{}, fmt.Errorf("%w: bounding box %dx%d", ErrInvalidBounds, maxWidth, maxHeight)
	}

	factor := math.Min(
		float64(maxWidth)/float64(srcWidth),
		float64(maxHeight)/float64(srcHeight),
	)
	if factor >= 1 {
		return Dimensions{Width: srcWidth, Height: srcHeight}, nil
	}
	return Dimensions{
		Width:  scaleSide(srcWidth, factor),
		Height: scaleSide(srcHeight, factor),
	}, nil
}

func scaleSide(n int, factor float64) int {
	v := int(math.Ceil(float64(n) * factor))
	if v > n {
		v = n
	}
	if v < 1 {
		v = 1
	}
	return v
}
