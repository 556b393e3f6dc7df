package shrink

import (
	"fmt"
	"math"
)

// contrib is one source sample's share of a destination sample.
type contrib struct {
	src    int
	weight float32
}

// triangle is the tent kernel with a radius of one.
func triangle(x float64) float64 {
	if x < 0 {
		x = -x
	}
	if x < 1 {
		return 1 - x
	}
	return 0
}

// contributions builds, for each of dstN output positions, the normalized
// list of source positions that feed it when srcN samples shrink to dstN.
// The kernel is widened by the reduction factor so every source sample is
// covered. Taps falling outside the source are dropped and the remaining
// weights renormalized.
func contributions(srcN, dstN int) [][]contrib {
	scale := float64(srcN) / float64(dstN)
	if scale < 1 {
		scale = 1
	}
	radius := scale // triangle support is 1
	out := make([][]contrib, dstN)
	for d := 0; d < dstN; d++ {
		center := (float64(d)+0.5)*float64(srcN)/float64(dstN) - 0.5
		first := int(math.Ceil(center - radius))
		if first < 0 {
			first = 0
		}
		last := int(math.Floor(center + radius))
		if last > srcN-1 {
			last = srcN - 1
		}

		var sum float64
		list := make([]contrib, 0, last-first+1)
		for s := first; s <= last; s++ {
			w := triangle((float64(s) - center) / scale)
			if w == 0 {
				continue
			}
			sum += w
			list = append(list, contrib{src: s, weight: float32(w)})
		}
		if len(list) == 0 {
			// Only reachable through rounding at the very edge; fall back to
			// the nearest sample so every output is written.
			nearest := int(math.Round(center))
			if nearest < 0 {
				nearest = 0
			}
			if nearest > srcN-1 {
				nearest = srcN - 1
			}
			list = append(list, contrib{src: nearest, weight: 1})
			sum = 1
		}
		for i := range list {
			list[i].weight = float32(float64(list[i].weight) / sum)
		}
		out[d] = list
	}
	return out
}

// Resample shrinks src to target with a separable triangle filter and returns
// the new sample buffer, laid out like src.Samples.
//
// Every channel is filtered independently with the same spatial weights; no
// alpha premultiplication is applied. A side whose length does not change is
// copied through unfiltered, so resampling to the source size reproduces the
// input exactly.
//
// Indexed and grayscale-with-alpha rasters are rejected with
// ErrUnsupportedFormat before any work is done. A malformed raster, or a
// target that is empty or larger than the source, is an ErrResample.
func Resample(src *Raster, target Dimensions) ([]byte, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResample, err)
	}
	switch src.Format {
	case Grayscale, RGB, RGBA:
	case Indexed, GrayscaleAlpha:
		return nil, fmt.Errorf("%w: cannot resample %s images", ErrUnsupportedFormat, src.Format)
	default:
		return nil, fmt.Errorf("%w: unknown pixel format %d", ErrUnsupportedFormat, uint8(src.Format))
	}
	if src.Depth != Depth8 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, src.Depth)
	}
	if target.Width <= 0 || target.Height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", ErrResample, target.Width, target.Height)
	}
	if target.Width > src.Width || target.Height > src.Height {
		return nil, fmt.Errorf("%w: target %dx%d exceeds source %dx%d",
			ErrResample, target.Width, target.Height, src.Width, src.Height)
	}

	channels := src.Format.SamplesPerPixel()
	if target.Width == src.Width && target.Height == src.Height {
		out := make([]byte, len(src.Samples))
		copy(out, src.Samples)
		return out, nil
	}

	// Horizontal pass into a float buffer of target.Width x src.Height.
	tmp := resizeRows(src.Samples, src.Width, src.Height, target.Width, channels)

	// Vertical pass into the final byte buffer.
	out := make([]byte, target.Width*target.Height*channels)
	stride := target.Width * channels
	if target.Height == src.Height {
		for i, v := range tmp {
			out[i] = clampSample(v)
		}
		return out, nil
	}
	weights := contributions(src.Height, target.Height)
	acc := make([]float32, stride)
	for y, list := range weights {
		for i := range acc {
			acc[i] = 0
		}
		for _, c := range list {
			row := tmp[c.src*stride : (c.src+1)*stride]
			for i, v := range row {
				acc[i] += v * c.weight
			}
		}
		dst := out[y*stride : (y+1)*stride]
		for i, v := range acc {
			dst[i] = clampSample(v)
		}
	}
	return out, nil
}

// resizeRows filters each row of an 8-bit buffer from srcW to dstW pixels.
// Rows are independent; the result has height rows of dstW*channels values.
func resizeRows(samples []byte, srcW, height, dstW, channels int) []float32 {
	srcStride := srcW * channels
	dstStride := dstW * channels
	tmp := make([]float32, dstStride*height)

	if dstW == srcW {
		for i, v := range samples {
			tmp[i] = float32(v)
		}
		return tmp
	}

	weights := contributions(srcW, dstW)
	for y := 0; y < height; y++ {
		row := samples[y*srcStride : (y+1)*srcStride]
		dst := tmp[y*dstStride : (y+1)*dstStride]
		for x, list := range weights {
			for ch := 0; ch < channels; ch++ {
				var v float32
				for _, c := range list {
					v += float32(row[c.src*channels+ch]) * c.weight
				}
				dst[x*channels+ch] = v
			}
		}
	}
	return tmp
}

// clampSample rounds v half up and clamps it to the 8-bit range.
func clampSample(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
