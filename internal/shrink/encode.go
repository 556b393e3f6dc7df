package shrink

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Scanline filter types.
const (
	ftNone = iota
	ftSub
	ftUp
	ftAverage
	ftPaeth
	nFilter
)

// idatChunkSize bounds the payload of each IDAT chunk.
const idatChunkSize = 1 << 15

// CompressionLevel selects how hard the encoder compresses image data.
type CompressionLevel int

const (
	DefaultCompression CompressionLevel = 0
	NoCompression      CompressionLevel = -1
	BestSpeed          CompressionLevel = -2
	BestCompression    CompressionLevel = -3
)

// ParseCompressionLevel maps "default", "none", "speed" and "best" to a
// CompressionLevel. The empty string is the default level.
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	switch s {
	case "", "default":
		return DefaultCompression, nil
	case "none":
		return NoCompression, nil
	case "speed":
		return BestSpeed, nil
	case "best":
		return BestCompression, nil
	}
	return DefaultCompression, fmt.Errorf("unknown compression level %q", s)
}

func (l CompressionLevel) zlibLevel() int {
	switch l {
	case NoCompression:
		return zlib.NoCompression
	case BestSpeed:
		return zlib.BestSpeed
	case BestCompression:
		return zlib.BestCompression
	}
	return zlib.DefaultCompression
}

// EncodeOptions tunes the encoder. The zero value uses default compression.
type EncodeOptions struct {
	Compression CompressionLevel
}

func (o *EncodeOptions) level() CompressionLevel {
	if o == nil {
		return DefaultCompression
	}
	return o.Compression
}

// Encode serializes samples as a PNG stream with the given size, color type
// and bit depth. The sample buffer must hold exactly one frame.
func Encode(width, height int, format PixelFormat, depth BitDepth, samples []byte) ([]byte, error) {
	return EncodeWithOptions(width, height, format, depth, samples, nil)
}

// EncodeWithOptions is Encode with explicit options. A nil opts is valid.
func EncodeWithOptions(width, height int, format PixelFormat, depth BitDepth, samples []byte, opts *EncodeOptions) ([]byte, error) {
	if !format.Supported() {
		return nil, fmt.Errorf("%w: cannot encode %s images", ErrUnsupportedFormat, format)
	}
	if depth != Depth8 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, depth)
	}
	r := Raster{Width: width, Height: height, Format: format, Depth: depth, Samples: samples}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	var buf bytes.Buffer
	buf.WriteString(pngSignature)

	var ihdr [ihdrLen]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = byte(depth)
	ihdr[9] = byte(format)
	// compression, filter and interlace methods are all 0
	writeChunk(&buf, "IHDR", ihdr[:])

	if err := writeIDATs(&buf, &r, opts.level()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes(), nil
}

func writeChunk(w *bytes.Buffer, name string, data []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], name)
	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(data)

	w.Write(header[:])
	w.Write(data)
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())
	w.Write(footer[:])
}

// chunkWriter turns every Write into one IDAT chunk.
type chunkWriter struct {
	buf *bytes.Buffer
}

func (c chunkWriter) Write(p []byte) (int, error) {
	writeChunk(c.buf, "IDAT", p)
	return len(p), nil
}

func writeIDATs(out *bytes.Buffer, r *Raster, level CompressionLevel) error {
	bw := bufio.NewWriterSize(chunkWriter{buf: out}, idatChunkSize)
	zw, err := zlib.NewWriterLevel(bw, level.zlibLevel())
	if err != nil {
		return err
	}
	if err := writeScanlines(zw, r, level); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

// writeScanlines filters every row and streams it to w. Uncompressed output
// skips filtering; otherwise each row uses the filter with the smallest sum
// of absolute differences.
func writeScanlines(w io.Writer, r *Raster, level CompressionLevel) error {
	bpp := r.Format.SamplesPerPixel()
	stride := r.Stride()
	prev := make([]byte, stride)
	var cand [nFilter][]byte
	for i := range cand {
		cand[i] = make([]byte, stride+1)
		cand[i][0] = byte(i)
	}

	for y := 0; y < r.Height; y++ {
		cur := r.Samples[y*stride : (y+1)*stride]
		f := ftNone
		copy(cand[ftNone][1:], cur)
		if level != NoCompression {
			f = chooseFilter(&cand, cur, prev, bpp)
		}
		if _, err := w.Write(cand[f]); err != nil {
			return err
		}
		prev = cur
	}
	return nil
}

func chooseFilter(cand *[nFilter][]byte, cur, prev []byte, bpp int) int {
	n := len(cur)
	sub, up, avg, paeth := cand[ftSub][1:], cand[ftUp][1:], cand[ftAverage][1:], cand[ftPaeth][1:]
	for i := 0; i < n; i++ {
		var left, upLeft byte
		if i >= bpp {
			left = cur[i-bpp]
			upLeft = prev[i-bpp]
		}
		above := prev[i]
		sub[i] = cur[i] - left
		up[i] = cur[i] - above
		avg[i] = cur[i] - byte((int(left)+int(above))/2)
		paeth[i] = cur[i] - paethPredictor(left, above, upLeft)
	}

	best, bestSum := ftNone, absSum(cand[ftNone][1:])
	for f := ftSub; f < nFilter; f++ {
		if s := absSum(cand[f][1:]); s < bestSum {
			best, bestSum = f, s
		}
	}
	return best
}

// absSum treats each byte as a signed difference.
func absSum(b []byte) int {
	sum := 0
	for _, v := range b {
		if v < 128 {
			sum += int(v)
		} else {
			sum += 256 - int(v)
		}
	}
	return sum
}

func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
