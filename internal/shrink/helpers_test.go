package shrink

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeStd encodes img with the standard library encoder.
func encodeStd(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// rawPNG hand-assembles an unfiltered PNG stream, for color types and depths
// the standard encoder cannot produce.
func rawPNG(t *testing.T, width, height int, format PixelFormat, depth BitDepth, rows [][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString(pngSignature)

	var ihdr [ihdrLen]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = byte(depth)
	ihdr[9] = byte(format)
	writeChunk(&buf, "IHDR", ihdr[:])

	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	for _, row := range rows {
		_, err := zw.Write(append([]byte{ftNone}, row...))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	writeChunk(&buf, "IDAT", idat.Bytes())
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

// ihdrEnd is the offset just past the IHDR chunk's CRC.
const ihdrEnd = len(pngSignature) + 8 + ihdrLen + 4

// withChunk inserts an ancillary chunk directly after IHDR.
func withChunk(data []byte, name string, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Write(data[:ihdrEnd])
	writeChunk(&buf, name, payload)
	buf.Write(data[ihdrEnd:])
	return buf.Bytes()
}

// interlaced marks a rawPNG stream as Adam7 and fixes the IHDR CRC. The rows
// passed to rawPNG must already be laid out pass by pass.
func interlaced(data []byte) []byte {
	out := append([]byte(nil), data...)
	start := len(pngSignature) + 4
	out[start+4+12] = 1
	binary.BigEndian.PutUint32(out[ihdrEnd-4:], crc32.ChecksumIEEE(out[start:ihdrEnd-4]))
	return out
}

// gradientRGB returns an opaque image whose channels vary along both axes.
func gradientRGB(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x*7 + y*13) % 256),
				A: 255,
			})
		}
	}
	return img
}

// gradientGray returns a grayscale image with a diagonal ramp.
func gradientGray(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*11 + y*5) % 256)})
		}
	}
	return img
}

// translucentRGBA returns an NRGBA image that is not fully opaque, so the
// standard encoder writes it as truecolor with alpha.
func translucentRGBA(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 3),
				G: uint8(y * 5),
				B: 90,
				A: uint8(128 + (x+y)%128),
			})
		}
	}
	return img
}

// palette256 returns a palette large enough for an 8-bit indexed encoding.
func palette256() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(255 - i), 0, 255}
	}
	return p
}
