package shrink

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"net/http"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

// ihdrLen is the fixed length of the IHDR chunk data.
const ihdrLen = 13

// Header is the image metadata carried by the IHDR chunk.
type Header struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Depth      BitDepth    `json:"bit_depth"`
	Format     PixelFormat `json:"color_format"`
	Interlaced bool        `json:"interlaced"`
}

// Inspect parses the signature and IHDR chunk of a PNG stream without
// touching any pixel data. Structural problems are reported as ErrDecode; the
// bit depth and color type are returned as found, not validated.
func Inspect(data []byte) (*Header, error) {
	if len(data) < len(pngSignature) || string(data[:len(pngSignature)]) != pngSignature {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrDecode)
	}
	chunk := data[len(pngSignature):]
	// length(4) type(4) data(13) crc(4)
	if len(chunk) < 8+ihdrLen+4 {
		return nil, fmt.Errorf("%w: truncated IHDR chunk", ErrDecode)
	}
	if n := binary.BigEndian.Uint32(chunk[:4]); n != ihdrLen {
		return nil, fmt.Errorf("%w: IHDR length %d, want %d", ErrDecode, n, ihdrLen)
	}
	if !bytes.Equal(chunk[4:8], []byte("IHDR")) {
		return nil, fmt.Errorf("%w: first chunk is %q, want IHDR", ErrDecode, chunk[4:8])
	}
	body := chunk[8 : 8+ihdrLen]
	want := binary.BigEndian.Uint32(chunk[8+ihdrLen:])
	if got := crc32.ChecksumIEEE(chunk[4 : 8+ihdrLen]); got != want {
		return nil, fmt.Errorf("%w: IHDR checksum mismatch", ErrDecode)
	}

	w := binary.BigEndian.Uint32(body[0:4])
	h := binary.BigEndian.Uint32(body[4:8])
	if w == 0 || h == 0 || w > 1<<31-1 || h > 1<<31-1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrDecode, w, h)
	}
	format := PixelFormat(body[9])
	if !format.valid() {
		return nil, fmt.Errorf("%w: invalid color type %d", ErrDecode, body[9])
	}
	if body[10] != 0 || body[11] != 0 {
		return nil, fmt.Errorf("%w: unknown compression or filter method", ErrDecode)
	}
	if body[12] > 1 {
		return nil, fmt.Errorf("%w: unknown interlace method %d", ErrDecode, body[12])
	}

	return &Header{
		Width:      int(w),
		Height:     int(h),
		Depth:      BitDepth(body[8]),
		Format:     format,
		Interlaced: body[12] == 1,
	}, nil
}

// DetectMIME returns the sniffed MIME type of data, e.g. "image/png".
func DetectMIME(data []byte) string {
	return http.DetectContentType(data)
}
