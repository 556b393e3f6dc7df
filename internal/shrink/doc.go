// Package shrink resizes PNG images to fit a bounding box.
//
// The pipeline runs four stages in order, each a plain function that can also
// be called on its own:
//
//   - Decode parses a PNG stream into a Raster of 8-bit samples.
//   - Plan computes the target size (shrink only, aspect ratio kept).
//   - Resample filters the samples down with a separable triangle kernel.
//   - Encode writes the samples back as PNG with the source color type.
//
// Transform chains them for the common case:
//
//	out, err := shrink.Transform(data, 640, 480)
//	if errors.Is(err, shrink.ErrUnsupportedFormat) {
//	    // 16-bit, indexed or gray+alpha source
//	}
//
// # Supported Input
//
// Grayscale, RGB and RGBA images with 8 bits per sample. Indexed and
// grayscale-with-alpha images decode but are rejected with
// ErrUnsupportedFormat when resampled. Any other bit depth is rejected as soon
// as the header is read.
//
// # Errors
//
// Every failure wraps one of ErrDecode, ErrUnsupportedFormat, ErrResample,
// ErrEncode or ErrInvalidBounds. A zero or negative bounding box is rejected
// with ErrInvalidBounds rather than clamped.
//
// # Thread Safety
//
// All functions are stateless and safe to call from multiple goroutines.
package shrink
