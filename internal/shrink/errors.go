package shrink

import "errors"

// Errors returned by the pipeline. Each stage wraps one of these, so callers
// can identify the failing stage with errors.Is.
var (
	// ErrDecode reports a source buffer that is not a structurally valid PNG
	// stream (bad signature, truncated chunk, checksum mismatch, bad zlib data).
	ErrDecode = errors.New("decode error")

	// ErrUnsupportedFormat reports a valid stream whose bit depth is not 8 or
	// whose color type is indexed or grayscale with alpha.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrResample reports an internal geometry violation in the resampler.
	ErrResample = errors.New("resample error")

	// ErrEncode reports a sample buffer that does not match the geometry it is
	// being encoded with.
	ErrEncode = errors.New("encode error")

	// ErrInvalidBounds reports a bounding box (or source size) with a zero or
	// negative side.
	ErrInvalidBounds = errors.New("invalid bounds")
)
