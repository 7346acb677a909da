package anvil

import "errors"

// Sentinel errors surfaced synchronously to callers. Geometric shortfalls
// (fully-outside-buffer rectangles, out-of-range tile indices, mask
// clipping) are silent no-ops by design and never produce one of these.
var (
	// ErrOutOfBounds is returned by the coordinate-strict pixel accessors
	// (SetPixel/GetPixel on the Anvil facade) when the coordinate falls
	// outside the buffer.
	ErrOutOfBounds = errors.New("anvil: coordinate out of bounds")

	// ErrBufferSizeMismatch is returned when raw pixel bytes don't match
	// the w*h*4 length a buffer operation expects.
	ErrBufferSizeMismatch = errors.New("anvil: buffer size mismatch")

	// ErrPartialBufferSizeMismatch is returned when a partial diff's swap
	// buffer doesn't match its bound box's area*4.
	ErrPartialBufferSizeMismatch = errors.New("anvil: partial diff buffer size mismatch")
)
