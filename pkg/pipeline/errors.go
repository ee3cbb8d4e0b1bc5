package pipeline

import "errors"

// Error taxonomy for a conversion run. All three are terminal for the
// current request: no retry, no partial-result recovery.
var (
	// ErrUnsupportedFormat is returned when the input file extension is not
	// one of the accepted formats. Raised before any decoding is attempted.
	ErrUnsupportedFormat = errors.New("vr180: unsupported input format")

	// ErrUnreadableMedia is returned when the input container or codec
	// cannot be decoded.
	ErrUnreadableMedia = errors.New("vr180: unreadable media")

	// ErrEncoding is returned when the output video cannot be encoded or
	// written.
	ErrEncoding = errors.New("vr180: encoding failed")
)
