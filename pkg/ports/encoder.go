package ports

import (
	"image"
)

// VideoEncoder abstracts video encoding operations.
type VideoEncoder interface {
	// Begin initializes the encoder with the specified dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame encodes a single frame at the specified timestamp.
	EncodeFrame(img image.Image, timestampMs int) error

	// End finalizes encoding and returns the video data.
	End() ([]byte, error)

	// Abort discards the encoding session and releases resources.
	// Used on cancellation so no partial output survives.
	Abort()
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Bitrate int // Target bitrate in kbps (0 = codec default)
	Quality int // CRF value: 0-63 (lower is higher quality)

	// AudioSourcePath, when non-empty, names a media file whose first audio
	// track is carried over into the output. Files without audio are passed
	// through silently.
	AudioSourcePath string
}
