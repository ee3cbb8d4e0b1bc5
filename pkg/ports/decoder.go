// Package ports defines interfaces for external dependencies.
package ports

import (
	"image"
)

// MediaInfo describes a video file as reported by the decoder's probe.
type MediaInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int   // Estimated from duration when the container doesn't carry it
	DurationMs int   // Total duration in milliseconds
	HasAudio   bool  // True if the file carries at least one audio track
	SizeBytes  int64 // File size on disk
	Codec      string
}

// SourceFrame is a single decoded frame with timing information.
type SourceFrame struct {
	Index       int
	TimestampMs int
	Image       *image.RGBA
}

// FrameSource is a lazy, finite, forward-only sequence of decoded frames.
// Next returns io.EOF after the last frame. No seeking or random access.
type FrameSource interface {
	// Next decodes and returns the next frame in presentation order.
	Next() (SourceFrame, error)

	// Info returns the probed media information for the whole source.
	Info() MediaInfo

	// Close releases decoder resources. Safe to call more than once.
	Close() error
}

// VideoDecoder abstracts video decoding operations.
type VideoDecoder interface {
	// Probe inspects a video file without decoding frames.
	Probe(path string) (MediaInfo, error)

	// Open starts decoding a video file and returns a frame source.
	Open(path string) (FrameSource, error)
}
