package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveProbeJSON saves the media probe result as JSON.
	SaveProbeJSON(data []byte) error

	// SaveSourceFrame saves a decoded source frame.
	SaveSourceFrame(index int, img image.Image) error

	// SaveDepthMap saves a depth map visualization.
	SaveDepthMap(index int, img image.Image) error

	// SaveStereoFrame saves a composed side-by-side frame.
	SaveStereoFrame(index int, img image.Image) error
}
