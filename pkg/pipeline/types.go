package pipeline

import (
	"image"

	"github.com/user/vr180/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// DepthMap is a per-pixel depth proxy for one source frame. Values are
// normalized to [0,1] where 1 means nearest to the camera. It shares the
// spatial dimensions of its source frame and is never persisted.
type DepthMap struct {
	Width  int
	Height int
	Pix    []float32 // Row-major, len == Width*Height
}

// NewDepthMap allocates a zero-valued depth map.
func NewDepthMap(width, height int) *DepthMap {
	return &DepthMap{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height),
	}
}

// At returns the depth value at (x, y). Coordinates outside the map are
// clamped to the nearest valid pixel.
func (m *DepthMap) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= m.Width {
		x = m.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= m.Height {
		y = m.Height - 1
	}
	return m.Pix[y*m.Width+x]
}

// Set assigns the depth value at (x, y).
func (m *DepthMap) Set(x, y int, v float32) {
	m.Pix[y*m.Width+x] = v
}

// StereoPair holds the left- and right-eye variants of one source frame.
// Both images have identical dimensions and differ only by a per-pixel
// horizontal displacement bounded by the configured maximum parallax.
type StereoPair struct {
	Left  *image.RGBA
	Right *image.RGBA
}

// OutputFrame is the horizontal concatenation [left | right] of a stereo
// pair: twice the source width, unchanged height.
type OutputFrame struct {
	TimestampMs int
	Image       *image.RGBA
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput contains parameters for frame extraction.
type ExtractInput struct {
	Path string
}

// ExtractResult contains the opened frame source and its probed metadata.
// The caller owns the source and must close it.
type ExtractResult struct {
	Source ports.FrameSource
	Info   ports.MediaInfo
}

// =============================================================================
// Depth Stage Types
// =============================================================================

// DepthOptions tunes the heuristic depth estimation.
type DepthOptions struct {
	GradientWeight   float64 // Weight of local gradient magnitude (edges read as near)
	BrightnessWeight float64 // Weight of local brightness (bright reads as near)
	PreBlurRadius    int     // Gaussian radius applied before the gradient pass
	PostBlurRadius   int     // Gaussian radius applied to the normalized map
}

// DefaultDepthOptions returns DepthOptions with default values.
func DefaultDepthOptions() DepthOptions {
	return DepthOptions{
		GradientWeight:   0.7,
		BrightnessWeight: 0.3,
		PreBlurRadius:    2,
		PostBlurRadius:   3,
	}
}

// DepthInput contains one frame to estimate depth for.
type DepthInput struct {
	Frame   ports.SourceFrame
	Options DepthOptions
}

// DepthResult contains the estimated depth map.
type DepthResult struct {
	Map *DepthMap
}

// =============================================================================
// Stereo Stage Types
// =============================================================================

// StereoOptions tunes the parallax synthesis.
type StereoOptions struct {
	// MaxParallax bounds the horizontal displacement in pixels. Each eye is
	// shifted by at most half of it in opposite directions.
	MaxParallax float64
}

// DefaultStereoOptions returns StereoOptions with default values.
func DefaultStereoOptions() StereoOptions {
	return StereoOptions{
		MaxParallax: 15,
	}
}

// StereoInput contains one frame plus its depth map.
type StereoInput struct {
	Frame   ports.SourceFrame
	Map     *DepthMap
	Options StereoOptions
}

// StereoResult contains the synthesized eye pair.
type StereoResult struct {
	Pair StereoPair
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput contains one stereo pair to lay out side by side.
type ComposeInput struct {
	Pair        StereoPair
	TimestampMs int
}

// ComposeResult contains the composed output frame.
type ComposeResult struct {
	Frame OutputFrame
}
