// Package summarizer provides summary generation for conversion results.
package summarizer

import "time"

// Summary contains all data collected during a conversion session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source media information
	Source SourceInfo

	// Conversion settings
	Settings Settings

	// Video output details
	Video VideoInfo
}

// SourceInfo contains information about the input video.
type SourceInfo struct {
	Path       string
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	HasAudio   bool
}

// Settings contains the conversion configuration.
type Settings struct {
	Quality          string
	MaxParallax      float64
	GradientWeight   float64
	BrightnessWeight float64
	CRF              int
	AudioPassthrough bool
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path        string
	FrameCount  int
	DurationMs  int
	FileSize    int64
	Width       int
	Height      int
	FPS         float64
	AudioCopied bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source media information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithSettings sets conversion settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
