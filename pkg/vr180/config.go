// Package vr180 provides a high-level API for converting 2D videos into
// VR180 side-by-side stereoscopic videos.
package vr180

import (
	"github.com/user/vr180/pkg/orchestrator"
	"github.com/user/vr180/pkg/pipeline"
)

// QualityPreset represents a video quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// PresetCRF returns the CRF value for the given preset.
func PresetCRF(preset QualityPreset) int {
	switch preset {
	case QualityLow:
		return 35
	case QualityHigh:
		return 15
	default: // medium
		return 25
	}
}

// Config represents the configuration for a VR180 conversion.
type Config struct {
	// Parallax
	MaxParallax float64 // Maximum horizontal displacement in pixels

	// Depth estimation
	GradientWeight   float64 // Weight of gradient magnitude in the depth proxy
	BrightnessWeight float64 // Weight of brightness in the depth proxy
	PreBlurRadius    int     // Gaussian radius before the gradient pass
	PostBlurRadius   int     // Gaussian radius on the normalized depth map

	// Encoding
	VideoCRF int     // MP4 CRF value (0-63, lower is better)
	Bitrate  int     // Target bitrate in kbps (0 = codec default)
	FPS      float64 // Output frame rate (0 = preserve source)

	// Audio
	AudioPassthrough bool // Carry the source audio track into the output
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	depth := pipeline.DefaultDepthOptions()
	stereo := pipeline.DefaultStereoOptions()
	return &ConfigBuilder{
		config: Config{
			MaxParallax:      stereo.MaxParallax,
			GradientWeight:   depth.GradientWeight,
			BrightnessWeight: depth.BrightnessWeight,
			PreBlurRadius:    depth.PreBlurRadius,
			PostBlurRadius:   depth.PostBlurRadius,
			VideoCRF:         PresetCRF(QualityMedium),
			AudioPassthrough: true,
		},
	}
}

// WithQualityPreset applies a quality preset.
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	b.config.VideoCRF = PresetCRF(preset)
	return b
}

// WithMaxParallax sets the maximum parallax in pixels.
func (b *ConfigBuilder) WithMaxParallax(px float64) *ConfigBuilder {
	b.config.MaxParallax = px
	return b
}

// WithDepthWeights sets the gradient and brightness weights.
func (b *ConfigBuilder) WithDepthWeights(gradient, brightness float64) *ConfigBuilder {
	b.config.GradientWeight = gradient
	b.config.BrightnessWeight = brightness
	return b
}

// WithBlurRadii sets the pre- and post-normalization blur radii.
func (b *ConfigBuilder) WithBlurRadii(pre, post int) *ConfigBuilder {
	b.config.PreBlurRadius = pre
	b.config.PostBlurRadius = post
	return b
}

// WithCRF sets the CRF value, overriding any quality preset.
func (b *ConfigBuilder) WithCRF(crf int) *ConfigBuilder {
	b.config.VideoCRF = crf
	return b
}

// WithBitrate sets the target bitrate in kbps.
func (b *ConfigBuilder) WithBitrate(kbps int) *ConfigBuilder {
	b.config.Bitrate = kbps
	return b
}

// WithFPS overrides the output frame rate.
func (b *ConfigBuilder) WithFPS(fps float64) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithAudioPassthrough enables or disables audio passthrough.
func (b *ConfigBuilder) WithAudioPassthrough(enabled bool) *ConfigBuilder {
	b.config.AudioPassthrough = enabled
	return b
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.MaxParallax < 0 {
		cfg.MaxParallax = 0
	}
	if cfg.GradientWeight < 0 {
		cfg.GradientWeight = 0
	}
	if cfg.BrightnessWeight < 0 {
		cfg.BrightnessWeight = 0
	}
	if cfg.GradientWeight == 0 && cfg.BrightnessWeight == 0 {
		d := pipeline.DefaultDepthOptions()
		cfg.GradientWeight = d.GradientWeight
		cfg.BrightnessWeight = d.BrightnessWeight
	}
	if cfg.VideoCRF < 0 {
		cfg.VideoCRF = 0
	} else if cfg.VideoCRF > 63 {
		cfg.VideoCRF = 63
	}
	if cfg.PreBlurRadius < 0 {
		cfg.PreBlurRadius = 0
	}
	if cfg.PostBlurRadius < 0 {
		cfg.PostBlurRadius = 0
	}

	return cfg
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(inputPath, outputPath string) orchestrator.Config {
	return orchestrator.Config{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Depth: pipeline.DepthOptions{
			GradientWeight:   c.GradientWeight,
			BrightnessWeight: c.BrightnessWeight,
			PreBlurRadius:    c.PreBlurRadius,
			PostBlurRadius:   c.PostBlurRadius,
		},
		Stereo: pipeline.StereoOptions{
			MaxParallax: c.MaxParallax,
		},
		VideoCRF:         c.VideoCRF,
		Bitrate:          c.Bitrate,
		FPS:              c.FPS,
		AudioPassthrough: c.AudioPassthrough,
	}
}
