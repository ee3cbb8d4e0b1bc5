// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/user/vr180/pkg/orchestrator"
	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/vr180"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for vr180.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Parallax
	MaxParallax float64 `yaml:"max_parallax"`

	// Depth estimation
	GradientWeight   float64 `yaml:"gradient_weight"`
	BrightnessWeight float64 `yaml:"brightness_weight"`
	PreBlurRadius    int     `yaml:"pre_blur_radius"`
	PostBlurRadius   int     `yaml:"post_blur_radius"`

	// Encoding
	Quality string  `yaml:"quality"` // low, medium, high
	CRF     int     `yaml:"crf"`     // overrides the preset when > 0
	Bitrate int     `yaml:"bitrate"`
	FPS     float64 `yaml:"fps"`

	// Audio
	Audio bool `yaml:"audio"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	depth := pipeline.DefaultDepthOptions()
	stereo := pipeline.DefaultStereoOptions()
	return Config{
		MaxParallax: stereo.MaxParallax,

		GradientWeight:   depth.GradientWeight,
		BrightnessWeight: depth.BrightnessWeight,
		PreBlurRadius:    depth.PreBlurRadius,
		PostBlurRadius:   depth.PostBlurRadius,

		Quality: string(vr180.QualityMedium),

		Audio: true,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// EffectiveCRF resolves the CRF value from the explicit crf setting
// or the quality preset.
func (c Config) EffectiveCRF() int {
	if c.CRF > 0 {
		return c.CRF
	}
	return vr180.PresetCRF(vr180.QualityPreset(c.Quality))
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		InputPath:  c.InputPath,
		OutputPath: c.OutputPath,

		Depth: pipeline.DepthOptions{
			GradientWeight:   c.GradientWeight,
			BrightnessWeight: c.BrightnessWeight,
			PreBlurRadius:    c.PreBlurRadius,
			PostBlurRadius:   c.PostBlurRadius,
		},
		Stereo: pipeline.StereoOptions{
			MaxParallax: c.MaxParallax,
		},

		VideoCRF:         c.EffectiveCRF(),
		Bitrate:          c.Bitrate,
		FPS:              c.FPS,
		AudioPassthrough: c.Audio,
	}
}
