package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.MaxParallax != 15 {
		t.Errorf("MaxParallax = %f, want 15", cfg.MaxParallax)
	}
	if cfg.GradientWeight != 0.7 || cfg.BrightnessWeight != 0.3 {
		t.Errorf("depth weights = %f/%f, want 0.7/0.3", cfg.GradientWeight, cfg.BrightnessWeight)
	}
	if cfg.Quality != "medium" {
		t.Errorf("Quality = %q, want medium", cfg.Quality)
	}
	if !cfg.Audio {
		t.Error("Audio should default to true")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
input: movie.mp4
output: movie_vr180.mp4
max_parallax: 20
quality: high
bitrate: 4000
audio: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.InputPath != "movie.mp4" {
		t.Errorf("InputPath = %q", cfg.InputPath)
	}
	if cfg.MaxParallax != 20 {
		t.Errorf("MaxParallax = %f, want 20", cfg.MaxParallax)
	}
	if cfg.Quality != "high" {
		t.Errorf("Quality = %q, want high", cfg.Quality)
	}
	if cfg.Bitrate != 4000 {
		t.Errorf("Bitrate = %d, want 4000", cfg.Bitrate)
	}
	if cfg.Audio {
		t.Error("Audio should be false")
	}

	// Unspecified keys keep their defaults.
	if cfg.GradientWeight != 0.7 {
		t.Errorf("GradientWeight = %f, want default 0.7", cfg.GradientWeight)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEffectiveCRF(t *testing.T) {
	cfg := Defaults()
	if got := cfg.EffectiveCRF(); got != 25 {
		t.Errorf("medium preset CRF = %d, want 25", got)
	}

	cfg.Quality = "low"
	if got := cfg.EffectiveCRF(); got != 35 {
		t.Errorf("low preset CRF = %d, want 35", got)
	}

	cfg.CRF = 18
	if got := cfg.EffectiveCRF(); got != 18 {
		t.Errorf("explicit CRF = %d, want 18", got)
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.InputPath = "in.mov"
	cfg.OutputPath = "out.mp4"
	cfg.Quality = "high"
	cfg.FPS = 24

	oc := cfg.ToOrchestratorConfig()

	if oc.InputPath != "in.mov" || oc.OutputPath != "out.mp4" {
		t.Errorf("paths not carried over: %q, %q", oc.InputPath, oc.OutputPath)
	}
	if oc.VideoCRF != 15 {
		t.Errorf("VideoCRF = %d, want 15", oc.VideoCRF)
	}
	if oc.Stereo.MaxParallax != 15 {
		t.Errorf("MaxParallax = %f, want 15", oc.Stereo.MaxParallax)
	}
	if oc.FPS != 24 {
		t.Errorf("FPS = %f, want 24", oc.FPS)
	}
	if !oc.AudioPassthrough {
		t.Error("AudioPassthrough should be true")
	}
}
