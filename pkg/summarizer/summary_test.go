package summarizer

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithSource(t *testing.T) {
	summary := NewBuilder().
		WithSource(SourceInfo{
			Path:       "input.mp4",
			Width:      1920,
			Height:     1080,
			FPS:        29.97,
			FrameCount: 300,
			HasAudio:   true,
		}).
		Build()

	if summary.Source.Path != "input.mp4" {
		t.Errorf("expected path 'input.mp4', got '%s'", summary.Source.Path)
	}
	if summary.Source.Width != 1920 || summary.Source.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", summary.Source.Width, summary.Source.Height)
	}
	if !summary.Source.HasAudio {
		t.Error("expected HasAudio to be true")
	}
}

func TestBuilder_WithSettings(t *testing.T) {
	settings := Settings{
		Quality:          "medium",
		MaxParallax:      15,
		GradientWeight:   0.7,
		BrightnessWeight: 0.3,
		CRF:              25,
		AudioPassthrough: true,
	}

	summary := NewBuilder().
		WithSettings(settings).
		Build()

	if summary.Settings.Quality != "medium" {
		t.Errorf("expected Quality 'medium', got '%s'", summary.Settings.Quality)
	}
	if summary.Settings.MaxParallax != 15 {
		t.Errorf("expected MaxParallax 15, got %f", summary.Settings.MaxParallax)
	}
	if summary.Settings.CRF != 25 {
		t.Errorf("expected CRF 25, got %d", summary.Settings.CRF)
	}
}

func TestBuilder_WithVideo(t *testing.T) {
	video := VideoInfo{
		Path:        "output.mp4",
		FrameCount:  300,
		DurationMs:  10000,
		FileSize:    2048000,
		Width:       3840,
		Height:      1080,
		FPS:         29.97,
		AudioCopied: true,
	}

	summary := NewBuilder().
		WithVideo(video).
		Build()

	if summary.Video.FrameCount != 300 {
		t.Errorf("expected FrameCount 300, got %d", summary.Video.FrameCount)
	}
	if summary.Video.FileSize != 2048000 {
		t.Errorf("expected FileSize 2048000, got %d", summary.Video.FileSize)
	}
	if !summary.Video.AudioCopied {
		t.Error("expected AudioCopied to be true")
	}
}

func TestBuilder_FullChain(t *testing.T) {
	summary := NewBuilder().
		WithSource(SourceInfo{Path: "input.avi", Width: 64, Height: 48}).
		WithSettings(Settings{Quality: "high", CRF: 15}).
		WithVideo(VideoInfo{Path: "output.mp4", FrameCount: 10}).
		Build()

	if summary.Source.Path != "input.avi" {
		t.Error("Source.Path not set correctly")
	}
	if summary.Settings.CRF != 15 {
		t.Error("Settings.CRF not set correctly")
	}
	if summary.Video.FrameCount != 10 {
		t.Error("Video.FrameCount not set correctly")
	}
}
