// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/vr180/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new Sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveProbeJSON saves the media probe result as JSON.
func (s *Sink) SaveProbeJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "probe.json")
	return s.fs.WriteFile(path, data)
}

// SaveSourceFrame saves a decoded source frame.
func (s *Sink) SaveSourceFrame(index int, img image.Image) error {
	return s.savePNG(filepath.Join("frames", "source"), index, img)
}

// SaveDepthMap saves a depth map visualization.
func (s *Sink) SaveDepthMap(index int, img image.Image) error {
	return s.savePNG(filepath.Join("frames", "depth"), index, img)
}

// SaveStereoFrame saves a composed side-by-side frame.
func (s *Sink) SaveStereoFrame(index int, img image.Image) error {
	return s.savePNG(filepath.Join("frames", "stereo"), index, img)
}

func (s *Sink) savePNG(subdir string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, subdir)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
