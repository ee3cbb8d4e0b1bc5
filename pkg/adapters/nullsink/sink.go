// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/vr180/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveProbeJSON does nothing.
func (s *Sink) SaveProbeJSON(data []byte) error {
	return nil
}

// SaveSourceFrame does nothing.
func (s *Sink) SaveSourceFrame(index int, img image.Image) error {
	return nil
}

// SaveDepthMap does nothing.
func (s *Sink) SaveDepthMap(index int, img image.Image) error {
	return nil
}

// SaveStereoFrame does nothing.
func (s *Sink) SaveStereoFrame(index int, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
