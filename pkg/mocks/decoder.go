// Package mocks provides mock implementations of ports interfaces for testing.
package mocks

import (
	"io"

	"github.com/user/vr180/pkg/ports"
)

// VideoDecoder is a mock implementation of ports.VideoDecoder.
type VideoDecoder struct {
	ProbeFunc func(path string) (ports.MediaInfo, error)
	OpenFunc  func(path string) (ports.FrameSource, error)

	// Recorded calls for verification
	ProbeCalls []string
	OpenCalls  []string
}

func (m *VideoDecoder) Probe(path string) (ports.MediaInfo, error) {
	m.ProbeCalls = append(m.ProbeCalls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.MediaInfo{}, nil
}

func (m *VideoDecoder) Open(path string) (ports.FrameSource, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	return NewFrameSource(ports.MediaInfo{}, nil), nil
}

var _ ports.VideoDecoder = (*VideoDecoder)(nil)

// FrameSource is a mock implementation of ports.FrameSource backed by a
// fixed slice of frames.
type FrameSource struct {
	info   ports.MediaInfo
	frames []ports.SourceFrame
	pos    int

	// NextFunc, when set, replaces the slice-backed behavior entirely.
	NextFunc func() (ports.SourceFrame, error)

	CloseCalled bool
}

// NewFrameSource creates a FrameSource that yields the given frames in
// order and then io.EOF.
func NewFrameSource(info ports.MediaInfo, frames []ports.SourceFrame) *FrameSource {
	return &FrameSource{
		info:   info,
		frames: frames,
	}
}

func (m *FrameSource) Next() (ports.SourceFrame, error) {
	if m.NextFunc != nil {
		return m.NextFunc()
	}
	if m.pos >= len(m.frames) {
		return ports.SourceFrame{}, io.EOF
	}
	frame := m.frames[m.pos]
	m.pos++
	return frame, nil
}

func (m *FrameSource) Info() ports.MediaInfo {
	return m.info
}

func (m *FrameSource) Close() error {
	m.CloseCalled = true
	return nil
}

var _ ports.FrameSource = (*FrameSource)(nil)
