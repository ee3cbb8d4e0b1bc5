package mocks

import (
	"image"

	"github.com/user/vr180/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records
// everything saved to it.
type DebugSink struct {
	EnabledValue bool

	ProbeJSON    []byte
	SourceFrames []int
	DepthMaps    []int
	StereoFrames []int
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveProbeJSON(data []byte) error {
	m.ProbeJSON = data
	return nil
}

func (m *DebugSink) SaveSourceFrame(index int, img image.Image) error {
	m.SourceFrames = append(m.SourceFrames, index)
	return nil
}

func (m *DebugSink) SaveDepthMap(index int, img image.Image) error {
	m.DepthMaps = append(m.DepthMaps, index)
	return nil
}

func (m *DebugSink) SaveStereoFrame(index int, img image.Image) error {
	m.StereoFrames = append(m.StereoFrames, index)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
