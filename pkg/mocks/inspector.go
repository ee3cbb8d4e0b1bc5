package mocks

import "github.com/user/vr180/pkg/ports"

// ContainerInspector is a mock implementation of ports.ContainerInspector.
type ContainerInspector struct {
	InspectFunc func(path string) (ports.ContainerInfo, error)

	// Recorded calls for verification
	InspectCalls []string
}

func (m *ContainerInspector) Inspect(path string) (ports.ContainerInfo, error) {
	m.InspectCalls = append(m.InspectCalls, path)
	if m.InspectFunc != nil {
		return m.InspectFunc(path)
	}
	return ports.ContainerInfo{}, nil
}

var _ ports.ContainerInspector = (*ContainerInspector)(nil)
