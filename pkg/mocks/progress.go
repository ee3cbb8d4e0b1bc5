package mocks

import "github.com/user/vr180/pkg/ports"

// Progress is a mock implementation of ports.Progress recording every update.
type Progress struct {
	Updates []ProgressUpdate
}

// ProgressUpdate records a single Update call.
type ProgressUpdate struct {
	Current int
	Total   int
}

func (m *Progress) Update(current, total int) {
	m.Updates = append(m.Updates, ProgressUpdate{Current: current, Total: total})
}

var _ ports.Progress = (*Progress)(nil)
