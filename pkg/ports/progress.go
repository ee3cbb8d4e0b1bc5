package ports

// Progress receives frame-count updates while a conversion runs.
// It is a notification sink: implementations must not influence
// processing order or outcome.
type Progress interface {
	// Update reports that `current` of `total` frames have been processed.
	// total may be 0 when the container does not report a frame count.
	Update(current, total int)
}

// ProgressFunc is a function adapter for Progress.
type ProgressFunc func(current, total int)

// Update implements Progress.
func (f ProgressFunc) Update(current, total int) {
	f(current, total)
}
