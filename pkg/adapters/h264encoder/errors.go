package h264encoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("h264encoder: encoder not initialized")

	// ErrNoFrames is returned when End is called without any encoded frames.
	ErrNoFrames = errors.New("h264encoder: no frames to encode")
)
