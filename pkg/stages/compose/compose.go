// Package compose implements the side-by-side frame composition stage.
package compose

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/ports"
)

// Stage concatenates a stereo pair into one VR180 side-by-side frame.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new compose stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("compose"),
	}
}

// Execute lays out [left | right]: output width is twice the eye width,
// height is unchanged.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	left := input.Pair.Left
	right := input.Pair.Right
	if left == nil || right == nil {
		return pipeline.ComposeResult{}, fmt.Errorf("compose: incomplete stereo pair at %dms", input.TimestampMs)
	}

	lb := left.Bounds()
	rb := right.Bounds()
	if lb.Dx() != rb.Dx() || lb.Dy() != rb.Dy() {
		return pipeline.ComposeResult{}, fmt.Errorf("compose: eye dimensions differ (%dx%d vs %dx%d)",
			lb.Dx(), lb.Dy(), rb.Dx(), rb.Dy())
	}

	w, h := lb.Dx(), lb.Dy()
	out := image.NewRGBA(image.Rect(0, 0, 2*w, h))
	draw.Draw(out, image.Rect(0, 0, w, h), left, lb.Min, draw.Src)
	draw.Draw(out, image.Rect(w, 0, 2*w, h), right, rb.Min, draw.Src)

	return pipeline.ComposeResult{
		Frame: pipeline.OutputFrame{TimestampMs: input.TimestampMs, Image: out},
	}, nil
}
