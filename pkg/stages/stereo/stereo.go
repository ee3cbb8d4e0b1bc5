// Package stereo implements the parallax synthesis stage.
//
// Each eye view is produced by horizontally displacing source pixels along
// the depth map: nearer pixels move further apart between the eyes. Exposed
// edge pixels are filled by clamped-edge extrapolation.
package stereo

import (
	"context"
	"fmt"
	"image"

	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/ports"
)

// Stage synthesizes a left/right eye pair for one frame.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new stereo stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("stereo"),
	}
}

// Execute derives per-pixel disparity from the depth map and renders both
// eye views. A zero depth map yields left == right (monoscopic fallback).
func (s *Stage) Execute(ctx context.Context, input pipeline.StereoInput) (pipeline.StereoResult, error) {
	img := input.Frame.Image
	if img == nil {
		return pipeline.StereoResult{}, fmt.Errorf("stereo: frame %d has no image", input.Frame.Index)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if input.Map == nil || input.Map.Width != w || input.Map.Height != h {
		return pipeline.StereoResult{}, fmt.Errorf("stereo: depth map dimensions do not match frame %d", input.Frame.Index)
	}

	maxParallax := input.Options.MaxParallax
	if maxParallax <= 0 {
		maxParallax = pipeline.DefaultStereoOptions().MaxParallax
	}

	// Disparity in pixels, clamped to [0, maxParallax]. Depth is already in
	// [0,1] so the clamp only guards against out-of-range maps.
	disparity := make([]float32, w*h)
	for i, d := range input.Map.Pix {
		disp := d * float32(maxParallax)
		if disp < 0 {
			disp = 0
		} else if disp > float32(maxParallax) {
			disp = float32(maxParallax)
		}
		disparity[i] = disp
	}

	// Each eye takes half the displacement in opposite directions.
	left := shiftHorizontal(img, disparity, 0.5)
	right := shiftHorizontal(img, disparity, -0.5)

	return pipeline.StereoResult{
		Pair: pipeline.StereoPair{Left: left, Right: right},
	}, nil
}

// shiftHorizontal resamples src along x by factor*disparity per pixel using
// bilinear interpolation. Sample coordinates outside the frame clamp to the
// nearest valid column.
func shiftHorizontal(src *image.RGBA, disparity []float32, factor float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		srcRow := src.Pix[(y+b.Min.Y-src.Rect.Min.Y)*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			sx := float64(x) + factor*float64(disparity[y*w+x])
			if sx < 0 {
				sx = 0
			} else if sx > float64(w-1) {
				sx = float64(w - 1)
			}

			x0 := int(sx)
			x1 := x0 + 1
			if x1 > w-1 {
				x1 = w - 1
			}
			frac := float32(sx - float64(x0))

			i0 := (x0 + b.Min.X - src.Rect.Min.X) * 4
			i1 := (x1 + b.Min.X - src.Rect.Min.X) * 4
			di := x * 4
			for c := 0; c < 4; c++ {
				v := float32(srcRow[i0+c])*(1-frac) + float32(srcRow[i1+c])*frac
				dstRow[di+c] = uint8(v + 0.5)
			}
		}
	}
	return dst
}
