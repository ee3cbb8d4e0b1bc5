// Package depth implements the heuristic depth estimation stage.
//
// The depth proxy combines local gradient magnitude (edges read as near)
// with local brightness (bright reads as near) and normalizes the result
// per frame. It is a pure per-pixel function: no learned model, no
// cross-frame memory.
package depth

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/ports"
)

// Stage estimates a depth map for one frame.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new depth stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("depth"),
	}
}

// Execute estimates the depth map for the input frame. Deterministic given
// the same frame and options.
func (s *Stage) Execute(ctx context.Context, input pipeline.DepthInput) (pipeline.DepthResult, error) {
	img := input.Frame.Image
	if img == nil {
		return pipeline.DepthResult{}, fmt.Errorf("depth: frame %d has no image", input.Frame.Index)
	}

	opts := input.Options
	if opts.GradientWeight == 0 && opts.BrightnessWeight == 0 {
		opts = pipeline.DefaultDepthOptions()
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	gray := grayscale(img)
	blurred := gaussianBlur(gray, w, h, opts.PreBlurRadius)
	grad := sobelMagnitude(blurred, w, h)

	// Weighted combination, then per-frame min-max normalization.
	combined := make([]float32, w*h)
	for i := range combined {
		combined[i] = float32(opts.GradientWeight)*grad[i] + float32(opts.BrightnessWeight)*gray[i]
	}
	normalized := normalize(combined)

	smoothed := gaussianBlur(normalized, w, h, opts.PostBlurRadius)

	return pipeline.DepthResult{
		Map: &pipeline.DepthMap{Width: w, Height: h, Pix: smoothed},
	}, nil
}

// grayscale converts an RGBA image to Rec.601 luma in [0,1].
func grayscale(img *image.RGBA) []float32 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[(y+b.Min.Y-img.Rect.Min.Y)*img.Stride:]
		for x := 0; x < w; x++ {
			i := (x + b.Min.X - img.Rect.Min.X) * 4
			r := float32(row[i])
			g := float32(row[i+1])
			bl := float32(row[i+2])
			out[y*w+x] = (0.299*r + 0.587*g + 0.114*bl) / 255.0
		}
	}
	return out
}

// gaussianBlur applies a separable Gaussian blur with the given radius.
// Radius 0 or negative returns a copy of the input.
func gaussianBlur(src []float32, w, h, radius int) []float32 {
	if radius <= 0 {
		out := make([]float32, len(src))
		copy(out, src)
		return out
	}

	kernel := gaussianKernel(radius)

	// Horizontal pass with clamped edges.
	tmp := make([]float32, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k := -radius; k <= radius; k++ {
				sx := clampInt(x+k, 0, w-1)
				sum += src[y*w+sx] * kernel[k+radius]
			}
			tmp[y*w+x] = sum
		}
	}

	// Vertical pass.
	out := make([]float32, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k := -radius; k <= radius; k++ {
				sy := clampInt(y+k, 0, h-1)
				sum += tmp[sy*w+x] * kernel[k+radius]
			}
			out[y*w+x] = sum
		}
	}
	return out
}

// gaussianKernel builds a normalized 1D kernel for a (2r+1) tap blur.
// Sigma follows the usual kernel-size heuristic.
func gaussianKernel(radius int) []float32 {
	sigma := 0.3*(float64(radius)-1) + 0.8
	kernel := make([]float32, 2*radius+1)
	var sum float64
	for k := -radius; k <= radius; k++ {
		v := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		kernel[k+radius] = float32(v)
		sum += v
	}
	for i := range kernel {
		kernel[i] = float32(float64(kernel[i]) / sum)
	}
	return kernel
}

// sobelMagnitude computes the 3x3 Sobel gradient magnitude with clamped edges.
func sobelMagnitude(src []float32, w, h int) []float32 {
	at := func(x, y int) float32 {
		return src[clampInt(y, 0, h-1)*w+clampInt(x, 0, w-1)]
	}

	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			out[y*w+x] = float32(math.Sqrt(float64(gx*gx + gy*gy)))
		}
	}
	return out
}

// normalize rescales values to [0,1]. A flat input (max == min) maps to all
// zeros, which yields zero parallax downstream.
func normalize(src []float32) []float32 {
	out := make([]float32, len(src))
	if len(src) == 0 {
		return out
	}

	min, max := src[0], src[0]
	for _, v := range src[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	span := max - min
	if span < 1e-6 {
		return out
	}
	for i, v := range src {
		out[i] = (v - min) / span
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
