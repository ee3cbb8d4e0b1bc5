// Package depthviz renders depth maps as annotated heat-map images for
// debug output.
package depthviz

import (
	"image"
	"image/color"

	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/ports"
)

const (
	legendHeight = 24
	legendMargin = 4
)

// Render draws the depth map as a heat map with a near/far legend bar
// underneath.
func Render(m *pipeline.DepthMap, r ports.Renderer) image.Image {
	heat := heatImage(m)

	canvas := r.CreateCanvas(m.Width, m.Height+legendHeight, color.Black)
	canvas.DrawImage(heat, 0, 0)

	// Legend gradient, one column at a time.
	barY := m.Height + legendMargin
	barH := legendHeight - 2*legendMargin
	for x := 0; x < m.Width; x++ {
		v := float32(x) / float32(max(m.Width-1, 1))
		canvas.DrawRect(x, barY, 1, barH, rampColor(v))
	}

	style := ports.TextStyle{FontSize: 11, Color: color.White}
	canvas.DrawText("far", 14, barY+barH/2, style)
	rightStyle := style
	rightStyle.Align = ports.AlignRight
	canvas.DrawText("near", m.Width-16, barY+barH/2, rightStyle)

	return canvas.ToImage()
}

// heatImage maps depth values through the color ramp.
func heatImage(m *pipeline.DepthMap) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := rampColor(m.At(x, y))
			i := y*img.Stride + x*4
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 255
		}
	}
	return img
}

// rampColor maps [0,1] to a dark-blue to warm-yellow ramp. Values outside
// the range are clamped.
func rampColor(v float32) color.RGBA {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	// Two-segment ramp: blue -> magenta -> yellow.
	if v < 0.5 {
		t := v * 2
		return color.RGBA{
			R: uint8(40 + 180*t),
			G: uint8(30 * t),
			B: uint8(120 + 60*t),
			A: 255,
		}
	}
	t := (v - 0.5) * 2
	return color.RGBA{
		R: uint8(220 + 35*t),
		G: uint8(30 + 195*t),
		B: uint8(180 * (1 - t)),
		A: 255,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
