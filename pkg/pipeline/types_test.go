package pipeline

import "testing"

func TestNewDepthMap(t *testing.T) {
	m := NewDepthMap(64, 48)

	if m.Width != 64 || m.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", m.Width, m.Height)
	}
	if len(m.Pix) != 64*48 {
		t.Errorf("expected %d pixels, got %d", 64*48, len(m.Pix))
	}
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("expected zero map, got %f at %d", v, i)
		}
	}
}

func TestDepthMap_SetAndAt(t *testing.T) {
	m := NewDepthMap(4, 3)
	m.Set(2, 1, 0.75)

	if got := m.At(2, 1); got != 0.75 {
		t.Errorf("At(2,1) = %f, want 0.75", got)
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %f, want 0", got)
	}
}

func TestDepthMap_At_Clamps(t *testing.T) {
	m := NewDepthMap(4, 3)
	m.Set(0, 0, 0.25)
	m.Set(3, 2, 0.5)

	if got := m.At(-5, -5); got != 0.25 {
		t.Errorf("At(-5,-5) = %f, want 0.25", got)
	}
	if got := m.At(10, 10); got != 0.5 {
		t.Errorf("At(10,10) = %f, want 0.5", got)
	}
}

func TestDefaultDepthOptions(t *testing.T) {
	opts := DefaultDepthOptions()

	if opts.GradientWeight != 0.7 {
		t.Errorf("GradientWeight = %f, want 0.7", opts.GradientWeight)
	}
	if opts.BrightnessWeight != 0.3 {
		t.Errorf("BrightnessWeight = %f, want 0.3", opts.BrightnessWeight)
	}
	if opts.PreBlurRadius != 2 || opts.PostBlurRadius != 3 {
		t.Errorf("blur radii = %d/%d, want 2/3", opts.PreBlurRadius, opts.PostBlurRadius)
	}
}

func TestDefaultStereoOptions(t *testing.T) {
	opts := DefaultStereoOptions()

	if opts.MaxParallax != 15 {
		t.Errorf("MaxParallax = %f, want 15", opts.MaxParallax)
	}
}
