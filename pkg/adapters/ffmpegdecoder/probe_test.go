package ffmpegdecoder

import (
	"math"
	"testing"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"25/1", 25},
		{"30000/1001", 29.97002997},
		{"30", 30},
		{"0/0", 0},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		got := parseRate(tt.in)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("parseRate(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if got := parseFloat("12.5"); got != 12.5 {
		t.Errorf("parseFloat(12.5) = %f", got)
	}
	if got := parseFloat("not a number"); got != 0 {
		t.Errorf("parseFloat should return 0 for invalid input, got %f", got)
	}
}

func TestTimestampMs(t *testing.T) {
	tests := []struct {
		index int
		fps   float64
		want  int
	}{
		{0, 25, 0},
		{1, 25, 40},
		{9, 25, 360},
		{1, 29.97, 33},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := timestampMs(tt.index, tt.fps); got != tt.want {
			t.Errorf("timestampMs(%d, %f) = %d, want %d", tt.index, tt.fps, got, tt.want)
		}
	}
}
