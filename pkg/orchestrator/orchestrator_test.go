package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/user/vr180/pkg/adapters/logger"
	"github.com/user/vr180/pkg/mocks"
	"github.com/user/vr180/pkg/orchestrator"
	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/ports"
	"github.com/user/vr180/pkg/stages/compose"
	"github.com/user/vr180/pkg/stages/depth"
	"github.com/user/vr180/pkg/stages/extract"
	"github.com/user/vr180/pkg/stages/stereo"
)

// grayFrames builds n uniform mid-gray frames at 64x48.
func grayFrames(n int, fps float64) []ports.SourceFrame {
	frames := make([]ports.SourceFrame, n)
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 64, 48))
		draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{128, 128, 128, 255}}, image.Point{}, draw.Src)
		frames[i] = ports.SourceFrame{
			Index:       i,
			TimestampMs: int(float64(i) * 1000.0 / fps),
			Image:       img,
		}
	}
	return frames
}

type fixture struct {
	decoder   *mocks.VideoDecoder
	inspector *mocks.ContainerInspector
	encoder   *mocks.VideoEncoder
	fs        *mocks.FileSystem
	sink      *mocks.DebugSink
	progress  *mocks.Progress
	orch      *orchestrator.Orchestrator
}

func newFixture(info ports.MediaInfo, frames []ports.SourceFrame) *fixture {
	f := &fixture{
		decoder:   &mocks.VideoDecoder{},
		inspector: &mocks.ContainerInspector{},
		encoder:   &mocks.VideoEncoder{},
		fs:        mocks.NewFileSystem(),
		sink:      &mocks.DebugSink{},
		progress:  &mocks.Progress{},
	}
	f.decoder.OpenFunc = func(path string) (ports.FrameSource, error) {
		return mocks.NewFrameSource(info, frames), nil
	}

	log := logger.NewNoop()
	f.orch = orchestrator.New(
		extract.NewStage(f.decoder, f.inspector, log),
		depth.NewStage(log),
		stereo.NewStage(log),
		compose.NewStage(log),
		f.encoder,
		f.fs,
		f.sink,
		nil,
		f.progress,
		log,
	)
	return f
}

func testConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()
	cfg.InputPath = "input.avi"
	cfg.OutputPath = "output.mp4"
	return cfg
}

func TestRun_GraySequence(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 10}
	f := newFixture(info, grayFrames(10, 25))

	result, err := f.orch.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FrameCount != 10 {
		t.Errorf("expected 10 frames, got %d", result.FrameCount)
	}
	if result.OutputWidth != 128 || result.OutputHeight != 48 {
		t.Errorf("expected 128x48 output, got %dx%d", result.OutputWidth, result.OutputHeight)
	}
	if result.FPS != 25 {
		t.Errorf("expected 25 fps, got %f", result.FPS)
	}
	// 9 frames at 40ms spacing plus one frame interval.
	if result.DurationMs != 400 {
		t.Errorf("expected 400ms duration, got %d", result.DurationMs)
	}

	if !f.encoder.BeginCalled {
		t.Fatal("encoder was never started")
	}
	if f.encoder.BeginWidth != 128 || f.encoder.BeginHeight != 48 {
		t.Errorf("encoder started at %dx%d, want 128x48", f.encoder.BeginWidth, f.encoder.BeginHeight)
	}
	if len(f.encoder.EncodeFrameCalls) != 10 {
		t.Fatalf("expected 10 encoded frames, got %d", len(f.encoder.EncodeFrameCalls))
	}

	// Uniform frames have no depth contrast, so each half of every output
	// frame is an unshifted copy of the source.
	for i, call := range f.encoder.EncodeFrameCalls {
		out, ok := call.Image.(*image.RGBA)
		if !ok {
			t.Fatalf("frame %d: expected *image.RGBA", i)
		}
		if out.Bounds().Dx() != 128 || out.Bounds().Dy() != 48 {
			t.Fatalf("frame %d: got %dx%d, want 128x48", i, out.Bounds().Dx(), out.Bounds().Dy())
		}
		for y := 0; y < 48; y += 12 {
			for x := 0; x < 64; x += 16 {
				if out.RGBAAt(x, y) != out.RGBAAt(x+64, y) {
					t.Fatalf("frame %d: halves differ at (%d,%d)", i, x, y)
				}
			}
		}
	}

	if _, ok := f.fs.GetFile("output.mp4"); !ok {
		t.Error("output file was not written")
	}
}

func TestRun_ProgressMonotonic(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 10}
	f := newFixture(info, grayFrames(10, 25))

	if _, err := f.orch.Run(context.Background(), testConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.progress.Updates) != 10 {
		t.Fatalf("expected 10 progress updates, got %d", len(f.progress.Updates))
	}
	for i, u := range f.progress.Updates {
		if u.Current != i+1 {
			t.Errorf("update %d: current = %d, want %d", i, u.Current, i+1)
		}
		if u.Total != 10 {
			t.Errorf("update %d: total = %d, want 10", i, u.Total)
		}
	}
}

func TestRun_Cancellation(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 10}
	f := newFixture(info, grayFrames(10, 25))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orch.Run(ctx, testConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if !f.encoder.AbortCalled {
		t.Error("encoder session should be aborted on cancellation")
	}
	if f.encoder.EndCalled {
		t.Error("encoder must not be finalized on cancellation")
	}
	if _, ok := f.fs.GetFile("output.mp4"); ok {
		t.Error("no partial output may be written on cancellation")
	}
}

func TestRun_UnsupportedFormat(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25}
	f := newFixture(info, grayFrames(1, 25))

	cfg := testConfig()
	cfg.InputPath = "input.webm"

	_, err := f.orch.Run(context.Background(), cfg)
	if !errors.Is(err, pipeline.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if f.encoder.BeginCalled {
		t.Error("encoder should not start for an unsupported format")
	}
}

func TestRun_DecodeErrorMidStream(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 10}
	frames := grayFrames(3, 25)
	f := newFixture(info, frames)

	served := 0
	f.decoder.OpenFunc = func(path string) (ports.FrameSource, error) {
		source := mocks.NewFrameSource(info, nil)
		source.NextFunc = func() (ports.SourceFrame, error) {
			if served < len(frames) {
				frame := frames[served]
				served++
				return frame, nil
			}
			return ports.SourceFrame{}, fmt.Errorf("truncated frame 3")
		}
		return source, nil
	}

	_, err := f.orch.Run(context.Background(), testConfig())
	if !errors.Is(err, pipeline.ErrUnreadableMedia) {
		t.Fatalf("expected ErrUnreadableMedia, got %v", err)
	}
	if !f.encoder.AbortCalled {
		t.Error("encoder session should be aborted on decode failure")
	}
	if _, ok := f.fs.GetFile("output.mp4"); ok {
		t.Error("no output may be written after a decode failure")
	}
}

func TestRun_NoFrames(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25}
	f := newFixture(info, nil)

	_, err := f.orch.Run(context.Background(), testConfig())
	if !errors.Is(err, pipeline.ErrUnreadableMedia) {
		t.Fatalf("expected ErrUnreadableMedia, got %v", err)
	}
	if f.encoder.EndCalled {
		t.Error("encoder must not be finalized when no frames were decoded")
	}
}

func TestRun_EncodeError(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 5}
	f := newFixture(info, grayFrames(5, 25))
	f.encoder.EncodeFrameFunc = func(img image.Image, timestampMs int) error {
		return fmt.Errorf("broken pipe")
	}

	_, err := f.orch.Run(context.Background(), testConfig())
	if !errors.Is(err, pipeline.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	if !f.encoder.AbortCalled {
		t.Error("encoder session should be aborted on encode failure")
	}
}

func TestRun_WriteError(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 2}
	f := newFixture(info, grayFrames(2, 25))
	f.fs.WriteFileFunc = func(path string, data []byte) error {
		return fmt.Errorf("disk full")
	}

	_, err := f.orch.Run(context.Background(), testConfig())
	if !errors.Is(err, pipeline.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
}

func TestRun_AudioPassthrough(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 2, HasAudio: true}
	f := newFixture(info, grayFrames(2, 25))

	result, err := f.orch.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.encoder.BeginOpts.AudioSourcePath != "input.avi" {
		t.Errorf("expected audio source input.avi, got %q", f.encoder.BeginOpts.AudioSourcePath)
	}
	if !result.AudioCopied {
		t.Error("expected AudioCopied to be true")
	}
}

func TestRun_AudioDisabled(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 2, HasAudio: true}
	f := newFixture(info, grayFrames(2, 25))

	cfg := testConfig()
	cfg.AudioPassthrough = false

	result, err := f.orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.encoder.BeginOpts.AudioSourcePath != "" {
		t.Errorf("expected empty audio source, got %q", f.encoder.BeginOpts.AudioSourcePath)
	}
	if result.AudioCopied {
		t.Error("expected AudioCopied to be false")
	}
}

func TestRun_FPSOverride(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 2}
	f := newFixture(info, grayFrames(2, 25))

	cfg := testConfig()
	cfg.FPS = 30

	result, err := f.orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.encoder.BeginFPS != 30 {
		t.Errorf("expected encoder fps 30, got %f", f.encoder.BeginFPS)
	}
	if result.FPS != 30 {
		t.Errorf("expected result fps 30, got %f", result.FPS)
	}
}

func TestRun_DebugSinkReceivesFrames(t *testing.T) {
	info := ports.MediaInfo{Width: 64, Height: 48, FPS: 25, FrameCount: 3}
	f := newFixture(info, grayFrames(3, 25))
	f.sink.EnabledValue = true

	if _, err := f.orch.Run(context.Background(), testConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.sink.ProbeJSON == nil {
		t.Error("probe JSON was not saved")
	}
	if len(f.sink.SourceFrames) != 3 {
		t.Errorf("expected 3 source frames saved, got %d", len(f.sink.SourceFrames))
	}
	if len(f.sink.StereoFrames) != 3 {
		t.Errorf("expected 3 stereo frames saved, got %d", len(f.sink.StereoFrames))
	}
}
