// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ideamans/go-l10n"
	"github.com/user/vr180/pkg/depthviz"
	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input/Output
	InputPath  string
	OutputPath string

	// Depth estimation
	Depth pipeline.DepthOptions

	// Parallax synthesis
	Stereo pipeline.StereoOptions

	// Encoding
	VideoCRF int     // CRF 0-63, lower is better
	Bitrate  int     // Target bitrate in kbps (0 = codec default)
	FPS      float64 // Output frame rate (0 = preserve source)

	// Audio
	AudioPassthrough bool // Carry the source audio track into the output
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Depth:            pipeline.DefaultDepthOptions(),
		Stereo:           pipeline.DefaultStereoOptions(),
		VideoCRF:         25,
		AudioPassthrough: true,
	}
}

// Orchestrator runs the conversion as a single sequential pass: one source
// frame at a time flows through depth, stereo, and compose before being
// handed to the encoder. Progress updates are a side channel and never
// change processing order or outcome.
type Orchestrator struct {
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	depthStage   pipeline.Stage[pipeline.DepthInput, pipeline.DepthResult]
	stereoStage  pipeline.Stage[pipeline.StereoInput, pipeline.StereoResult]
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult]
	encoder      ports.VideoEncoder
	fs           ports.FileSystem
	sink         ports.DebugSink
	renderer     ports.Renderer
	progress     ports.Progress
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	depthStage pipeline.Stage[pipeline.DepthInput, pipeline.DepthResult],
	stereoStage pipeline.Stage[pipeline.StereoInput, pipeline.StereoResult],
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult],
	encoder ports.VideoEncoder,
	fs ports.FileSystem,
	sink ports.DebugSink,
	renderer ports.Renderer,
	progress ports.Progress,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractStage: extractStage,
		depthStage:   depthStage,
		stereoStage:  stereoStage,
		composeStage: composeStage,
		encoder:      encoder,
		fs:           fs,
		sink:         sink,
		renderer:     renderer,
		progress:     progress,
		logger:       logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info(l10n.T("Starting conversion"))

	// 1. Open the source
	extracted, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{Path: config.InputPath})
	if err != nil {
		o.logger.Error(l10n.F("Failed to open input: %s", err))
		return RunResult{}, fmt.Errorf("extract stage: %w", err)
	}
	source := extracted.Source
	defer source.Close()

	info := extracted.Info
	o.logger.Info(l10n.F("Input: %dx%d @ %.2f fps, ~%d frames", info.Width, info.Height, info.FPS, info.FrameCount))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(info, "", "  "); err == nil {
			o.sink.SaveProbeJSON(data)
		}
	}

	// 2. Start the encoder at doubled width
	fps := config.FPS
	if fps <= 0 {
		fps = info.FPS
	}
	encOpts := ports.EncoderOptions{
		Quality: config.VideoCRF,
		Bitrate: config.Bitrate,
	}
	audioCopied := false
	if config.AudioPassthrough && info.HasAudio {
		encOpts.AudioSourcePath = config.InputPath
		audioCopied = true
	}
	if err := o.encoder.Begin(info.Width*2, info.Height, fps, encOpts); err != nil {
		o.logger.Error(l10n.F("Failed to start encoder: %s", err))
		return RunResult{}, fmt.Errorf("%w: begin: %v", pipeline.ErrEncoding, err)
	}

	// 3. Sequential per-frame pass
	frameCount := 0
	lastTimestampMs := 0
	for {
		// Cancellation stops before the next frame is extracted. The encoder
		// session is discarded so no partial output file is left behind.
		select {
		case <-ctx.Done():
			o.encoder.Abort()
			o.logger.Warn(l10n.T("Conversion cancelled"))
			return RunResult{}, ctx.Err()
		default:
		}

		frame, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			o.encoder.Abort()
			o.logger.Error(l10n.F("Failed to decode frame %d: %s", frameCount, err))
			return RunResult{}, fmt.Errorf("%w: frame %d: %v", pipeline.ErrUnreadableMedia, frameCount, err)
		}

		outFrame, err := o.processFrame(ctx, frame, config)
		if err != nil {
			o.encoder.Abort()
			return RunResult{}, err
		}

		if err := o.encoder.EncodeFrame(outFrame.Image, outFrame.TimestampMs); err != nil {
			o.encoder.Abort()
			o.logger.Error(l10n.F("Failed to encode frame %d: %s", frameCount, err))
			return RunResult{}, fmt.Errorf("%w: frame %d: %v", pipeline.ErrEncoding, frameCount, err)
		}

		lastTimestampMs = outFrame.TimestampMs
		frameCount++
		if o.progress != nil {
			o.progress.Update(frameCount, info.FrameCount)
		}
	}

	if frameCount == 0 {
		o.encoder.Abort()
		return RunResult{}, fmt.Errorf("%w: no frames decoded from %s", pipeline.ErrUnreadableMedia, config.InputPath)
	}

	// 4. Finalize and write the output
	o.logger.Info(l10n.F("Finalizing video (%d frames)", frameCount))
	data, err := o.encoder.End()
	if err != nil {
		o.logger.Error(l10n.F("Failed to finalize video: %s", err))
		return RunResult{}, fmt.Errorf("%w: end: %v", pipeline.ErrEncoding, err)
	}

	if err := o.fs.WriteFile(config.OutputPath, data); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("%w: write %s: %v", pipeline.ErrEncoding, config.OutputPath, err)
	}

	o.logger.Info(l10n.T("Conversion completed successfully"))

	return RunResult{
		InputPath:    config.InputPath,
		OutputPath:   config.OutputPath,
		SourceWidth:  info.Width,
		SourceHeight: info.Height,
		OutputWidth:  info.Width * 2,
		OutputHeight: info.Height,
		FPS:          fps,
		FrameCount:   frameCount,
		DurationMs:   lastTimestampMs + frameIntervalMs(fps),
		FileSize:     int64(len(data)),
		AudioCopied:  audioCopied,
		MaxParallax:  config.Stereo.MaxParallax,
	}, nil
}

// processFrame runs one source frame through depth, stereo, and compose.
func (o *Orchestrator) processFrame(ctx context.Context, frame ports.SourceFrame, config Config) (pipeline.OutputFrame, error) {
	depthRes, err := o.depthStage.Execute(ctx, pipeline.DepthInput{Frame: frame, Options: config.Depth})
	if err != nil {
		o.logger.Error(l10n.F("Depth estimation failed at frame %d: %s", frame.Index, err))
		return pipeline.OutputFrame{}, fmt.Errorf("depth stage: %w", err)
	}

	stereoRes, err := o.stereoStage.Execute(ctx, pipeline.StereoInput{
		Frame:   frame,
		Map:     depthRes.Map,
		Options: config.Stereo,
	})
	if err != nil {
		o.logger.Error(l10n.F("Stereo synthesis failed at frame %d: %s", frame.Index, err))
		return pipeline.OutputFrame{}, fmt.Errorf("stereo stage: %w", err)
	}

	composeRes, err := o.composeStage.Execute(ctx, pipeline.ComposeInput{
		Pair:        stereoRes.Pair,
		TimestampMs: frame.TimestampMs,
	})
	if err != nil {
		o.logger.Error(l10n.F("Composition failed at frame %d: %s", frame.Index, err))
		return pipeline.OutputFrame{}, fmt.Errorf("compose stage: %w", err)
	}

	if o.sink.Enabled() {
		o.sink.SaveSourceFrame(frame.Index, frame.Image)
		if o.renderer != nil {
			o.sink.SaveDepthMap(frame.Index, depthviz.Render(depthRes.Map, o.renderer))
		}
		o.sink.SaveStereoFrame(frame.Index, composeRes.Frame.Image)
	}

	return composeRes.Frame, nil
}

func frameIntervalMs(fps float64) int {
	if fps <= 0 {
		return 0
	}
	return int(1000.0/fps + 0.5)
}

// RunResult contains the results of a conversion for summary generation.
type RunResult struct {
	InputPath  string
	OutputPath string

	// Geometry
	SourceWidth  int
	SourceHeight int
	OutputWidth  int
	OutputHeight int

	// Video
	FPS        float64
	FrameCount int
	DurationMs int
	FileSize   int64

	// Conversion parameters
	MaxParallax float64
	AudioCopied bool
}
