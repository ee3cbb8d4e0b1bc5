// Package main provides the CLI entry point for vr180.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/vr180/pkg/adapters/consoleprogress"
	"github.com/user/vr180/pkg/adapters/ffmpegbin"
	"github.com/user/vr180/pkg/adapters/ffmpegdecoder"
	"github.com/user/vr180/pkg/adapters/filesink"
	"github.com/user/vr180/pkg/adapters/ggrenderer"
	"github.com/user/vr180/pkg/adapters/h264encoder"
	"github.com/user/vr180/pkg/adapters/logger"
	"github.com/user/vr180/pkg/adapters/mediaprobe"
	"github.com/user/vr180/pkg/adapters/nullsink"
	"github.com/user/vr180/pkg/adapters/osfilesystem"
	"github.com/user/vr180/pkg/config"
	"github.com/user/vr180/pkg/orchestrator"
	"github.com/user/vr180/pkg/ports"
	"github.com/user/vr180/pkg/stages/compose"
	"github.com/user/vr180/pkg/stages/depth"
	"github.com/user/vr180/pkg/stages/extract"
	"github.com/user/vr180/pkg/stages/stereo"
	"github.com/user/vr180/pkg/summarizer"
	"github.com/user/vr180/pkg/vr180"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert a 2D video to a VR180 side-by-side MP4."`
	Probe   ProbeCmd   `cmd:"" help:"Inspect a video file without converting it."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// ConvertCmd defines the convert subcommand.
type ConvertCmd struct {
	// Required arguments
	Input  string `arg:"" help:"Input video file path."`
	Output string `short:"o" required:"" help:"Output MP4 file path."`

	// Config file
	Config string `short:"C" help:"YAML configuration file (CLI flags override it)."`

	// Quality
	Preset string `short:"p" default:"medium" enum:"low,medium,high" help:"Quality preset (low, medium, high)."`
	CRF    *int   `short:"q" help:"Video quality (CRF 0-63, lower is better; overrides preset)."`

	// Parallax options
	MaxParallax *float64 `help:"Maximum horizontal parallax in pixels (default: 15)."`

	// Depth options
	GradientWeight   *float64 `help:"Weight of edge gradients in the depth proxy (default: 0.7)."`
	BrightnessWeight *float64 `help:"Weight of brightness in the depth proxy (default: 0.3)."`

	// Encoding options
	Bitrate *int     `help:"Target bitrate in kbps (0 = codec default)."`
	FPS     *float64 `help:"Output frame rate (default: preserve source)."`

	// Audio
	NoAudio bool `help:"Drop the source audio track."`

	// Summary
	Summary string `help:"Write a Markdown conversion summary to this path."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ProbeCmd defines the probe subcommand.
type ProbeCmd struct {
	Input string `arg:"" help:"Video file path."`
	JSON  bool   `help:"Print the result as JSON."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("vr180"),
		kong.Description("Convert 2D videos to VR180 side-by-side stereoscopic MP4."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the convert command.
func (cmd *ConvertCmd) Run() error {
	orchConfig, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	if !ffmpegbin.IsAvailable() {
		return fmt.Errorf("%s", l10n.T("ffmpeg not found; install it or set FFMPEG_PATH"))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	decoder := ffmpegdecoder.New()
	inspector := mediaprobe.New()
	encoder := h264encoder.New()

	// Create debug sink
	var sink ports.DebugSink
	if cmd.Debug {
		if err := fs.MkdirAll(cmd.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cmd.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// Create progress reporter
	var reporter *consoleprogress.Reporter
	var progress ports.Progress
	if !cmd.Quiet {
		reporter = consoleprogress.New(log)
		progress = reporter
	}

	// Create stages
	extractStage := extract.NewStage(decoder, inspector, log)
	depthStage := depth.NewStage(log)
	stereoStage := stereo.NewStage(log)
	composeStage := compose.NewStage(log)

	// Create orchestrator
	orch := orchestrator.New(
		extractStage,
		depthStage,
		stereoStage,
		composeStage,
		encoder,
		fs,
		sink,
		renderer,
		progress,
		log,
	)

	log.Info(l10n.F("Converting %s (%s preset)...", cmd.Input, cmd.Preset))

	result, err := orch.Run(ctx, orchConfig)
	if reporter != nil {
		reporter.Finish()
	}
	if err != nil {
		return err
	}

	if cmd.Summary != "" {
		if err := cmd.writeSummary(cmd.Summary, orchConfig, result); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		}
	}

	log.Info(l10n.F("Output saved to %s", cmd.Output))
	return nil
}

// buildConfig creates an orchestrator.Config from the config file, the
// preset, and CLI overrides.
func (cmd *ConvertCmd) buildConfig() (orchestrator.Config, error) {
	builder := vr180.NewConfigBuilder()

	// Config file first, so flags win
	if cmd.Config != "" {
		fileCfg, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return orchestrator.Config{}, fmt.Errorf("load config %s: %w", cmd.Config, err)
		}
		builder.
			WithMaxParallax(fileCfg.MaxParallax).
			WithDepthWeights(fileCfg.GradientWeight, fileCfg.BrightnessWeight).
			WithBlurRadii(fileCfg.PreBlurRadius, fileCfg.PostBlurRadius).
			WithCRF(fileCfg.EffectiveCRF()).
			WithBitrate(fileCfg.Bitrate).
			WithFPS(fileCfg.FPS).
			WithAudioPassthrough(fileCfg.Audio)
	} else {
		builder.WithQualityPreset(vr180.QualityPreset(cmd.Preset))
	}

	if cmd.CRF != nil {
		builder.WithCRF(*cmd.CRF)
	}
	if cmd.MaxParallax != nil {
		builder.WithMaxParallax(*cmd.MaxParallax)
	}
	if cmd.GradientWeight != nil || cmd.BrightnessWeight != nil {
		cfg := builder.Build()
		gw, bw := cfg.GradientWeight, cfg.BrightnessWeight
		if cmd.GradientWeight != nil {
			gw = *cmd.GradientWeight
		}
		if cmd.BrightnessWeight != nil {
			bw = *cmd.BrightnessWeight
		}
		builder.WithDepthWeights(gw, bw)
	}
	if cmd.Bitrate != nil {
		builder.WithBitrate(*cmd.Bitrate)
	}
	if cmd.FPS != nil {
		builder.WithFPS(*cmd.FPS)
	}
	if cmd.NoAudio {
		builder.WithAudioPassthrough(false)
	}

	return builder.Build().ToOrchestratorConfig(cmd.Input, cmd.Output), nil
}

// writeSummary renders a Markdown summary of the conversion.
func (cmd *ConvertCmd) writeSummary(path string, cfg orchestrator.Config, result orchestrator.RunResult) error {
	summary := summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			Path:   result.InputPath,
			Width:  result.SourceWidth,
			Height: result.SourceHeight,
			FPS:    result.FPS,
		}).
		WithSettings(summarizer.Settings{
			Quality:          cmd.Preset,
			MaxParallax:      result.MaxParallax,
			GradientWeight:   cfg.Depth.GradientWeight,
			BrightnessWeight: cfg.Depth.BrightnessWeight,
			CRF:              cfg.VideoCRF,
			AudioPassthrough: cfg.AudioPassthrough,
		}).
		WithVideo(summarizer.VideoInfo{
			Path:        result.OutputPath,
			FrameCount:  result.FrameCount,
			DurationMs:  result.DurationMs,
			FileSize:    result.FileSize,
			Width:       result.OutputWidth,
			Height:      result.OutputHeight,
			FPS:         result.FPS,
			AudioCopied: result.AudioCopied,
		}).
		Build()

	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	))
	return writer.Write(path, summary)
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	decoder := ffmpegdecoder.New()
	info, err := decoder.Probe(cmd.Input)
	if err != nil {
		return err
	}

	// ISO-BMFF containers get a cheap structural inspection too.
	var container *ports.ContainerInfo
	switch strings.ToLower(filepath.Ext(cmd.Input)) {
	case ".mp4", ".mov":
		if ci, err := mediaprobe.New().Inspect(cmd.Input); err == nil {
			container = &ci
		}
	}

	if cmd.JSON {
		out := struct {
			Media     ports.MediaInfo      `json:"media"`
			Container *ports.ContainerInfo `json:"container,omitempty"`
		}{Media: info, Container: container}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s\n", cmd.Input)
	fmt.Printf("  %s: %dx%d\n", l10n.T("Resolution"), info.Width, info.Height)
	fmt.Printf("  %s: %.2f fps\n", l10n.T("Frame rate"), info.FPS)
	fmt.Printf("  %s: %d ms\n", l10n.T("Duration"), info.DurationMs)
	fmt.Printf("  %s: ~%d\n", l10n.T("Frames"), info.FrameCount)
	fmt.Printf("  %s: %s\n", l10n.T("Codec"), info.Codec)
	fmt.Printf("  %s: %v\n", l10n.T("Audio"), info.HasAudio)
	if container != nil {
		fmt.Printf("  %s: %s (%s)\n", l10n.T("Container"), container.Brand, container.Codec)
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("vr180 version %s", version))
	return nil
}
