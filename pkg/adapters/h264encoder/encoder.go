// Package h264encoder provides H.264 MP4 encoding through an external
// ffmpeg process. Raw RGBA frames are piped to stdin and the finished MP4
// is collected from a temporary file.
package h264encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/user/vr180/pkg/adapters/ffmpegbin"
	"github.com/user/vr180/pkg/ports"
)

// Encoder implements ports.VideoEncoder using ffmpeg (libx264).
type Encoder struct {
	mu sync.Mutex

	width   int
	height  int
	fps     float64
	options ports.EncoderOptions

	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	tempPath   string
	frameCount int
	closed     bool
}

// New creates a new H.264 encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin initializes the encoder and starts the ffmpeg process.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ffmpegPath, err := ffmpegbin.FindFFmpeg()
	if err != nil {
		return err
	}

	e.width = width
	e.height = height
	e.fps = fps
	e.options = opts
	e.frameCount = 0
	e.closed = false
	e.stderr.Reset()

	tmpFile, err := os.CreateTemp("", "vr180encode_*.mp4")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	e.tempPath = tmpFile.Name()
	tmpFile.Close()

	e.cmd = exec.Command(ffmpegPath, e.buildArgs()...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	return nil
}

// buildArgs assembles the ffmpeg command line for the current session.
func (e *Encoder) buildArgs() []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", e.width, e.height),
		"-r", fmt.Sprintf("%.2f", e.fps),
		"-i", "pipe:0",
	}

	audio := e.options.AudioSourcePath != ""
	if audio {
		args = append(args, "-i", e.options.AudioSourcePath)
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
	)

	// Convert our 0-63 scale to x264's CRF (0-51).
	if q := e.options.Quality; q > 0 && q <= 63 {
		crf := q * 51 / 63
		if crf > 51 {
			crf = 51
		}
		args = append(args, "-crf", fmt.Sprintf("%d", crf))
	} else {
		args = append(args, "-crf", "23")
	}

	if e.options.Bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", e.options.Bitrate))
	}

	if audio {
		// The trailing ? tolerates sources without an audio track.
		args = append(args,
			"-map", "0:v:0",
			"-map", "1:a:0?",
			"-c:a", "aac",
			"-b:a", "128k",
			"-shortest",
		)
	}

	args = append(args,
		"-profile:v", "main",
		"-movflags", "+faststart",
		e.tempPath,
	)
	return args
}

// EncodeFrame writes a single frame to the ffmpeg pipe.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return ErrNotInitialized
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Dx() != e.width || bounds.Dy() != e.height || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, e.width, e.height))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	if _, err := e.stdin.Write(rgba.Pix); err != nil {
		return fmt.Errorf("write frame: %w\nffmpeg: %s", err, e.stderr.String())
	}

	e.frameCount++
	return nil
}

// End finalizes encoding and returns the MP4 data.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return nil, ErrNotInitialized
	}
	if e.frameCount == 0 {
		e.abortLocked()
		return nil, ErrNoFrames
	}

	e.stdin.Close()
	e.stdin = nil
	e.closed = true

	if err := e.cmd.Wait(); err != nil {
		os.Remove(e.tempPath)
		e.tempPath = ""
		return nil, fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, e.stderr.String())
	}

	data, err := os.ReadFile(e.tempPath)
	os.Remove(e.tempPath)
	e.tempPath = ""
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	return data, nil
}

// Abort discards the session: the ffmpeg process is killed and the
// temporary output removed.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.abortLocked()
}

func (e *Encoder) abortLocked() {
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if e.cmd != nil && e.cmd.Process != nil && !e.closed {
		e.cmd.Process.Kill()
		e.cmd.Wait()
	}
	if e.tempPath != "" {
		os.Remove(e.tempPath)
		e.tempPath = ""
	}
	e.closed = true
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
