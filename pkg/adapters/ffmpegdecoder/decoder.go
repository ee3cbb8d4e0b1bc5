// Package ffmpegdecoder provides video decoding through an external ffmpeg
// process. Frames are streamed as raw RGBA over a pipe, so memory use stays
// bounded by one frame regardless of input length.
package ffmpegdecoder

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"

	"github.com/user/vr180/pkg/adapters/ffmpegbin"
	"github.com/user/vr180/pkg/ports"
)

// Decoder implements ports.VideoDecoder using ffmpeg and ffprobe.
type Decoder struct{}

// New creates a new Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Probe inspects a video file with ffprobe without decoding frames.
func (d *Decoder) Probe(path string) (ports.MediaInfo, error) {
	return probe(path)
}

// Open probes the file and starts an ffmpeg process streaming raw RGBA
// frames. The returned source must be closed by the caller.
func (d *Decoder) Open(path string) (ports.FrameSource, error) {
	info, err := probe(path)
	if err != nil {
		return nil, err
	}

	ffmpegPath, err := ffmpegbin.FindFFmpeg()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(ffmpegPath,
		"-v", "error",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	return &frameSource{
		info:   info,
		cmd:    cmd,
		stdout: stdout,
		stderr: &stderr,
	}, nil
}

// frameSource implements ports.FrameSource on top of the ffmpeg pipe.
type frameSource struct {
	info   ports.MediaInfo
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer

	mu     sync.Mutex
	index  int
	closed bool
	waited bool
}

// Next reads one raw RGBA frame from the pipe. Returns io.EOF after the
// last frame.
func (s *frameSource) Next() (ports.SourceFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ports.SourceFrame{}, io.EOF
	}

	img := image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	n, err := io.ReadFull(s.stdout, img.Pix)
	if err == io.EOF {
		if waitErr := s.wait(); waitErr != nil {
			return ports.SourceFrame{}, waitErr
		}
		return ports.SourceFrame{}, io.EOF
	}
	if err != nil {
		// A short read means the stream was cut mid-frame.
		s.wait()
		return ports.SourceFrame{}, fmt.Errorf("truncated frame %d (%d of %d bytes): %w\nffmpeg: %s",
			s.index, n, len(img.Pix), err, s.stderr.String())
	}

	frame := ports.SourceFrame{
		Index:       s.index,
		TimestampMs: timestampMs(s.index, s.info.FPS),
		Image:       img,
	}
	s.index++
	return frame, nil
}

// Info returns the probed media information.
func (s *frameSource) Info() ports.MediaInfo {
	return s.info
}

// Close stops the ffmpeg process. Safe to call more than once.
func (s *frameSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.stdout.Close()
	if !s.waited && s.cmd.Process != nil {
		s.cmd.Process.Kill()
		s.cmd.Wait()
		s.waited = true
	}
	return nil
}

// wait reaps the ffmpeg process after the stream ended.
func (s *frameSource) wait() error {
	if s.waited {
		return nil
	}
	s.waited = true
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg decode failed: %w\nstderr: %s", err, s.stderr.String())
	}
	return nil
}

func timestampMs(index int, fps float64) int {
	if fps <= 0 {
		return 0
	}
	return int(float64(index) * 1000.0 / fps)
}

// Ensure Decoder implements ports.VideoDecoder
var _ ports.VideoDecoder = (*Decoder)(nil)
