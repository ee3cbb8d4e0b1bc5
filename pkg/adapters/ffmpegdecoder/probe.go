package ffmpegdecoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/vr180/pkg/adapters/ffmpegbin"
	"github.com/user/vr180/pkg/ports"
)

// ffprobe JSON output (the subset we ask for).
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
	Duration   string `json:"duration"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

// probe runs ffprobe and maps its output to ports.MediaInfo.
func probe(path string) (ports.MediaInfo, error) {
	ffprobePath, err := ffmpegbin.FindFFprobe()
	if err != nil {
		return ports.MediaInfo{}, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "error",
		"-show_entries", "stream=codec_type,codec_name,width,height,r_frame_rate,nb_frames,duration",
		"-show_entries", "format=duration,size",
		"-of", "json",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ports.MediaInfo{}, fmt.Errorf("ffprobe failed: %w\nstderr: %s", err, stderr.String())
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return ports.MediaInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var video *probeStream
	hasAudio := false
	for i := range out.Streams {
		switch out.Streams[i].CodecType {
		case "video":
			if video == nil {
				video = &out.Streams[i]
			}
		case "audio":
			hasAudio = true
		}
	}
	if video == nil {
		return ports.MediaInfo{}, fmt.Errorf("no video stream in %s", path)
	}

	fps := parseRate(video.RFrameRate)
	durationMs := int(parseFloat(video.Duration) * 1000)
	if durationMs == 0 {
		durationMs = int(parseFloat(out.Format.Duration) * 1000)
	}

	frameCount, _ := strconv.Atoi(video.NbFrames)
	if frameCount == 0 && fps > 0 {
		frameCount = int(float64(durationMs) / 1000.0 * fps)
	}

	size, _ := strconv.ParseInt(out.Format.Size, 10, 64)

	return ports.MediaInfo{
		Width:      video.Width,
		Height:     video.Height,
		FPS:        fps,
		FrameCount: frameCount,
		DurationMs: durationMs,
		HasAudio:   hasAudio,
		SizeBytes:  size,
		Codec:      video.CodecName,
	}, nil
}

// parseRate parses an ffprobe rational like "30000/1001".
func parseRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return parseFloat(s)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
