// Package extract implements the frame extraction stage.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/vr180/pkg/pipeline"
	"github.com/user/vr180/pkg/ports"
)

// supportedExtensions is the accepted set of input formats.
var supportedExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

// isobmffExtensions are the formats that get a cheap container sanity check
// before the decoder process is spawned.
var isobmffExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
}

// SupportedExtensions returns the accepted input extensions, sorted.
func SupportedExtensions() []string {
	return []string{".avi", ".mkv", ".mov", ".mp4"}
}

// Stage validates the input file and opens a lazy frame source.
type Stage struct {
	decoder   ports.VideoDecoder
	inspector ports.ContainerInspector
	logger    ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(decoder ports.VideoDecoder, inspector ports.ContainerInspector, logger ports.Logger) *Stage {
	return &Stage{
		decoder:   decoder,
		inspector: inspector,
		logger:    logger.WithComponent("extract"),
	}
}

// Execute validates the input and opens it for decoding. The returned
// source is forward-only; the caller owns it and must close it.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{}

	ext := strings.ToLower(filepath.Ext(input.Path))
	if !supportedExtensions[ext] {
		return result, fmt.Errorf("%w: %q (accepted: %s)",
			pipeline.ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions(), ", "))
	}

	// Reject broken ISO-BMFF containers before decoding starts.
	if isobmffExtensions[ext] && s.inspector != nil {
		info, err := s.inspector.Inspect(input.Path)
		if err != nil {
			return result, fmt.Errorf("%w: inspect container: %v", pipeline.ErrUnreadableMedia, err)
		}
		s.logger.Debug("Container check passed: brand=%s codec=%s", info.Brand, info.Codec)
	}

	source, err := s.decoder.Open(input.Path)
	if err != nil {
		return result, fmt.Errorf("%w: %v", pipeline.ErrUnreadableMedia, err)
	}

	info := source.Info()
	if info.Width <= 0 || info.Height <= 0 {
		source.Close()
		return result, fmt.Errorf("%w: no video stream in %s", pipeline.ErrUnreadableMedia, input.Path)
	}

	s.logger.Debug("Opened %s: %dx%d @ %.2f fps, ~%d frames",
		input.Path, info.Width, info.Height, info.FPS, info.FrameCount)

	result.Source = source
	result.Info = info
	return result, nil
}
