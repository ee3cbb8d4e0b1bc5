// Package mediaprobe inspects ISO-BMFF containers with mp4ff. It parses box
// structure only, so corrupted or truncated files are caught cheaply before
// any decoder process is spawned.
package mediaprobe

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/vr180/pkg/ports"
)

// Inspector implements ports.ContainerInspector for MP4/MOV files.
type Inspector struct{}

// New creates a new Inspector.
func New() *Inspector {
	return &Inspector{}
}

// Inspect parses the container structure of the file at path.
func (i *Inspector) Inspect(path string) (ports.ContainerInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.ContainerInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return i.InspectReader(f)
}

// InspectReader parses the container structure from an io.ReadSeeker.
func (i *Inspector) InspectReader(reader io.ReadSeeker) (ports.ContainerInfo, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return ports.ContainerInfo{}, fmt.Errorf("decode container: %w", err)
	}

	info := ports.ContainerInfo{
		Fragmented: mp4File.IsFragmented(),
	}
	if mp4File.Ftyp != nil {
		info.Brand = mp4File.Ftyp.MajorBrand()
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.ContainerInfo{}, fmt.Errorf("no moov box")
	}

	info.TrackCount = len(moov.Traks)
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		switch trak.Mdia.Hdlr.HandlerType {
		case "vide":
			fillVideoTrack(&info, trak)
		case "soun":
			info.HasAudio = true
		}
	}

	if info.Codec == "" {
		return ports.ContainerInfo{}, fmt.Errorf("no video track found")
	}
	return info, nil
}

// fillVideoTrack extracts codec, dimensions, and duration from the first
// video track.
func fillVideoTrack(info *ports.ContainerInfo, trak *mp4.TrakBox) {
	if info.Codec != "" {
		return
	}

	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsd != nil {
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			switch child.Type() {
			case "avc1", "avc3", "av01", "hvc1", "hev1", "vp09":
				info.Codec = child.Type()
			}
		}
	}
	if info.Codec == "" {
		info.Codec = "unknown"
	}

	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		info.DurationMs = int(trak.Mdia.Mdhd.Duration * 1000 / uint64(trak.Mdia.Mdhd.Timescale))
	}
}

// Ensure Inspector implements ports.ContainerInspector
var _ ports.ContainerInspector = (*Inspector)(nil)
