package ports

// ContainerInfo describes an ISO-BMFF container without decoding any media.
type ContainerInfo struct {
	Brand      string // Major brand from the ftyp box
	Codec      string // Sample entry of the first video track (avc1, av01, ...)
	Width      int
	Height     int
	DurationMs int
	TrackCount int
	Fragmented bool
	HasAudio   bool
}

// ContainerInspector validates and inspects video containers cheaply,
// before any frame decoding is attempted.
type ContainerInspector interface {
	// Inspect parses the container structure of the file at path.
	// A corrupted or truncated container is reported as an error.
	Inspect(path string) (ContainerInfo, error)
}
