// Package ffmpegbin locates the ffmpeg and ffprobe executables.
package ffmpegbin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

var (
	// ErrNotFound is returned when an executable cannot be located.
	ErrNotFound = errors.New("ffmpegbin: executable not found")

	mu          sync.Mutex
	customPaths = map[string]string{}
)

// SetPath overrides the lookup for the named executable ("ffmpeg" or
// "ffprobe"). An empty path restores the default search.
func SetPath(name, path string) {
	mu.Lock()
	defer mu.Unlock()
	if path == "" {
		delete(customPaths, name)
		return
	}
	customPaths[name] = path
}

// FindFFmpeg locates the ffmpeg executable.
// Priority: SetPath override, FFMPEG_PATH env, PATH, common locations.
func FindFFmpeg() (string, error) {
	return find("ffmpeg", "FFMPEG_PATH")
}

// FindFFprobe locates the ffprobe executable.
// Priority: SetPath override, FFPROBE_PATH env, PATH, common locations.
func FindFFprobe() (string, error) {
	return find("ffprobe", "FFPROBE_PATH")
}

// IsAvailable reports whether both ffmpeg and ffprobe can be located.
func IsAvailable() bool {
	if _, err := FindFFmpeg(); err != nil {
		return false
	}
	_, err := FindFFprobe()
	return err == nil
}

func find(name, envVar string) (string, error) {
	mu.Lock()
	custom := customPaths[name]
	mu.Unlock()

	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s", ErrNotFound, custom)
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s=%s", ErrNotFound, envVar, envPath)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, p := range commonPaths(execName) {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func commonPaths(execName string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
			`C:\Program Files (x86)\ffmpeg\bin\` + execName,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/" + execName,
			"/usr/local/bin/" + execName,
			"/usr/bin/" + execName,
		}
	default:
		return []string{
			"/usr/bin/" + execName,
			"/usr/local/bin/" + execName,
			"/opt/homebrew/bin/" + execName,
			"/snap/bin/" + execName,
		}
	}
}
