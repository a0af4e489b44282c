// Package ffmpegpath locates the ffmpeg and ffprobe executables.
package ffmpegpath

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// ErrNotFound is returned when an executable cannot be located.
var ErrNotFound = errors.New("executable not found")

var (
	mu         sync.RWMutex
	customPath string
)

// SetFFmpegPath pins the ffmpeg executable. ffprobe is then looked up in
// the same directory first. An empty path restores automatic lookup.
func SetFFmpegPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	customPath = path
}

// FFmpeg returns the path of the ffmpeg executable.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) PATH, 4) common locations.
func FFmpeg() (string, error) {
	return find("ffmpeg")
}

// FFprobe returns the path of the ffprobe executable, using the same
// priority as FFmpeg with the pinned directory searched for ffprobe.
func FFprobe() (string, error) {
	return find("ffprobe")
}

// Available reports whether ffmpeg can be located.
func Available() bool {
	_, err := FFmpeg()
	return err == nil
}

func find(tool string) (string, error) {
	mu.RLock()
	custom := customPath
	mu.RUnlock()

	if custom != "" {
		return pinned(tool, custom, "custom path")
	}
	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		return pinned(tool, envPath, "FFMPEG_PATH")
	}

	name := execName(tool)
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	for _, dir := range commonDirs() {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, tool)
}

// pinned resolves tool relative to a configured ffmpeg path.
func pinned(tool, ffmpegPath, source string) (string, error) {
	if tool == "ffmpeg" {
		if _, err := os.Stat(ffmpegPath); err != nil {
			return "", fmt.Errorf("%w: %s %s", ErrNotFound, source, ffmpegPath)
		}
		return ffmpegPath, nil
	}

	sibling := filepath.Join(filepath.Dir(ffmpegPath), siblingName(filepath.Base(ffmpegPath), tool))
	if _, err := os.Stat(sibling); err == nil {
		return sibling, nil
	}
	if path, err := exec.LookPath(execName(tool)); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s next to %s", ErrNotFound, tool, ffmpegPath)
}

// siblingName maps "ffmpeg-6" to "ffprobe-6" and keeps any .exe suffix.
func siblingName(ffmpegBase, tool string) string {
	if strings.HasPrefix(ffmpegBase, "ffmpeg") {
		return tool + strings.TrimPrefix(ffmpegBase, "ffmpeg")
	}
	return execName(tool)
}

func execName(tool string) string {
	if runtime.GOOS == "windows" {
		return tool + ".exe"
	}
	return tool
}

func commonDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
		}
	default:
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
}
