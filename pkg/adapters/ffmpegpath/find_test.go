package ffmpegpath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSetFFmpegPath_Missing(t *testing.T) {
	SetFFmpegPath(filepath.Join(t.TempDir(), "nope", "ffmpeg"))
	defer SetFFmpegPath("")

	if _, err := FFmpeg(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if Available() {
		t.Error("expected Available to be false")
	}
}

func TestSetFFmpegPath_SiblingProbe(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, execName("ffmpeg"))
	ffprobe := filepath.Join(dir, execName("ffprobe"))
	for _, p := range []string{ffmpeg, ffprobe} {
		if err := os.WriteFile(p, []byte{}, 0o755); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	SetFFmpegPath(ffmpeg)
	defer SetFFmpegPath("")

	got, err := FFmpeg()
	if err != nil || got != ffmpeg {
		t.Fatalf("FFmpeg() = %q, %v; want %q", got, err, ffmpeg)
	}
	got, err = FFprobe()
	if err != nil || got != ffprobe {
		t.Fatalf("FFprobe() = %q, %v; want %q", got, err, ffprobe)
	}
}

func TestEnvPath(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, execName("ffmpeg"))
	if err := os.WriteFile(ffmpeg, []byte{}, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FFMPEG_PATH", ffmpeg)

	got, err := FFmpeg()
	if err != nil || got != ffmpeg {
		t.Errorf("FFmpeg() = %q, %v; want %q", got, err, ffmpeg)
	}
}

func TestSiblingName(t *testing.T) {
	tests := map[string]string{
		"ffmpeg":     "ffprobe",
		"ffmpeg-6":   "ffprobe-6",
		"ffmpeg.exe": "ffprobe.exe",
	}
	for in, want := range tests {
		if got := siblingName(in, "ffprobe"); got != want {
			t.Errorf("siblingName(%q) = %q, want %q", in, got, want)
		}
	}
}
