package ffmpegdecoder

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/user/framesampler/pkg/adapters/ffmpegpath"
	"github.com/user/framesampler/pkg/ports"
)

func TestOpen_MissingFile(t *testing.T) {
	d := New()
	_, err := d.Open(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, ports.ErrCannotOpen) {
		t.Errorf("expected ErrCannotOpen, got %v", err)
	}
}

func TestStreamArgs(t *testing.T) {
	args := streamArgs("clip.mp4")

	want := map[string]string{
		"-i":       "clip.mp4",
		"-map":     "0:v:0",
		"-f":       "rawvideo",
		"-pix_fmt": "rgba",
		"-vsync":   "passthrough",
	}
	for name, v := range want {
		found := false
		for i := 0; i < len(args)-1; i++ {
			if args[i] == name && args[i+1] == v {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s %s in %v", name, v, args)
		}
	}

	noRotate, input := -1, -1
	for i, a := range args {
		switch a {
		case "-noautorotate":
			noRotate = i
		case "-i":
			input = i
		}
	}
	if noRotate < 0 || noRotate > input {
		t.Errorf("expected -noautorotate before -i: %v", args)
	}
}

// makeClip renders a small test clip, skipping when ffmpeg is unavailable.
func makeClip(t *testing.T, frames int) string {
	t.Helper()
	ffmpeg, err := ffmpegpath.FFmpeg()
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := ffmpegpath.FFprobe(); err != nil {
		t.Skip("ffprobe not available")
	}

	path := filepath.Join(t.TempDir(), "clip.mp4")
	cmd := exec.Command(ffmpeg, "-v", "error", "-y",
		"-f", "lavfi", "-i", "testsrc=size=64x48:rate=10",
		"-frames:v", strconv.Itoa(frames),
		"-pix_fmt", "yuv420p", "-c:v", "mpeg4",
		path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot render test clip: %v: %s", err, out)
	}
	return path
}

func TestDecoder_ReadFrames(t *testing.T) {
	path := makeClip(t, 20)

	src, err := New().Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	info := src.Info()
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", info.Width, info.Height)
	}
	if info.FrameCount != 20 {
		t.Errorf("expected 20 frames, got %d", info.FrameCount)
	}
	if info.FrameRate != 10 {
		t.Errorf("expected 10 fps, got %g", info.FrameRate)
	}

	// Forward, then backward to force a restart
	for _, idx := range []int{0, 5, 19, 3} {
		if err := src.Seek(idx); err != nil {
			t.Fatalf("Seek(%d) failed: %v", idx, err)
		}
		img, err := src.ReadNext(context.Background())
		if err != nil {
			t.Fatalf("ReadNext at %d failed: %v", idx, err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Errorf("frame %d: expected 64x48, got %dx%d", idx, b.Dx(), b.Dy())
		}
	}

	// Past the last frame
	if _, err := src.ReadNext(context.Background()); err != nil {
		t.Fatalf("ReadNext after 3 failed: %v", err)
	}
	if err := src.Seek(20); err == nil {
		t.Error("expected out-of-range seek to fail")
	}
}
