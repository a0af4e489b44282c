package orchestrator

import (
	"context"
	"os/exec"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/user/framesampler/pkg/adapters/ffmpegdecoder"
	"github.com/user/framesampler/pkg/adapters/ffmpegpath"
	"github.com/user/framesampler/pkg/adapters/ffmpegtranscoder"
	"github.com/user/framesampler/pkg/adapters/ggrenderer"
	"github.com/user/framesampler/pkg/adapters/logger"
	"github.com/user/framesampler/pkg/adapters/nullsink"
	"github.com/user/framesampler/pkg/adapters/osfilesystem"
	"github.com/user/framesampler/pkg/adapters/prommetrics"
	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/sampling"
	"github.com/user/framesampler/pkg/stages/contactsheet"
	"github.com/user/framesampler/pkg/stages/parallel"
	"github.com/user/framesampler/pkg/stages/sequential"
)

func renderClip(t *testing.T, frames int) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping ffmpeg integration test in short mode")
	}
	ffmpeg, err := ffmpegpath.FFmpeg()
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := ffmpegpath.FFprobe(); err != nil {
		t.Skip("ffprobe not available")
	}

	path := filepath.Join(t.TempDir(), "clip.mp4")
	cmd := exec.Command(ffmpeg, "-v", "error", "-y",
		"-f", "lavfi", "-i", "testsrc=size=96x64:rate=10",
		"-frames:v", strconv.Itoa(frames),
		"-pix_fmt", "yuv420p", "-c:v", "mpeg4",
		path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot render test clip: %v: %s", err, out)
	}
	return path
}

func newRealOrchestrator() (*Orchestrator, *ggrenderer.Renderer) {
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	decoder := ffmpegdecoder.New()
	transcoder := ffmpegtranscoder.New()
	sink := nullsink.New()
	log := logger.NewNoop()

	return New(
		sequential.NewStage(decoder, renderer, fs, log),
		parallel.NewStage(decoder, transcoder, fs, sink, log),
		contactsheet.NewStage(renderer, fs, log),
		transcoder,
		fs,
		sink,
		prommetrics.New(),
		log,
	), renderer
}

func TestIntegration_BackendsAgreeOnRealVideo(t *testing.T) {
	clip := renderClip(t, 40)
	orch, renderer := newRealOrchestrator()
	fs := osfilesystem.New()

	tests := []struct {
		name   string
		spec   sampling.Spec
		resize sampling.Resize
	}{
		{"interval seconds", sampling.IntervalSpec(sampling.Seconds, 1), sampling.NoResize()},
		{"points frames", sampling.PointsSpec(sampling.Frames, 39, 0, 17, 17, 100), sampling.ScaleBy(0.5)},
		{"dimensions", sampling.IntervalSpec(sampling.Frames, 15), sampling.ToDimensions(40, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names [2][]string
			var sizes [2][][2]int

			for i, parallelMode := range []bool{false, true} {
				cfg := DefaultConfig()
				cfg.SourcePath = clip
				cfg.OutputDir = filepath.Join(t.TempDir(), "run")
				cfg.Spec = tt.spec
				cfg.Resize = tt.resize
				cfg.Parallel = parallelMode
				cfg.Threads = 2
				cfg.ContactSheet = true

				result, err := orch.Run(context.Background(), cfg)
				if err != nil {
					t.Fatalf("parallel=%v: %v", parallelMode, err)
				}
				if len(result.Extract.Skipped) != 0 {
					t.Errorf("parallel=%v: unexpected skips %+v", parallelMode, result.Extract.Skipped)
				}
				if result.ContactSheetPath == "" {
					t.Errorf("parallel=%v: expected a contact sheet", parallelMode)
				}

				for _, f := range result.Extract.Written {
					names[i] = append(names[i], filepath.Base(f.Path))
					data, err := fs.ReadFile(f.Path)
					if err != nil {
						t.Fatalf("read %s: %v", f.Path, err)
					}
					img, err := renderer.DecodeImage(data, ports.FormatPNG)
					if err != nil {
						t.Fatalf("decode %s: %v", f.Path, err)
					}
					b := img.Bounds()
					sizes[i] = append(sizes[i], [2]int{b.Dx(), b.Dy()})
				}
			}

			if !reflect.DeepEqual(names[0], names[1]) {
				t.Errorf("file names differ:\nsequential %v\nparallel   %v", names[0], names[1])
			}
			if !reflect.DeepEqual(sizes[0], sizes[1]) {
				t.Errorf("dimensions differ:\nsequential %v\nparallel   %v", sizes[0], sizes[1])
			}
		})
	}
}
