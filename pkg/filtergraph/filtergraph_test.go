package filtergraph

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/user/framesampler/pkg/mocks"
	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/sampling"
)

func TestSelect_Expr(t *testing.T) {
	tests := []struct {
		name string
		sel  Select
		want string
	}{
		{"every", Select{Every: 60}, "select='not(mod(n,60))'"},
		{"frames", Select{Frames: []int{0, 149, 299}}, "select='eq(n,0)+eq(n,149)+eq(n,299)'"},
		{"empty", Select{}, "select=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Expr(); got != tt.want {
				t.Errorf("Expr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScale_Expr(t *testing.T) {
	if got := (Scale{Width: 320, Height: 240}).Expr(); got != "scale=320:240" {
		t.Errorf("unexpected absolute scale %q", got)
	}
	if got := (Scale{Factor: 0.5}).Expr(); got != `scale=max(1\,trunc(iw*0.5)):max(1\,trunc(ih*0.5))` {
		t.Errorf("unexpected factor scale %q", got)
	}
	// Tiny factors never produce a zero dimension
	if got := (Scale{Factor: 0.001}).Expr(); !strings.Contains(got, `max(1\,trunc(iw*0.001))`) {
		t.Errorf("expected width clamped to 1, got %q", got)
	}
}

func TestScaleFor(t *testing.T) {
	info := ports.VideoInfo{FrameRate: 30, FrameCount: 300, Width: 641, Height: 481}

	if _, ok := ScaleFor(sampling.NoResize(), info); ok {
		t.Error("expected no scale filter for NoResize")
	}

	scale, ok := ScaleFor(sampling.ScaleBy(0.5), info)
	if !ok {
		t.Fatal("expected scale filter")
	}
	w, h := sampling.ScaleBy(0.5).Apply(info.Width, info.Height)
	if scale.Width != w || scale.Height != h {
		t.Errorf("expected %dx%d to match in-process resize, got %dx%d", w, h, scale.Width, scale.Height)
	}
	if scale.Width != 320 || scale.Height != 240 {
		t.Errorf("expected floor(w*0.5) x floor(h*0.5) = 320x240, got %dx%d", scale.Width, scale.Height)
	}

	scale, _ = ScaleFor(sampling.ScaleBy(0.5), ports.VideoInfo{FrameRate: 30, FrameCount: 10})
	if scale.Factor != 0.5 || scale.Width != 0 {
		t.Errorf("expected factor scale when resolution is unknown, got %+v", scale)
	}

	scale, _ = ScaleFor(sampling.ToDimensions(100, 50), info)
	if scale.Expr() != "scale=100:50" {
		t.Errorf("unexpected dimensions scale %q", scale.Expr())
	}
}

func TestChain(t *testing.T) {
	info := ports.VideoInfo{FrameRate: 30, FrameCount: 300, Width: 640, Height: 480}

	chain, _, err := Chain(sampling.IntervalSpec(sampling.Seconds, 2), sampling.ScaleBy(0.5), info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "select='not(mod(n,60))',scale=320:240"; chain != want {
		t.Errorf("expected %q, got %q", want, chain)
	}

	chain, _, err = Chain(sampling.PointsSpec(sampling.Frames, 0, 149, 299, 350), sampling.NoResize(), info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "select='eq(n,0)+eq(n,149)+eq(n,299)'"; chain != want {
		t.Errorf("expected %q, got %q", want, chain)
	}

	if _, _, err := Chain(sampling.Spec{}, sampling.NoResize(), info); !errors.Is(err, sampling.ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
}

// The set of frames implied by the filter expression must equal the resolved target set.
func TestSelect_MatchesResolve(t *testing.T) {
	specs := []sampling.Spec{
		sampling.IntervalSpec(sampling.Seconds, 2),
		sampling.IntervalSpec(sampling.Seconds, 0.5),
		sampling.IntervalSpec(sampling.Frames, 7),
		sampling.IntervalSpec(sampling.Frames, 7.9),
		sampling.IntervalSpec(sampling.Frames, 1),
		sampling.PointsSpec(sampling.Frames, 0, 149, 299, 350),
		sampling.PointsSpec(sampling.Seconds, 9.5, 0.1, 3.33, 3.34, -1, 42),
		sampling.PointsSpec(sampling.Frames, 5.5, 5.2, 0),
		sampling.PointsSpec(sampling.Frames),
	}

	for _, frameRate := range []float64{24, 29.97, 30} {
		for _, frameCount := range []int{0, 1, 299, 300} {
			for _, spec := range specs {
				targets, err := sampling.Resolve(spec, frameRate, frameCount)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", spec, err)
				}
				sel, err := SelectFor(spec, frameRate, frameCount)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", spec, err)
				}

				want := uniqueSorted(targets)
				fromExpr := mocks.EvalSelect(sel.Expr(), frameCount)
				if !reflect.DeepEqual(normalize(fromExpr), want) {
					t.Errorf("%s @ %g fps, %d frames: expression keeps %v, resolve has %v",
						spec, frameRate, frameCount, fromExpr, want)
				}

				if !reflect.DeepEqual(normalize(sel.Emitted(frameCount)), want) {
					t.Errorf("%s: Emitted() = %v, want %v", spec, sel.Emitted(frameCount), want)
				}

				for n := 0; n < frameCount; n++ {
					if sel.Keeps(n) != contains(want, n) {
						t.Errorf("%s: Keeps(%d) disagrees with resolve", spec, n)
						break
					}
				}
			}
		}
	}
}

func uniqueSorted(targets []sampling.Target) []int {
	seen := make(map[int]bool)
	out := []int{}
	for _, tg := range targets {
		if !seen[tg.FrameIndex] {
			seen[tg.FrameIndex] = true
			out = append(out, tg.FrameIndex)
		}
	}
	sort.Ints(out)
	return out
}

func normalize(in []int) []int {
	if in == nil {
		return []int{}
	}
	return in
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
