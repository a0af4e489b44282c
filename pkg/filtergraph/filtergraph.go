// Package filtergraph builds ffmpeg filter chains for frame selection and resizing.
package filtergraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/sampling"
)

// Filter is a single element of a filter chain.
type Filter interface {
	// Expr returns the filter in ffmpeg filtergraph syntax.
	Expr() string
}

// Select keeps decoded frames by index.
// Exactly one of Every or Frames is used: Every > 0 keeps every Nth frame
// starting at 0, otherwise Frames lists the kept indices in ascending order.
type Select struct {
	Every  int
	Frames []int
}

// SelectFor derives the selection filter from a sampling spec.
// Point indices outside [0, frameCount) are omitted and duplicates collapse,
// since the filter can emit each decoded frame at most once.
func SelectFor(spec sampling.Spec, frameRate float64, frameCount int) (Select, error) {
	if err := spec.Validate(); err != nil {
		return Select{}, err
	}

	if spec.Kind == sampling.KindInterval {
		step, err := sampling.Step(spec, frameRate)
		if err != nil {
			return Select{}, err
		}
		return Select{Every: step}, nil
	}

	seen := make(map[int]bool, len(spec.Points))
	frames := make([]int, 0, len(spec.Points))
	for _, p := range spec.Points {
		idx := sampling.ToIndex(p, spec.Unit, frameRate)
		if idx < 0 || idx >= frameCount || seen[idx] {
			continue
		}
		seen[idx] = true
		frames = append(frames, idx)
	}
	sort.Ints(frames)
	return Select{Frames: frames}, nil
}

// Expr implements Filter.
func (s Select) Expr() string {
	if s.Every > 0 {
		return fmt.Sprintf("select='not(mod(n,%d))'", s.Every)
	}
	if len(s.Frames) == 0 {
		return "select=0"
	}
	terms := make([]string, len(s.Frames))
	for i, f := range s.Frames {
		terms[i] = fmt.Sprintf("eq(n,%d)", f)
	}
	return fmt.Sprintf("select='%s'", strings.Join(terms, "+"))
}

// Keeps reports whether the filter passes decoded frame n.
func (s Select) Keeps(n int) bool {
	if n < 0 {
		return false
	}
	if s.Every > 0 {
		return n%s.Every == 0
	}
	i := sort.SearchInts(s.Frames, n)
	return i < len(s.Frames) && s.Frames[i] == n
}

// Emitted returns the frame indices the filter outputs, in output order,
// for a source of frameCount frames.
func (s Select) Emitted(frameCount int) []int {
	var out []int
	if s.Every > 0 {
		for n := 0; n < frameCount; n += s.Every {
			out = append(out, n)
		}
		return out
	}
	for _, f := range s.Frames {
		if f < frameCount {
			out = append(out, f)
		}
	}
	return out
}

// Scale resizes frames. Width/Height are absolute when set, otherwise
// Factor is applied to the input dimensions.
type Scale struct {
	Width  int
	Height int
	Factor float64
}

// ScaleFor converts a resize spec into a scale filter. When the source
// resolution is known the dimensions are computed by Resize.Apply so they
// match in-process resizing exactly. ok is false for a no-op resize.
func ScaleFor(r sampling.Resize, info ports.VideoInfo) (Scale, bool) {
	switch r.Kind {
	case sampling.ResizeDimensions:
		return Scale{Width: r.Width, Height: r.Height}, true
	case sampling.ResizeScale:
		if info.Width > 0 && info.Height > 0 {
			w, h := r.Apply(info.Width, info.Height)
			return Scale{Width: w, Height: h}, true
		}
		return Scale{Factor: r.Factor}, true
	default:
		return Scale{}, false
	}
}

// Expr implements Filter.
func (s Scale) Expr() string {
	if s.Width > 0 && s.Height > 0 {
		return fmt.Sprintf("scale=%d:%d", s.Width, s.Height)
	}
	// Clamped to 1 like Resize.Apply; commas are escaped inside the chain.
	f := strconv.FormatFloat(s.Factor, 'f', -1, 64)
	return fmt.Sprintf(`scale=max(1\,trunc(iw*%s)):max(1\,trunc(ih*%s))`, f, f)
}

// Compose joins filters into a single chain.
func Compose(filters ...Filter) string {
	exprs := make([]string, 0, len(filters))
	for _, f := range filters {
		exprs = append(exprs, f.Expr())
	}
	return strings.Join(exprs, ",")
}

// Chain builds the selection and optional scale chain for one extraction.
func Chain(spec sampling.Spec, resize sampling.Resize, info ports.VideoInfo) (string, Select, error) {
	sel, err := SelectFor(spec, info.FrameRate, info.FrameCount)
	if err != nil {
		return "", Select{}, err
	}
	filters := []Filter{sel}
	if scale, ok := ScaleFor(resize, info); ok {
		filters = append(filters, scale)
	}
	return Compose(filters...), sel, nil
}
