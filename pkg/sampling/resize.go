package sampling

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidResize is returned for malformed resize configuration.
var ErrInvalidResize = errors.New("sampling: invalid resize")

// ResizeKind tags the variant of a Resize.
type ResizeKind int

const (
	// ResizeNone passes frames through unchanged.
	ResizeNone ResizeKind = iota
	// ResizeScale multiplies both axes by Factor.
	ResizeScale
	// ResizeDimensions sets an absolute Width x Height.
	ResizeDimensions
)

// Resize describes how extracted frames are resized.
// Both backends derive output dimensions from Apply.
type Resize struct {
	Kind   ResizeKind
	Factor float64
	Width  int
	Height int
}

// NoResize returns the pass-through resize.
func NoResize() Resize {
	return Resize{Kind: ResizeNone}
}

// ScaleBy returns a uniform scale resize.
func ScaleBy(factor float64) Resize {
	return Resize{Kind: ResizeScale, Factor: factor}
}

// ToDimensions returns an absolute-size resize. Aspect ratio is not preserved.
func ToDimensions(width, height int) Resize {
	return Resize{Kind: ResizeDimensions, Width: width, Height: height}
}

// IsNone reports whether the resize is a no-op.
func (r Resize) IsNone() bool {
	return r.Kind == ResizeNone
}

// Validate checks the resize parameters.
func (r Resize) Validate() error {
	switch r.Kind {
	case ResizeNone:
		return nil
	case ResizeScale:
		if math.IsNaN(r.Factor) || math.IsInf(r.Factor, 0) || r.Factor <= 0 {
			return fmt.Errorf("%w: scale factor must be positive, got %g", ErrInvalidResize, r.Factor)
		}
		return nil
	case ResizeDimensions:
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidResize, r.Width, r.Height)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidResize, r.Kind)
	}
}

// Apply returns the output dimensions for a source of width x height.
// Scaled dimensions are floored and never smaller than 1.
func (r Resize) Apply(width, height int) (int, int) {
	switch r.Kind {
	case ResizeScale:
		return scaleAxis(width, r.Factor), scaleAxis(height, r.Factor)
	case ResizeDimensions:
		return r.Width, r.Height
	default:
		return width, height
	}
}

func scaleAxis(v int, factor float64) int {
	s := int(math.Floor(float64(v) * factor))
	if s < 1 {
		return 1
	}
	return s
}

// String returns the textual form accepted by ParseResize.
func (r Resize) String() string {
	switch r.Kind {
	case ResizeScale:
		return strconv.FormatFloat(r.Factor, 'f', -1, 64)
	case ResizeDimensions:
		return fmt.Sprintf("%dx%d", r.Width, r.Height)
	default:
		return "none"
	}
}

// ParseResize parses "none", a scale factor such as "0.5", or dimensions such as "640x360".
func ParseResize(s string) (Resize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return NoResize(), nil
	}

	if w, h, ok := strings.Cut(s, "x"); ok {
		width, err := strconv.Atoi(w)
		if err != nil {
			return Resize{}, fmt.Errorf("%w: invalid width %q", ErrInvalidResize, w)
		}
		height, err := strconv.Atoi(h)
		if err != nil {
			return Resize{}, fmt.Errorf("%w: invalid height %q", ErrInvalidResize, h)
		}
		r := ToDimensions(width, height)
		return r, r.Validate()
	}

	factor, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Resize{}, fmt.Errorf("%w: %q is neither a factor nor WxH", ErrInvalidResize, s)
	}
	r := ScaleBy(factor)
	return r, r.Validate()
}
