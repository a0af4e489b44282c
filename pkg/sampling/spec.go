// Package sampling converts a sampling request into the exact list of frame
// indices to extract, and names the resulting files.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidSpec is returned when a sampling request cannot be resolved.
var ErrInvalidSpec = errors.New("sampling: invalid spec")

// Unit selects how interval and point values are interpreted.
type Unit int

const (
	// Seconds interprets values as time offsets in seconds.
	Seconds Unit = iota
	// Frames interprets values as frame indices.
	Frames
)

// String returns the string representation of the unit.
func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Frames:
		return "frames"
	default:
		return "unknown"
	}
}

// ParseUnit parses "seconds" or "frames" (case-insensitive).
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seconds", "s", "sec":
		return Seconds, nil
	case "frames", "f":
		return Frames, nil
	default:
		return Seconds, fmt.Errorf("%w: unknown unit %q", ErrInvalidSpec, s)
	}
}

// Kind tags which selection of a Spec is populated.
type Kind int

const (
	// KindNone means neither an interval nor points were supplied.
	KindNone Kind = iota
	// KindInterval samples every Interval units starting at zero.
	KindInterval
	// KindPoints samples an explicit, ordered list of points.
	KindPoints
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInterval:
		return "interval"
	case KindPoints:
		return "points"
	default:
		return "none"
	}
}

// Spec is a caller-supplied sampling request.
// Exactly one of Interval or Points is meaningful, as selected by Kind.
type Spec struct {
	Unit     Unit
	Kind     Kind
	Interval float64
	Points   []float64
}

// IntervalSpec creates a Spec sampling every value units.
func IntervalSpec(unit Unit, value float64) Spec {
	return Spec{Unit: unit, Kind: KindInterval, Interval: value}
}

// PointsSpec creates a Spec sampling the given points in order.
func PointsSpec(unit Unit, points ...float64) Spec {
	copied := make([]float64, len(points))
	copy(copied, points)
	return Spec{Unit: unit, Kind: KindPoints, Points: copied}
}

// Validate checks the parts of s that do not depend on the video.
// The interval step is checked again by Resolve once the frame rate is known.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindInterval:
		if math.IsNaN(s.Interval) || math.IsInf(s.Interval, 0) {
			return fmt.Errorf("%w: interval must be finite", ErrInvalidSpec)
		}
		if s.Interval <= 0 {
			return fmt.Errorf("%w: interval must be positive, got %g", ErrInvalidSpec, s.Interval)
		}
	case KindPoints:
		for i, p := range s.Points {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				return fmt.Errorf("%w: point %d is not finite", ErrInvalidSpec, i)
			}
		}
	default:
		return fmt.Errorf("%w: either interval or points must be provided", ErrInvalidSpec)
	}
	if s.Unit != Seconds && s.Unit != Frames {
		return fmt.Errorf("%w: unknown unit %d", ErrInvalidSpec, s.Unit)
	}
	return nil
}

// String describes the sampling request for logs and summaries.
func (s Spec) String() string {
	switch s.Kind {
	case KindInterval:
		return fmt.Sprintf("every %g %s", s.Interval, s.Unit)
	case KindPoints:
		parts := make([]string, len(s.Points))
		for i, p := range s.Points {
			parts[i] = fmt.Sprintf("%g", p)
		}
		return fmt.Sprintf("%s [%s]", s.Unit, strings.Join(parts, ", "))
	default:
		return "none"
	}
}

// ToIndex converts a single value to a frame index, truncating toward zero.
// Values beyond the int range saturate at math.MaxInt or math.MinInt.
func ToIndex(value float64, unit Unit, frameRate float64) int {
	if unit == Seconds {
		value *= frameRate
	}
	return truncInt(value)
}

func truncInt(x float64) int {
	switch {
	case x >= math.MaxInt:
		return math.MaxInt
	case x <= math.MinInt:
		return math.MinInt
	default:
		return int(math.Trunc(x))
	}
}
