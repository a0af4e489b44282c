package sampling

import "fmt"

// Target is one entry of a resolved target list.
type Target struct {
	SequenceIndex int `json:"sequence_index"`
	FrameIndex    int `json:"frame_index"`
}

// Step returns the interval step in frames for an interval spec.
func Step(s Spec, frameRate float64) (int, error) {
	if s.Kind != KindInterval {
		return 0, fmt.Errorf("%w: spec is not an interval", ErrInvalidSpec)
	}
	step := ToIndex(s.Interval, s.Unit, frameRate)
	if step <= 0 {
		return 0, fmt.Errorf("%w: interval %g %s yields step %d at %.3f fps",
			ErrInvalidSpec, s.Interval, s.Unit, step, frameRate)
	}
	return step, nil
}

// Resolve converts a spec into the ordered list of frame indices to extract.
//
// Interval specs enumerate 0, step, 2*step, ... below frameCount. Point specs
// keep their input order. Indices outside [0, frameCount) are dropped, never
// clamped. Resolve has no side effects.
func Resolve(s Spec, frameRate float64, frameCount int) ([]Target, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var indices []int
	switch s.Kind {
	case KindInterval:
		step, err := Step(s, frameRate)
		if err != nil {
			return nil, err
		}
		for i := 0; i < frameCount; i += step {
			indices = append(indices, i)
		}
	case KindPoints:
		indices = make([]int, 0, len(s.Points))
		for _, p := range s.Points {
			indices = append(indices, ToIndex(p, s.Unit, frameRate))
		}
	}

	targets := make([]Target, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= frameCount {
			continue
		}
		targets = append(targets, Target{
			SequenceIndex: len(targets),
			FrameIndex:    idx,
		})
	}
	return targets, nil
}
