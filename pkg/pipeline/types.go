package pipeline

import (
	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/sampling"
)

// =============================================================================
// Extraction Types
// =============================================================================

// Backend names an extraction strategy.
type Backend string

const (
	// BackendSequential decodes and seeks one frame at a time in-process.
	BackendSequential Backend = "sequential"
	// BackendParallel delegates to a single external filter-graph run.
	BackendParallel Backend = "parallel"
)

// ExtractInput contains parameters for one extraction call.
type ExtractInput struct {
	SourcePath string
	OutputDir  string
	Spec       sampling.Spec
	Resize     sampling.Resize
	Threads    int // Thread hint for the parallel backend (0 = tool default)

	// Progress is called after each attempted target. May be nil.
	Progress ProgressFunc
}

// ProgressEvent reports one processed target.
type ProgressEvent struct {
	Done       int // Targets processed so far
	Total      int // Total resolved targets
	FrameIndex int
	Written    bool
}

// ProgressFunc receives progress events.
type ProgressFunc func(ProgressEvent)

// Report calls f if it is non-nil.
func (f ProgressFunc) Report(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}

// OutputFrame is a frame written to disk.
type OutputFrame struct {
	SequenceIndex int    `json:"sequence_index"`
	FrameIndex    int    `json:"frame_index"`
	Label         string `json:"label"`
	Path          string `json:"path"`
}

// SkipReason explains why a target produced no file.
type SkipReason string

const (
	// SkipReadFailed means the decoder returned no frame at the target index.
	SkipReadFailed SkipReason = "read_failed"
	// SkipUnmatched means the transcoder produced fewer files than targets.
	SkipUnmatched SkipReason = "unmatched"
)

// SkippedFrame is a resolved target that produced no file.
type SkippedFrame struct {
	SequenceIndex int        `json:"sequence_index"`
	FrameIndex    int        `json:"frame_index"`
	Label         string     `json:"label"`
	Reason        SkipReason `json:"reason"`
	Detail        string     `json:"detail,omitempty"`
}

// ExtractResult is the outcome of one extraction call.
type ExtractResult struct {
	Backend Backend           `json:"backend"`
	Info    ports.VideoInfo   `json:"info"`
	Targets []sampling.Target `json:"targets"`
	Written []OutputFrame     `json:"written"`
	Skipped []SkippedFrame    `json:"skipped"`
}

// Paths returns the written file paths in sequence order.
func (r ExtractResult) Paths() []string {
	paths := make([]string, len(r.Written))
	for i, f := range r.Written {
		paths[i] = f.Path
	}
	return paths
}

// SkippedIndices returns the frame indices of skipped targets.
func (r ExtractResult) SkippedIndices() []int {
	out := make([]int, len(r.Skipped))
	for i, s := range r.Skipped {
		out[i] = s.FrameIndex
	}
	return out
}
