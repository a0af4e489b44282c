// Package summarizer renders human-readable summaries of extraction runs.
package summarizer

import "time"

// Summary contains everything reported about one run.
type Summary struct {
	GeneratedAt time.Time

	Source    SourceInfo
	Selection Selection
	Backend   BackendInfo
	Output    OutputInfo
}

// SourceInfo describes the input video.
type SourceInfo struct {
	Path       string
	FrameRate  float64
	FrameCount int
	Width      int
	Height     int
}

// Selection describes what was asked for.
type Selection struct {
	Spec    string // e.g. "interval 2 seconds"
	Resize  string // e.g. "0.5" or "640x360" or "none"
	Targets int    // Resolved target count
}

// BackendInfo describes how the run executed.
type BackendInfo struct {
	Name     string
	Threads  int
	FellBack bool
}

// Frame is one written file.
type Frame struct {
	SequenceIndex int
	FrameIndex    int
	Label         string
	Path          string
	Size          int64
}

// Skip is one target that produced no file.
type Skip struct {
	SequenceIndex int
	FrameIndex    int
	Label         string
	Reason        string
}

// OutputInfo describes what was written.
type OutputInfo struct {
	Dir          string
	Frames       []Frame
	Skipped      []Skip
	ElapsedMs    int64
	ContactSheet string
}

// TotalBytes sums the sizes of written frames.
func (o OutputInfo) TotalBytes() int64 {
	var total int64
	for _, f := range o.Frames {
		total += f.Size
	}
	return total
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

func (b *Builder) WithSelection(selection Selection) *Builder {
	b.summary.Selection = selection
	return b
}

func (b *Builder) WithBackend(backend BackendInfo) *Builder {
	b.summary.Backend = backend
	return b
}

func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
