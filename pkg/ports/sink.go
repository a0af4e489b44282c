package ports

// DebugSink abstracts debug output for intermediate results.
// It allows saving the extraction plan and outcome for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlanJSON saves the resolved targets and video info as JSON.
	SavePlanJSON(data []byte) error

	// SaveFilterGraph saves the filter chain passed to the transcoder.
	SaveFilterGraph(chain string) error

	// SaveResultJSON saves the extraction result as JSON.
	SaveResultJSON(data []byte) error
}
