// Package orchestrator coordinates one frame sampling run: backend
// selection, extraction, debug output and the optional contact sheet.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/user/framesampler/pkg/pipeline"
	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/sampling"
	"github.com/user/framesampler/pkg/selector"
	"github.com/user/framesampler/pkg/stages/contactsheet"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	SourcePath string
	OutputDir  string

	// Selection
	Spec   sampling.Spec
	Resize sampling.Resize

	// Backend
	Parallel bool
	Threads  int // Thread hint for the parallel backend (0 = one per CPU)

	// Contact sheet
	ContactSheet           bool
	ContactSheetColumns    int
	ContactSheetThumbWidth int

	// Progress is forwarded to the backend. May be nil.
	Progress pipeline.ProgressFunc
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Spec:                   sampling.IntervalSpec(sampling.Seconds, 1),
		Resize:                 sampling.NoResize(),
		ContactSheetColumns:    4,
		ContactSheetThumbWidth: 320,
	}
}

// ContactSheetStage renders a contact sheet from written frames.
type ContactSheetStage = pipeline.Stage[contactsheet.Input, contactsheet.Result]

// Orchestrator coordinates the execution of one sampling run.
type Orchestrator struct {
	sequential   pipeline.Extractor
	parallel     pipeline.Extractor
	contactSheet ContactSheetStage
	transcoder   ports.Transcoder
	fs           ports.FileSystem
	sink         ports.DebugSink
	metrics      ports.Metrics
	logger       ports.Logger
}

// New creates a new Orchestrator. The transcoder is only asked for
// availability when the parallel backend is requested.
func New(
	sequential pipeline.Extractor,
	parallel pipeline.Extractor,
	contactSheet ContactSheetStage,
	transcoder ports.Transcoder,
	fs ports.FileSystem,
	sink ports.DebugSink,
	metrics ports.Metrics,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sequential:   sequential,
		parallel:     parallel,
		contactSheet: contactSheet,
		transcoder:   transcoder,
		fs:           fs,
		sink:         sink,
		metrics:      metrics,
		logger:       logger,
	}
}

// Run validates the request, selects a backend and executes it.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if err := config.Spec.Validate(); err != nil {
		return RunResult{}, err
	}
	if err := config.Resize.Validate(); err != nil {
		return RunResult{}, err
	}

	o.logger.Info("Sampling %s into %s", config.SourcePath, config.OutputDir)

	// 1. Backend selection
	available := false
	if config.Parallel && o.transcoder != nil {
		available = o.transcoder.Available()
	}
	choice := selector.Choose(selector.Request{Parallel: config.Parallel, Threads: config.Threads}, available)
	if choice.FellBack {
		o.logger.Warn("Parallel backend requested but the transcoder is unavailable, falling back to sequential")
		o.metrics.ObserveFallback()
	}
	o.logger.Info("Using %s backend", string(choice.Backend))

	extractor := o.sequential
	if choice.Backend == pipeline.BackendParallel {
		extractor = o.parallel
	}

	if err := o.fs.MkdirAll(config.OutputDir); err != nil {
		o.logger.Error("Failed to write output: %s", err.Error())
		return RunResult{}, fmt.Errorf("create output directory: %w", err)
	}

	// 2. Extraction
	start := time.Now()
	extracted, err := extractor.Execute(ctx, pipeline.ExtractInput{
		SourcePath: config.SourcePath,
		OutputDir:  config.OutputDir,
		Spec:       config.Spec,
		Resize:     config.Resize,
		Threads:    choice.Threads,
		Progress:   config.Progress,
	})
	elapsed := time.Since(start)
	if err != nil {
		o.metrics.ObserveFailure(string(choice.Backend))
		o.logger.Error("Extraction failed: %s", err.Error())
		return RunResult{}, fmt.Errorf("%s backend: %w", choice.Backend, err)
	}

	info := extracted.Info
	o.logger.Info("Video: %dx%d, %.3f fps, %d frames", info.Width, info.Height, info.FrameRate, info.FrameCount)
	o.logger.Info("Resolved %d target frames (%s)", len(extracted.Targets), config.Spec.String())
	o.logger.Info("Wrote %d frames in %d ms", len(extracted.Written), elapsed.Milliseconds())
	if len(extracted.Skipped) > 0 {
		o.logger.Warn("Skipped %d frames: %v", len(extracted.Skipped), extracted.SkippedIndices())
	}
	o.metrics.ObserveExtraction(string(choice.Backend), len(extracted.Written), len(extracted.Skipped), elapsed)

	result := RunResult{
		Extract:  extracted,
		Threads:  choice.Threads,
		FellBack: choice.FellBack,
		Elapsed:  elapsed,
	}

	// 3. Debug output
	if o.sink.Enabled() {
		o.saveDebug(config, choice, extracted)
	}

	// 4. Contact sheet (optional)
	if config.ContactSheet && o.contactSheet != nil && len(extracted.Written) > 0 {
		sheet, err := o.contactSheet.Execute(ctx, contactsheet.Input{
			Frames:     extracted.Written,
			OutputPath: filepath.Join(config.OutputDir, contactsheet.FileName),
			Columns:    config.ContactSheetColumns,
			ThumbWidth: config.ContactSheetThumbWidth,
		})
		if err != nil {
			o.logger.Error("Failed to write output: %s", err.Error())
			return result, fmt.Errorf("contact sheet: %w", err)
		}
		result.ContactSheetPath = sheet.Path
	}

	return result, nil
}

// plan is the debug view of what a run was asked to do.
type plan struct {
	Source   string            `json:"source"`
	Spec     string            `json:"spec"`
	Resize   string            `json:"resize"`
	Backend  pipeline.Backend  `json:"backend"`
	Threads  int               `json:"threads"`
	FellBack bool              `json:"fell_back"`
	Info     ports.VideoInfo   `json:"info"`
	Targets  []sampling.Target `json:"targets"`
}

func (o *Orchestrator) saveDebug(config Config, choice selector.Choice, extracted pipeline.ExtractResult) {
	p := plan{
		Source:   config.SourcePath,
		Spec:     config.Spec.String(),
		Resize:   config.Resize.String(),
		Backend:  choice.Backend,
		Threads:  choice.Threads,
		FellBack: choice.FellBack,
		Info:     extracted.Info,
		Targets:  extracted.Targets,
	}
	if data, err := json.MarshalIndent(p, "", "  "); err == nil {
		if err := o.sink.SavePlanJSON(data); err != nil {
			o.logger.Warn("Failed to write output: %s", err.Error())
		}
	}
	if data, err := json.MarshalIndent(extracted, "", "  "); err == nil {
		if err := o.sink.SaveResultJSON(data); err != nil {
			o.logger.Warn("Failed to write output: %s", err.Error())
		}
	}
}

// RunResult contains the results of a run for summary generation.
type RunResult struct {
	Extract pipeline.ExtractResult

	// Backend selection
	Threads  int
	FellBack bool

	Elapsed          time.Duration
	ContactSheetPath string
}

// Backend returns the backend that produced the result.
func (r RunResult) Backend() pipeline.Backend {
	return r.Extract.Backend
}
