// Package parallel implements the filter-graph extraction backend.
//
// A single external transcoder run selects every target frame, optionally
// scales it, and writes numbered images into a staging directory. The
// numbered outputs are then matched back to targets and renamed to their
// final labeled names.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/user/framesampler/pkg/filtergraph"
	"github.com/user/framesampler/pkg/pipeline"
	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/sampling"
)

const (
	// StagingDir is created inside the output directory for raw transcoder output.
	StagingDir = ".framesampler-raw"

	rawPrefix  = "raw_"
	rawPattern = rawPrefix + "%06d.png"
)

// Stage extracts frames with one transcoder invocation.
type Stage struct {
	decoder    ports.VideoDecoder
	transcoder ports.Transcoder
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
}

// NewStage creates a parallel backend. The decoder is only used to read VideoInfo.
func NewStage(decoder ports.VideoDecoder, transcoder ports.Transcoder, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		decoder:    decoder,
		transcoder: transcoder,
		fs:         fs,
		sink:       sink,
		logger:     logger.WithComponent("parallel"),
	}
}

// Execute runs the transcoder and reconciles its numbered outputs with the
// resolved targets.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{Backend: pipeline.BackendParallel}

	if err := input.Spec.Validate(); err != nil {
		return result, err
	}
	if err := input.Resize.Validate(); err != nil {
		return result, err
	}

	info, err := s.probe(ctx, input.SourcePath)
	if err != nil {
		return result, err
	}
	result.Info = info

	targets, err := sampling.Resolve(input.Spec, info.FrameRate, info.FrameCount)
	if err != nil {
		return result, err
	}
	result.Targets = targets
	result.Written = []pipeline.OutputFrame{}
	result.Skipped = []pipeline.SkippedFrame{}
	if len(targets) == 0 {
		s.logger.Info("No target frames to extract")
		return result, nil
	}

	chain, sel, err := filtergraph.Chain(input.Spec, input.Resize, info)
	if err != nil {
		return result, err
	}
	s.logger.Debug("Filter chain: %s", chain)
	if s.sink.Enabled() {
		if err := s.sink.SaveFilterGraph(chain); err != nil {
			s.logger.Warn("Failed to write output: %s", err.Error())
		}
	}

	staging := filepath.Join(input.OutputDir, StagingDir)
	if err := s.prepareStaging(staging); err != nil {
		return result, err
	}

	s.logger.Info("Running transcoder with %d threads", input.Threads)
	err = s.transcoder.Transcode(ctx, ports.TranscodeRequest{
		InputPath:     input.SourcePath,
		Threads:       input.Threads,
		FilterChain:   chain,
		OutputPattern: filepath.Join(staging, rawPattern),
		StartNumber:   0,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		if errors.Is(err, ports.ErrTranscodeFailed) || errors.Is(err, ports.ErrTranscoderNotFound) {
			return result, err
		}
		return result, fmt.Errorf("%w: %v", ports.ErrTranscodeFailed, err)
	}

	outputs, err := s.fs.Glob(filepath.Join(staging, rawPrefix+"*.png"))
	if err != nil {
		return result, fmt.Errorf("list transcoder output: %w", err)
	}
	s.logger.Debug("Transcoder produced %d files for %d targets", len(outputs), len(targets))

	written, skipped, extras, err := s.reconcile(input, info, targets, sel.Emitted(info.FrameCount), outputs)
	if err != nil {
		return result, err
	}
	result.Written = written
	result.Skipped = skipped

	if len(extras) > 0 {
		s.logger.Warn("Leaving %d unexpected transcoder outputs in place", len(extras))
	} else if err := s.fs.Remove(staging); err != nil {
		s.logger.Warn("Failed to write output: %s", err.Error())
	}
	return result, nil
}

// probe opens the source only long enough to read its metadata.
func (s *Stage) probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	src, err := s.decoder.Open(ctx, path)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	info := src.Info()
	if err := src.Close(); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("close %s: %w", path, err)
	}
	return info, nil
}

// prepareStaging creates the staging directory and clears stale outputs.
func (s *Stage) prepareStaging(dir string) error {
	if err := s.fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	stale, err := s.fs.Glob(filepath.Join(dir, rawPrefix+"*.png"))
	if err != nil {
		return fmt.Errorf("list staging directory: %w", err)
	}
	for _, p := range stale {
		if err := s.fs.Remove(p); err != nil {
			return fmt.Errorf("remove stale output %s: %w", p, err)
		}
	}
	return nil
}

// reconcile maps numbered outputs to targets.
//
// The transcoder emits the selected frames in ascending source order, so the
// i-th output (by counter) is the i-th emitted frame index. Each target takes
// the output for its frame index; a target repeating an earlier frame index
// gets a copy of that file. Targets with no output are skipped as unmatched,
// and outputs beyond the emitted set are returned as extras.
func (s *Stage) reconcile(
	input pipeline.ExtractInput,
	info ports.VideoInfo,
	targets []sampling.Target,
	emitted []int,
	outputs []string,
) (written []pipeline.OutputFrame, skipped []pipeline.SkippedFrame, extras []string, err error) {
	byFrame := make(map[int]string, len(emitted))
	for i, path := range outputs {
		if i < len(emitted) {
			byFrame[emitted[i]] = path
		} else {
			extras = append(extras, path)
		}
	}

	written = []pipeline.OutputFrame{}
	skipped = []pipeline.SkippedFrame{}
	placed := make(map[int]string, len(targets))

	for i, target := range targets {
		label := sampling.Label(target.FrameIndex, info.FrameRate, input.Spec.Unit)
		dest := filepath.Join(input.OutputDir, sampling.FileName(target.SequenceIndex, label))
		ev := pipeline.ProgressEvent{Done: i + 1, Total: len(targets), FrameIndex: target.FrameIndex}

		if first, ok := placed[target.FrameIndex]; ok {
			data, err := s.fs.ReadFile(first)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("read %s: %w", first, err)
			}
			if err := s.fs.WriteFile(dest, data); err != nil {
				return nil, nil, nil, fmt.Errorf("write %s: %w", dest, err)
			}
		} else if src, ok := byFrame[target.FrameIndex]; ok {
			if err := s.fs.Rename(src, dest); err != nil {
				return nil, nil, nil, fmt.Errorf("rename %s: %w", src, err)
			}
			placed[target.FrameIndex] = dest
		} else {
			s.logger.Warn("No output for target frame %d", target.FrameIndex)
			skipped = append(skipped, pipeline.SkippedFrame{
				SequenceIndex: target.SequenceIndex,
				FrameIndex:    target.FrameIndex,
				Label:         label,
				Reason:        pipeline.SkipUnmatched,
			})
			input.Progress.Report(ev)
			continue
		}

		written = append(written, pipeline.OutputFrame{
			SequenceIndex: target.SequenceIndex,
			FrameIndex:    target.FrameIndex,
			Label:         label,
			Path:          dest,
		})
		ev.Written = true
		input.Progress.Report(ev)
	}

	return written, skipped, extras, nil
}

var _ pipeline.Extractor = (*Stage)(nil)
