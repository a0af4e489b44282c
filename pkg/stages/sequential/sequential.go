// Package sequential implements the in-process extraction backend.
//
// Each target is seeked, decoded, resized, encoded and written in resolved
// order on the calling goroutine. The first failed write ends the run.
package sequential

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framesampler/pkg/pipeline"
	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/sampling"
)

// Stage extracts frames by seeking and decoding in-process.
type Stage struct {
	decoder  ports.VideoDecoder
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewStage creates a sequential backend.
func NewStage(decoder ports.VideoDecoder, renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		decoder:  decoder,
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("sequential"),
	}
}

// Execute resolves targets against the source and writes one PNG per
// readable target. Unreadable targets are reported in Skipped.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{Backend: pipeline.BackendSequential}

	if err := input.Spec.Validate(); err != nil {
		return result, err
	}
	if err := input.Resize.Validate(); err != nil {
		return result, err
	}

	s.logger.Debug("Opening %s", input.SourcePath)
	src, err := s.decoder.Open(ctx, input.SourcePath)
	if err != nil {
		return result, err
	}
	defer src.Close()

	info := src.Info()
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

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		label := sampling.Label(target.FrameIndex, info.FrameRate, input.Spec.Unit)

		img, err := s.read(ctx, src, target.FrameIndex)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.Warn("Cannot read frame %d: %s", target.FrameIndex, err.Error())
			result.Skipped = append(result.Skipped, pipeline.SkippedFrame{
				SequenceIndex: target.SequenceIndex,
				FrameIndex:    target.FrameIndex,
				Label:         label,
				Reason:        pipeline.SkipReadFailed,
				Detail:        err.Error(),
			})
			input.Progress.Report(pipeline.ProgressEvent{Done: i + 1, Total: len(targets), FrameIndex: target.FrameIndex})
			continue
		}

		frame, err := s.write(input, target, label, img)
		if err != nil {
			return result, err
		}
		result.Written = append(result.Written, frame)
		input.Progress.Report(pipeline.ProgressEvent{Done: i + 1, Total: len(targets), FrameIndex: target.FrameIndex, Written: true})
	}

	return result, nil
}

// read positions src at frameIndex and decodes one frame.
func (s *Stage) read(ctx context.Context, src ports.VideoSource, frameIndex int) (image.Image, error) {
	if err := src.Seek(frameIndex); err != nil {
		return nil, err
	}
	img, err := src.ReadNext(ctx)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ports.ErrNoFrame
	}
	return img, nil
}

// write resizes, encodes and stores one frame.
func (s *Stage) write(input pipeline.ExtractInput, target sampling.Target, label string, img image.Image) (pipeline.OutputFrame, error) {
	if !input.Resize.IsNone() {
		b := img.Bounds()
		w, h := input.Resize.Apply(b.Dx(), b.Dy())
		img = s.renderer.ResizeImage(img, w, h)
	}

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return pipeline.OutputFrame{}, fmt.Errorf("encode frame %d: %w", target.FrameIndex, err)
	}

	path := filepath.Join(input.OutputDir, sampling.FileName(target.SequenceIndex, label))
	if err := s.fs.WriteFile(path, data); err != nil {
		return pipeline.OutputFrame{}, fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("Frame %d written to %s", target.FrameIndex, path)

	return pipeline.OutputFrame{
		SequenceIndex: target.SequenceIndex,
		FrameIndex:    target.FrameIndex,
		Label:         label,
		Path:          path,
	}, nil
}

var _ pipeline.Extractor = (*Stage)(nil)
