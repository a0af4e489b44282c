package mocks

import (
	"context"
	"fmt"
	"image"

	"github.com/user/framesampler/pkg/ports"
)

// VideoDecoder is a mock implementation of ports.VideoDecoder.
// Every opened source reports Info and yields blank frames of Info's size.
type VideoDecoder struct {
	Info ports.VideoInfo

	OpenFunc     func(ctx context.Context, path string) (ports.VideoSource, error)
	ReadNextFunc func(frameIndex int) (image.Image, error)

	// MissingFrames lists frame indices for which ReadNext returns ErrNoFrame.
	MissingFrames map[int]bool

	// Recorded calls for verification
	OpenCalls  []string
	Seeks      []int
	Reads      []int
	CloseCalls int
}

func (m *VideoDecoder) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return &VideoSource{decoder: m}, nil
}

var _ ports.VideoDecoder = (*VideoDecoder)(nil)

// VideoSource is the handle returned by VideoDecoder.Open.
type VideoSource struct {
	decoder *VideoDecoder
	pos     int
}

func (s *VideoSource) Info() ports.VideoInfo {
	return s.decoder.Info
}

func (s *VideoSource) Seek(frameIndex int) error {
	s.decoder.Seeks = append(s.decoder.Seeks, frameIndex)
	if frameIndex < 0 || frameIndex >= s.decoder.Info.FrameCount {
		return fmt.Errorf("seek out of range: %d", frameIndex)
	}
	s.pos = frameIndex
	return nil
}

func (s *VideoSource) ReadNext(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx := s.pos
	s.pos++
	s.decoder.Reads = append(s.decoder.Reads, idx)

	if s.decoder.ReadNextFunc != nil {
		return s.decoder.ReadNextFunc(idx)
	}
	if s.decoder.MissingFrames[idx] {
		return nil, ports.ErrNoFrame
	}
	info := s.decoder.Info
	return image.NewRGBA(image.Rect(0, 0, info.Width, info.Height)), nil
}

func (s *VideoSource) Close() error {
	s.decoder.CloseCalls++
	return nil
}

var _ ports.VideoSource = (*VideoSource)(nil)
