// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrCannotOpen is returned when a video source is missing or unreadable.
	ErrCannotOpen = errors.New("cannot open video")

	// ErrNoFrame is returned by ReadNext when the decoder has no frame at the current position.
	ErrNoFrame = errors.New("no frame at position")
)

// VideoInfo describes a video source. It is read once per extraction.
type VideoInfo struct {
	FrameRate  float64 `json:"frame_rate"`
	FrameCount int     `json:"frame_count"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}

// Duration returns the duration in seconds, or 0 when the frame rate is unknown.
func (v VideoInfo) Duration() float64 {
	if v.FrameRate <= 0 {
		return 0
	}
	return float64(v.FrameCount) / v.FrameRate
}

// VideoDecoder opens video sources for frame-accurate reading.
type VideoDecoder interface {
	// Open opens the video at path. Errors wrap ErrCannotOpen.
	Open(ctx context.Context, path string) (VideoSource, error)
}

// VideoSource is an open video handle.
// It must be closed exactly once by the caller that opened it.
type VideoSource interface {
	// Info returns the source's frame rate, frame count and resolution.
	Info() VideoInfo

	// Seek positions the source at frameIndex.
	Seek(frameIndex int) error

	// ReadNext decodes the frame at the current position and advances by one.
	// It returns ErrNoFrame when no frame exists at that position.
	ReadNext(ctx context.Context) (image.Image, error)

	// Close releases decoder resources.
	Close() error
}
