package ports

import (
	"context"
	"errors"
)

var (
	// ErrTranscodeFailed is returned when the external transcoding process exits non-zero.
	ErrTranscodeFailed = errors.New("transcode failed")

	// ErrTranscoderNotFound is returned when the transcoding tool is not installed.
	ErrTranscoderNotFound = errors.New("transcoder not found")
)

// TranscodeRequest is a single invocation of the external transcoding process.
type TranscodeRequest struct {
	InputPath     string
	Threads       int    // Thread-count hint passed to the process (0 = tool default)
	FilterChain   string // Comma-joined filter graph (selection + optional scale)
	OutputPattern string // Output path with a zero-padded counter, e.g. "dir/raw_%06d.png"
	StartNumber   int    // First value of the output counter
}

// Transcoder runs an external multi-threaded transcoding process.
type Transcoder interface {
	// Available reports whether the tool can be executed.
	Available() bool

	// Transcode runs the request to completion. Errors wrap ErrTranscodeFailed
	// and carry the process diagnostics.
	Transcode(ctx context.Context, req TranscodeRequest) error
}
