// Package ffmpegtranscoder runs filter-graph extractions with the ffmpeg CLI.
package ffmpegtranscoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/framesampler/pkg/adapters/ffmpegpath"
	"github.com/user/framesampler/pkg/ports"
)

// maxStderr bounds the diagnostics kept in a returned error.
const maxStderr = 4096

// Transcoder implements ports.Transcoder.
type Transcoder struct {
	lookup func() (string, error)
}

// New creates a Transcoder that locates ffmpeg via ffmpegpath.
func New() *Transcoder {
	return &Transcoder{lookup: ffmpegpath.FFmpeg}
}

// Available reports whether ffmpeg can be located.
func (t *Transcoder) Available() bool {
	_, err := t.lookup()
	return err == nil
}

// Transcode runs ffmpeg once for req and waits for it to exit.
func (t *Transcoder) Transcode(ctx context.Context, req ports.TranscodeRequest) error {
	path, err := t.lookup()
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrTranscoderNotFound, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, Args(req)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: exit code %d: %s", ports.ErrTranscodeFailed, exitErr.ExitCode(), tail(stderr.String()))
		}
		return fmt.Errorf("%w: %v", ports.ErrTranscodeFailed, err)
	}
	return nil
}

// Args builds the ffmpeg command line for req, without the executable.
func Args(req ports.TranscodeRequest) []string {
	inKw := ffmpeg.KwArgs{}
	if req.Threads > 0 {
		inKw["threads"] = req.Threads
	}

	outKw := ffmpeg.KwArgs{
		"vf":           req.FilterChain,
		"vsync":        "vfr",
		"start_number": req.StartNumber,
	}

	return ffmpeg.Input(req.InputPath, inKw).
		Output(req.OutputPattern, outKw).
		GlobalArgs("-hide_banner", "-nostdin", "-loglevel", "error").
		OverWriteOutput().
		GetArgs()
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = "..." + s[len(s)-maxStderr:]
	}
	return s
}

var _ ports.Transcoder = (*Transcoder)(nil)
