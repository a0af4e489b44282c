// Package ffmpegdecoder implements ports.VideoDecoder by streaming raw RGBA
// frames out of an ffmpeg process.
//
// Frame metadata comes from the MP4 sample table when possible and from
// ffprobe otherwise. Reading forward reuses the running process; seeking
// backward restarts it.
package ffmpegdecoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/framesampler/pkg/adapters/ffmpegpath"
	"github.com/user/framesampler/pkg/adapters/mp4probe"
	"github.com/user/framesampler/pkg/ports"
)

// DefaultProbeTimeout bounds a single ffprobe run.
const DefaultProbeTimeout = 30 * time.Second

// Decoder implements ports.VideoDecoder.
type Decoder struct {
	probeTimeout time.Duration
	lookup       func() (string, error)
	probeLookup  func() (string, error)
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithProbeTimeout sets the ffprobe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(dec *Decoder) {
		dec.probeTimeout = d
	}
}

// New creates a Decoder.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		probeTimeout: DefaultProbeTimeout,
		lookup:       ffmpegpath.FFmpeg,
		probeLookup:  ffmpegpath.FFprobe,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open probes path and returns a source positioned at frame 0.
func (d *Decoder) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCannotOpen, err)
	}

	info, err := d.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCannotOpen, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%w: unknown resolution", ports.ErrCannotOpen)
	}

	ffmpegPath, err := d.lookup()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCannotOpen, err)
	}

	return &Source{
		ctx:        ctx,
		path:       path,
		ffmpegPath: ffmpegPath,
		info:       info,
	}, nil
}

// Probe reads VideoInfo from the MP4 sample table, falling back to ffprobe
// for other containers or incomplete metadata.
func (d *Decoder) Probe(path string) (ports.VideoInfo, error) {
	if info, err := mp4probe.ProbeFile(path); err == nil && info.FrameCount > 0 && info.FrameRate > 0 {
		return info, nil
	}

	ffprobePath, err := d.probeLookup()
	if err != nil {
		return ports.VideoInfo{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.probeTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_streams",
		"-show_format",
		"-of", "json",
		path,
	)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("ffprobe: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return parseProbe(string(out))
}

var _ ports.VideoDecoder = (*Decoder)(nil)

// Source is an open video. It is not safe for concurrent use beyond Close.
type Source struct {
	ctx        context.Context
	path       string
	ffmpegPath string
	info       ports.VideoInfo

	mu     sync.Mutex
	pos    int // frame ReadNext returns next
	next   int // frame the running stream yields next
	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr bytes.Buffer
	closed bool
}

func (s *Source) Info() ports.VideoInfo {
	return s.info
}

// Seek positions the source. No decoding happens until ReadNext.
func (s *Source) Seek(frameIndex int) error {
	if frameIndex < 0 || frameIndex >= s.info.FrameCount {
		return fmt.Errorf("seek to %d: out of range [0,%d)", frameIndex, s.info.FrameCount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = frameIndex
	return nil
}

// ReadNext decodes the frame at the current position and advances by one.
func (s *Source) ReadNext(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.New("source closed")
	}

	if s.cmd == nil || s.pos < s.next {
		if err := s.restart(); err != nil {
			return nil, err
		}
	}

	frameSize := int64(s.info.Width) * int64(s.info.Height) * 4
	if skip := int64(s.pos - s.next); skip > 0 {
		n, err := io.CopyN(io.Discard, s.reader, skip*frameSize)
		s.next += int(n / frameSize)
		if err != nil {
			return nil, s.endOfStream(err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	if _, err := io.ReadFull(s.reader, img.Pix); err != nil {
		return nil, s.endOfStream(err)
	}

	s.next++
	s.pos++
	return img, nil
}

// endOfStream maps a short read to ErrNoFrame and surfaces process errors.
func (s *Source) endOfStream(err error) error {
	s.pos++
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		s.stop()
		return ports.ErrNoFrame
	}
	s.stop()
	return fmt.Errorf("read frame: %w", err)
}

func (s *Source) restart() error {
	s.stop()
	s.stderr.Reset()

	cmd := exec.CommandContext(s.ctx, s.ffmpegPath, streamArgs(s.path)...)
	cmd.Stderr = &s.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	s.reader = bufio.NewReaderSize(stdout, 1<<20)
	s.next = 0
	return nil
}

func (s *Source) stop() {
	if s.cmd == nil {
		return
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.stdout.Close()
	_ = s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
	s.reader = nil
}

// Close stops the decoding process.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.stop()
	return nil
}

// streamArgs decodes every frame of the first video stream as packed RGBA
// on stdout, one output frame per input frame. Rotation metadata is ignored
// so frames keep the probed size.
func streamArgs(path string) []string {
	return ffmpeg.Input(path, ffmpeg.KwArgs{"noautorotate": ""}).
		Output("pipe:1", ffmpeg.KwArgs{
			"map":     "0:v:0",
			"vsync":   "passthrough",
			"f":       "rawvideo",
			"pix_fmt": "rgba",
		}).
		GlobalArgs("-hide_banner", "-nostdin", "-loglevel", "error").
		GetArgs()
}

var _ ports.VideoSource = (*Source)(nil)
