package mocks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/user/framesampler/pkg/ports"
)

var (
	everyExpr = regexp.MustCompile(`select='not\(mod\(n,(\d+)\)\)'`)
	eqExpr    = regexp.MustCompile(`eq\(n,(\d+)\)`)
)

// EvalSelect interprets the select filter of chain the way ffmpeg would for a
// source of frameCount frames and returns the kept indices in output order.
// Only the two forms produced by the filtergraph package are understood.
func EvalSelect(chain string, frameCount int) []int {
	var kept []int
	if m := everyExpr.FindStringSubmatch(chain); m != nil {
		step, _ := strconv.Atoi(m[1])
		for n := 0; n < frameCount; n++ {
			if n%step == 0 {
				kept = append(kept, n)
			}
		}
		return kept
	}

	set := make(map[int]bool)
	for _, m := range eqExpr.FindAllStringSubmatch(chain, -1) {
		n, _ := strconv.Atoi(m[1])
		set[n] = true
	}
	for n := range set {
		if n < frameCount {
			kept = append(kept, n)
		}
	}
	sort.Ints(kept)
	return kept
}

// Transcoder is a mock implementation of ports.Transcoder.
// By default it writes one file per frame kept by the request's select
// filter into FS, each containing "frame N".
type Transcoder struct {
	FS         *FileSystem
	FrameCount int

	Unavailable   bool
	TranscodeFunc func(ctx context.Context, req ports.TranscodeRequest) error

	// Drop removes this many outputs from the end to simulate lost frames.
	Drop int

	// Recorded calls for verification
	Requests []ports.TranscodeRequest
}

func (m *Transcoder) Available() bool {
	return !m.Unavailable
}

func (m *Transcoder) Transcode(ctx context.Context, req ports.TranscodeRequest) error {
	m.Requests = append(m.Requests, req)
	if m.TranscodeFunc != nil {
		return m.TranscodeFunc(ctx, req)
	}

	kept := EvalSelect(req.FilterChain, m.FrameCount)
	n := len(kept) - m.Drop
	for i := 0; i < n; i++ {
		path := fmt.Sprintf(req.OutputPattern, req.StartNumber+i)
		if err := m.FS.WriteFile(path, []byte(fmt.Sprintf("frame %d", kept[i]))); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Transcoder = (*Transcoder)(nil)
