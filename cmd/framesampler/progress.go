package main

import (
	"io"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/schollz/progressbar/v3"

	"github.com/user/framesampler/pkg/pipeline"
)

// progressReporter draws a progress bar sized on the first event.
// Safe for concurrent use.
type progressReporter struct {
	mu  sync.Mutex
	out io.Writer
	bar *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out}
}

// Report advances the bar to ev.Done.
func (p *progressReporter) Report(ev pipeline.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		p.bar = progressbar.NewOptions(ev.Total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(l10n.T("Extracting")),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "▐",
				BarEnd:        "▌",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("frames"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetRenderBlankState(true),
		)
	}
	_ = p.bar.Set(ev.Done)
}

// Finish completes the bar. Safe on a nil reporter.
func (p *progressReporter) Finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
