package mocks

import (
	"time"

	"github.com/user/framesampler/pkg/ports"
)

// Metrics is a mock implementation of ports.Metrics.
type Metrics struct {
	Backend   string
	Written   int
	Skipped   int
	Runs      int
	Failures  int
	Fallbacks int
}

func (m *Metrics) ObserveExtraction(backend string, written, skipped int, elapsed time.Duration) {
	m.Runs++
	m.Backend = backend
	m.Written = written
	m.Skipped = skipped
}

func (m *Metrics) ObserveFailure(backend string) {
	m.Failures++
	m.Backend = backend
}

func (m *Metrics) ObserveFallback() {
	m.Fallbacks++
}

var _ ports.Metrics = (*Metrics)(nil)
