// Package nullsink provides a debug sink that discards everything.
package nullsink

import "github.com/user/framesampler/pkg/ports"

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

func (s *Sink) Enabled() bool { return false }
func (s *Sink) SavePlanJSON(data []byte) error { return nil }
func (s *Sink) SaveFilterGraph(chain string) error { return nil }
func (s *Sink) SaveResultJSON(data []byte) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
