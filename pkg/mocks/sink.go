package mocks

import (
	"sync"

	"github.com/user/framesampler/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	PlanJSON    []byte
	FilterGraph string
	ResultJSON  []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePlanJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlanJSON = data
	return nil
}

func (m *DebugSink) SaveFilterGraph(chain string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FilterGraph = chain
	return nil
}

func (m *DebugSink) SaveResultJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResultJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
