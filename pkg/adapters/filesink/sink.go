// Package filesink writes debug artifacts of an extraction run to a directory.
package filesink

import (
	"path/filepath"

	"github.com/user/framesampler/pkg/ports"
)

// File names written under the sink's base directory.
const (
	PlanFile        = "plan.json"
	FilterGraphFile = "filtergraph.txt"
	ResultFile      = "result.json"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a Sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

func (s *Sink) Enabled() bool {
	return true
}

func (s *Sink) SavePlanJSON(data []byte) error {
	return s.write(PlanFile, data)
}

func (s *Sink) SaveFilterGraph(chain string) error {
	return s.write(FilterGraphFile, []byte(chain+"\n"))
}

func (s *Sink) SaveResultJSON(data []byte) error {
	return s.write(ResultFile, data)
}

func (s *Sink) write(name string, data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

var _ ports.DebugSink = (*Sink)(nil)
