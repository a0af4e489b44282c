package filesink

import (
	"path/filepath"
	"testing"

	"github.com/user/framesampler/pkg/mocks"
)

var testBaseDir = filepath.Join("out", "debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem())
	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SavesArtifacts(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	tests := []struct {
		name string
		save func() error
		file string
		want string
	}{
		{"plan", func() error { return sink.SavePlanJSON([]byte(`{"targets":[]}`)) }, PlanFile, `{"targets":[]}`},
		{"filter graph", func() error { return sink.SaveFilterGraph("select='not(mod(n,60))'") }, FilterGraphFile, "select='not(mod(n,60))'\n"},
		{"result", func() error { return sink.SaveResultJSON([]byte(`{"written":[]}`)) }, ResultFile, `{"written":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.save(); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			path := filepath.Join(testBaseDir, tt.file)
			saved, ok := fs.GetFile(path)
			if !ok {
				t.Fatalf("expected file at %s", path)
			}
			if string(saved) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, saved)
			}
		})
	}

	if ok, _ := fs.Exists(testBaseDir); !ok {
		t.Error("expected base directory to be created")
	}
}
