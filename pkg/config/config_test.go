package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/user/framesampler/pkg/sampling"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	spec, err := cfg.Spec()
	if err != nil {
		t.Fatalf("default spec should be valid: %v", err)
	}
	if spec.Kind != sampling.KindInterval || spec.Unit != sampling.Seconds || spec.Interval != 1 {
		t.Errorf("unexpected default spec %+v", spec)
	}
	if cfg.Parallel {
		t.Error("expected sequential by default")
	}
	if cfg.ContactSheet.Columns != 4 || cfg.ContactSheet.ThumbWidth != 320 {
		t.Errorf("unexpected contact sheet defaults %+v", cfg.ContactSheet)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framesampler.yaml")
	yaml := `unit: frames
points: [0, 149, 299]
resize: 640x360
parallel: true
threads: 8
contact_sheet:
  enabled: true
  columns: 6
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Unit != "frames" || !cfg.Parallel || cfg.Threads != 8 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Points, []float64{0, 149, 299}) {
		t.Errorf("unexpected points %v", cfg.Points)
	}
	if !cfg.ContactSheet.Enabled || cfg.ContactSheet.Columns != 6 {
		t.Errorf("unexpected contact sheet %+v", cfg.ContactSheet)
	}
	// Unset keys keep their defaults
	if cfg.ContactSheet.ThumbWidth != 320 || cfg.LogFormat != "console" {
		t.Errorf("expected defaults to survive, got %+v", cfg)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("interval: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FRAMESAMPLER_UNIT", "frames")
	t.Setenv("FRAMESAMPLER_POINTS", "10,20.5,30")
	t.Setenv("FRAMESAMPLER_PARALLEL", "true")
	t.Setenv("FRAMESAMPLER_CONTACT_SHEET_ENABLED", "true")
	t.Setenv("FRAMESAMPLER_LOG_FORMAT", "json")

	cfg := Defaults()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Unit != "frames" || !cfg.Parallel || cfg.LogFormat != "json" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Points, []float64{10, 20.5, 30}) {
		t.Errorf("unexpected points %v", cfg.Points)
	}
	if !cfg.ContactSheet.Enabled {
		t.Error("expected contact sheet enabled from env")
	}
	if cfg.Interval != 1 || cfg.ContactSheet.Columns != 4 {
		t.Error("expected unset variables to keep existing values")
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("FRAMESAMPLER_THREADS", "many")

	cfg := Defaults()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("expected error for non-numeric threads")
	}
}

func TestConfig_Spec(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    sampling.Spec
		wantErr bool
	}{
		{"interval", Config{Unit: "seconds", Interval: 2}, sampling.IntervalSpec(sampling.Seconds, 2), false},
		{"points win", Config{Unit: "frames", Interval: 2, Points: []float64{5, 1}}, sampling.PointsSpec(sampling.Frames, 5, 1), false},
		{"bad unit", Config{Unit: "minutes", Interval: 2}, sampling.Spec{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Spec()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Spec() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Spec() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfig_ToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Resize = "0.5"
	cfg.Parallel = true
	cfg.Threads = 3
	cfg.ContactSheet.Enabled = true

	oc, err := cfg.ToOrchestratorConfig("clip.mp4", "out/clip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if oc.SourcePath != "clip.mp4" || oc.OutputDir != "out/clip" {
		t.Errorf("unexpected paths %s %s", oc.SourcePath, oc.OutputDir)
	}
	if oc.Resize != sampling.ScaleBy(0.5) {
		t.Errorf("unexpected resize %+v", oc.Resize)
	}
	if !oc.Parallel || oc.Threads != 3 || !oc.ContactSheet || oc.ContactSheetColumns != 4 {
		t.Errorf("unexpected orchestrator config %+v", oc)
	}

	cfg.Resize = "huge"
	if _, err := cfg.ToOrchestratorConfig("clip.mp4", "out"); !errors.Is(err, sampling.ErrInvalidResize) {
		t.Errorf("expected ErrInvalidResize, got %v", err)
	}
}

func TestRunDir(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)

	tests := []struct {
		source string
		want   string
	}{
		{"clip.mp4", filepath.Join("output", "clip_20240115_1030")},
		{"/videos/Trip.Day1.mov", filepath.Join("output", "Trip.Day1_20240115_1030")},
		{"noext", filepath.Join("output", "noext_20240115_1030")},
	}

	for _, tt := range tests {
		if got := RunDir("output", tt.source, now); got != tt.want {
			t.Errorf("RunDir(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
