// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/user/framesampler/pkg/orchestrator"
	"github.com/user/framesampler/pkg/sampling"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FRAMESAMPLER_"

// Config represents the full configuration for framesampler.
type Config struct {
	// Selection
	Unit     string    `yaml:"unit" env:"UNIT"` // seconds or frames
	Interval float64   `yaml:"interval" env:"INTERVAL"`
	Points   []float64 `yaml:"points" env:"POINTS" envSeparator:","`
	Resize   string    `yaml:"resize" env:"RESIZE"` // none, factor or WxH

	// Backend
	Parallel bool   `yaml:"parallel" env:"PARALLEL"`
	Threads  int    `yaml:"threads" env:"THREADS"`
	Resample string `yaml:"resample" env:"RESAMPLE"`

	// Output
	OutputRoot string `yaml:"output_root" env:"OUTPUT_ROOT"`

	// External tools
	FFmpegPath string `yaml:"ffmpeg_path" env:"FFMPEG"`

	// Logging
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"` // console or json

	// Contact sheet
	ContactSheet ContactSheetConfig `yaml:"contact_sheet" envPrefix:"CONTACT_SHEET_"`

	// Reports
	Summary     bool   `yaml:"summary" env:"SUMMARY"`
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`

	// Debug
	Debug    bool   `yaml:"debug" env:"DEBUG"`
	DebugDir string `yaml:"debug_dir" env:"DEBUG_DIR"`
}

// ContactSheetConfig configures the contact sheet.
type ContactSheetConfig struct {
	Enabled    bool `yaml:"enabled" env:"ENABLED"`
	Columns    int  `yaml:"columns" env:"COLUMNS"`
	ThumbWidth int  `yaml:"thumb_width" env:"THUMB_WIDTH"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Unit:     "seconds",
		Interval: 1,
		Resize:   "none",

		Resample: "catmullrom",

		OutputRoot: "output",

		LogLevel:  "info",
		LogFormat: "console",

		ContactSheet: ContactSheetConfig{
			Columns:    4,
			ThumbWidth: 320,
		},

		Summary:  true,
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with FRAMESAMPLER_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// Spec builds the sampling request. Points take precedence over the interval.
func (c Config) Spec() (sampling.Spec, error) {
	unit, err := sampling.ParseUnit(c.Unit)
	if err != nil {
		return sampling.Spec{}, err
	}
	if len(c.Points) > 0 {
		return sampling.PointsSpec(unit, c.Points...), nil
	}
	return sampling.IntervalSpec(unit, c.Interval), nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config for one source.
func (c Config) ToOrchestratorConfig(source, outputDir string) (orchestrator.Config, error) {
	spec, err := c.Spec()
	if err != nil {
		return orchestrator.Config{}, err
	}
	resize, err := sampling.ParseResize(c.Resize)
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		SourcePath: source,
		OutputDir:  outputDir,

		Spec:   spec,
		Resize: resize,

		Parallel: c.Parallel,
		Threads:  c.Threads,

		ContactSheet:           c.ContactSheet.Enabled,
		ContactSheetColumns:    c.ContactSheet.Columns,
		ContactSheetThumbWidth: c.ContactSheet.ThumbWidth,
	}, nil
}

// RunDir names the per-run output directory {root}/{stem}_{YYYYMMDD_HHMM}.
func RunDir(root, source string, now time.Time) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(root, fmt.Sprintf("%s_%s", stem, now.Format("20060102_1504")))
}
