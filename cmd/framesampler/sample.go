package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/user/framesampler/pkg/adapters/ffmpegdecoder"
	"github.com/user/framesampler/pkg/adapters/ffmpegpath"
	"github.com/user/framesampler/pkg/adapters/ffmpegtranscoder"
	"github.com/user/framesampler/pkg/adapters/filesink"
	"github.com/user/framesampler/pkg/adapters/ggrenderer"
	"github.com/user/framesampler/pkg/adapters/logger"
	"github.com/user/framesampler/pkg/adapters/nullsink"
	"github.com/user/framesampler/pkg/adapters/osfilesystem"
	"github.com/user/framesampler/pkg/adapters/prommetrics"
	"github.com/user/framesampler/pkg/adapters/zaplogger"
	"github.com/user/framesampler/pkg/config"
	"github.com/user/framesampler/pkg/orchestrator"
	"github.com/user/framesampler/pkg/ports"
	"github.com/user/framesampler/pkg/stages/contactsheet"
	"github.com/user/framesampler/pkg/stages/parallel"
	"github.com/user/framesampler/pkg/stages/sequential"
	"github.com/user/framesampler/pkg/summarizer"
)

// SummaryFile is the Markdown summary written into each run directory.
const SummaryFile = "summary.md"

func sampleCommand() *cli.Command {
	return &cli.Command{
		Name:      "sample",
		Usage:     l10n.T("Extract frames at a fixed interval or at explicit points"),
		ArgsUsage: "<video>",
		Flags:     sampleFlags(),
		Action:    runSample,
	}
}

func sampleFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file")},

		// Selection
		&cli.StringFlag{Name: "unit", Aliases: []string{"u"}, Category: l10n.T("Selection"), Usage: l10n.T("Unit of interval and points (seconds, frames)")},
		&cli.Float64Flag{Name: "interval", Aliases: []string{"i"}, Category: l10n.T("Selection"), Usage: l10n.T("Sample every N units starting at zero")},
		&cli.Float64SliceFlag{Name: "points", Aliases: []string{"p"}, Category: l10n.T("Selection"), Usage: l10n.T("Sample these points in the given order (comma separated)")},
		&cli.StringFlag{Name: "resize", Aliases: []string{"r"}, Category: l10n.T("Selection"), Usage: l10n.T("Resize output: none, a scale factor such as 0.5, or WxH")},

		// Backend
		&cli.BoolFlag{Name: "parallel", Category: l10n.T("Backend"), Usage: l10n.T("Use a single multi-threaded ffmpeg run when available")},
		&cli.IntFlag{Name: "threads", Aliases: []string{"t"}, Category: l10n.T("Backend"), Usage: l10n.T("Thread count for the parallel backend (0 = one per CPU)")},
		&cli.StringFlag{Name: "resample", Category: l10n.T("Backend"), Usage: l10n.T("Resampling filter (catmullrom, bilinear, approx, nearest)")},
		&cli.StringFlag{Name: "ffmpeg", Category: l10n.T("Backend"), Usage: l10n.T("Path to the ffmpeg executable")},

		// Output
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Category: l10n.T("Output"), Usage: l10n.T("Output directory (default: {output-root}/{name}_{YYYYMMDD_HHMM})")},
		&cli.StringFlag{Name: "output-root", Category: l10n.T("Output"), Usage: l10n.T("Parent directory of per-run output directories")},
		&cli.BoolFlag{Name: "contact-sheet", Category: l10n.T("Output"), Usage: l10n.T("Also render a contact sheet of the written frames")},
		&cli.IntFlag{Name: "contact-sheet-columns", Category: l10n.T("Output"), Usage: l10n.T("Contact sheet columns")},
		&cli.IntFlag{Name: "contact-sheet-thumb-width", Category: l10n.T("Output"), Usage: l10n.T("Contact sheet thumbnail width in pixels")},
		&cli.BoolFlag{Name: "no-summary", Category: l10n.T("Output"), Usage: l10n.T("Do not write summary.md")},
		&cli.StringFlag{Name: "metrics-file", Category: l10n.T("Output"), Usage: l10n.T("Write Prometheus metrics to this textfile")},

		// Debug
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Category: l10n.T("Debug"), Usage: l10n.T("Enable debug output")},
		&cli.StringFlag{Name: "debug-dir", Category: l10n.T("Debug"), Usage: l10n.T("Directory for debug output")},

		// Logging
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Category: l10n.T("Logging"), Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.StringFlag{Name: "log-format", Category: l10n.T("Logging"), Usage: l10n.T("Log format (console, json)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Category: l10n.T("Logging"), Usage: l10n.T("Suppress all log output")},
	}
}

// loadConfig layers defaults, the config file, the environment and flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if c.IsSet("interval") && c.IsSet("points") {
		return cfg, cli.Exit(l10n.T("Use either --interval or --points, not both"), 2)
	}
	if c.IsSet("unit") {
		cfg.Unit = c.String("unit")
	}
	if c.IsSet("interval") {
		cfg.Interval = c.Float64("interval")
		cfg.Points = nil
	}
	if c.IsSet("points") {
		cfg.Points = c.Float64Slice("points")
	}
	if c.IsSet("resize") {
		cfg.Resize = c.String("resize")
	}
	if c.IsSet("parallel") {
		cfg.Parallel = c.Bool("parallel")
	}
	if c.IsSet("threads") {
		cfg.Threads = c.Int("threads")
	}
	if c.IsSet("resample") {
		cfg.Resample = c.String("resample")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("output-root") {
		cfg.OutputRoot = c.String("output-root")
	}
	if c.IsSet("contact-sheet") {
		cfg.ContactSheet.Enabled = c.Bool("contact-sheet")
	}
	if c.IsSet("contact-sheet-columns") {
		cfg.ContactSheet.Columns = c.Int("contact-sheet-columns")
	}
	if c.IsSet("contact-sheet-thumb-width") {
		cfg.ContactSheet.ThumbWidth = c.Int("contact-sheet-thumb-width")
	}
	if c.Bool("no-summary") {
		cfg.Summary = false
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	return cfg, nil
}

// newLogger returns the configured logger and a flush function.
func newLogger(cfg config.Config, quiet bool) (ports.Logger, func(), error) {
	level := ports.ParseLogLevel(cfg.LogLevel)
	if quiet {
		level = ports.LevelQuiet
	}
	if cfg.LogFormat == "json" {
		zl, err := zaplogger.New(level)
		if err != nil {
			return nil, nil, err
		}
		return zl, func() { _ = zl.Sync() }, nil
	}
	if level == ports.LevelQuiet {
		return logger.NewNoop(), func() {}, nil
	}
	return logger.NewConsole(level), func() {}, nil
}

func runSample(c *cli.Context) error {
	source := c.Args().First()
	if source == "" {
		return cli.Exit(l10n.T("A video argument is required"), 2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log, flush, err := newLogger(cfg, c.Bool("quiet"))
	if err != nil {
		return err
	}
	defer flush()

	if cfg.FFmpegPath != "" {
		ffmpegpath.SetFFmpegPath(cfg.FFmpegPath)
	}

	outputDir := c.String("output")
	if outputDir == "" {
		outputDir = config.RunDir(cfg.OutputRoot, source, time.Now())
	}

	orchConfig, err := cfg.ToOrchestratorConfig(source, outputDir)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New(ggrenderer.WithResampler(ggrenderer.ParseResampler(cfg.Resample)))
	decoder := ffmpegdecoder.New()
	transcoder := ffmpegtranscoder.New()
	metrics := prommetrics.New()

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	orch := orchestrator.New(
		sequential.NewStage(decoder, renderer, fs, log),
		parallel.NewStage(decoder, transcoder, fs, sink, log),
		contactsheet.NewStage(renderer, fs, log),
		transcoder,
		fs,
		sink,
		metrics,
		log,
	)

	var progress *progressReporter
	if showProgress(cfg, c.Bool("quiet")) {
		progress = newProgressReporter(os.Stderr)
		orchConfig.Progress = progress.Report
	}

	result, runErr := orch.Run(ctx, orchConfig)
	progress.Finish()

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Failed to write output: %s", err.Error())
		} else {
			log.Info("Metrics written to %s", cfg.MetricsFile)
		}
	}

	if runErr != nil {
		return runErr
	}

	if cfg.Summary {
		path := filepath.Join(outputDir, SummaryFile)
		s := buildSummary(source, orchConfig, result)
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), fs)
		if err := w.Write(path, s); err != nil {
			log.Warn("Failed to write output: %s", err.Error())
		} else {
			log.Info("Summary saved to %s", path)
		}
	}

	// Written paths go to stdout, one per line, for piping.
	for _, path := range result.Extract.Paths() {
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}

// showProgress reports whether a progress bar should be drawn on stderr.
func showProgress(cfg config.Config, quiet bool) bool {
	if quiet || cfg.LogFormat == "json" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func buildSummary(source string, oc orchestrator.Config, result orchestrator.RunResult) *summarizer.Summary {
	extracted := result.Extract

	frames := make([]summarizer.Frame, len(extracted.Written))
	for i, f := range extracted.Written {
		var size int64
		if st, err := os.Stat(f.Path); err == nil {
			size = st.Size()
		}
		frames[i] = summarizer.Frame{
			SequenceIndex: f.SequenceIndex,
			FrameIndex:    f.FrameIndex,
			Label:         f.Label,
			Path:          f.Path,
			Size:          size,
		}
	}
	skipped := make([]summarizer.Skip, len(extracted.Skipped))
	for i, s := range extracted.Skipped {
		skipped[i] = summarizer.Skip{
			SequenceIndex: s.SequenceIndex,
			FrameIndex:    s.FrameIndex,
			Label:         s.Label,
			Reason:        string(s.Reason),
		}
	}

	return summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			Path:       source,
			FrameRate:  extracted.Info.FrameRate,
			FrameCount: extracted.Info.FrameCount,
			Width:      extracted.Info.Width,
			Height:     extracted.Info.Height,
		}).
		WithSelection(summarizer.Selection{
			Spec:    oc.Spec.String(),
			Resize:  oc.Resize.String(),
			Targets: len(extracted.Targets),
		}).
		WithBackend(summarizer.BackendInfo{
			Name:     string(result.Backend()),
			Threads:  result.Threads,
			FellBack: result.FellBack,
		}).
		WithOutput(summarizer.OutputInfo{
			Dir:          oc.OutputDir,
			Frames:       frames,
			Skipped:      skipped,
			ElapsedMs:    result.Elapsed.Milliseconds(),
			ContactSheet: result.ContactSheetPath,
		}).
		Build()
}
