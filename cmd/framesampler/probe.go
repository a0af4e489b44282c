package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framesampler/pkg/adapters/ffmpegdecoder"
	"github.com/user/framesampler/pkg/adapters/ffmpegpath"
	"github.com/user/framesampler/pkg/ports"
)

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Print frame rate, frame count, duration and resolution of a video"),
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: l10n.T("Print as JSON")},
			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg executable"), EnvVars: []string{"FRAMESAMPLER_FFMPEG"}},
		},
		Action: runProbe,
	}
}

type probeOutput struct {
	Path string `json:"path"`
	ports.VideoInfo
	DurationSeconds float64 `json:"duration_seconds"`
}

func runProbe(c *cli.Context) error {
	source := c.Args().First()
	if source == "" {
		return cli.Exit(l10n.T("A video argument is required"), 2)
	}
	if path := c.String("ffmpeg"); path != "" {
		ffmpegpath.SetFFmpegPath(path)
	}

	info, err := ffmpegdecoder.New().Probe(source)
	if err != nil {
		return err
	}

	out := probeOutput{
		Path:            source,
		VideoInfo:       info,
		DurationSeconds: info.Duration(),
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", l10n.T("File"), out.Path)
	fmt.Fprintf(w, "%s\t%.3f fps\n", l10n.T("Frame Rate"), info.FrameRate)
	fmt.Fprintf(w, "%s\t%d\n", l10n.T("Frame Count"), info.FrameCount)
	fmt.Fprintf(w, "%s\t%.3f s\n", l10n.T("Duration"), out.DurationSeconds)
	fmt.Fprintf(w, "%s\t%dx%d\n", l10n.T("Resolution"), info.Width, info.Height)
	return w.Flush()
}
