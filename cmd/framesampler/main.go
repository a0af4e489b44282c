// Package main provides the CLI entry point for framesampler.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "framesampler",
		Usage:   l10n.T("Extract labeled still frames from a video"),
		Version: version,
		Description: l10n.T("framesampler writes still images of selected frames of a video file, " +
			"either by seeking frame by frame or with a single multi-threaded ffmpeg run."),
		Commands: []*cli.Command{
			sampleCommand(),
			probeCommand(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("framesampler version %s", version))
			return nil
		},
	}
}

// exitCode maps usage errors to 2 and everything else to 1.
func exitCode(err error) int {
	if coder, ok := err.(cli.ExitCoder); ok {
		return coder.ExitCode()
	}
	return 1
}
