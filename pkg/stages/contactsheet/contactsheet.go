// Package contactsheet renders the written frames of a run into a single
// labeled grid image.
package contactsheet

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/framesampler/pkg/pipeline"
	"github.com/user/framesampler/pkg/ports"
)

// FileName is the default contact sheet name inside a run directory.
const FileName = "contact_sheet.png"

// Input configures one contact sheet.
type Input struct {
	Frames     []pipeline.OutputFrame
	OutputPath string
	Columns    int // Thumbnails per row (default 4)
	ThumbWidth int // Thumbnail width in pixels (default 320)
}

// Result describes the written sheet.
type Result struct {
	Path   string
	Layout Layout
}

// Cell is the placement of one thumbnail and its label.
type Cell struct {
	X, Y          int
	Width, Height int
	LabelY        int // Vertical center of the label strip
}

// Layout is the computed grid geometry.
type Layout struct {
	Width, Height int
	Columns, Rows int
	Cells         []Cell
}

// Geometry constants in pixels.
const (
	padding     = 12
	gap         = 8
	labelHeight = 22
	fontSize    = 14
)

var (
	background = color.RGBA{R: 24, G: 24, B: 27, A: 255}
	labelColor = color.RGBA{R: 228, G: 228, B: 231, A: 255}
)

// ComputeLayout places n thumbnails of thumbWidth on a grid. Thumbnail
// height follows the source aspect ratio.
func ComputeLayout(n, columns, thumbWidth, srcWidth, srcHeight int) Layout {
	if n <= 0 {
		return Layout{}
	}
	if columns <= 0 {
		columns = 4
	}
	if columns > n {
		columns = n
	}
	if thumbWidth <= 0 {
		thumbWidth = 320
	}

	thumbHeight := thumbWidth
	if srcWidth > 0 && srcHeight > 0 {
		thumbHeight = thumbWidth * srcHeight / srcWidth
	}
	if thumbHeight < 1 {
		thumbHeight = 1
	}

	rows := (n + columns - 1) / columns
	cellHeight := thumbHeight + labelHeight

	l := Layout{
		Width:   padding*2 + columns*thumbWidth + (columns-1)*gap,
		Height:  padding*2 + rows*cellHeight + (rows-1)*gap,
		Columns: columns,
		Rows:    rows,
		Cells:   make([]Cell, n),
	}
	for i := 0; i < n; i++ {
		col, row := i%columns, i/columns
		x := padding + col*(thumbWidth+gap)
		y := padding + row*(cellHeight+gap)
		l.Cells[i] = Cell{
			X:      x,
			Y:      y,
			Width:  thumbWidth,
			Height: thumbHeight,
			LabelY: y + thumbHeight + labelHeight/2,
		}
	}
	return l
}

// Stage renders contact sheets.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewStage creates a contact sheet stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("contactsheet"),
	}
}

// Execute reads every frame back from disk and writes the sheet.
// An empty frame list writes nothing.
func (s *Stage) Execute(ctx context.Context, input Input) (Result, error) {
	if len(input.Frames) == 0 {
		return Result{}, nil
	}

	images := make([]image.Image, len(input.Frames))
	for i, f := range input.Frames {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		data, err := s.fs.ReadFile(f.Path)
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w", f.Path, err)
		}
		img, err := s.renderer.DecodeImage(data, ports.FormatPNG)
		if err != nil {
			return Result{}, fmt.Errorf("decode %s: %w", f.Path, err)
		}
		images[i] = img
	}

	b := images[0].Bounds()
	layout := ComputeLayout(len(images), input.Columns, input.ThumbWidth, b.Dx(), b.Dy())

	canvas := s.renderer.CreateCanvas(layout.Width, layout.Height, background)
	style := ports.TextStyle{FontSize: fontSize, Color: labelColor, Align: ports.AlignCenter}
	for i, cell := range layout.Cells {
		canvas.DrawImageScaled(images[i], cell.X, cell.Y, cell.Width, cell.Height)
		canvas.DrawText(caption(input.Frames[i]), cell.X+cell.Width/2, cell.LabelY, style)
	}

	data, err := s.renderer.EncodeImage(canvas.ToImage(), ports.FormatPNG, 0)
	if err != nil {
		return Result{}, fmt.Errorf("encode contact sheet: %w", err)
	}
	if err := s.fs.WriteFile(input.OutputPath, data); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", input.OutputPath, err)
	}

	s.logger.Info("Contact sheet saved to %s", input.OutputPath)
	return Result{Path: input.OutputPath, Layout: layout}, nil
}

// caption is the frame label, or the frame index when the label is empty.
func caption(f pipeline.OutputFrame) string {
	if f.Label != "" {
		return f.Label
	}
	return fmt.Sprintf("#%d", f.FrameIndex)
}

var _ pipeline.Stage[Input, Result] = (*Stage)(nil)
