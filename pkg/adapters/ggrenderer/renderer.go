// Package ggrenderer implements ports.Renderer with gg for drawing and
// x/image/draw for resampling.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/framesampler/pkg/ports"
)

// Resampler names the interpolation used by ResizeImage.
type Resampler string

const (
	ResampleCatmullRom Resampler = "catmullrom"
	ResampleBiLinear   Resampler = "bilinear"
	ResampleApprox     Resampler = "approx"
	ResampleNearest    Resampler = "nearest"
)

// ParseResampler parses a resampler name. Unknown names fall back to CatmullRom.
func ParseResampler(s string) Resampler {
	switch Resampler(strings.ToLower(strings.TrimSpace(s))) {
	case ResampleBiLinear:
		return ResampleBiLinear
	case ResampleApprox:
		return ResampleApprox
	case ResampleNearest:
		return ResampleNearest
	default:
		return ResampleCatmullRom
	}
}

func (r Resampler) interpolator() draw.Interpolator {
	switch r {
	case ResampleBiLinear:
		return draw.BiLinear
	case ResampleApprox:
		return draw.ApproxBiLinear
	case ResampleNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Renderer implements ports.Renderer.
type Renderer struct {
	resampler Resampler
	fontPath  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithResampler sets the interpolation used when resizing frames.
func WithResampler(r Resampler) Option {
	return func(rd *Renderer) {
		rd.resampler = r
	}
}

// WithFontPath sets a TrueType font used when a TextStyle names none.
func WithFontPath(path string) Option {
	return func(rd *Renderer) {
		rd.fontPath = path
	}
}

// New creates a new Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{resampler: ResampleCatmullRom}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateCanvas creates a new drawing canvas filled with bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, fontPath: r.fontPath, resampler: r.resampler}
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		img, _, err := image.Decode(reader)
		return img, err
	}
}

// EncodeImage encodes an image. Quality applies to JPEG only.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resamples img to width x height.
// An image that already has the requested size is returned unchanged.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	r.resampler.interpolator().Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc        *gg.Context
	fontPath  string
	resampler Resampler
}

// DrawImageScaled resamples img into the rectangle at (x, y).
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	c.resampler.interpolator().Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	c.dc.DrawImage(dst, x, y)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text vertically centered on y.
// Without a loadable font gg's built-in bitmap face is used.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.dc.SetColor(style.Color)

	fontPath := style.FontPath
	if fontPath == "" {
		fontPath = c.fontPath
	}
	if fontPath != "" && style.FontSize > 0 {
		_ = c.dc.LoadFontFace(fontPath, style.FontSize)
	}

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	c.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
