// Package canvas is the client side drawing surface: a white raster that
// strokes are painted into, blank detection and PNG export.
package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/lshigami/sketchquiz/internal/imagedata"
)

// DefaultQuality is the encode factor used for submissions.
const DefaultQuality = 0.5

var (
	Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Ink        = color.RGBA{A: 0xff}
)

type Point struct {
	X, Y float64
}

type Canvas struct {
	dc *gg.Context
}

func New(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

// Resize replaces the buffer with a blank one of the new size. Existing
// strokes are not carried over.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.dc = gg.NewContext(width, height)
	c.dc.SetLineCapRound()
	c.dc.SetLineJoinRound()
	c.Clear()
}

func (c *Canvas) Clear() {
	c.dc.SetColor(Background)
	c.dc.Clear()
}

// IsBlank reports whether every pixel still equals the background exactly.
func (c *Canvas) IsBlank() bool {
	rgba, ok := c.dc.Image().(*image.RGBA)
	if !ok {
		return isBlankSlow(c.dc.Image())
	}
	bg := Background
	b := rgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := rgba.Pix[rgba.PixOffset(b.Min.X, y):rgba.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			if row[i] != bg.R || row[i+1] != bg.G || row[i+2] != bg.B || row[i+3] != bg.A {
				return false
			}
		}
	}
	return true
}

func isBlankSlow(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) != Background {
				return false
			}
		}
	}
	return true
}

func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

func (c *Canvas) paint(tool Tool) {
	if tool == ToolEraser {
		c.dc.SetColor(Background)
		return
	}
	c.dc.SetColor(Ink)
}

// Dot paints a filled circle of the given diameter, the mark left by a click.
func (c *Canvas) Dot(p Point, tool Tool, size float64) {
	c.paint(tool)
	c.dc.DrawCircle(p.X, p.Y, size/2)
	c.dc.Fill()
}

// Segment paints a round-capped line between two points.
func (c *Canvas) Segment(from, to Point, tool Tool, size float64) {
	c.paint(tool)
	c.dc.SetLineWidth(size)
	c.dc.MoveTo(from.X, from.Y)
	c.dc.LineTo(to.X, to.Y)
	c.dc.Stroke()
}

// EncodePNG serializes the buffer. PNG is lossless, so quality only selects
// the zlib effort: below 0.25 favors speed, above 0.75 favors size.
func (c *Canvas) EncodePNG(quality float64) ([]byte, error) {
	enc := png.Encoder{CompressionLevel: compressionFor(quality)}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, c.dc.Image()); err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode returns the submission payload: base64 PNG without a data-URI prefix.
func (c *Canvas) Encode() (string, error) {
	raw, err := c.EncodePNG(DefaultQuality)
	if err != nil {
		return "", err
	}
	return imagedata.Encode(raw), nil
}

func compressionFor(quality float64) png.CompressionLevel {
	switch {
	case quality < 0.25:
		return png.BestSpeed
	case quality > 0.75:
		return png.BestCompression
	default:
		return png.DefaultCompression
	}
}
