// Package surface provides drawing targets for waveform previews.
package surface

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/cwbudde/algo-wavepreview/waveform"
)

// Style controls how a surface paints.
type Style struct {
	Background color.RGBA
	Stroke     color.RGBA
	LineWidth  float64 // logical pixels
}

// DefaultStyle is a light background with a blue trace.
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Stroke:     color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff},
		LineWidth:  1,
	}
}

// Canvas is a waveform.Surface that can be serialised.
type Canvas interface {
	waveform.Surface
	Encode(w io.Writer) error
	Ext() string
}

// New returns the canvas for format ("png" or "svg").
func New(format string, style Style) (Canvas, error) {
	switch strings.ToLower(format) {
	case "png", "":
		return NewRaster(style), nil
	case "svg":
		return NewSVG(style), nil
	default:
		return nil, fmt.Errorf("unknown surface format %q", format)
	}
}
