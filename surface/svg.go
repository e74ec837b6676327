package surface

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"sync"

	"github.com/cwbudde/algo-wavepreview/waveform"
)

// SVG records strokes as path elements in logical units. The viewBox keeps
// logical coordinates while width and height carry the physical size.
type SVG struct {
	mu       sync.Mutex
	style    Style
	viewport waveform.Viewport
	paths    []string
}

func NewSVG(style Style) *SVG {
	return &SVG{style: style, viewport: waveform.Viewport{Width: 1, Height: 1}}
}

func (s *SVG) Clear(v waveform.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
	s.paths = s.paths[:0]
}

func (s *SVG) Stroke(p waveform.Path) {
	if len(p) == 0 {
		return
	}
	var b bytes.Buffer
	for i, pt := range p {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(coord(pt.X))
		b.WriteByte(' ')
		b.WriteString(coord(pt.Y))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, b.String())
}

// WriteTo writes a standalone SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.viewport
	pw, ph := v.PhysicalSize()

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", pw, ph, v.Width, v.Height)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="%s" fill-opacity="%s"/>`+"\n",
		v.Width, v.Height, hex(s.style.Background), opacity(s.style.Background))
	for _, d := range s.paths {
		fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s" stroke-linejoin="round"/>`+"\n",
			d, hex(s.style.Stroke), opacity(s.style.Stroke), coord(s.style.LineWidth))
	}
	b.WriteString("</svg>\n")
	return b.WriteTo(w)
}

func (s *SVG) Encode(w io.Writer) error {
	_, err := s.WriteTo(w)
	return err
}

func (s *SVG) Ext() string { return ".svg" }

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// hex writes the straight-alpha colour; translucency goes through opacity.
func hex(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func opacity(c color.RGBA) string {
	return strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
}
