package waveform

import (
	"fmt"
	"math"
)

// Viewport describes a drawing surface in logical pixels. Scale is the
// device pixel ratio used to size the backing store.
type Viewport struct {
	Width  int
	Height int
	Scale  float64
}

// Validate reports whether the viewport can be drawn on.
func (v Viewport) Validate() error {
	if v.Width < 1 {
		return fmt.Errorf("viewport width must be >= 1, got %d", v.Width)
	}
	if v.Height < 1 {
		return fmt.Errorf("viewport height must be >= 1, got %d", v.Height)
	}
	return nil
}

// Ratio is Scale clamped to at least 1.
func (v Viewport) Ratio() float64 {
	if math.IsNaN(v.Scale) || math.IsInf(v.Scale, 0) || v.Scale < 1 {
		return 1
	}
	return v.Scale
}

// PhysicalSize is the backing-store size in device pixels.
func (v Viewport) PhysicalSize() (int, int) {
	r := v.Ratio()
	w := int(math.Ceil(float64(v.Width) * r))
	h := int(math.Ceil(float64(v.Height) * r))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// MidY is the vertical centre line in logical pixels.
func (v Viewport) MidY() float64 {
	return float64(v.Height) / 2
}

// Point is a position in logical pixels.
type Point struct {
	X float64
	Y float64
}

// Path is a polyline in logical pixels.
type Path []Point

// EmitPath maps an envelope onto a single polyline. It starts at the left
// edge on the centre line, visits each column's max point then its min point
// at x = column index, and ends at the right edge on the centre line.
func EmitPath(env Envelope, v Viewport) Path {
	mid := v.MidY()
	p := make(Path, 0, 2*len(env)+2)
	p = append(p, Point{X: 0, Y: mid})
	for i, pk := range env {
		x := float64(i)
		p = append(p,
			Point{X: x, Y: mid + float64(pk.Max)*mid},
			Point{X: x, Y: mid + float64(pk.Min)*mid},
		)
	}
	p = append(p, Point{X: float64(v.Width), Y: mid})
	return p
}

// Surface is something a Path can be drawn on.
//
// Clear blanks the whole surface, sizes it for v and scales the transform by
// v.Ratio() so later strokes use logical coordinates. Stroke draws p on top
// of whatever is there.
type Surface interface {
	Clear(v Viewport)
	Stroke(p Path)
}

// Draw clears s and strokes p, so nothing from an earlier render survives.
func Draw(s Surface, v Viewport, p Path) {
	s.Clear(v)
	s.Stroke(p)
}
