package surface

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/cwbudde/algo-wavepreview/waveform"
	"golang.org/x/image/vector"
)

// Raster paints onto an RGBA image at the viewport's physical resolution.
type Raster struct {
	mu    sync.Mutex
	style Style
	ratio float64
	img   *image.RGBA
}

func NewRaster(style Style) *Raster {
	return &Raster{style: style, ratio: 1, img: image.NewRGBA(image.Rect(0, 0, 1, 1))}
}

// Clear resizes the backing image to v's physical size and fills it.
func (r *Raster) Clear(v waveform.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, h := v.PhysicalSize()
	r.ratio = v.Ratio()
	if b := r.img.Bounds(); b.Dx() != w || b.Dy() != h {
		r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.style.Background), image.Point{}, draw.Src)
}

// Stroke draws p as a polyline in logical coordinates.
func (r *Raster) Stroke(p waveform.Path) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(p) < 2 {
		return
	}
	b := r.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	half := math.Max(r.style.LineWidth, 0.5) * r.ratio / 2
	for i := 1; i < len(p); i++ {
		segment(z, p[i-1], p[i], r.ratio, half)
	}
	z.Draw(r.img, b, image.NewUniform(r.style.Stroke), image.Point{})
}

// segment adds one line segment as a quad, extended by half the line width
// at both ends so consecutive segments join without gaps.
func segment(z *vector.Rasterizer, a, b waveform.Point, ratio, half float64) {
	ax, ay := a.X*ratio, a.Y*ratio
	bx, by := b.X*ratio, b.Y*ratio
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	ux, uy := dx/l*half, dy/l*half
	nx, ny := -uy, ux
	ax, ay = ax-ux, ay-uy
	bx, by = bx+ux, by+uy
	z.MoveTo(float32(ax+nx), float32(ay+ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	z.LineTo(float32(ax-nx), float32(ay-ny))
	z.ClosePath()
}

// Image returns the backing image. It is shared, not copied.
func (r *Raster) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.img
}

// EncodePNG writes the current image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return png.Encode(w, r.img)
}

func (r *Raster) Encode(w io.Writer) error { return r.EncodePNG(w) }

func (r *Raster) Ext() string { return ".png" }
