//go:build js && wasm

package main

import (
	"fmt"
	"image/color"
	"syscall/js"

	"github.com/cwbudde/algo-wavepreview/surface"
	"github.com/cwbudde/algo-wavepreview/waveform"
)

// canvasSurface draws on an HTML canvas. The backing store is sized in
// physical pixels and the 2D context is scaled so paths stay logical.
type canvasSurface struct {
	el    js.Value
	ctx   js.Value
	style surface.Style
}

func newCanvasSurface(el js.Value, style surface.Style) *canvasSurface {
	return &canvasSurface{
		el:    el,
		ctx:   el.Call("getContext", "2d"),
		style: style,
	}
}

func (c *canvasSurface) Clear(v waveform.Viewport) {
	w, h := v.PhysicalSize()
	r := v.Ratio()
	c.el.Set("width", w)
	c.el.Set("height", h)
	c.el.Get("style").Set("width", fmt.Sprintf("%dpx", v.Width))
	c.el.Get("style").Set("height", fmt.Sprintf("%dpx", v.Height))
	c.ctx.Call("setTransform", r, 0, 0, r, 0, 0)
	c.ctx.Call("clearRect", 0, 0, v.Width, v.Height)
}

func (c *canvasSurface) Stroke(p waveform.Path) {
	if len(p) == 0 {
		return
	}
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", p[0].X, p[0].Y)
	for _, pt := range p[1:] {
		c.ctx.Call("lineTo", pt.X, pt.Y)
	}
	c.ctx.Set("strokeStyle", cssColor(c.style.Stroke))
	c.ctx.Set("lineWidth", c.style.LineWidth)
	c.ctx.Call("stroke")
}

// cssColor writes c with straight alpha, as CSS expects.
func cssColor(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", n.R, n.G, n.B, float64(n.A)/255)
}
