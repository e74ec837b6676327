//go:build js && wasm

package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/cwbudde/algo-wavepreview/internal/metrics"
	"github.com/cwbudde/algo-wavepreview/surface"
	"github.com/cwbudde/algo-wavepreview/waveform"
)

const canvasSelector = "[data-waveform]"

var controller *waveform.Controller

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	el := js.Global().Get("document").Call("querySelector", canvasSelector)
	if !el.Truthy() {
		log.Error("no preview canvas found", "selector", canvasSelector)
		return
	}
	v := waveform.Viewport{
		Width:  el.Get("clientWidth").Int(),
		Height: el.Get("clientHeight").Int(),
		Scale:  js.Global().Get("devicePixelRatio").Float(),
	}
	if v.Validate() != nil {
		v.Width, v.Height = 640, 120
	}

	controller = waveform.NewController(
		newBrowserDecoder,
		newCanvasSurface(el, surface.DefaultStyle()),
		v,
		waveform.WithLogger(log),
		waveform.WithMetrics(metrics.New()),
		waveform.WithObserver(publishState),
	)

	js.Global().Set("wavepeekSelect", js.FuncOf(wavepeekSelect))
	js.Global().Set("wavepeekClear", js.FuncOf(wavepeekClear))
	js.Global().Set("wavepeekViewport", js.FuncOf(wavepeekViewport))

	log.Info("wavepeek module loaded", "width", v.Width, "height", v.Height, "ratio", v.Ratio())
	select {}
}

// wavepeekSelect(arrayBuffer, name, size)
func wavepeekSelect(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	view := js.Global().Get("Uint8Array").New(args[0])
	data := make([]byte, view.Get("byteLength").Int())
	js.CopyBytesToGo(data, view)

	src := waveform.NewSource("", data)
	if len(args) > 1 && args[1].Type() == js.TypeString {
		src.Name = args[1].String()
	}
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		src.Size = int64(args[2].Float())
	}
	controller.Select(context.Background(), src)
	return nil
}

func wavepeekClear(this js.Value, args []js.Value) interface{} {
	controller.Clear()
	return nil
}

// wavepeekViewport(width, height, ratio) returns an error message or null.
func wavepeekViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return "width and height are required"
	}
	v := waveform.Viewport{Width: args[0].Int(), Height: args[1].Int(), Scale: 1}
	if len(args) > 2 {
		v.Scale = args[2].Float()
	}
	if err := controller.SetViewport(v); err != nil {
		return err.Error()
	}
	return nil
}

// publishState forwards every state to window.wavepeekOnState when the page defines it.
func publishState(st waveform.RenderState) {
	fn := js.Global().Get("wavepeekOnState")
	if fn.Type() != js.TypeFunction {
		return
	}
	fn.Invoke(map[string]interface{}{
		"phase":      st.Phase.String(),
		"selection":  float64(st.Selection),
		"source":     st.Source,
		"message":    st.Message,
		"duration":   st.Metadata.Duration,
		"sampleRate": st.Metadata.SampleRate,
		"size":       st.Metadata.Size,
		"columns":    len(st.Envelope),
	})
}
