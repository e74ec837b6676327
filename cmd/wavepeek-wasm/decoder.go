//go:build js && wasm

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"syscall/js"

	"github.com/cwbudde/algo-wavepreview/waveform"
)

// browserDecoder decodes through the page's Web Audio implementation.
type browserDecoder struct {
	ac js.Value
}

// newBrowserDecoder fails with waveform.ErrUnsupportedEnvironment when
// neither AudioContext nor webkitAudioContext exists or when constructing
// one throws; the controller then falls back to waveform.Unavailable.
func newBrowserDecoder() (dec waveform.Decoder, err error) {
	ctor := js.Global().Get("AudioContext")
	if !ctor.Truthy() {
		ctor = js.Global().Get("webkitAudioContext")
	}
	if !ctor.Truthy() {
		return nil, waveform.ErrUnsupportedEnvironment
	}
	defer func() {
		if r := recover(); r != nil {
			dec, err = nil, fmt.Errorf("%w: %v", waveform.ErrUnsupportedEnvironment, r)
		}
	}()
	return &browserDecoder{ac: ctor.New()}, nil
}

type decodeOutcome struct {
	buf js.Value
	err error
}

func (d *browserDecoder) Decode(ctx context.Context, src waveform.AudioSource) (*waveform.DecodedAudio, error) {
	if len(src.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", waveform.ErrDecodeFailure, src.Name)
	}
	// decodeAudioData detaches its argument, so hand it a fresh copy.
	arr := js.Global().Get("Uint8Array").New(len(src.Data))
	js.CopyBytesToJS(arr, src.Data)

	done := make(chan decodeOutcome, 1)
	var onOK, onErr js.Func
	release := func() {
		onOK.Release()
		onErr.Release()
	}
	onOK = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer release()
		done <- decodeOutcome{buf: args[0]}
		return nil
	})
	onErr = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer release()
		msg := "decodeAudioData rejected the payload"
		if len(args) > 0 && args[0].Truthy() {
			msg = args[0].Call("toString").String()
		}
		done <- decodeOutcome{err: fmt.Errorf("%w: %s", waveform.ErrDecodeFailure, msg)}
		return nil
	})
	d.ac.Call("decodeAudioData", arr.Get("buffer")).Call("then", onOK, onErr)

	select {
	case <-ctx.Done():
		// The callbacks release themselves once the promise settles.
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		return copyAudioBuffer(out.buf), nil
	}
}

// copyAudioBuffer copies channel 0 of a Web Audio AudioBuffer into Go memory.
func copyAudioBuffer(buf js.Value) *waveform.DecodedAudio {
	da := &waveform.DecodedAudio{
		SampleRate: int(buf.Get("sampleRate").Float()),
		Duration:   buf.Get("duration").Float(),
	}
	if buf.Get("numberOfChannels").Int() < 1 {
		return da
	}
	f32 := buf.Call("getChannelData", 0)
	n := f32.Get("length").Int()
	raw := make([]byte, n*4)
	bytesView := js.Global().Get("Uint8Array").New(f32.Get("buffer"), f32.Get("byteOffset"), n*4)
	js.CopyBytesToGo(raw, bytesView)

	samples := make([]float32, n)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	da.Channels = [][]float32{samples}
	return da
}
