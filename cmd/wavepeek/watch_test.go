package main

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-wavepreview/codec"
	"github.com/cwbudde/algo-wavepreview/internal/wavio"
	"github.com/cwbudde/algo-wavepreview/surface"
	"github.com/cwbudde/algo-wavepreview/waveform"
)

// signallingCanvas reports every Clear on cleared without blocking.
type signallingCanvas struct {
	surface.Canvas
	cleared chan struct{}
}

func (s *signallingCanvas) Clear(v waveform.Viewport) {
	s.Canvas.Clear(v)
	select {
	case s.cleared <- struct{}{}:
	default:
	}
}

func drain(ch chan struct{}) {
	select {
	case <-ch:
	default:
	}
}

func within(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestWatcherWritesRenderedPathAfterNewerSelectionClears(t *testing.T) {
	dir := t.TempDir()
	style := surface.DefaultStyle()
	v := waveform.Viewport{Width: 100, Height: 20}

	var stdout syncBuffer
	w := &watcher{
		out:      filepath.Join(dir, "out.png"),
		preview:  surface.NewRaster(style),
		viewport: v,
		log:      quietLogger(),
		stdout:   &stdout,
	}

	rendered := make(chan struct{}, 1)
	release := make(chan struct{})
	hold := func(st waveform.RenderState) {
		if st.Phase == waveform.PhaseRendered {
			rendered <- struct{}{}
			<-release
		}
	}

	shared := &signallingCanvas{Canvas: surface.NewRaster(style), cleared: make(chan struct{}, 1)}
	c := waveform.NewController(codec.Factory(), shared, v,
		waveform.WithLogger(quietLogger()),
		waveform.WithObserver(hold),
		waveform.WithObserver(w.onState),
	)

	tone, err := wavio.Bytes(wavio.Sine(50, 0.8, 1, 8000), 8000)
	if err != nil {
		t.Fatalf("wavio.Bytes: %v", err)
	}
	doneA := c.Select(context.Background(), waveform.NewSource("a.wav", tone))
	within(t, rendered, "a.wav to render")
	drain(shared.cleared)

	doneB := make(chan struct{})
	go func() {
		<-c.Select(context.Background(), waveform.NewSource("b.wav", nil))
		close(doneB)
	}()
	within(t, shared.cleared, "b.wav to clear the shared canvas")
	close(release)
	within(t, doneA, "a.wav to settle")
	within(t, doneB, "b.wav to settle")

	if st := c.State(); st.Phase != waveform.PhaseFailed {
		t.Fatalf("final phase = %v, want failed", st.Phase)
	}
	if !strings.Contains(stdout.String(), "1.00s · 8,000 Hz") {
		t.Fatalf("rendered metadata not reported: %q", stdout.String())
	}

	b, err := os.ReadFile(w.out)
	if err != nil {
		t.Fatalf("read preview: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	strokes := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) != style.Background {
				strokes++
			}
		}
	}
	if strokes == 0 {
		t.Fatalf("written preview is blank")
	}
}
