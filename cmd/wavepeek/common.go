package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/cwbudde/algo-wavepreview/codec"
	"github.com/cwbudde/algo-wavepreview/internal/metrics"
	"github.com/cwbudde/algo-wavepreview/preset"
	"github.com/cwbudde/algo-wavepreview/surface"
	"github.com/cwbudde/algo-wavepreview/waveform"
	"github.com/google/uuid"
)

func defaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// newLogger installs the process logger. Every record carries a run id so
// interleaved watch sessions can be told apart.
func newLogger(w io.Writer, verbose, jsonLog bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if jsonLog {
		h = slog.NewJSONHandler(w, opts)
	}
	log := slog.New(h).With("run", uuid.NewString())
	slog.SetDefault(log)
	return log
}

// viewFlags are the rendering overrides shared by render and watch.
// Zero values leave the preset untouched.
type viewFlags struct {
	Preset string
	Width  int
	Height int
	Scale  float64
	Format string
}

func resolveRender(f viewFlags) (*preset.Render, error) {
	r := preset.Default()
	if f.Preset != "" {
		loaded, err := preset.LoadJSON(f.Preset)
		if err != nil {
			return nil, fmt.Errorf("loading preset %q: %w", f.Preset, err)
		}
		r = loaded
	}
	preset.ApplyEnv(r)
	if f.Width != 0 {
		r.Width = f.Width
	}
	if f.Height != 0 {
		r.Height = f.Height
	}
	if f.Scale != 0 {
		r.Scale = f.Scale
	}
	if f.Format != "" {
		r.Format = strings.ToLower(f.Format)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func newController(canvas surface.Canvas, r *preset.Render, log *slog.Logger, m *metrics.Metrics, observers ...func(waveform.RenderState)) *waveform.Controller {
	opts := []waveform.Option{
		waveform.WithLogger(log),
		waveform.WithMetrics(m),
	}
	for _, fn := range observers {
		opts = append(opts, waveform.WithObserver(fn))
	}
	return waveform.NewController(codec.Factory(), canvas, r.Viewport(), opts...)
}

// outputPath defaults to the input name with the canvas extension, next to the input.
func outputPath(out, input string, canvas surface.Canvas) string {
	if out != "" {
		return out
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + canvas.Ext()
}

func writeCanvas(path string, canvas surface.Canvas) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := canvas.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMetrics(m *metrics.Metrics, path string, log *slog.Logger) {
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.Warn("writing metrics failed", "path", path, "error", err)
	}
}

func exitOnErr(cmd string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
	os.Exit(1)
}
