package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/cwbudde/algo-wavepreview/internal/metrics"
	"github.com/cwbudde/algo-wavepreview/surface"
	"github.com/cwbudde/algo-wavepreview/waveform"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

type WatchParams struct {
	File       string  `pos:"true" help:"Audio file to watch"`
	Out        string  `short:"o" optional:"true" help:"Output image path. Defaults to the input name with .png or .svg"`
	Preset     string  `short:"p" optional:"true" help:"Render preset JSON file"`
	Width      int     `optional:"true" help:"Logical width in pixels (overrides preset)" default:"0"`
	Height     int     `optional:"true" help:"Logical height in pixels (overrides preset)" default:"0"`
	Scale      float64 `optional:"true" help:"Device pixel ratio (overrides preset)" default:"0"`
	Format     string  `short:"f" optional:"true" help:"Output format: png or svg (overrides preset)"`
	MetricsOut string  `optional:"true" help:"Write Prometheus metrics to this textfile on exit"`
	Verbose    bool    `short:"v" optional:"true" help:"Enable debug logging"`
	JSONLog    bool    `optional:"true" help:"Log as JSON"`
}

func WatchCmd() *cobra.Command {
	return boa.CmdT[WatchParams]{
		Use:         "watch",
		Short:       "Re-render the preview every time the file changes",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *WatchParams, cmd *cobra.Command, args []string) {
			log := newLogger(os.Stderr, params.Verbose, params.JSONLog)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			exitOnErr("watch", runWatch(ctx, params, os.Stdout, log))
		},
	}.ToCobra()
}

// watcher feeds file changes into a single controller. Rapid successive
// writes supersede each other, so only the newest content is ever drawn.
//
// The controller's surface can be cleared by the next selection before an
// observer runs, so each rendered state is redrawn from its own path onto
// preview, which only onState touches.
type watcher struct {
	path     string
	out      string
	preview  surface.Canvas
	viewport waveform.Viewport
	log      *slog.Logger

	mu     sync.Mutex
	stdout io.Writer
}

func (w *watcher) onState(st waveform.RenderState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch st.Phase {
	case waveform.PhaseRendered:
		waveform.Draw(w.preview, w.viewport, st.Path)
		if err := writeCanvas(w.out, w.preview); err != nil {
			w.log.Error("writing preview failed", "path", w.out, "error", err)
			return
		}
		fmt.Fprintf(w.stdout, "%s: %s\n", w.out, st.Message)
	case waveform.PhaseFailed:
		fmt.Fprintf(w.stdout, "%s: %s\n", st.Source, st.Message)
	}
}

func runWatch(ctx context.Context, params *WatchParams, stdout io.Writer, log *slog.Logger) error {
	r, err := resolveRender(viewFlags{
		Preset: params.Preset,
		Width:  params.Width,
		Height: params.Height,
		Scale:  params.Scale,
		Format: params.Format,
	})
	if err != nil {
		return err
	}
	canvas, err := surface.New(r.Format, r.Style)
	if err != nil {
		return err
	}
	preview, err := surface.New(r.Format, r.Style)
	if err != nil {
		return err
	}
	path, err := filepath.Abs(params.File)
	if err != nil {
		return err
	}

	w := &watcher{
		path:     path,
		out:      outputPath(params.Out, params.File, preview),
		preview:  preview,
		viewport: r.Viewport(),
		log:      log,
		stdout:   stdout,
	}
	m := metrics.New()
	defer writeMetrics(m, params.MetricsOut, log)
	c := newController(canvas, r, log, m, w.onState)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}
	defer fw.Close()
	// Editors often replace the file rather than write in place, so watch the directory.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	selectFile := func() {
		src, err := waveform.SourceFromFile(path)
		if err != nil {
			log.Warn("reading watched file failed", "path", path, "error", err)
			return
		}
		c.Select(ctx, src)
	}
	selectFile()

	for {
		select {
		case <-ctx.Done():
			c.Clear()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				log.Debug("watched file changed", "path", path, "op", event.Op.String())
				selectFile()
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				log.Info("watched file removed", "path", path)
				c.Clear()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}
