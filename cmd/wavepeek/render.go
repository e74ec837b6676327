package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/cwbudde/algo-wavepreview/internal/metrics"
	"github.com/cwbudde/algo-wavepreview/surface"
	"github.com/cwbudde/algo-wavepreview/waveform"
	"github.com/spf13/cobra"
)

type RenderParams struct {
	File       string  `pos:"true" help:"Audio file to preview (wav or mp3)"`
	Out        string  `short:"o" optional:"true" help:"Output image path. Defaults to the input name with .png or .svg"`
	Preset     string  `short:"p" optional:"true" help:"Render preset JSON file"`
	Width      int     `optional:"true" help:"Logical width in pixels (overrides preset)" default:"0"`
	Height     int     `optional:"true" help:"Logical height in pixels (overrides preset)" default:"0"`
	Scale      float64 `optional:"true" help:"Device pixel ratio (overrides preset)" default:"0"`
	Format     string  `short:"f" optional:"true" help:"Output format: png or svg (overrides preset)"`
	MetricsOut string  `optional:"true" help:"Write Prometheus metrics to this textfile"`
	Verbose    bool    `short:"v" optional:"true" help:"Enable debug logging"`
	JSONLog    bool    `optional:"true" help:"Log as JSON"`
}

func RenderCmd() *cobra.Command {
	return boa.CmdT[RenderParams]{
		Use:         "render",
		Short:       "Render a waveform preview image",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *RenderParams, cmd *cobra.Command, args []string) {
			log := newLogger(os.Stderr, params.Verbose, params.JSONLog)
			exitOnErr("render", runRender(cmd.Context(), params, os.Stdout, log))
		},
	}.ToCobra()
}

func runRender(ctx context.Context, params *RenderParams, stdout io.Writer, log *slog.Logger) error {
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
	src, err := waveform.SourceFromFile(params.File)
	if err != nil {
		return err
	}
	canvas, err := surface.New(r.Format, r.Style)
	if err != nil {
		return err
	}

	m := metrics.New()
	defer writeMetrics(m, params.MetricsOut, log)

	c := newController(canvas, r, log, m)
	<-c.Select(ctx, src)

	st := c.State()
	switch st.Phase {
	case waveform.PhaseRendered:
		out := outputPath(params.Out, params.File, canvas)
		if err := writeCanvas(out, canvas); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %s\n", out, st.Message)
		return nil
	case waveform.PhaseFailed:
		return fmt.Errorf("%s: %s", src.Name, st.Message)
	default:
		if err := ctx.Err(); err != nil {
			return err
		}
		return errors.New("render did not complete")
	}
}
