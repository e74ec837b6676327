package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/cwbudde/algo-wavepreview/analysis"
	"github.com/cwbudde/algo-wavepreview/codec"
	"github.com/cwbudde/algo-wavepreview/waveform"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type InfoParams struct {
	Files []string `pos:"true" help:"Audio files to inspect"`
	JSON  bool     `optional:"true" help:"Output as JSON"`
}

func InfoCmd() *cobra.Command {
	return boa.CmdT[InfoParams]{
		Use:         "info",
		Short:       "Show duration, sample rate and levels of audio files",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *InfoParams, cmd *cobra.Command, args []string) {
			exitOnErr("info", runInfo(cmd.Context(), params, os.Stdout))
		},
	}.ToCobra()
}

type infoRecord struct {
	Name     string            `json:"name"`
	Format   string            `json:"format"`
	Channels int               `json:"channels,omitempty"`
	Metadata waveform.Metadata `json:"metadata"`
	Levels   *analysis.Levels  `json:"levels,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func inspect(ctx context.Context, dec waveform.Decoder, path string) infoRecord {
	src, err := waveform.SourceFromFile(path)
	if err != nil {
		return infoRecord{Name: path, Format: codec.FormatUnknown.String(), Error: err.Error()}
	}
	rec := infoRecord{Name: src.Name, Format: codec.Sniff(src.Data).String()}
	decoded, err := dec.Decode(ctx, src)
	if err != nil {
		rec.Metadata = waveform.FormatMetadata(nil, src.Size)
		rec.Error = waveform.FailureReason(err)
		return rec
	}
	levels := analysis.Summarize(decoded.FirstChannel())
	rec.Channels = len(decoded.Channels)
	rec.Metadata = waveform.FormatMetadata(decoded, src.Size)
	rec.Levels = &levels
	return rec
}

func runInfo(ctx context.Context, params *InfoParams, stdout io.Writer) error {
	if len(params.Files) == 0 {
		return fmt.Errorf("no files given (supported formats: %s)", strings.Join(codec.Formats(), ", "))
	}
	dec := codec.New()
	records := lo.Map(params.Files, func(path string, _ int) infoRecord {
		return inspect(ctx, dec, path)
	})

	if params.JSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
	} else {
		renderInfoTable(stdout, records)
	}

	failed := lo.CountBy(records, func(r infoRecord) bool { return r.Error != "" })
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be decoded", failed, len(records))
	}
	return nil
}

func renderInfoTable(w io.Writer, records []infoRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Format", "Duration", "Sample rate", "Size", "Ch", "Peak", "RMS", "Clipped"})
	for _, r := range records {
		if r.Error != "" {
			t.AppendRow(table.Row{r.Name, r.Format, text.FgHiRed.Sprint(r.Error), "", r.Metadata.Size, "", "", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			r.Name,
			r.Format,
			r.Metadata.Duration,
			r.Metadata.SampleRate,
			r.Metadata.Size,
			r.Channels,
			fmt.Sprintf("%.1f dBFS", r.Levels.PeakDBFS),
			fmt.Sprintf("%.1f dBFS", r.Levels.RMSDBFS),
			r.Levels.Clipped,
		})
	}
	t.Render()
}
