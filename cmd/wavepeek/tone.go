package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/cwbudde/algo-wavepreview/internal/wavio"
	"github.com/spf13/cobra"
)

type ToneParams struct {
	Out      string  `short:"o" help:"Output WAV path"`
	Freq     float64 `optional:"true" help:"Frequency in Hz" default:"440"`
	Duration float64 `short:"d" optional:"true" help:"Duration in seconds" default:"2"`
	Rate     int     `short:"r" optional:"true" help:"Sample rate in Hz" default:"44100"`
	Amp      float64 `short:"a" optional:"true" help:"Peak amplitude in [0,1]; 0 writes silence" default:"0.5"`
	Channels int     `short:"c" optional:"true" help:"Channel count (the tone is copied to every channel)" default:"1"`
}

func ToneCmd() *cobra.Command {
	return boa.CmdT[ToneParams]{
		Use:         "tone",
		Short:       "Write a sine or silence WAV fixture",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *ToneParams, cmd *cobra.Command, args []string) {
			exitOnErr("tone", runTone(params, os.Stdout))
		},
	}.ToCobra()
}

func runTone(params *ToneParams, stdout io.Writer) error {
	if params.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if params.Amp < 0 || params.Amp > 1 {
		return fmt.Errorf("amp must be in [0,1]")
	}
	if params.Duration < 0 {
		return fmt.Errorf("duration must be >= 0")
	}
	if params.Channels < 1 {
		return fmt.Errorf("channels must be >= 1")
	}
	if params.Rate <= 0 {
		return fmt.Errorf("rate must be > 0")
	}

	mono := wavio.Sine(params.Freq, params.Amp, params.Duration, params.Rate)
	chans := make([][]float32, params.Channels)
	for i := range chans {
		chans[i] = mono
	}
	data, err := wavio.Interleave(chans...)
	if err != nil {
		return err
	}
	if err := wavio.WriteInterleavedWAV(params.Out, data, params.Channels, params.Rate); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%d frames, %d Hz, %d ch)\n", params.Out, len(mono), params.Rate, params.Channels)
	return nil
}
