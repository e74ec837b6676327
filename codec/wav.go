package codec

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/algo-wavepreview/waveform"
	"github.com/cwbudde/wav"
)

func decodeWAV(data []byte) (*waveform.DecodedAudio, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid wav file", waveform.ErrDecodeFailure)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: reading PCM data: %v", waveform.ErrDecodeFailure, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: invalid wav buffer", waveform.ErrDecodeFailure)
	}

	numCh := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	if rate <= 0 {
		return nil, fmt.Errorf("%w: invalid wav sample-rate: %d", waveform.ErrDecodeFailure, rate)
	}
	frames := len(buf.Data) / numCh

	channels := make([][]float32, numCh)
	for c := range channels {
		channels[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < numCh; c++ {
			channels[c][i] = clamp(buf.Data[i*numCh+c])
		}
	}
	return &waveform.DecodedAudio{
		SampleRate: rate,
		Duration:   float64(frames) / float64(rate),
		Channels:   channels,
	}, nil
}
