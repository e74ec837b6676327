package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/cwbudde/algo-wavepreview/waveform"
	"github.com/gopxl/beep/v2/mp3"
)

// decodeMP3 streams the whole payload through beep. beep always yields
// stereo frames; the second channel is kept only for stereo input.
func decodeMP3(ctx context.Context, data []byte, blockFrames int) (*waveform.DecodedAudio, error) {
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", waveform.ErrDecodeFailure, err)
	}
	defer streamer.Close()

	rate := int(format.SampleRate)
	if rate <= 0 {
		return nil, fmt.Errorf("%w: invalid mp3 sample-rate: %d", waveform.ErrDecodeFailure, rate)
	}

	var left, right []float32
	if n := streamer.Len(); n > 0 {
		left = make([]float32, 0, n)
		right = make([]float32, 0, n)
	}
	block := make([][2]float64, blockFrames)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, ok := streamer.Stream(block)
		for _, s := range block[:n] {
			left = append(left, clamp(float32(s[0])))
			right = append(right, clamp(float32(s[1])))
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", waveform.ErrDecodeFailure, err)
	}

	channels := [][]float32{left}
	if format.NumChannels > 1 {
		channels = append(channels, right)
	}
	return &waveform.DecodedAudio{
		SampleRate: rate,
		Duration:   float64(len(left)) / float64(rate),
		Channels:   channels,
	}, nil
}
