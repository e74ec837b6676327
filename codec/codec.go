// Package codec decodes in-memory WAV and MP3 payloads for waveform previews.
package codec

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-wavepreview/waveform"
	"github.com/gabriel-vasile/mimetype"
)

// Format identifies a container by its leading bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatMP3
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// Formats lists the container names Decoder understands.
func Formats() []string {
	return []string{FormatWAV.String(), FormatMP3.String()}
}

// Sniff identifies the container from the leading bytes of data. MP3 is
// recognised either by an ID3v2 tag or by a bare MPEG audio frame sync.
func Sniff(data []byte) Format {
	m := mimetype.Detect(data)
	switch {
	case m.Is("audio/wav"):
		return FormatWAV
	case m.Is("audio/mpeg"):
		return FormatMP3
	default:
		return FormatUnknown
	}
}

const defaultBlockFrames = 4096

// Decoder is the native waveform.Decoder.
type Decoder struct {
	blockFrames int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithBlockFrames sets how many frames are streamed between cancellation
// checks when decoding compressed input.
func WithBlockFrames(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.blockFrames = n
		}
	}
}

// New returns a decoder for every format in Formats.
func New(opts ...Option) *Decoder {
	d := &Decoder{blockFrames: defaultBlockFrames}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Factory adapts New to the constructor shape waveform.NewController expects.
func Factory(opts ...Option) func() (waveform.Decoder, error) {
	return func() (waveform.Decoder, error) {
		return New(opts...), nil
	}
}

// Decode implements waveform.Decoder. Every failure wraps
// waveform.ErrDecodeFailure unless ctx was cancelled first.
func (d *Decoder) Decode(ctx context.Context, src waveform.AudioSource) (*waveform.DecodedAudio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(src.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", waveform.ErrDecodeFailure, src.Name)
	}
	switch Sniff(src.Data) {
	case FormatWAV:
		return decodeWAV(src.Data)
	case FormatMP3:
		return decodeMP3(ctx, src.Data, d.blockFrames)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported format", waveform.ErrDecodeFailure, src.Name)
	}
}

// clamp bounds v to [-1, 1]. NaN, which float WAVs can carry, becomes silence.
func clamp(v float32) float32 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
