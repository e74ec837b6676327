// Package waveform turns decoded audio into a per-column min/max envelope and
// drives the select, decode and draw cycle behind a waveform preview.
package waveform

import (
	"os"
	"path/filepath"
)

// AudioSource is a user-selected audio payload. It is replaced wholesale on
// every new selection and never mutated.
type AudioSource struct {
	Name string
	Size int64
	Data []byte
}

// NewSource wraps an in-memory payload. Size is taken from len(data).
func NewSource(name string, data []byte) AudioSource {
	return AudioSource{
		Name: name,
		Size: int64(len(data)),
		Data: data,
	}
}

// SourceFromFile reads a whole file into an AudioSource named after its base name.
func SourceFromFile(path string) (AudioSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AudioSource{}, err
	}
	return NewSource(filepath.Base(path), data), nil
}

// DecodedAudio holds PCM samples in [-1, 1], one slice per channel.
// Only the first channel feeds the preview.
type DecodedAudio struct {
	SampleRate int
	Duration   float64
	Channels   [][]float32
}

// FirstChannel returns the samples of channel 0, or nil when there are none.
func (d *DecodedAudio) FirstChannel() []float32 {
	if d == nil || len(d.Channels) == 0 {
		return nil
	}
	return d.Channels[0]
}

// Frames is the number of samples per channel.
func (d *DecodedAudio) Frames() int {
	return len(d.FirstChannel())
}
