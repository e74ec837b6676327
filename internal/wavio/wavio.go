// Package wavio writes 16-bit PCM WAV files for fixtures and the tone command.
package wavio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// WriteMonoWAV writes data as a 16-bit mono file, creating parent directories.
func WriteMonoWAV(path string, data []float32, sampleRate int) error {
	return WriteInterleavedWAV(path, data, 1, sampleRate)
}

// WriteInterleavedWAV writes numCh interleaved channels to path.
func WriteInterleavedWAV(path string, samples []float32, numCh, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, samples, numCh, sampleRate)
}

// Encode writes a WAV stream to w.
func Encode(w io.WriteSeeker, samples []float32, numCh, sampleRate int) error {
	if numCh < 1 {
		return fmt.Errorf("invalid channel count: %d", numCh)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample-rate: %d", sampleRate)
	}
	if len(samples)%numCh != 0 {
		return fmt.Errorf("sample count %d is not a multiple of %d channels", len(samples), numCh)
	}
	enc := wav.NewEncoder(w, sampleRate, 16, numCh, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numCh,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Interleave merges per-channel slices of equal length into one frame-major slice.
func Interleave(channels ...[]float32) ([]float32, error) {
	if len(channels) == 0 {
		return nil, nil
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return nil, fmt.Errorf("channel length mismatch")
		}
	}
	out := make([]float32, frames*len(channels))
	for i := 0; i < frames; i++ {
		for c, ch := range channels {
			out[i*len(channels)+c] = ch[i]
		}
	}
	return out, nil
}

// Sine returns seconds of a sine at freq Hz with peak amplitude amp.
func Sine(freq, amp, seconds float64, sampleRate int) []float32 {
	n := int(math.Round(seconds * float64(sampleRate)))
	if n < 0 {
		n = 0
	}
	out := make([]float32, n)
	if amp == 0 {
		return out
	}
	w := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = float32(amp * math.Sin(w*float64(i)))
	}
	return out
}

// Bytes encodes a mono WAV in memory, as a browser would hand it over.
func Bytes(data []float32, sampleRate int) ([]byte, error) {
	tmp, err := os.CreateTemp("", "wavio-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if err := Encode(tmp, data, 1, sampleRate); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if _, err := b.ReadFrom(tmp); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
