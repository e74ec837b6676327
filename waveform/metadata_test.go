package waveform

import (
	"math"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{2, "2.00s"},
		{0, "0.00s"},
		{1.234, "1.23s"},
		{61.5, "61.50s"},
		{math.NaN(), "unknown duration"},
		{math.Inf(1), "unknown duration"},
		{-1, "unknown duration"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.input); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatSampleRate(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{44100, "44,100 Hz"},
		{48000, "48,000 Hz"},
		{8000, "8,000 Hz"},
		{192000, "192,000 Hz"},
		{0, "unknown sample rate"},
		{-1, "unknown sample rate"},
	}
	for _, tt := range tests {
		if got := FormatSampleRate(tt.input); got != tt.want {
			t.Errorf("FormatSampleRate(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{1024, "1.0 KB"},
		{176444, "172.3 KB"},
		{100, "0.1 KB"},
		{0, ""},
		{-5, ""},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.input); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMetadataStringSkipsOmittedParts(t *testing.T) {
	d := &DecodedAudio{SampleRate: 44100, Duration: 2}
	if got, want := FormatMetadata(d, 2048).String(), "2.00s · 44,100 Hz · 2.0 KB"; got != want {
		t.Fatalf("metadata = %q, want %q", got, want)
	}
	if got, want := FormatMetadata(d, 0).String(), "2.00s · 44,100 Hz"; got != want {
		t.Fatalf("metadata without size = %q, want %q", got, want)
	}
}

func TestFormatMetadataNilAudio(t *testing.T) {
	m := FormatMetadata(nil, 0)
	if m.Duration != "unknown duration" || m.SampleRate != "unknown sample rate" || m.Size != "" {
		t.Fatalf("unexpected metadata for nil audio: %+v", m)
	}
}
