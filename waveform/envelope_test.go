package waveform

import (
	"math/rand"
	"reflect"
	"testing"
)

func randomSamples(n int, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(rng.Float64()*2 - 1)
	}
	return out
}

func TestBuildEnvelopeLengthEqualsWidthWhenEnoughSamples(t *testing.T) {
	for _, tc := range []struct{ n, width int }{
		{640, 640},
		{1000, 640},
		{88200, 640},
		{10, 4},
		{7, 7},
		{1, 1},
	} {
		samples := randomSamples(tc.n, int64(tc.n*31+tc.width))
		env := BuildEnvelope(samples, tc.width)
		if len(env) != tc.width {
			t.Fatalf("n=%d width=%d: len=%d want=%d", tc.n, tc.width, len(env), tc.width)
		}
		for i, pk := range env {
			if pk.Max < pk.Min {
				t.Fatalf("n=%d width=%d: column %d has max %f < min %f", tc.n, tc.width, i, pk.Max, pk.Min)
			}
		}
	}
}

func TestBuildEnvelopeNeverFabricatesColumns(t *testing.T) {
	for _, tc := range []struct{ n, width int }{
		{1, 640},
		{5, 6},
		{300, 640},
	} {
		env := BuildEnvelope(randomSamples(tc.n, 3), tc.width)
		if len(env) > tc.n {
			t.Fatalf("n=%d width=%d: got %d columns, more than samples", tc.n, tc.width, len(env))
		}
	}
}

func TestBuildEnvelopeCapturesPeaksPerBlock(t *testing.T) {
	samples := []float32{0.1, -0.5, 0.9, 0.2, -1, 0, 0.3, 0.3, 0.7}
	env := BuildEnvelope(samples, 4)
	want := Envelope{
		{Min: -0.5, Max: 0.1},
		{Min: 0.2, Max: 0.9},
		{Min: -1, Max: 0},
		{Min: 0.3, Max: 0.3},
	}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("envelope mismatch:\n got=%v\nwant=%v", env, want)
	}
}

func TestBuildEnvelopeOneSamplePerColumnWhenWidthExceedsSamples(t *testing.T) {
	samples := []float32{0.5, -0.25, 1}
	env := BuildEnvelope(samples, 10)
	want := Envelope{{0.5, 0.5}, {-0.25, -0.25}, {1, 1}}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("envelope mismatch: got=%v want=%v", env, want)
	}
}

func TestBuildEnvelopeIsPureFunctionOfInput(t *testing.T) {
	samples := randomSamples(48000, 42)
	a := BuildEnvelope(samples, 512)
	b := BuildEnvelope(samples, 512)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical envelopes for identical input")
	}
}

func TestBuildEnvelopeSilence(t *testing.T) {
	samples := make([]float32, 2*44100)
	env := BuildEnvelope(samples, 640)
	if len(env) != 640 {
		t.Fatalf("len=%d want=640", len(env))
	}
	for i, pk := range env {
		if pk != (Peak{}) {
			t.Fatalf("column %d = %+v, want zero peak", i, pk)
		}
	}
}

func TestBuildEnvelopeDegenerateInput(t *testing.T) {
	if env := BuildEnvelope(nil, 640); len(env) != 0 {
		t.Fatalf("expected empty envelope for no samples, got %d columns", len(env))
	}
	if env := BuildEnvelope([]float32{1, 2}, 0); len(env) != 0 {
		t.Fatalf("expected empty envelope for zero width, got %d columns", len(env))
	}
	if env := BuildEnvelope([]float32{1, 2}, -3); len(env) != 0 {
		t.Fatalf("expected empty envelope for negative width, got %d columns", len(env))
	}
}
