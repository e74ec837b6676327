package analysis

import (
	"math"
	"testing"
)

func makeSine(sr int, freq, seconds, amp float64) []float32 {
	n := int(float64(sr) * seconds)
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sr)))
	}
	return out
}

func TestSummarizeSine(t *testing.T) {
	l := Summarize(makeSine(48000, 1000, 1, 0.5))
	if math.Abs(l.PeakDBFS-linToDB(0.5)) > 0.01 {
		t.Fatalf("peak = %f dBFS, want %f", l.PeakDBFS, linToDB(0.5))
	}
	wantRMS := linToDB(0.5 / math.Sqrt2)
	if math.Abs(l.RMSDBFS-wantRMS) > 0.05 {
		t.Fatalf("rms = %f dBFS, want %f", l.RMSDBFS, wantRMS)
	}
	if math.Abs(l.Crest-3.01) > 0.05 {
		t.Fatalf("crest = %f dB, want ~3.01", l.Crest)
	}
	if l.Clipped != 0 {
		t.Fatalf("clipped = %d, want 0", l.Clipped)
	}
	if l.LeadingSilence != 1 {
		t.Fatalf("leading silence = %d, want 1 (sin(0))", l.LeadingSilence)
	}
}

func TestSummarizeCountsClipping(t *testing.T) {
	l := Summarize([]float32{0, 1, -1, 0.5, 0.9995})
	if l.Clipped != 3 {
		t.Fatalf("clipped = %d, want 3", l.Clipped)
	}
	if l.PeakDBFS != 0 {
		t.Fatalf("peak = %f, want 0 dBFS", l.PeakDBFS)
	}
}

func TestSummarizeSilenceIsFinite(t *testing.T) {
	for _, in := range [][]float32{nil, make([]float32, 1000)} {
		l := Summarize(in)
		if math.IsInf(l.PeakDBFS, 0) || math.IsNaN(l.RMSDBFS) {
			t.Fatalf("non-finite levels for silence: %+v", l)
		}
		if l.PeakDBFS != -240 {
			t.Fatalf("peak = %f, want floor -240", l.PeakDBFS)
		}
		if l.LeadingSilence != len(in) {
			t.Fatalf("leading silence = %d, want %d", l.LeadingSilence, len(in))
		}
	}
}

func TestSummarizeDCOffset(t *testing.T) {
	l := Summarize([]float32{0.25, 0.25, 0.25, 0.25})
	if math.Abs(l.DCOffset-0.25) > 1e-9 {
		t.Fatalf("dc = %f, want 0.25", l.DCOffset)
	}
}
