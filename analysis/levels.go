package analysis

import (
	"math"
)

// ClipThreshold is the absolute sample value counted as clipped.
const ClipThreshold = 0.999

// SilenceThreshold bounds what counts as silence when measuring lead-in.
const SilenceThreshold = 1e-4

// Levels summarises the preview channel.
type Levels struct {
	Frames int `json:"frames"`

	PeakDBFS float64 `json:"peak_dbfs"`
	RMSDBFS  float64 `json:"rms_dbfs"`
	Crest    float64 `json:"crest_db"`
	DCOffset float64 `json:"dc_offset"`

	Clipped        int `json:"clipped"`
	LeadingSilence int `json:"leading_silence_frames"`
}

// Summarize measures peak and RMS level (dBFS), clipping and leading silence.
// Silence reports the floor of linToDB rather than -Inf.
func Summarize(samples []float32) Levels {
	x := make([]float64, len(samples))
	for i, v := range samples {
		x[i] = float64(v)
	}

	l := Levels{Frames: len(x)}
	if len(x) == 0 {
		l.PeakDBFS = linToDB(0)
		l.RMSDBFS = linToDB(0)
		return l
	}

	var peak, sum float64
	for _, v := range x {
		a := math.Abs(v)
		peak = math.Max(peak, a)
		if a >= ClipThreshold {
			l.Clipped++
		}
		sum += v
	}
	rms := rms1(x)
	l.PeakDBFS = linToDB(peak)
	l.RMSDBFS = linToDB(rms)
	l.Crest = l.PeakDBFS - l.RMSDBFS
	l.DCOffset = sum / float64(len(x))
	l.LeadingSilence = len(x) - len(trimLeadingSilence(x, SilenceThreshold))
	return l
}

func trimLeadingSilence(x []float64, threshold float64) []float64 {
	for i := 0; i < len(x); i++ {
		if math.Abs(x[i]) > threshold {
			return x[i:]
		}
	}
	return nil
}

func rms1(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}
