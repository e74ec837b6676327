package waveform

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MetadataSeparator joins the metadata parts for display.
const MetadataSeparator = " · "

const (
	unknownDuration   = "unknown duration"
	unknownSampleRate = "unknown sample rate"
)

var ratePrinter = message.NewPrinter(language.English)

// Metadata is the human-readable summary shown next to a preview.
// Size is empty when the payload size is unknown.
type Metadata struct {
	Duration   string `json:"duration"`
	SampleRate string `json:"sample_rate"`
	Size       string `json:"size,omitempty"`
}

// String joins the non-empty parts with MetadataSeparator.
func (m Metadata) String() string {
	return strings.Join(lo.Compact([]string{m.Duration, m.SampleRate, m.Size}), MetadataSeparator)
}

// FormatMetadata describes decoded audio and the byte size of its source.
func FormatMetadata(d *DecodedAudio, size int64) Metadata {
	seconds := math.NaN()
	rate := 0
	if d != nil {
		seconds = d.Duration
		rate = d.SampleRate
	}
	return Metadata{
		Duration:   FormatDuration(seconds),
		SampleRate: FormatSampleRate(rate),
		Size:       FormatSize(size),
	}
}

// FormatDuration renders seconds with two decimals, e.g. "2.00s".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return unknownDuration
	}
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSampleRate renders a rate with thousands separators, e.g. "44,100 Hz".
func FormatSampleRate(hz int) string {
	if hz <= 0 {
		return unknownSampleRate
	}
	return ratePrinter.Sprintf("%d Hz", hz)
}

// FormatSize renders bytes as kilobytes with one decimal. Unknown sizes
// render as the empty string and drop out of the joined line.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024.0)
}
