package preset

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-wavepreview/surface"
	"github.com/cwbudde/algo-wavepreview/waveform"
)

// Render holds the resolved rendering parameters.
type Render struct {
	Width  int
	Height int
	Scale  float64
	Format string
	Style  surface.Style
}

// Default returns the built-in render settings.
func Default() *Render {
	return &Render{
		Width:  640,
		Height: 120,
		Scale:  1,
		Format: "png",
		Style:  surface.DefaultStyle(),
	}
}

// Viewport returns the logical viewport for r.
func (r *Render) Viewport() waveform.Viewport {
	return waveform.Viewport{Width: r.Width, Height: r.Height, Scale: r.Scale}
}

// Validate checks the resolved values.
func (r *Render) Validate() error {
	if r.Width < 1 {
		return fmt.Errorf("width must be >= 1")
	}
	if r.Height < 1 {
		return fmt.Errorf("height must be >= 1")
	}
	if math.IsNaN(r.Scale) || math.IsInf(r.Scale, 0) || r.Scale <= 0 {
		return fmt.Errorf("scale must be > 0")
	}
	if r.Style.LineWidth <= 0 {
		return fmt.Errorf("line_width must be > 0")
	}
	switch r.Format {
	case "png", "svg":
	default:
		return fmt.Errorf("format must be png or svg, got %q", r.Format)
	}
	return nil
}

// File is the JSON schema for render presets.
type File struct {
	Width      *int     `json:"width"`
	Height     *int     `json:"height"`
	Scale      *float64 `json:"scale"`
	LineWidth  *float64 `json:"line_width"`
	Background string   `json:"background"`
	Stroke     string   `json:"stroke"`
	Format     string   `json:"format"`
}

// LoadJSON loads a preset JSON file and applies it on top of Default.
func LoadJSON(path string) (*Render, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	r := Default()
	if err := ApplyFile(r, &f); err != nil {
		return nil, err
	}
	return r, nil
}

// ApplyFile applies a parsed preset file onto existing settings.
func ApplyFile(dst *Render, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination render settings")
	}
	if f == nil {
		return nil
	}

	if f.Width != nil {
		if *f.Width < 1 {
			return fmt.Errorf("width must be >= 1")
		}
		dst.Width = *f.Width
	}
	if f.Height != nil {
		if *f.Height < 1 {
			return fmt.Errorf("height must be >= 1")
		}
		dst.Height = *f.Height
	}
	if f.Scale != nil {
		if *f.Scale <= 0 {
			return fmt.Errorf("scale must be > 0")
		}
		dst.Scale = *f.Scale
	}
	if f.LineWidth != nil {
		if *f.LineWidth <= 0 {
			return fmt.Errorf("line_width must be > 0")
		}
		dst.Style.LineWidth = *f.LineWidth
	}
	if f.Background != "" {
		c, err := ParseHexColor(f.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		dst.Style.Background = c
	}
	if f.Stroke != "" {
		c, err := ParseHexColor(f.Stroke)
		if err != nil {
			return fmt.Errorf("stroke: %w", err)
		}
		dst.Style.Stroke = c
	}
	if f.Format != "" {
		dst.Format = strings.ToLower(strings.TrimSpace(f.Format))
	}
	return dst.Validate()
}

// ApplyEnv overrides dimensions and format from WAVEPEEK_* variables.
// Unparseable values are ignored.
func ApplyEnv(dst *Render) {
	dst.Width = envInt("WAVEPEEK_WIDTH", dst.Width)
	dst.Height = envInt("WAVEPEEK_HEIGHT", dst.Height)
	dst.Scale = envFloat("WAVEPEEK_SCALE", dst.Scale)
	dst.Format = strings.ToLower(envStr("WAVEPEEK_FORMAT", dst.Format))
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into a premultiplied colour.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q (expected #rrggbb)", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	// Hex colours are straight alpha; image/color.RGBA is premultiplied.
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
