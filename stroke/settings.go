// SPDX-License-Identifier: Unlicense OR MIT

package stroke

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
)

// Settings configure the tracking and display of strokes.
type Settings struct {
	// TimeoutMillis is the time after its last event that a stroke is
	// evicted.
	TimeoutMillis int64 `toml:"timeout_millis"`
	// MaxPointers bounds the number of pointers with strokes.
	MaxPointers int `toml:"max_pointers"`
	// StrokeWidth is the display width of strokes.
	StrokeWidth float32 `toml:"stroke_width"`
	// Colors are #rrggbb, #rrggbbaa or SVG color names.
	PointColor          string `toml:"point_color"`
	CoalescedPointColor string `toml:"coalesced_point_color"`
	PredictedPointColor string `toml:"predicted_point_color"`
}

// Palette holds the display colors of Settings.
type Palette struct {
	Point, Coalesced, Predicted color.RGBA
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		TimeoutMillis:       5000,
		MaxPointers:         32,
		StrokeWidth:         100,
		PointColor:          "white",
		CoalescedPointColor: "gray",
		PredictedPointColor: "red",
	}
}

// DecodeSettings reads TOML settings from r. Missing keys keep their
// default values.
func DecodeSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Settings{}, fmt.Errorf("stroke: settings: %w", err)
	}
	for _, k := range md.Undecoded() {
		tracer().Errorf("stroke: unknown setting %q", k.String())
	}
	if s.TimeoutMillis < 0 {
		return Settings{}, fmt.Errorf("stroke: settings: negative timeout %d", s.TimeoutMillis)
	}
	if _, err := s.Palette(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Encode writes s in TOML format.
func (s Settings) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("stroke: settings: %w", err)
	}
	return nil
}

// Timeout returns TimeoutMillis as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutMillis) * time.Millisecond
}

// Palette parses the colors of s.
func (s Settings) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Point, err = ParseColor(s.PointColor); err != nil {
		return Palette{}, err
	}
	if p.Coalesced, err = ParseColor(s.CoalescedPointColor); err != nil {
		return Palette{}, err
	}
	if p.Predicted, err = ParseColor(s.PredictedPointColor); err != nil {
		return Palette{}, err
	}
	return p, nil
}

// ParseColor parses a #rrggbb or #rrggbbaa hex color or an SVG color
// name.
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.RGBA{}, fmt.Errorf("stroke: unknown color %q", s)
		}
		return c, nil
	}
	hex := s[1:]
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("stroke: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("stroke: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
