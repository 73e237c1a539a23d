// Package color provides linear RGB colors with hex parsing and blending.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/procterrain/pkg/math"
)

// ErrInvalidHex is returned when a color string is not #rrggbb.
var ErrInvalidHex = errors.New("invalid hex color")

// RGB is a color with each channel in [0,1].
type RGB struct {
	R, G, B float64
}

// RGBA is an RGB color with opacity.
type RGBA struct {
	RGB
	A float64
}

// MustHex parses a #rrggbb string and panics on error. Use for constants.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses a #rrggbb (or rrggbb) string.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Bytes returns the channels quantized to 0-255.
func (c RGB) Bytes() (r, g, b uint8) {
	c = c.Clamp()
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5)
}

// Mix blends c toward other by t (GLSL mix).
func (c RGB) Mix(other RGB, t float64) RGB {
	return RGB{
		R: math.Mix(c.R, other.R, t),
		G: math.Mix(c.G, other.G, t),
		B: math.Mix(c.B, other.B, t),
	}
}

// Scale multiplies every channel by s.
func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Clamp forces every channel into [0,1].
func (c RGB) Clamp() RGB {
	return RGB{
		R: math.Clamp(c.R, 0, 1),
		G: math.Clamp(c.G, 0, 1),
		B: math.Clamp(c.B, 0, 1),
	}
}

// Distance returns the largest per-channel difference between two colors.
func (c RGB) Distance(other RGB) float64 {
	d := abs(c.R - other.R)
	if g := abs(c.G - other.G); g > d {
		d = g
	}
	if b := abs(c.B - other.B); b > d {
		d = b
	}
	return d
}

// Array32 returns the channels as float32 for vertex upload.
func (c RGB) Array32() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// MarshalYAML writes the color as a #rrggbb string.
func (c RGB) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML reads a #rrggbb string.
func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
