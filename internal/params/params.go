// Package params holds the live-tunable shading parameters: the full surface a
// debug panel edits while the scene runs.
//
// A Set is a plain value. Editors overwrite fields between frames; the scene
// copies the Set at the start of each frame, so no locking is involved.
package params

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/procterrain/pkg/color"
	"github.com/Faultbox/procterrain/pkg/math"
)

var (
	// ErrUnknownParameter is returned for a name that is not a tunable field.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrOutOfRange is returned when a value falls outside a field's bounds.
	ErrOutOfRange = errors.New("parameter out of range")
)

// MaxWaveIterations bounds the number of summed water octaves.
const MaxWaveIterations = 6

// Terrain drives the height field.
type Terrain struct {
	PositionFrequency float64 `yaml:"position_frequency"`
	ElevationCrush    float64 `yaml:"elevation_crush"`
	Strength          float64 `yaml:"strength"`
	WarpFrequency     float64 `yaml:"warp_frequency"`
	WarpStrength      float64 `yaml:"warp_strength"`
}

// Water drives the small-wave field.
type Water struct {
	SmallWavesElevation  float64 `yaml:"small_waves_elevation"`
	SmallWavesFrequency  float64 `yaml:"small_waves_frequency"`
	SmallWavesSpeed      float64 `yaml:"small_waves_speed"`
	SmallWavesIterations int     `yaml:"small_waves_iterations"`
	Level                float64 `yaml:"level"`
}

// Palette holds the six biome color stops.
type Palette struct {
	WaterDeep    color.RGB `yaml:"water_deep"`
	WaterSurface color.RGB `yaml:"water_surface"`
	Sand         color.RGB `yaml:"sand"`
	Grass        color.RGB `yaml:"grass"`
	Rock         color.RGB `yaml:"rock"`
	Snow         color.RGB `yaml:"snow"`
}

// Set is the complete parameter set shared by every vertex of a frame.
type Set struct {
	Terrain Terrain `yaml:"terrain"`
	Water   Water   `yaml:"water"`
	Palette Palette `yaml:"palette"`
}

// Default returns the reference parameter values.
func Default() Set {
	return Set{
		Terrain: Terrain{
			PositionFrequency: 0.2,
			ElevationCrush:    2.0,
			Strength:          2.0,
			WarpFrequency:     5.0,
			WarpStrength:      0.5,
		},
		Water: Water{
			SmallWavesElevation:  0.02,
			SmallWavesFrequency:  6.0,
			SmallWavesSpeed:      0.6,
			SmallWavesIterations: 4,
			Level:                -0.1,
		},
		Palette: Palette{
			WaterDeep:    color.MustHex("#002b3d"),
			WaterSurface: color.MustHex("#66a8ff"),
			Sand:         color.MustHex("#ffe894"),
			Grass:        color.MustHex("#85d534"),
			Rock:         color.MustHex("#bfbd8d"),
			Snow:         color.MustHex("#ffffff"),
		},
	}
}

// Field describes one tunable scalar as a panel would list it.
type Field struct {
	Name    string
	Min     float64
	Max     float64
	Integer bool

	get func(*Set) float64
	set func(*Set, float64)
}

// Get reads the field from s.
func (f Field) Get(s *Set) float64 { return f.get(s) }

var fields = []Field{
	{Name: "uPositionFrequency", Min: 0, Max: 1,
		get: func(s *Set) float64 { return s.Terrain.PositionFrequency },
		set: func(s *Set, v float64) { s.Terrain.PositionFrequency = v }},
	{Name: "uElevationCrush", Min: 0, Max: 10,
		get: func(s *Set) float64 { return s.Terrain.ElevationCrush },
		set: func(s *Set, v float64) { s.Terrain.ElevationCrush = v }},
	{Name: "uStrength", Min: 0, Max: 10,
		get: func(s *Set) float64 { return s.Terrain.Strength },
		set: func(s *Set, v float64) { s.Terrain.Strength = v }},
	{Name: "uWarpFrequency", Min: 0, Max: 10,
		get: func(s *Set) float64 { return s.Terrain.WarpFrequency },
		set: func(s *Set, v float64) { s.Terrain.WarpFrequency = v }},
	{Name: "uWarpStrength", Min: 0, Max: 1,
		get: func(s *Set) float64 { return s.Terrain.WarpStrength },
		set: func(s *Set, v float64) { s.Terrain.WarpStrength = v }},
	{Name: "uSmallWavesElevation", Min: 0, Max: 1,
		get: func(s *Set) float64 { return s.Water.SmallWavesElevation },
		set: func(s *Set, v float64) { s.Water.SmallWavesElevation = v }},
	{Name: "uSmallWavesFrequency", Min: 0, Max: 30,
		get: func(s *Set) float64 { return s.Water.SmallWavesFrequency },
		set: func(s *Set, v float64) { s.Water.SmallWavesFrequency = v }},
	{Name: "uSmallWavesSpeed", Min: 0, Max: 10,
		get: func(s *Set) float64 { return s.Water.SmallWavesSpeed },
		set: func(s *Set, v float64) { s.Water.SmallWavesSpeed = v }},
	{Name: "uSmallWavesIterations", Min: 0, Max: MaxWaveIterations, Integer: true,
		get: func(s *Set) float64 { return float64(s.Water.SmallWavesIterations) },
		set: func(s *Set, v float64) { s.Water.SmallWavesIterations = int(v) }},
}

// Fields lists every tunable scalar in panel order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Lookup finds a field by its uniform name.
func Lookup(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SetValue overwrites one field by name. Integer fields truncate toward zero.
func (s *Set) SetValue(name string, v float64) error {
	f, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	if v < f.Min || v > f.Max || v != v {
		return fmt.Errorf("%w: %s=%v not in [%v, %v]", ErrOutOfRange, name, v, f.Min, f.Max)
	}
	f.set(s, v)
	return nil
}

// Clamp forces every field into its range.
func (s *Set) Clamp() {
	for _, f := range fields {
		f.set(s, math.Clamp(f.get(s), f.Min, f.Max))
	}
	p := &s.Palette
	for _, c := range []*color.RGB{&p.WaterDeep, &p.WaterSurface, &p.Sand, &p.Grass, &p.Rock, &p.Snow} {
		*c = c.Clamp()
	}
}

// Validate reports every out-of-range field in a single error.
func (s *Set) Validate() error {
	var bad []string
	for _, f := range fields {
		v := f.get(s)
		if v < f.Min || v > f.Max || v != v {
			bad = append(bad, fmt.Sprintf("%s=%v", f.Name, v))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("%w: %s", ErrOutOfRange, strings.Join(bad, ", "))
}
