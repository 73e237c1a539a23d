// Package noise provides seeded 2D gradient noise sources for the height field.
package noise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownKind is returned by New for an unrecognized noise kind.
var ErrUnknownKind = errors.New("unknown noise kind")

// Kind names a noise implementation.
type Kind string

const (
	// Simplex is OpenSimplex noise, the default.
	Simplex Kind = "simplex"
	// Perlin is classic Perlin gradient noise.
	Perlin Kind = "perlin"
)

// Source evaluates 2D noise in roughly [-1, 1]. Implementations are
// deterministic and safe for concurrent use.
type Source interface {
	Eval2(x, y float64) float64
}

// ParseKind normalizes a kind name. The empty string selects Simplex.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return Simplex, nil
	case Simplex, Perlin:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// New creates a noise source of the given kind.
func New(kind Kind, seed int64) (Source, error) {
	k, err := ParseKind(string(kind))
	if err != nil {
		return nil, err
	}
	if k == Perlin {
		return NewPerlin(seed), nil
	}
	return NewSimplex(seed), nil
}

// NewSimplex returns an OpenSimplex source.
func NewSimplex(seed int64) Source {
	return opensimplex.New(seed)
}

// perlinSource adapts go-perlin to Source.
type perlinSource struct {
	p *perlin.Perlin
}

// Single octave: octave summation happens in the height field, not here.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 1
)

// NewPerlin returns a single-octave Perlin source.
func NewPerlin(seed int64) Source {
	return perlinSource{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Eval2 implements Source. go-perlin's single octave peaks near ±0.7; scale it
// to cover the same range as simplex.
func (s perlinSource) Eval2(x, y float64) float64 {
	return s.p.Noise2D(x, y) * 1.4
}
