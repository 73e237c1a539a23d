// Package preview renders the terrain and water from above on the CPU, for
// snapshots without a GL context.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/procterrain/internal/engine/lighting"
	"github.com/Faultbox/procterrain/internal/engine/terrain"
	"github.com/Faultbox/procterrain/internal/engine/water"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/pkg/color"
	"github.com/Faultbox/procterrain/pkg/math"
)

// ErrUnsupportedFormat is returned for an output extension other than .png or .bmp.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Options controls a render.
type Options struct {
	Width  int
	Height int
	Size   float64 // world extent covered by the image, centered on the origin
	Time   float64 // water time
	Sun    lighting.Sun
	Water  bool
}

// DefaultOptions renders the 10x10 terrain at 512x512 with water.
func DefaultOptions() Options {
	return Options{
		Width:  512,
		Height: 512,
		Size:   10,
		Sun:    lighting.DefaultSun(),
		Water:  true,
	}
}

// Renderer shades pixels from the terrain shader and water field.
type Renderer struct {
	shader *terrain.Shader
	waves  *water.Field
}

// New creates a renderer. waves may be nil to skip water.
func New(shader *terrain.Shader, waves *water.Field) *Renderer {
	return &Renderer{shader: shader, waves: waves}
}

// Pixel returns the lit color at world position xz.
func (r *Renderer) Pixel(xz math.Vec2, opts Options) color.RGB {
	smp := r.shader.Vertex(math.Vec3{X: xz.X, Z: xz.Y})
	out := opts.Sun.Shade(smp.Color, smp.Normal)

	if !opts.Water || r.waves == nil {
		return out
	}
	surface := r.waves.Surface(smp.Position.WithY(0), opts.Time)
	depth := surface.Y - smp.Position.Y
	if depth <= 0 {
		return out
	}
	wc := r.waves.Color(depth)
	lit := opts.Sun.Shade(wc.RGB, r.waves.Normal(xz, opts.Time))
	return out.Mix(lit, wc.A)
}

// Render shades every pixel. Rows run on pool when non-nil.
func (r *Renderer) Render(ctx context.Context, opts Options, pool *workers.Pool) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	row := func(py int) {
		z := (float64(py)+0.5)/float64(opts.Height)*opts.Size - opts.Size/2
		for px := 0; px < opts.Width; px++ {
			x := (float64(px)+0.5)/float64(opts.Width)*opts.Size - opts.Size/2
			cr, cg, cb := r.Pixel(math.Vec2{X: x, Y: z}, opts).Bytes()
			img.SetRGBA(px, py, imgcolor.RGBA{R: cr, G: cg, B: cb, A: 255})
		}
	}

	if pool == nil {
		for py := 0; py < opts.Height; py++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			row(py)
		}
		return img, nil
	}
	if err := pool.ForEach(ctx, opts.Height, row); err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return img, nil
}

// Encode writes img in the format named by ext (".png" or ".bmp").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Save writes img to path, choosing the format from its extension.
func Save(path string, img image.Image) (err error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".bmp":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, img, ext)
}
