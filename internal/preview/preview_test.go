package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/procterrain/internal/engine/terrain"
	"github.com/Faultbox/procterrain/internal/engine/water"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/internal/params"
	"github.com/Faultbox/procterrain/pkg/math"
)

func newTestRenderer(set *params.Set) *Renderer {
	field := terrain.NewField(noise.NewSimplex(1), &set.Terrain)
	shader := terrain.NewShader(field, &set.Palette)
	return New(shader, water.NewField(&set.Water, &set.Palette))
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = 24, 16
	return opts
}

func TestRenderSize(t *testing.T) {
	set := params.Default()
	img, err := newTestRenderer(&set).Render(context.Background(), smallOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Errorf("bounds = %v, want 24x16", b)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	set := params.Default()
	opts := smallOptions()
	opts.Width = 0
	if _, err := newTestRenderer(&set).Render(context.Background(), opts, nil); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	set := params.Default()
	r := newTestRenderer(&set)
	opts := smallOptions()

	seq, err := r.Render(context.Background(), opts, nil)
	if err != nil {
		t.Fatal(err)
	}

	pool := workers.New(4)
	defer pool.Close()
	par, err := r.Render(context.Background(), opts, pool)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(seq.Pix, par.Pix) {
		t.Error("parallel render differs from sequential render")
	}
}

func TestWaterComposite(t *testing.T) {
	set := params.Default()
	set.Terrain.Strength = 0 // flat land at y = 0
	r := newTestRenderer(&set)
	opts := smallOptions()
	p := math.Vec2{X: 1, Y: 1}

	set.Water.Level = -0.1
	dry := r.Pixel(p, opts)

	set.Water.Level = 0.5
	wet := r.Pixel(p, opts)

	opts.Water = false
	off := r.Pixel(p, opts)

	if dry != off {
		t.Errorf("water below land changed the pixel: %+v vs %+v", dry, off)
	}
	if wet == dry {
		t.Error("water above land did not change the pixel")
	}
}

func TestEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))

	for _, ext := range []string{".png", ".BMP"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, ext); err != nil {
				t.Fatal(err)
			}
			decoded, _, err := image.Decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if decoded.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, img, ".gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	path := filepath.Join(dir, "out.png")
	if err := Save(path, img); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty file, got %v, %v", info, err)
	}

	bad := filepath.Join(dir, "out.jpg")
	if err := Save(bad, img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("unsupported format still created a file")
	}
}
