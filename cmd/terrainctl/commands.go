package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/internal/engine/lighting"
	"github.com/Faultbox/procterrain/internal/engine/terrain"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/internal/params"
	"github.com/Faultbox/procterrain/internal/preview"
	"github.com/Faultbox/procterrain/pkg/math"
)

func cmdSample(w io.Writer, args []string) error {
	c := newCommand("sample")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}
	x, z, err := parsePoint(c.fs.Args())
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	pos := math.Vec3{X: x, Z: z}
	smp := p.shader.Vertex(pos)
	warped := p.field.Warp(pos.XZ())

	fmt.Fprintf(w, "Position:   (%g, %g)\n", x, z)
	fmt.Fprintf(w, "Warped:     (%.6f, %.6f)\n", warped.X, warped.Y)
	fmt.Fprintf(w, "Raw:        %.9f\n", p.field.Raw(warped))
	fmt.Fprintf(w, "Elevation:  %.9f\n", smp.Position.Y)
	fmt.Fprintf(w, "Normal:     (%.6f, %.6f, %.6f)\n", smp.Normal.X, smp.Normal.Y, smp.Normal.Z)
	fmt.Fprintf(w, "Steepness:  %.6f\n", terrain.Steepness(smp.Normal))
	fmt.Fprintf(w, "Color:      %s\n", smp.Color.Hex())
	fmt.Fprintf(w, "Underwater: %v\n", smp.Position.Y < p.set.Water.Level)
	return nil
}

func cmdWater(w io.Writer, args []string) error {
	c := newCommand("water")
	duration := c.fs.Float64("duration", 2, "Seconds to sample")
	step := c.fs.Float64("step", 0.25, "Seconds between samples")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}
	x, z, err := parsePoint(c.fs.Args())
	if err != nil {
		return err
	}
	if *step <= 0 {
		return fmt.Errorf("step must be positive")
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	xz := math.Vec2{X: x, Y: z}
	floor := p.field.Elevation(xz)

	fmt.Fprintf(w, "Octaves: %d, floor %.6f\n", len(p.waves.Octaves()), floor)
	fmt.Fprintf(w, "%8s  %12s  %28s  %s\n", "TIME", "SURFACE", "NORMAL", "COLOR")
	for t := 0.0; t <= *duration+1e-9; t += *step {
		s := p.waves.Surface(math.Vec3{X: x, Z: z}, t)
		n := p.waves.Normal(xz, t)
		col := p.waves.Color(s.Y - floor)
		fmt.Fprintf(w, "%8.3f  %12.6f  (%8.5f, %8.5f, %8.5f)  %s a=%.2f\n",
			t, s.Y, n.X, n.Y, n.Z, col.Hex(), col.A)
	}
	return nil
}

func cmdRender(w io.Writer, args []string) error {
	c := newCommand("render")
	resolution := c.fs.Int("resolution", 512, "Image width and height in pixels")
	at := c.fs.Float64("time", 0, "Water time in seconds")
	noWater := c.fs.Bool("no-water", false, "Skip the water layer")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}
	if c.fs.NArg() != 1 {
		return fmt.Errorf("expected one output path")
	}
	out := c.fs.Arg(0)

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	pool := workers.New(cfg.Terrain.Workers)
	defer pool.Close()

	opts := preview.Options{
		Width:  *resolution,
		Height: *resolution,
		Size:   cfg.Terrain.Size,
		Time:   *at,
		Sun:    lighting.DefaultSun(),
		Water:  !*noWater,
	}

	start := time.Now()
	img, err := preview.New(p.shader, p.waves).Render(context.Background(), opts, pool)
	if err != nil {
		return err
	}
	if err := preview.Save(out, img); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s (%dx%d) in %s\n", out, opts.Width, opts.Height, time.Since(start).Round(time.Millisecond))
	return nil
}

func cmdStats(w io.Writer, args []string) error {
	c := newCommand("stats")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	pool := workers.New(cfg.Terrain.Workers)
	defer pool.Close()

	grid := geometry.NewPlane(cfg.Terrain.Size, cfg.Terrain.Size, cfg.Terrain.Segments, cfg.Terrain.Segments)
	start := time.Now()
	mesh, err := terrain.BuildMesh(context.Background(), p.shader, grid, pool)
	if err != nil {
		return err
	}
	took := time.Since(start)

	var underwater, steep int
	for _, v := range mesh.Vertices {
		if float64(v.Position[1]) < p.set.Water.Level {
			underwater++
		}
		n := math.Vec3{X: float64(v.Normal[0]), Y: float64(v.Normal[1]), Z: float64(v.Normal[2])}
		if terrain.Steepness(n) > terrain.RockSteepness {
			steep++
		}
	}
	total := float64(len(mesh.Vertices))

	fmt.Fprintf(w, "Grid:       %dx%d segments, %d vertices, %d triangles\n",
		grid.SegmentsX, grid.SegmentsZ, len(mesh.Vertices), len(mesh.Indices)/3)
	fmt.Fprintf(w, "Noise:      %s (seed %d)\n", cfg.NoiseKind(), cfg.Terrain.Seed)
	fmt.Fprintf(w, "Elevation:  %.4f .. %.4f\n", mesh.Bounds.Min.Y, mesh.Bounds.Max.Y)
	fmt.Fprintf(w, "Underwater: %.1f%%\n", 100*float64(underwater)/total)
	fmt.Fprintf(w, "Steep:      %.1f%%\n", 100*float64(steep)/total)
	fmt.Fprintf(w, "Build time: %s\n", took.Round(time.Millisecond))
	return nil
}

func cmdParams(w io.Writer, args []string) error {
	c := newCommand("params")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-24s %10s %8s %8s\n", "NAME", "VALUE", "MIN", "MAX")
	for _, f := range params.Fields() {
		fmt.Fprintf(w, "%-24s %10.4g %8g %8g\n", f.Name, f.Get(&cfg.Shader), f.Min, f.Max)
	}
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	c := newCommand("config")
	write := c.fs.String("write", "", "Write the effective config to this path")
	cfg, err := c.load(args)
	if err != nil {
		return err
	}

	if *write != "" {
		if err := cfg.SaveTo(*write); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", *write)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
