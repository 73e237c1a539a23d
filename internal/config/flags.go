package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config   string
	Debug    bool
	Width    int
	Height   int
	Segments int
	Seed     int64
	Noise    string
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.IntVar(&f.Segments, "segments", 0, "Terrain grid segments per side")
	fs.Int64Var(&f.Seed, "seed", 0, "Noise seed")
	fs.StringVar(&f.Noise, "noise", "", "Noise kind (simplex, perlin)")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.Segments > 0 {
		cfg.Terrain.Segments = f.Segments
	}
	if f.Seed != 0 {
		cfg.Terrain.Seed = f.Seed
	}
	if f.Noise != "" {
		cfg.Terrain.Noise = f.Noise
	}
}
