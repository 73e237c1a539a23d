// terrainctl is a CLI utility for sampling and rendering the procedural
// terrain without a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/procterrain/internal/config"
	"github.com/Faultbox/procterrain/internal/engine/terrain"
	"github.com/Faultbox/procterrain/internal/engine/water"
	"github.com/Faultbox/procterrain/internal/logger"
	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/internal/params"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	err := run(os.Stdout, os.Args[1], os.Args[2:])
	if errors.Is(err, errUnknownCommand) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errUnknownCommand = errors.New("unknown command")

// run dispatches one subcommand, writing its report to w.
func run(w io.Writer, command string, args []string) error {
	switch command {
	case "sample", "s":
		return cmdSample(w, args)
	case "water", "w":
		return cmdWater(w, args)
	case "render", "r":
		return cmdRender(w, args)
	case "stats":
		return cmdStats(w, args)
	case "params", "p":
		return cmdParams(w, args)
	case "config":
		return cmdConfig(w, args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func printUsage() {
	fmt.Println(`terrainctl - procedural terrain utility

Usage:
  terrainctl <command> [options]

Commands:
  sample <x> <z>          Elevation, normal and biome color at a point
  water <x> <z>           Water height and normal over time at a point
  render <out.png|.bmp>   Top-down lit render
  stats                   Build the terrain mesh and report its range
  params                  List tunable parameters
  config                  Print the effective configuration as YAML

Common options:
  -config <file>          Config file (default: ./config.yaml)
  -seed <n>               Noise seed
  -noise simplex|perlin   Noise kind
  -set name=value         Override a parameter (repeatable), e.g. -set uStrength=3

Examples:
  terrainctl sample 0 0
  terrainctl render -set uWarpStrength=0 -resolution 1024 terrain.png
  terrainctl stats -segments 500 -noise perlin`)
}

// assignments collects repeated -set name=value flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(v string) error {
	*a = append(*a, v)
	return nil
}

// apply overwrites parameters in set.
func (a assignments) apply(set *params.Set) error {
	for _, kv := range a {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid -set %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("invalid -set %q: %w", kv, err)
		}
		if err := set.SetValue(strings.TrimSpace(name), v); err != nil {
			return err
		}
	}
	return nil
}

// command is the flag set and config shared by every subcommand.
type command struct {
	fs    *flag.FlagSet
	flags *config.Flags
	sets  assignments
}

func newCommand(name string) *command {
	c := &command{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	c.flags = config.BindFlags(c.fs)
	c.fs.Var(&c.sets, "set", "Override a parameter: name=value")
	return c
}

// load parses args and returns the effective config.
func (c *command) load(args []string) (*config.Config, error) {
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(c.flags)
	if err != nil {
		return nil, err
	}
	if err := c.sets.apply(&cfg.Shader); err != nil {
		return nil, err
	}

	level := "warn"
	if c.flags.Debug {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pipeline is the shading pipeline bound to one parameter set.
type pipeline struct {
	set    *params.Set
	field  *terrain.Field
	shader *terrain.Shader
	waves  *water.Field
}

func newPipeline(cfg *config.Config) (*pipeline, error) {
	src, err := noise.New(cfg.NoiseKind(), cfg.Terrain.Seed)
	if err != nil {
		return nil, err
	}
	set := cfg.Shader
	p := &pipeline{set: &set}
	p.field = terrain.NewField(src, &p.set.Terrain)
	p.shader = terrain.NewShader(p.field, &p.set.Palette)
	p.waves = water.NewField(&p.set.Water, &p.set.Palette)
	return p, nil
}

func parsePoint(args []string) (x, z float64, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected <x> <z>, got %d arguments", len(args))
	}
	if x, err = strconv.ParseFloat(args[0], 64); err != nil {
		return 0, 0, fmt.Errorf("x: %w", err)
	}
	if z, err = strconv.ParseFloat(args[1], 64); err != nil {
		return 0, 0, fmt.Errorf("z: %w", err)
	}
	return x, z, nil
}
