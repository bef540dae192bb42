package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/world"
)

// Height ramp for the ASCII map, low to high.
const ramp = " .:-=+*#%@"

type options struct {
	configSrc string
	x, z      float64
	ascii     bool
	explicit  map[string]bool
}

func main() {
	cfg := config.DefaultConfig()

	var opts options
	flag.StringVar(&opts.configSrc, "config", "", "config file to load (local path or any go-getter source)")
	flag.Float64Var(&opts.x, "x", 0, "camera world x")
	flag.Float64Var(&opts.z, "z", 0, "camera world z")
	flag.BoolVar(&opts.ascii, "ascii", false, "print the window's height map")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "terrain root seed")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	opts.explicit = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.explicit[f.Name] = true })

	var level slog.LevelVar
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, opts, &level, log, os.Stdout)
	cancel()
	if err != nil {
		log.Error("terraindump failed", "error", err)
		os.Exit(1)
	}
}

// run loads any config file into cfg, then prints the window around the
// camera. Temporary files are removed before it returns.
func run(ctx context.Context, cfg *config.Config, opts options, level *slog.LevelVar, log *slog.Logger, out io.Writer) error {
	if opts.configSrc != "" {
		dir, err := os.MkdirTemp("", "terraindump")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(dir)

		path, err := config.Fetch(ctx, opts.configSrc, dir)
		if err != nil {
			return fmt.Errorf("fetch config %q: %w", opts.configSrc, err)
		}
		fromFile, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		config.Merge(cfg, fromFile, opts.explicit)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	lvl, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	level.Set(lvl)

	terrain, err := world.NewTerrain(cfg, log)
	if err != nil {
		return fmt.Errorf("create terrain: %w", err)
	}

	w := terrain.BuildWindow(mgl32.Vec3{float32(opts.x), 0, float32(opts.z)}, cfg.Heights())
	printStats(out, cfg, terrain, w)
	if opts.ascii {
		printHeightMap(out, w)
	}
	return nil
}

func printStats(out io.Writer, cfg *config.Config, t *world.Terrain, w *world.Window) {
	lo, hi := float32(0), float32(0)
	for i, p := range w.Surfaces() {
		if i == 0 || p.Y() < lo {
			lo = p.Y()
		}
		if i == 0 || p.Y() > hi {
			hi = p.Y()
		}
	}

	fmt.Fprintf(out, "seed:       %d\n", cfg.Seed)
	fmt.Fprintf(out, "center:     %v\n", w.Center)
	fmt.Fprintf(out, "chunks:     %d generated\n", t.Len())
	fmt.Fprintf(out, "surface:    %d cells (%d per row)\n", w.Surface, w.Stride)
	fmt.Fprintf(out, "fillers:    %d\n", w.Fillers)
	fmt.Fprintf(out, "sentinels:  %d\n", len(w.Offsets)-min(len(w.Offsets), w.Surface+w.Fillers))
	fmt.Fprintf(out, "truncated:  %d\n", w.Truncated)
	fmt.Fprintf(out, "heights:    %g..%g (range %g..%g)\n", lo, hi, w.Heights[0], w.Heights[1])
}

// printHeightMap draws one character per surface cell, +z at the top.
func printHeightMap(out io.Writer, w *world.Window) {
	surf := w.Surfaces()
	span := w.Heights[1] - w.Heights[0]
	rows := len(surf) / w.Stride

	var b strings.Builder
	for r := rows - 1; r >= 0; r-- {
		for _, p := range surf[r*w.Stride : (r+1)*w.Stride] {
			t := (float64(p.Y()) - w.Heights[0]) / span
			i := int(t * float64(len(ramp)-1))
			i = max(0, min(len(ramp)-1, i))
			b.WriteByte(ramp[i])
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(out, b.String())
}
