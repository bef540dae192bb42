package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/camera"
	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/storage"
	"github.com/OCharnyshevich/voxel-terrain/internal/world"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		configSrc = flag.String("config", "", "config file to load (local path or any go-getter source)")
		dataDir   = flag.String("data", "./data", "directory for saved config and camera pose")
	)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "terrain root seed")
	flag.IntVar(&cfg.ChunkExtent, "extent", cfg.ChunkExtent, "samples per chunk edge (power of two)")
	flag.IntVar(&cfg.ViewRadius, "view-radius", cfg.ViewRadius, "chunks rendered on each side of the camera")
	flag.IntVar(&cfg.InstanceCapacity, "capacity", cfg.InstanceCapacity, "fixed instance buffer size")
	flag.BoolVar(&cfg.Physics, "physics", cfg.Physics, "start with gravity and collision on")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var level slog.LevelVar
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := storage.New(*dataDir, log)
	if err != nil {
		log.Error("open data directory", "error", err)
		os.Exit(1)
	}

	fromFile := config.DefaultConfig()
	if err := st.LoadConfig(fromFile); err != nil {
		log.Error("load saved config", "error", err)
		os.Exit(1)
	}
	if *configSrc != "" {
		path, err := config.Fetch(ctx, *configSrc, *dataDir)
		if err != nil {
			log.Error("fetch config", "src", *configSrc, "error", err)
			os.Exit(1)
		}
		if fromFile, err = config.Load(path); err != nil {
			log.Error("load config", "path", path, "error", err)
			os.Exit(1)
		}
		log.Info("loaded config", "src", *configSrc)
	}
	config.Merge(cfg, fromFile, explicit)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	lvl, err := cfg.Level()
	if err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	level.Set(lvl)

	terrain, err := world.NewTerrain(cfg, log)
	if err != nil {
		log.Error("create terrain", "error", err)
		os.Exit(1)
	}

	cam := camera.New(mgl32.Vec3{0, float32(cfg.SpawnHeight), 0})
	cam.SetPhysics(cfg.Physics)
	saved, err := st.LoadCamera()
	if err != nil {
		log.Warn("ignoring saved camera", "error", err)
	} else if saved != nil {
		saved.Apply(cam)
		log.Info("restored camera", "eye", cam.Eye(), "physics", cam.Physics())
	}

	log.Info("starting viewer",
		"seed", cfg.Seed, "extent", cfg.ChunkExtent, "view_radius", cfg.ViewRadius, "capacity", cfg.InstanceCapacity)

	run(ctx, cfg, terrain, cam, log)

	if cfg.SaveOnExit {
		if err := st.SaveCamera(storage.CameraDataFrom(cam)); err != nil {
			log.Error("save camera", "error", err)
		}
		if err := st.SaveConfig(cfg); err != nil {
			log.Error("save config", "error", err)
		}
	}
	log.Info("viewer stopped", "chunks", terrain.Len())
}
