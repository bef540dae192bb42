package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
)

func main() {
	var (
		src = flag.String("src", "", "preset directory source, e.g. git::https://example.com/presets.git//terrain")
		out = flag.String("o", "./presets", "output dir path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *src == "" {
		log.Error("preset source required (-src)")
		os.Exit(2)
	}
	if *out == "" {
		log.Error("output dir path required (-o)")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("start downloading presets", "src", *src, "dir", *out)
	if err := config.FetchDir(ctx, *src, *out); err != nil {
		log.Error("download presets", "error", err)
		os.Exit(1)
	}

	// Report which presets are usable as viewer configs.
	matches, err := filepath.Glob(filepath.Join(*out, "*.json"))
	if err != nil {
		log.Error("list presets", "error", err)
		os.Exit(1)
	}
	valid := 0
	for _, path := range matches {
		cfg, err := config.Load(path)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			log.Warn("skipping preset", "path", path, "error", err)
			continue
		}
		valid++
		log.Info("preset", "name", filepath.Base(path), "seed", cfg.Seed, "extent", cfg.ChunkExtent)
	}

	log.Info("done downloading presets", "dir", *out, "presets", valid, "files", len(matches))
}
