package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/world"
)

func TestDumpOutput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ChunkExtent = 4
	cfg.ViewRadius = 1

	terrain, err := world.NewTerrain(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("NewTerrain: %v", err)
	}
	w := terrain.BuildWindow(mgl32.Vec3{}, cfg.Heights())

	var stats bytes.Buffer
	printStats(&stats, cfg, terrain, w)
	if !strings.Contains(stats.String(), "surface:    100 cells (10 per row)") {
		t.Errorf("stats missing surface line:\n%s", stats.String())
	}

	var hm bytes.Buffer
	printHeightMap(&hm, w)
	lines := strings.Split(strings.TrimRight(hm.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("height map has %d rows, want 10", len(lines))
	}
	for i, l := range lines {
		if len(l) != 10 {
			t.Errorf("row %d has %d columns, want 10", i, len(l))
		}
		if strings.Trim(l, ramp) != "" {
			t.Errorf("row %d has characters outside the ramp: %q", i, l)
		}
	}
}

func TestRunRemovesTempDirOnError(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	var level slog.LevelVar
	opts := options{configSrc: filepath.Join(t.TempDir(), "missing.json"), explicit: map[string]bool{}}
	err := run(context.Background(), config.DefaultConfig(), opts, &level, slog.New(slog.DiscardHandler), io.Discard)
	if err == nil {
		t.Fatal("run with a missing config source should fail")
	}

	left, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("temp dir not cleaned up: %d entries left", len(left))
	}
}

func TestRunAppliesLogLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ChunkExtent = 4
	cfg.ViewRadius = 1
	cfg.LogLevel = "debug"

	var level slog.LevelVar
	var out bytes.Buffer
	opts := options{explicit: map[string]bool{}}
	if err := run(context.Background(), cfg, opts, &level, slog.New(slog.DiscardHandler), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if level.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want DEBUG", level.Level())
	}
	if !strings.Contains(out.String(), "surface:    100 cells") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	cfg.LogLevel = "loud"
	if err := run(context.Background(), cfg, opts, &level, slog.New(slog.DiscardHandler), io.Discard); !errors.Is(err, config.ErrLogLevel) {
		t.Errorf("run with log level %q: error = %v, want ErrLogLevel", cfg.LogLevel, err)
	}
}
