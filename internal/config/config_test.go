package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/voxel-terrain/internal/world/gen"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.ChunkExtent != 16 {
		t.Errorf("ChunkExtent = %d, want 16", cfg.ChunkExtent)
	}
	if cfg.ViewRadius != 2 {
		t.Errorf("ViewRadius = %d, want 2", cfg.ViewRadius)
	}
	if cfg.EdgeBlend != 0.4 {
		t.Errorf("EdgeBlend = %g, want 0.4", cfg.EdgeBlend)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"extent one", func(c *Config) { c.ChunkExtent = 1 }, ErrExtent},
		{"extent zero", func(c *Config) { c.ChunkExtent = 0 }, ErrExtent},
		{"extent not power of two", func(c *Config) { c.ChunkExtent = 12 }, ErrExtent},
		{"negative radius", func(c *Config) { c.ViewRadius = -1 }, ErrViewRadius},
		{"zero capacity", func(c *Config) { c.InstanceCapacity = 0 }, ErrCapacity},
		{"inverted heights", func(c *Config) { c.HeightMin, c.HeightMax = 5, 5 }, ErrHeights},
		{"blend above one", func(c *Config) { c.EdgeBlend = 1.5 }, ErrEdgeBlend},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, ErrLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg.LogLevel = in
		got, err := cfg.Level()
		require.NoError(t, err)
		assert.Equal(t, want, got, "Level(%q)", in)
	}
}

func TestArc(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, gen.FullCircle, cfg.Arc())
	cfg.HalfCircle = true
	assert.Equal(t, gen.HalfCircle, cfg.Arc())
}

func TestMergeExplicitFlagsWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.ChunkExtent = 32

	fromFile := DefaultConfig()
	fromFile.Seed = 99
	fromFile.ChunkExtent = 8
	fromFile.ViewRadius = 3
	fromFile.EdgeBlend = 0.2

	Merge(cfg, fromFile, map[string]bool{"seed": true})

	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7 (explicit flag)", cfg.Seed)
	}
	if cfg.ChunkExtent != 8 {
		t.Errorf("ChunkExtent = %d, want 8 (from file)", cfg.ChunkExtent)
	}
	if cfg.ViewRadius != 3 {
		t.Errorf("ViewRadius = %d, want 3 (from file)", cfg.ViewRadius)
	}
	if cfg.EdgeBlend != 0.2 {
		t.Errorf("EdgeBlend = %g, want 0.2 (file-only)", cfg.EdgeBlend)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"seed": 42, "chunk_extent": 32}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 32, cfg.ChunkExtent)
	// Unset fields keep their defaults.
	assert.Equal(t, 32000, cfg.InstanceCapacity)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"seed":`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFetchLocalFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"seed": 5, "view_radius": 1}`), 0o644))

	path, err := Fetch(context.Background(), src, t.TempDir())
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, 1, cfg.ViewRadius)
}

func TestFetchDirLocal(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "hills.json"), []byte(`{"seed": 9}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "plains.json"), []byte(`{"seed": 10}`), 0o644))

	dst := filepath.Join(t.TempDir(), "presets")
	require.NoError(t, FetchDir(context.Background(), src, dst))

	cfg, err := Load(filepath.Join(dst, "hills.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.FileExists(t, filepath.Join(dst, "plains.json"))
}
