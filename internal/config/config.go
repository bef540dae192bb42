package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"strings"

	"github.com/OCharnyshevich/voxel-terrain/internal/world/gen"
)

var (
	ErrExtent     = errors.New("chunk extent must be a power of two and at least 2")
	ErrViewRadius = errors.New("view radius must not be negative")
	ErrCapacity   = errors.New("instance capacity must be positive")
	ErrHeights    = errors.New("height_min must be below height_max")
	ErrEdgeBlend  = errors.New("edge blend must be in [0, 1]")
	ErrLogLevel   = errors.New("unknown log level")
)

// Config holds terrain and viewer settings.
type Config struct {
	Seed             int64   `json:"seed"`
	ChunkExtent      int     `json:"chunk_extent"`      // samples per chunk edge
	ViewRadius       int     `json:"view_radius"`       // window is (2r+1)² chunks
	InstanceCapacity int     `json:"instance_capacity"` // fixed render buffer size
	HeightMin        float64 `json:"height_min"`
	HeightMax        float64 `json:"height_max"`
	HalfCircle       bool    `json:"half_circle_gradients"`
	EdgeBlend        float64 `json:"edge_blend"` // weight toward the neighbor's edge
	SentinelY        float64 `json:"sentinel_y"` // y of unused instance slots
	LogLevel         string  `json:"log_level"`

	Physics     bool    `json:"physics"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	OceanWaves  float64 `json:"ocean_waves"` // wave amplitude, 0 = flat
	SaveOnExit  bool    `json:"save_on_exit"`
	SpawnHeight float64 `json:"spawn_height"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:             1,
		ChunkExtent:      16,
		ViewRadius:       2,
		InstanceCapacity: 32000,
		HeightMin:        -15,
		HeightMax:        0,
		EdgeBlend:        0.4,
		SentinelY:        -1000,
		LogLevel:         "info",
		Width:            800,
		Height:           600,
		OceanWaves:       0.25,
		SaveOnExit:       true,
		SpawnHeight:      5,
	}
}

// Validate rejects configurations the terrain cannot run with.
func (c *Config) Validate() error {
	if c.ChunkExtent < 2 || bits.OnesCount(uint(c.ChunkExtent)) != 1 {
		return fmt.Errorf("%w: got %d", ErrExtent, c.ChunkExtent)
	}
	if c.ViewRadius < 0 {
		return fmt.Errorf("%w: got %d", ErrViewRadius, c.ViewRadius)
	}
	if c.InstanceCapacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrCapacity, c.InstanceCapacity)
	}
	if c.HeightMin >= c.HeightMax {
		return fmt.Errorf("%w: got [%g, %g]", ErrHeights, c.HeightMin, c.HeightMax)
	}
	if c.EdgeBlend < 0 || c.EdgeBlend > 1 {
		return fmt.Errorf("%w: got %g", ErrEdgeBlend, c.EdgeBlend)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Arc returns the gradient sampling arc.
func (c *Config) Arc() gen.GradientArc {
	if c.HalfCircle {
		return gen.HalfCircle
	}
	return gen.FullCircle
}

// Heights returns the configured height range.
func (c *Config) Heights() [2]float64 {
	return [2]float64{c.HeightMin, c.HeightMax}
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrLogLevel, c.LogLevel)
}

// Load reads a JSON config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["extent"] {
		cfg.ChunkExtent = fromFile.ChunkExtent
	}
	if !explicitFlags["view-radius"] {
		cfg.ViewRadius = fromFile.ViewRadius
	}
	if !explicitFlags["capacity"] {
		cfg.InstanceCapacity = fromFile.InstanceCapacity
	}
	if !explicitFlags["physics"] {
		cfg.Physics = fromFile.Physics
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}

	// File-only settings.
	cfg.HeightMin = fromFile.HeightMin
	cfg.HeightMax = fromFile.HeightMax
	cfg.HalfCircle = fromFile.HalfCircle
	cfg.EdgeBlend = fromFile.EdgeBlend
	cfg.SentinelY = fromFile.SentinelY
	cfg.OceanWaves = fromFile.OceanWaves
	cfg.SaveOnExit = fromFile.SaveOnExit
	cfg.SpawnHeight = fromFile.SpawnHeight
}
