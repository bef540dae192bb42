package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
)

// Files kept in the viewer's data directory.
const (
	configFile = "config.json"
	cameraFile = "camera.json"
)

// Storage is the viewer's data directory: the settings it was last run with
// and where the camera stood. Terrain is never written; the seed regenerates it.
type Storage struct {
	dir string
	log *slog.Logger
}

// New opens the data directory at dir, creating it as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadConfig overlays the saved viewer settings onto cfg. A data directory
// without saved settings leaves cfg at its defaults.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	found, err := s.readJSON(configFile, cfg)
	if err != nil || !found {
		return err
	}
	s.log.Info("restored viewer settings", "seed", cfg.Seed, "dir", s.dir)
	return nil
}

// SaveConfig records the settings of the current session.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	return s.writeJSON(configFile, cfg)
}

// LoadCamera returns the saved camera pose, or nil if none was saved.
func (s *Storage) LoadCamera() (*CameraData, error) {
	var cd CameraData
	found, err := s.readJSON(cameraFile, &cd)
	if err != nil || !found {
		return nil, err
	}
	s.log.Info("restored camera", "eye", cd.Eye, "physics", cd.Physics)
	return &cd, nil
}

// SaveCamera records the camera pose.
func (s *Storage) SaveCamera(cd *CameraData) error {
	return s.writeJSON(cameraFile, cd)
}

// readJSON decodes the named file into v. A missing file is not an error.
func (s *Storage) readJSON(name string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

// writeJSON replaces the named file with v. Readers see either the old
// contents or the new, never a partial write.
func (s *Storage) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	data = append(data, '\n')

	f, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
