package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

// Fetch retrieves a single config file from src into dir and returns its
// local path. src is anything go-getter understands: a local path, an
// http(s) URL, git::, s3:: or gcs:: sources.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}

	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}

	dst := filepath.Join(dir, "fetched-config.json")
	client := &get.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: get.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch config %s: %w", src, err)
	}
	return dst, nil
}

// FetchDir retrieves a directory tree (e.g. a set of presets) from src into dir.
func FetchDir(ctx context.Context, src, dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear %s: %w", dir, err)
	}
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	client := &get.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dir,
		Pwd:  pwd,
		Mode: get.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch %s: %w", src, err)
	}
	return nil
}
