package imagestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Local stores images on the local filesystem under a base directory.
// Suitable for development and single-node deployments.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	slog.Info("image store ready",
		slog.String("backend", "local"),
		slog.String("dir", baseDir))
	return &Local{baseDir: baseDir}, nil
}

func (s *Local) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	name, err := objectName(filename, contentType)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return name, nil
}

func (s *Local) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	// Reject anything that would escape the base directory.
	if filepath.Base(path) != path {
		return fmt.Errorf("invalid image path: %s", path)
	}
	if err := os.Remove(filepath.Join(s.baseDir, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
