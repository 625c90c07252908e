package backup_storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/khoahotran/portfolio/internal/application/service"
)

type localAdapter struct {
	root string
}

// NewLocalAdapter keeps backups under root, mirroring the folder layout used
// for remote storage.
func NewLocalAdapter(root string) service.Uploader {
	return &localAdapter{root: root}
}

func (a *localAdapter) path(folder, publicID string) string {
	return filepath.Join(a.root, filepath.FromSlash(folder), filepath.FromSlash(publicID))
}

func (a *localAdapter) Upload(_ context.Context, file io.Reader, folder string, publicID string) (string, error) {
	dst := a.path(folder, publicID)
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	if _, err := io.Copy(f, file); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup file: %w", err)
	}
	return dst, nil
}

// Delete takes a path relative to root, as in "<folder>/<publicID>".
func (a *localAdapter) Delete(_ context.Context, publicID string) error {
	err := os.Remove(filepath.Join(a.root, filepath.FromSlash(publicID)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete backup file: %w", err)
	}
	return nil
}
