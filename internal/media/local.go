package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gift-registry/internal/config"
)

// LocalStore writes images to a directory that the HTTP server serves as
// static files. Default backend for single-host deployments.
type LocalStore struct {
	root    string
	urlRoot string
}

func NewLocalStore(cfg *config.LocalMedia) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{
		root:    cfg.Path,
		urlRoot: strings.TrimSuffix(cfg.URL, "/"),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, path string, contentType string, body io.Reader) (string, error) {
	// path comes from ObjectPath, but never trust it blindly.
	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid media path %q", path)
	}

	full := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(full)
		return "", err
	}

	return s.urlRoot + "/" + filepath.ToSlash(clean), nil
}
