package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type localStore struct {
	log     *logger.Logger
	dir     string
	baseURL string
}

func NewLocalStore(log *logger.Logger, dir, baseURL string) (MediaStore, error) {
	storeLog := log.With("store", "LocalStore")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %q: %w", dir, err)
	}
	return &localStore{log: storeLog, dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// cleanKey rejects keys that would escape the media dir.
func (ls *localStore) cleanKey(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if cleaned == "/" {
		return "", fmt.Errorf("empty media key")
	}
	return filepath.Join(ls.dir, cleaned), nil
}

func (ls *localStore) Upload(ctx context.Context, key string, contentType string, r io.Reader) error {
	path, err := ls.cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create media subdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create media file %q: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write media file %q: %w", key, err)
	}
	return f.Close()
}

func (ls *localStore) Delete(ctx context.Context, key string) error {
	path, err := ls.cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file %q: %w", key, err)
	}
	return nil
}

func (ls *localStore) PublicURL(key string) string {
	return ls.baseURL + "/" + strings.TrimLeft(key, "/")
}
