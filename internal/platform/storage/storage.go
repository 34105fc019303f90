// Package storage persists recipe and avatar media. Local disk is the
// default for development; GCS (real or emulator) is used in deployment.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type MediaStore interface {
	Upload(ctx context.Context, key string, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Mode string

const (
	ModeLocal       Mode = "local"
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
)

type Config struct {
	Mode         Mode
	LocalDir     string
	LocalBaseURL string
	BucketName   string
	CDNDomain    string
	EmulatorHost string
}

func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		Mode:         Mode(strings.TrimSpace(strings.ToLower(os.Getenv("MEDIA_STORAGE_MODE")))),
		LocalDir:     strings.TrimSpace(os.Getenv("MEDIA_LOCAL_DIR")),
		LocalBaseURL: strings.TrimSpace(os.Getenv("MEDIA_LOCAL_BASE_URL")),
		BucketName:   strings.TrimSpace(os.Getenv("GCS_BUCKET_NAME")),
		CDNDomain:    strings.TrimSpace(os.Getenv("CDN_DOMAIN")),
		EmulatorHost: strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")),
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeLocal
	}
	switch cfg.Mode {
	case ModeLocal:
		if cfg.LocalDir == "" {
			cfg.LocalDir = "./media"
		}
		if cfg.LocalBaseURL == "" {
			cfg.LocalBaseURL = "/media"
		}
	case ModeGCS:
		if cfg.BucketName == "" {
			return cfg, fmt.Errorf("MEDIA_STORAGE_MODE=%q requires GCS_BUCKET_NAME", cfg.Mode)
		}
	case ModeGCSEmulator:
		if cfg.BucketName == "" {
			return cfg, fmt.Errorf("MEDIA_STORAGE_MODE=%q requires GCS_BUCKET_NAME", cfg.Mode)
		}
		if cfg.EmulatorHost == "" {
			return cfg, fmt.Errorf("MEDIA_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST", cfg.Mode)
		}
		if _, err := url.ParseRequestURI(cfg.EmulatorHost); err != nil {
			return cfg, fmt.Errorf("invalid STORAGE_EMULATOR_HOST=%q: %w", cfg.EmulatorHost, err)
		}
	default:
		return cfg, fmt.Errorf("invalid MEDIA_STORAGE_MODE=%q (allowed: %q, %q, %q)",
			cfg.Mode, ModeLocal, ModeGCS, ModeGCSEmulator)
	}
	return cfg, nil
}

func New(log *logger.Logger, cfg Config) (MediaStore, error) {
	switch cfg.Mode {
	case ModeLocal:
		return NewLocalStore(log, cfg.LocalDir, cfg.LocalBaseURL)
	case ModeGCS, ModeGCSEmulator:
		return NewGCSStore(log, cfg)
	default:
		return nil, fmt.Errorf("unsupported media storage mode %q", cfg.Mode)
	}
}
