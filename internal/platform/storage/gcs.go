package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type gcsStore struct {
	log        *logger.Logger
	client     *gcs.Client
	bucketName string
	cdnDomain  string
}

func NewGCSStore(log *logger.Logger, cfg Config) (MediaStore, error) {
	storeLog := log.With("store", "GCSStore")

	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	if cfg.Mode == ModeGCSEmulator {
		// The GCS client picks the emulator up from the env var.
		if err := os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost); err != nil {
			return nil, err
		}
		opts = append(opts, option.WithoutAuthentication())
	} else if saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"); saPath != "" {
		opts = append(opts, option.WithCredentialsFile(saPath))
	} else {
		storeLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set; relying on ambient ADC")
	}

	client, err := gcs.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &gcsStore{
		log:        storeLog,
		client:     client,
		bucketName: cfg.BucketName,
		cdnDomain:  cfg.CDNDomain,
	}, nil
}

func (gs *gcsStore) Upload(ctx context.Context, key string, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := gs.client.Bucket(gs.bucketName).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer %q: %w", key, err)
	}
	return nil
}

func (gs *gcsStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := gs.client.Bucket(gs.bucketName).Object(key).Delete(ctx); err != nil {
		if err == gcs.ErrObjectNotExist {
			return nil
		}
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (gs *gcsStore) PublicURL(key string) string {
	if gs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", gs.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", gs.bucketName, key)
}
