package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestLocalStore_UploadDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(testLogger(t), dir, "/media")
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	if err := store.Upload(ctx, "recipes/r1.png", "image/png", strings.NewReader("png-bytes")); err != nil {
		t.Fatalf("upload: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "recipes", "r1.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, "recipes/r1.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "recipes", "r1.png")); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone, got %v", err)
	}

	// Deleting a missing key is a no-op.
	if err := store.Delete(ctx, "recipes/missing.png"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestLocalStore_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(testLogger(t), dir, "/media")
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	err = store.Upload(context.Background(), "../outside.png", "image/png", strings.NewReader("x"))
	if err != nil {
		// Rejecting outright is fine too.
		return
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "outside.png")); statErr == nil {
		t.Fatalf("upload escaped the media dir")
	}
}
