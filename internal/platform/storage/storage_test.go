package storage

import "testing"

func TestResolveConfigFromEnv_DefaultsToLocal(t *testing.T) {
	t.Setenv("MEDIA_STORAGE_MODE", "")
	t.Setenv("MEDIA_LOCAL_DIR", "")
	t.Setenv("MEDIA_LOCAL_BASE_URL", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Mode != ModeLocal {
		t.Fatalf("expected local mode, got %q", cfg.Mode)
	}
	if cfg.LocalDir == "" || cfg.LocalBaseURL == "" {
		t.Fatalf("expected local defaults, got %+v", cfg)
	}
}

func TestResolveConfigFromEnv_GCSRequiresBucket(t *testing.T) {
	t.Setenv("MEDIA_STORAGE_MODE", "gcs")
	t.Setenv("GCS_BUCKET_NAME", "")

	if _, err := ResolveConfigFromEnv(); err == nil {
		t.Fatalf("expected error without bucket name")
	}
}

func TestResolveConfigFromEnv_EmulatorRequiresHost(t *testing.T) {
	t.Setenv("MEDIA_STORAGE_MODE", "gcs_emulator")
	t.Setenv("GCS_BUCKET_NAME", "media")
	t.Setenv("STORAGE_EMULATOR_HOST", "")

	if _, err := ResolveConfigFromEnv(); err == nil {
		t.Fatalf("expected error without emulator host")
	}

	t.Setenv("STORAGE_EMULATOR_HOST", "http://fake-gcs:4443")
	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("resolve with host: %v", err)
	}
	if cfg.Mode != ModeGCSEmulator {
		t.Fatalf("expected emulator mode, got %q", cfg.Mode)
	}
}

func TestResolveConfigFromEnv_RejectsUnknownMode(t *testing.T) {
	t.Setenv("MEDIA_STORAGE_MODE", "s3")
	if _, err := ResolveConfigFromEnv(); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestLocalStorePublicURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(testLogger(t), dir, "/media/")
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	got := store.PublicURL("avatars/u1.png")
	if got != "/media/avatars/u1.png" {
		t.Fatalf("unexpected url %q", got)
	}
}
