package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.StorageType != StorageLocal {
		t.Errorf("expected default storage %q, got %q", StorageLocal, cfg.StorageType)
	}
	if cfg.LocalStoragePath != "./data" {
		t.Errorf("expected default base path ./data, got %q", cfg.LocalStoragePath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "r2")
	t.Setenv("R2_ENDPOINT", "https://example.r2.cloudflarestorage.com")
	t.Setenv("R2_BUCKET", "corpus-test")
	t.Setenv("R2_ACCESS_KEY", "ak")
	t.Setenv("R2_SECRET_KEY", "sk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.StorageType != StorageR2 {
		t.Errorf("expected storage r2, got %q", cfg.StorageType)
	}
	if cfg.R2Bucket != "corpus-test" {
		t.Errorf("expected bucket corpus-test, got %q", cfg.R2Bucket)
	}
}
