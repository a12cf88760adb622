package local

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/voicerunner/voicerunner/storage"
)

func TestLocalBackend(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	b, err := New(base)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("PutAndGet", func(t *testing.T) {
		locator, err := b.Put(ctx, "sessions/s1.json", []byte(`{"id":"s1"}`), "application/json")
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if locator != filepath.Join(base, "sessions", "s1.json") {
			t.Errorf("unexpected locator: %s", locator)
		}
		if _, err := os.Stat(locator); err != nil {
			t.Errorf("locator does not point at a file: %v", err)
		}

		data, err := b.Get(ctx, "sessions/s1.json")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(data, []byte(`{"id":"s1"}`)) {
			t.Errorf("Get returned wrong data: %s", data)
		}
	})

	t.Run("CreatesIntermediateDirs", func(t *testing.T) {
		if _, err := b.Put(ctx, "audio/sess/phrase_20250101_120000.webm", []byte("blob"), "audio/webm"); err != nil {
			t.Fatalf("Put with nested key failed: %v", err)
		}
	})

	t.Run("GetNotFound", func(t *testing.T) {
		_, err := b.Get(ctx, "sessions/missing.json")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("OverwriteLastWriteWins", func(t *testing.T) {
		if _, err := b.Put(ctx, "sessions/dup.json", []byte("first"), "application/json"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if _, err := b.Put(ctx, "sessions/dup.json", []byte("second"), "application/json"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		data, err := b.Get(ctx, "sessions/dup.json")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(data) != "second" {
			t.Errorf("expected last write to win, got %s", data)
		}
	})

	t.Run("List", func(t *testing.T) {
		keys, err := b.List(ctx, "sessions/")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(keys) != 3 {
			t.Errorf("expected 3 session keys, got %d: %v", len(keys), keys)
		}
		for _, k := range keys {
			if k[:9] != "sessions/" {
				t.Errorf("key outside prefix: %s", k)
			}
		}
	})

	t.Run("ListMissingPrefix", func(t *testing.T) {
		keys, err := b.List(ctx, "metadata/")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(keys) != 0 {
			t.Errorf("expected no keys, got %v", keys)
		}
	})

	t.Run("NoTempFilesLeftBehind", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(base, "sessions"))
		if err != nil {
			t.Fatalf("reading sessions dir: %v", err)
		}
		for _, e := range entries {
			if e.Name()[0] == '.' {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})
}
