package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/voicerunner/voicerunner/storage"
)

func TestMemoryBackend(t *testing.T) {
	ctx := context.Background()
	b := New()

	t.Run("PutAndGet", func(t *testing.T) {
		locator, err := b.Put(ctx, "sessions/s1.json", []byte("payload"), "application/json")
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if locator != "mem://sessions/s1.json" {
			t.Errorf("unexpected locator: %s", locator)
		}

		data, err := b.Get(ctx, "sessions/s1.json")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(data, []byte("payload")) {
			t.Errorf("Get returned wrong data: %s", data)
		}

		// Test isolation (cloning)
		data[0] = 'X'
		data2, _ := b.Get(ctx, "sessions/s1.json")
		if data2[0] == 'X' {
			t.Error("memory backend should return copies of stored blobs")
		}
	})

	t.Run("GetNotFound", func(t *testing.T) {
		_, err := b.Get(ctx, "sessions/missing.json")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		b.Put(ctx, "metadata/s1/p1_t1.json", []byte("a"), "application/json")
		b.Put(ctx, "metadata/s1/p2_t2.json", []byte("b"), "application/json")
		b.Put(ctx, "audio/s1/p1.webm", []byte("c"), "audio/webm")

		keys, err := b.List(ctx, "metadata/")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(keys) != 2 {
			t.Errorf("expected 2 metadata keys, got %d: %v", len(keys), keys)
		}

		keys, _ = b.List(ctx, "nonexistent/")
		if len(keys) != 0 {
			t.Errorf("expected 0 keys for missing prefix, got %d", len(keys))
		}
	})

	t.Run("OverwriteLastWriteWins", func(t *testing.T) {
		b.Put(ctx, "sessions/dup.json", []byte("first"), "application/json")
		b.Put(ctx, "sessions/dup.json", []byte("second"), "application/json")
		data, err := b.Get(ctx, "sessions/dup.json")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(data) != "second" {
			t.Errorf("expected last write to win, got %s", data)
		}
	})
}
