package corpus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/voicerunner/voicerunner/storage"
	"github.com/voicerunner/voicerunner/storage/memory"
)

func waitResult(t *testing.T, result <-chan error) error {
	t.Helper()
	select {
	case err := <-result:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for batch result")
		return nil
	}
}

func TestQueueProcessesBatch(t *testing.T) {
	s := NewStore(memory.New(), testLogger())
	q := NewQueue(s, testLogger())
	defer q.Close()

	batch := &Batch{
		Session: sampleSession("sess-1"),
		Recordings: []BatchRecording{
			{
				Metadata: sampleRecording("sess-1", "p1", "2025-06-01T10:00:00Z"),
				Audio:    []byte("blob-1"),
				Filename: "p1_20250601_100000.webm",
			},
			{
				Metadata: sampleRecording("sess-1", "p2", "2025-06-01T10:00:05Z"),
				Audio:    []byte("blob-2"),
				Filename: "p2_20250601_100005.webm",
			},
		},
	}

	if err := waitResult(t, q.Enqueue(batch)); err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	if got := len(collectSessions(t, s)); got != 1 {
		t.Errorf("expected 1 session, got %d", got)
	}
	recs := collectRecordings(t, s)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recordings, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.AudioPath == "" {
			t.Errorf("recording %s missing audio locator", rec.PhraseID)
		}
	}
}

func TestQueueFailureAbortsRemainingItems(t *testing.T) {
	// Audio writes fail, so the first recording aborts the batch after the
	// session was already persisted.
	backend := &failingBackend{Backend: memory.New(), failPrefix: "audio/"}
	s := NewStore(backend, testLogger())
	q := NewQueue(s, testLogger())
	defer q.Close()

	batch := &Batch{
		Session: sampleSession("sess-1"),
		Recordings: []BatchRecording{
			{Metadata: sampleRecording("sess-1", "p1", "2025-06-01T10:00:00Z"), Audio: []byte("x"), Filename: "p1.webm"},
			{Metadata: sampleRecording("sess-1", "p2", "2025-06-01T10:00:05Z"), Audio: []byte("y"), Filename: "p2.webm"},
		},
	}

	err := waitResult(t, q.Enqueue(batch))
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}

	// The session write preceded the failure and stays.
	if got := len(collectSessions(t, s)); got != 1 {
		t.Errorf("expected session to be persisted, got %d", got)
	}
	// No metadata was written for either recording.
	if got := len(collectRecordings(t, s)); got != 0 {
		t.Errorf("expected no recordings after abort, got %d", got)
	}
}

func TestQueueCloseDrainsPending(t *testing.T) {
	s := NewStore(memory.New(), testLogger())
	q := NewQueue(s, testLogger())

	var results []<-chan error
	for i := range 5 {
		batch := &Batch{Session: sampleSession(string(rune('a' + i)))}
		results = append(results, q.Enqueue(batch))
	}
	q.Close()

	for _, r := range results {
		select {
		case err := <-r:
			if err != nil {
				t.Errorf("batch failed: %v", err)
			}
		default:
			t.Error("Close returned before a pending batch completed")
		}
	}

	if got := len(collectSessions(t, s)); got != 5 {
		t.Errorf("expected 5 sessions after drain, got %d", got)
	}
}

func TestQueueAcknowledgesBeforeDurability(t *testing.T) {
	// A slow backend must not block Enqueue: acknowledgment precedes
	// persistence by contract.
	block := make(chan struct{})
	backend := &blockingBackend{Backend: memory.New(), release: block}
	s := NewStore(backend, testLogger())
	q := NewQueue(s, testLogger())

	start := time.Now()
	result := q.Enqueue(&Batch{Session: sampleSession("slow")})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Enqueue blocked for %v", elapsed)
	}

	select {
	case <-result:
		t.Fatal("batch completed before backend write was released")
	case <-time.After(50 * time.Millisecond):
	}

	close(block)
	if err := waitResult(t, result); err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	q.Close()
}

// blockingBackend stalls every Put until release is closed.
type blockingBackend struct {
	storage.Backend
	release chan struct{}
}

func (b *blockingBackend) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	<-b.release
	return b.Backend.Put(ctx, key, data, contentType)
}
