package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/voicerunner/voicerunner/storage"
)

// ErrWriteFailed is returned when persisting a record fails at the storage
// backend. The caller decides whether to retry.
var ErrWriteFailed = errors.New("record write failed")

// Store is the typed persistence layer for session and recording-metadata
// records on top of a storage backend.
type Store struct {
	backend storage.Backend
	logger  *slog.Logger
}

// NewStore returns a Store over the given backend. A nil logger falls back
// to a JSON logger on stderr.
func NewStore(backend storage.Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return &Store{backend: backend, logger: logger}
}

// SaveSession serializes the full session record to sessions/{id}.json,
// overwriting any prior version. Callers must supply the complete record;
// there is no partial-field update.
func (s *Store) SaveSession(ctx context.Context, session *Session) (string, error) {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding session %s: %w", session.ID, err)
	}
	locator, err := s.backend.Put(ctx, SessionKey(session.ID), data, "application/json")
	if err != nil {
		return "", fmt.Errorf("%w: session %s: %v", ErrWriteFailed, session.ID, err)
	}
	return locator, nil
}

// SaveAudio writes an audio blob and returns its locator.
func (s *Store) SaveAudio(ctx context.Context, sessionID, filename string, data []byte) (string, error) {
	locator, err := s.backend.Put(ctx, AudioKey(sessionID, filename), data, "audio/webm")
	if err != nil {
		return "", fmt.Errorf("%w: audio %s/%s: %v", ErrWriteFailed, sessionID, filename, err)
	}
	return locator, nil
}

// SaveRecordingMetadata merges the resolved audio locator into the metadata
// record and persists it under the session's metadata prefix. The input is
// not mutated.
func (s *Store) SaveRecordingMetadata(ctx context.Context, meta *RecordingMetadata, audioLocator string) (string, error) {
	rec := *meta
	rec.AudioPath = audioLocator
	data, err := json.MarshalIndent(&rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding recording %s/%s: %w", rec.SessionID, rec.PhraseID, err)
	}
	key := MetadataKey(rec.SessionID, rec.PhraseID, rec.TimestampUTC)
	locator, err := s.backend.Put(ctx, key, data, "application/json")
	if err != nil {
		return "", fmt.Errorf("%w: recording %s/%s: %v", ErrWriteFailed, rec.SessionID, rec.PhraseID, err)
	}
	return locator, nil
}

// ListSessions returns a lazy sequence over all persisted session records.
// Enumeration failure is returned up front; a record that fails to load or
// decode mid-scan is skipped with a logged warning, never fatal. Records
// written concurrently with the scan may or may not be included.
func (s *Store) ListSessions(ctx context.Context) (iter.Seq[*Session], error) {
	keys, err := s.backend.List(ctx, sessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return func(yield func(*Session) bool) {
		for _, key := range keys {
			var session Session
			if !s.loadRecord(ctx, key, &session) {
				continue
			}
			if !yield(&session) {
				return
			}
		}
	}, nil
}

// ListRecordings returns a lazy sequence over all persisted recording
// metadata records, with the same skip-and-warn semantics as ListSessions.
func (s *Store) ListRecordings(ctx context.Context) (iter.Seq[*RecordingMetadata], error) {
	keys, err := s.backend.List(ctx, metadataPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	return func(yield func(*RecordingMetadata) bool) {
		for _, key := range keys {
			var meta RecordingMetadata
			if !s.loadRecord(ctx, key, &meta) {
				continue
			}
			if !yield(&meta) {
				return
			}
		}
	}, nil
}

func (s *Store) loadRecord(ctx context.Context, key string, v any) bool {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("skipping unreadable record", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("skipping malformed record", "key", key, "error", err)
		return false
	}
	return true
}
