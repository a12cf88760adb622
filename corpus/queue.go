package corpus

import (
	"context"
	"log/slog"
	"os"
)

// Batch is one deferred upload: a session record plus the recordings that
// arrived with it.
type Batch struct {
	Session    *Session
	Recordings []BatchRecording
}

// BatchRecording pairs recording metadata with its raw audio bytes and the
// derived artifact filename.
type BatchRecording struct {
	Metadata *RecordingMetadata
	Audio    []byte
	Filename string
}

// Queue processes deferred upload batches on a single background worker.
// A batch is acknowledged before it is durable: a crash between Enqueue
// returning and the worker finishing silently loses that batch. The result
// channel makes this gap observable for callers that care; the HTTP path
// does not wait on it.
type Queue struct {
	store  *Store
	logger *slog.Logger
	jobs   chan job
	done   chan struct{}
}

type job struct {
	batch  *Batch
	result chan error
}

// NewQueue starts the worker goroutine. A nil logger falls back to a JSON
// logger on stderr.
func NewQueue(store *Store, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	q := &Queue{
		store:  store,
		logger: logger,
		jobs:   make(chan job, 64),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue hands a batch to the worker and returns a channel that receives
// the batch outcome exactly once. Must not be called after Close.
func (q *Queue) Enqueue(batch *Batch) <-chan error {
	result := make(chan error, 1)
	q.jobs <- job{batch: batch, result: result}
	return result
}

// Close drains pending batches and stops the worker.
func (q *Queue) Close() {
	close(q.jobs)
	<-q.done
}

func (q *Queue) run() {
	defer close(q.done)
	for j := range q.jobs {
		err := q.process(context.Background(), j.batch)
		if err != nil {
			q.logger.Error("deferred batch failed",
				"session_id", j.batch.Session.ID, "error", err)
		}
		j.result <- err
	}
}

// process persists the session, then each recording in order. The first
// failure aborts the remaining items of the batch; already-written records
// stay. Failures are logged by the worker and never retried.
func (q *Queue) process(ctx context.Context, batch *Batch) error {
	if _, err := q.store.SaveSession(ctx, batch.Session); err != nil {
		return err
	}
	for _, rec := range batch.Recordings {
		locator, err := q.store.SaveAudio(ctx, batch.Session.ID, rec.Filename, rec.Audio)
		if err != nil {
			return err
		}
		if _, err := q.store.SaveRecordingMetadata(ctx, rec.Metadata, locator); err != nil {
			return err
		}
	}
	q.logger.Info("processed deferred batch",
		"session_id", batch.Session.ID, "recordings", len(batch.Recordings))
	return nil
}
