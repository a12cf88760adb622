package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voicerunner/voicerunner/corpus"
	"github.com/voicerunner/voicerunner/internal/uuid"
)

const (
	// maxAudioSize is the inclusive cap on one audio artifact.
	maxAudioSize = 5 << 20

	// maxUploadBodySize bounds a whole-session upload, which may carry a
	// deferred batch of audio parts alongside the session JSON.
	maxUploadBodySize = 64 << 20

	// maxAudioBodySize bounds a single-recording upload: one capped audio
	// blob plus form fields and multipart framing. Oversize audio must
	// reach the explicit size check, so this is deliberately larger than
	// maxAudioSize.
	maxAudioBodySize = 8 << 20
)

// Root handles GET /. Liveness probe.
func (a *API) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Service: "Voice Runner API",
		Version: Version,
	})
}

// Health handles GET /api/health.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Storage:   a.storageMode,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// UploadSession handles POST /api/upload.
//
// The form field "session" carries the session record as a JSON string.
// Clients may attach recordings as audio_N file parts with matching
// audio_N_meta JSON fields; when present, the whole batch is handed to the
// background queue and the response is sent before anything is durable.
// The response reports zero recordings received in either case — the count
// has never reflected attached audio and downstream consumers rely on the
// session-only contract.
func (a *API) UploadSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)
	if err := r.ParseMultipartForm(maxUploadBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	raw := r.FormValue("session")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "session field is required")
		return
	}
	var session corpus.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid session JSON: %v", err))
		return
	}
	if session.ID == "" {
		session.ID = uuid.New()
	}

	batch, ok := a.collectBatch(w, r, &session)
	if !ok {
		return
	}

	if batch != nil {
		a.queue.Enqueue(batch)
	} else if _, err := a.store.SaveSession(r.Context(), &session); err != nil {
		a.writeInternalError(w, "upload failed", err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success:            true,
		SessionID:          session.ID,
		RecordingsReceived: 0,
		Message:            "Session uploaded successfully",
	})
}

// collectBatch gathers audio_N/audio_N_meta pairs from the parsed multipart
// form. It returns (nil, true) when the form carries no audio parts. On a
// client error it writes the response and returns ok=false.
func (a *API) collectBatch(w http.ResponseWriter, r *http.Request, session *corpus.Session) (*corpus.Batch, bool) {
	if r.MultipartForm == nil {
		return nil, true
	}

	batch := &corpus.Batch{Session: session}
	for i := 0; ; i++ {
		files := r.MultipartForm.File[fmt.Sprintf("audio_%d", i)]
		if len(files) == 0 {
			break
		}
		metaRaw := r.FormValue(fmt.Sprintf("audio_%d_meta", i))
		if metaRaw == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("audio_%d_meta field is required", i))
			return nil, false
		}
		var meta corpus.RecordingMetadata
		if err := json.Unmarshal([]byte(metaRaw), &meta); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid audio_%d_meta JSON: %v", i, err))
			return nil, false
		}

		f, err := files[0].Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("reading audio_%d: %v", i, err))
			return nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("reading audio_%d: %v", i, err))
			return nil, false
		}
		if len(data) > maxAudioSize {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("audio_%d too large (max 5 MiB)", i))
			return nil, false
		}

		batch.Recordings = append(batch.Recordings, corpus.BatchRecording{
			Metadata: &meta,
			Audio:    data,
			Filename: corpus.AudioFilename(meta.PhraseID, time.Now()),
		})
	}

	if len(batch.Recordings) == 0 {
		return nil, true
	}
	return batch, true
}

// UploadAudio handles POST /api/upload/audio.
//
// The audio blob is written before the metadata is parsed and persisted, so
// a metadata failure after a successful audio write leaves an orphaned blob.
// That is accepted; reconciliation is out of band.
func (a *API) UploadAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBodySize)
	if err := r.ParseMultipartForm(maxAudioBodySize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	sessionID := r.FormValue("session_id")
	phraseID := r.FormValue("phrase_id")
	metaRaw := r.FormValue("metadata")
	if sessionID == "" || phraseID == "" || metaRaw == "" {
		writeError(w, http.StatusBadRequest, "session_id, phrase_id, and metadata fields are required")
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio file")
		return
	}
	if len(data) > maxAudioSize {
		writeError(w, http.StatusBadRequest, "audio file too large (max 5 MiB)")
		return
	}

	filename := corpus.AudioFilename(phraseID, time.Now())
	locator, err := a.store.SaveAudio(r.Context(), sessionID, filename, data)
	if err != nil {
		a.writeInternalError(w, "upload failed", err)
		return
	}

	var meta corpus.RecordingMetadata
	if err := json.Unmarshal([]byte(metaRaw), &meta); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid metadata JSON: %v", err))
		return
	}
	if _, err := a.store.SaveRecordingMetadata(r.Context(), &meta, locator); err != nil {
		a.writeInternalError(w, "upload failed", err)
		return
	}

	writeJSON(w, http.StatusOK, UploadAudioResponse{
		Success:   true,
		AudioPath: locator,
		SizeBytes: len(data),
	})
}

// Stats handles GET /api/stats.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	report, err := a.store.Stats(r.Context())
	if err != nil {
		a.writeInternalError(w, "failed to compute stats", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Export handles GET /api/export.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.store.Export(r.Context())
	if err != nil {
		a.writeInternalError(w, "export failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
