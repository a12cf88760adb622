package api

// StatusResponse is returned from GET /.
type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// HealthResponse is returned from GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}

// UploadResponse is returned from POST /api/upload.
type UploadResponse struct {
	Success            bool   `json:"success"`
	SessionID          string `json:"sessionId"`
	RecordingsReceived int    `json:"recordingsReceived"`
	Message            string `json:"message"`
}

// UploadAudioResponse is returned from POST /api/upload/audio.
type UploadAudioResponse struct {
	Success   bool   `json:"success"`
	AudioPath string `json:"audioPath"`
	SizeBytes int    `json:"sizeBytes"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
