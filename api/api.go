// Package api implements the HTTP surface of the corpus service.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/voicerunner/voicerunner/corpus"
)

// Version reported by the status endpoint.
const Version = "1.0.0"

//go:embed openapi.yaml
var openapiSpec []byte

// API holds the dependencies needed by the REST handlers.
type API struct {
	store       *corpus.Store
	queue       *corpus.Queue
	storageMode string
	logger      *slog.Logger
}

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for request handling.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// New creates a new API instance. storageMode is the configured backend
// selector, reported by the health endpoint.
func New(store *corpus.Store, queue *corpus.Queue, storageMode string, opts ...Option) *API {
	a := &API{
		store:       store,
		queue:       queue,
		storageMode: storageMode,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return a
}

// Router returns a chi.Router with all API routes mounted. Callers mount it
// under /api.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/openapi.yaml",
		Path:    "api/docs",
	}, nil))

	r.Get("/health", a.Health)
	r.Post("/upload", a.UploadSession)
	r.Post("/upload/audio", a.UploadAudio)
	r.Get("/stats", a.Stats)
	r.Get("/export", a.Export)

	return r
}
