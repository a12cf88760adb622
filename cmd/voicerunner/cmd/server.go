package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/voicerunner/voicerunner/api"
	"github.com/voicerunner/voicerunner/config"
	"github.com/voicerunner/voicerunner/corpus"
	"github.com/voicerunner/voicerunner/storage"
	boltstorage "github.com/voicerunner/voicerunner/storage/bolt"
	"github.com/voicerunner/voicerunner/storage/local"
	"github.com/voicerunner/voicerunner/storage/s3"
)

var portOverride int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the corpus collection server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if portOverride != 0 {
			cfg.Port = portOverride
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		backend, closeBackend, err := buildBackend(cfg)
		if err != nil {
			return err
		}
		if closeBackend != nil {
			defer closeBackend()
		}

		store := corpus.NewStore(backend, logger)
		queue := corpus.NewQueue(store, logger)

		a := api.New(store, queue, cfg.StorageType, api.WithLogger(logger))

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Get("/", a.Root)
		r.Mount("/api", a.Router())

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Starting server on port %d (storage: %s)...\n", cfg.Port, cfg.StorageType)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			// Drain deferred batches that were acknowledged but not yet
			// persisted.
			queue.Close()
			return nil
		case err := <-done:
			queue.Close()
			return err
		}
	},
}

// buildBackend constructs the process-wide storage backend selected by
// STORAGE_TYPE. The returned close function is nil for backends without
// resources to release.
func buildBackend(cfg *config.Config) (storage.Backend, func() error, error) {
	switch cfg.StorageType {
	case config.StorageLocal:
		backend, err := local.New(cfg.LocalStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening local storage: %w", err)
		}
		return backend, nil, nil
	case config.StorageR2:
		if cfg.R2Endpoint == "" {
			return nil, nil, errors.New("R2_ENDPOINT is required for r2 storage")
		}
		backend, err := s3.New(s3.Config{
			Endpoint:  cfg.R2Endpoint,
			Bucket:    cfg.R2Bucket,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening object store: %w", err)
		}
		return backend, nil, nil
	case config.StorageBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating bolt directory: %w", err)
		}
		backend, err := boltstorage.New(cfg.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening bolt storage: %w", err)
		}
		return backend, backend.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&portOverride, "port", "p", 0, "Port to listen on (overrides PORT)")
}
