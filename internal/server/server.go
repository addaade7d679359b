// Package server exposes the normalizer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"textnorm/internal/config"
	"textnorm/internal/service"
)

// WordStore persists user-added words.
type WordStore interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	All(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// BuildFunc loads a fresh normalizer.
type BuildFunc func(ctx context.Context) (*service.Normalizer, error)

type Server struct {
	build  BuildFunc
	words  WordStore
	logger *slog.Logger
	mux    *http.ServeMux

	current  atomic.Pointer[service.Normalizer]
	reloadMu sync.Mutex
}

// New builds the first normalizer and registers the routes. words may be
// nil, which disables the custom word endpoints.
func New(ctx context.Context, build BuildFunc, words WordStore, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		build:  build,
		words:  words,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	n, err := build(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(n)
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("POST /api/v1/normalize", s.handleNormalize)
	s.mux.HandleFunc("POST /api/v1/correct", s.handleCorrect)
	s.mux.HandleFunc("POST /api/v1/compound", s.handleCompound)
	s.mux.HandleFunc("POST /api/v1/custom-word", s.handleAddWord)
	s.mux.HandleFunc("DELETE /api/v1/custom-word/{word}", s.handleRemoveWord)
	s.mux.HandleFunc("POST /api/v1/reload", s.handleReload)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *Server) Handler() http.Handler { return s.mux }

// Normalizer returns the normalizer currently serving requests.
func (s *Server) Normalizer() *service.Normalizer { return s.current.Load() }

// Reload builds a new normalizer and swaps it in. Requests in flight keep
// the one they started with. Concurrent reloads run one after another.
func (s *Server) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	n, err := s.build(ctx)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.current.Store(n)
	s.logger.Info("normalizer reloaded", "duration", time.Since(start))
	return nil
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
