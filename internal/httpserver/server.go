// Package httpserver is the bot's HTTP side server: a health check for the
// deployment and the preview handles of attached images.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// FileFetcher downloads a photo Telegram already stores.
type FileFetcher func(ctx context.Context, fileID string) ([]byte, error)

type Server struct {
	store    Pinger
	previews *capture.PreviewStore
	fetch    FileFetcher
}

// New builds the side server. fetch may be nil, in which case previews that
// only carry a Telegram file id are reported as not found.
func New(store Pinger, previews *capture.PreviewStore, fetch FileFetcher) *Server {
	return &Server{store: store, previews: previews, fetch: fetch}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/previews/{handle}", s.preview)
	return r
}

// HTTP returns an *http.Server for addr with the router mounted.
func (s *Server) HTTP(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	p, err := s.previews.Get(chi.URLParam(r, "handle"))
	if errors.Is(err, domain.ErrPreviewNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "preview not found"})
		return
	}

	data := p.Data
	if len(data) == 0 && p.FileID != "" && s.fetch != nil {
		data, err = s.fetch(r.Context(), p.FileID)
		if err != nil {
			slog.Error("fetch preview", "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "preview download failed"})
			return
		}
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "preview not found"})
		return
	}

	w.Header().Set("Content-Type", p.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
