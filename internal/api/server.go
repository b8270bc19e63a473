// Package api exposes the extraction core over HTTP. The service is
// stateless: files arrive as multipart uploads, results go back in the
// response body, and nothing is persisted.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/murodjon05/text-extraction/internal/extract"
)

type Server struct {
	extractor      *extract.Extractor
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewServer(extractor *extract.Extractor, maxUploadBytes int64, logger *slog.Logger) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 50 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{extractor: extractor, maxUploadBytes: maxUploadBytes, logger: logger}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Route("/api", func(r chi.Router) {
		r.Post("/extract", s.extractFiles)
		r.Get("/formats", s.listFormats)
	})
	r.Get("/healthz", s.healthz)
	return r
}

func (s *Server) listFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, extract.Extensions())
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
