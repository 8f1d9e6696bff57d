// Package server serves an interactive map over HTTP.
//
// The server holds one decoded document. The root route serves the same
// self-contained page the HTML sink writes to disk; the API routes expose
// the document payload and the settled layout snapshot as JSON.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/observability"
	"github.com/matzehuels/memstack/pkg/pipeline"
	"github.com/matzehuels/memstack/pkg/render/stack/sink"
)

// Server serves one document.
type Server struct {
	doc    io.Document
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New builds the server for a decoded document. The pipeline options carry
// the theme and layout settings the routes render with.
func New(doc io.Document, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{doc: doc, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/nodes", s.handleNodes)
		r.Get("/layout", s.handleLayout)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler, for mounting or for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("serving map", "addr", addr, "document", s.doc.DocumentID)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	artifacts, err := pipeline.RenderFromLayout(s.doc, withFormats(s.opts, pipeline.FormatHTML))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(artifacts[pipeline.FormatHTML])
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, s.doc)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, snapshotFor(s.doc, s.opts))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, map[string]string{"status": "ok", "document": s.doc.DocumentID})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	status := http.StatusInternalServerError
	if errors.Is(err, errors.ErrCodeDocumentNotFound) || errors.Is(err, errors.ErrCodeNotFound) {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": errors.UserMessage(err)})
}

// observe reports request events to the registered server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func snapshotFor(doc io.Document, opts pipeline.Options) sink.Snapshot {
	snap, _ := pipeline.GenerateLayout(doc, opts)
	return snap
}

func withFormats(opts pipeline.Options, formats ...string) pipeline.Options {
	opts.Formats = formats
	return opts
}
