package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danilucaci/stylemap"
	"github.com/danilucaci/stylemap/pkg/tokens"
)

// Resolver defines the interface for the token resolution core.
type Resolver interface {
	GetFrom(ctx context.Context, sheet, path string) (any, error)
	Sheets() []string
	Sheet(name string) (tokens.Mapping, error)
	Flatten(ctx context.Context, sheet string) (map[string]any, error)
	CheckAliases(sheet string) []error
	Reload(ctx context.Context) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Server exposes a Resolver over HTTP.
type Server struct {
	Resolver Resolver
	Logger   *slog.Logger
}

// NewHandler creates a new HTTP handler for the resolver. The optional
// logger defaults to slog.Default().
func NewHandler(res Resolver, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{Resolver: res, Logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/sheets", server.ListSheets)
		r.Get("/sheets/{sheet}", server.GetSheet)
		r.Get("/sheets/{sheet}/lint", server.LintSheet)
		r.Get("/values/{path}", server.GetValue)
		r.Post("/resolve", server.ResolveBatch)
		r.Post("/reload", server.TriggerReload)
		r.Get("/events", server.SubscribeEvents)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListSheets handles the GET /v1/sheets request.
func (s *Server) ListSheets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"sheets": s.Resolver.Sheets()})
}

// GetSheet handles the GET /v1/sheets/{sheet} request.
// With ?flat=true the sheet is returned as resolved dotted paths.
func (s *Server) GetSheet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "sheet")

	if r.URL.Query().Get("flat") == "true" {
		flat, err := s.Resolver.Flatten(r.Context(), name)
		if err != nil {
			s.writeError(w, "Flatten", err)
			return
		}
		writeJSON(w, flat)
		return
	}

	doc, err := s.Resolver.Sheet(name)
	if err != nil {
		s.writeError(w, "GetSheet", err)
		return
	}
	writeJSON(w, doc)
}

// LintSheet handles the GET /v1/sheets/{sheet}/lint request. It reports
// broken or cyclic alias references without resolving values.
func (s *Server) LintSheet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "sheet")

	if _, err := s.Resolver.Sheet(name); err != nil {
		s.writeError(w, "LintSheet", err)
		return
	}

	errs := s.Resolver.CheckAliases(name)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	writeJSON(w, map[string]any{"sheet": name, "errors": msgs})
}

// GetValue handles the GET /v1/values/{path} request. The sheet is
// selected with ?sheet= and defaults to the resolver's default sheet.
func (s *Server) GetValue(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")
	sheet := r.URL.Query().Get("sheet")

	value, err := s.Resolver.GetFrom(r.Context(), sheet, path)
	if err != nil {
		s.writeError(w, "GetValue", err)
		return
	}

	writeJSON(w, map[string]any{
		"sheet": sheet,
		"path":  path,
		"value": value,
	})
}

// ResolveRequest is the body of POST /v1/resolve.
type ResolveRequest struct {
	Sheet string   `json:"sheet,omitempty"`
	Paths []string `json:"paths"`
}

// ResolveResponse maps each requested path to its value or error.
type ResolveResponse struct {
	Sheet  string            `json:"sheet,omitempty"`
	Values map[string]any    `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
}

// ResolveBatch handles the POST /v1/resolve request. Each path resolves
// independently; failures land in the errors map instead of aborting
// the batch.
func (s *Server) ResolveBatch(w http.ResponseWriter, r *http.Request) {
	var body ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("ResolveBatch: invalid request body", "err", err)
		return
	}
	if len(body.Paths) == 0 {
		http.Error(w, "At least one path is required", http.StatusBadRequest)
		return
	}

	resp := ResolveResponse{
		Sheet:  body.Sheet,
		Values: make(map[string]any, len(body.Paths)),
	}
	for _, path := range body.Paths {
		value, err := s.Resolver.GetFrom(r.Context(), body.Sheet, path)
		if err != nil {
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[path] = err.Error()
			continue
		}
		resp.Values[path] = value
	}
	writeJSON(w, resp)
}

// TriggerReload handles the POST /v1/reload request.
func (s *Server) TriggerReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Resolver.Reload(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Reload error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Reload failed", "err", err)
		return
	}
	writeJSON(w, map[string]string{"status": "reloaded"})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "stylemap-http",
		"version": strings.TrimSpace(stylemap.Version),
	})
}

// SubscribeEvents handles the GET /v1/events request (SSE). Each sheet
// reload is pushed to the client as a "reload" event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	events, err := s.Resolver.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE client disconnected")
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: sheets\n\n")
			flusher.Flush()
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, stylemap.ErrNotFound) || errors.Is(err, stylemap.ErrSheetNotFound) {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encodeErr != nil {
		s.Logger.Error("error response encode failed", "err", encodeErr)
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
