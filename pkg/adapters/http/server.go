package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/aretw0/functree/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// MaxStreamCount caps the number of fixtures a single /stream request may ask for.
const MaxStreamCount = 1000

// Generator defines what the HTTP server needs from the generation core.
type Generator interface {
	Generate(preset string, seed *uint64) (domain.Fixture, error)
	Presets() []grammar.Policy
}

// Server exposes fixture generation over HTTP.
type Server struct {
	Generator Generator
	Store     ports.CorpusStore
	Metrics   http.Handler
	Logger    *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithStore enables the /fixtures routes and ?save=true on /fixture.
func WithStore(store ports.CorpusStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the generator.
func NewHandler(gen Generator, opts ...Option) http.Handler {
	server := &Server{Generator: gen}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return enableCORS(newRouter(server))
}

// newRouter mounts every route documented in openapi.yaml that server can serve.
func newRouter(server *Server) chi.Router {
	r := chi.NewRouter()
	r.Get("/openapi.yaml", server.getOpenAPI)
	r.Get("/swagger", server.getSwaggerUI)
	r.Get("/fixture", server.GetFixture)
	r.Get("/stream", server.StreamFixtures)
	r.Get("/presets", server.GetPresets)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.Store != nil {
		r.Get("/fixtures", server.ListFixtures)
		r.Get("/fixtures/{id}", server.GetStoredFixture)
	}
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// fixtureParams are the query parameters shared by /fixture and /stream.
type fixtureParams struct {
	preset string
	seed   *uint64
	format functree.Format
	save   bool
	count  int
}

// bindQuery binds one optional form-style query parameter into dest.
func bindQuery(r *http.Request, name string, dest interface{}) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid parameter %s: %w", name, err)
	}
	return nil
}

func parseFixtureParams(r *http.Request) (fixtureParams, error) {
	p := fixtureParams{preset: grammar.PresetGeneral, count: 10}

	var preset, format *string
	var save *bool
	var count *int
	if err := bindQuery(r, "preset", &preset); err != nil {
		return p, err
	}
	if err := bindQuery(r, "seed", &p.seed); err != nil {
		return p, err
	}
	if err := bindQuery(r, "format", &format); err != nil {
		return p, err
	}
	if err := bindQuery(r, "save", &save); err != nil {
		return p, err
	}
	if err := bindQuery(r, "count", &count); err != nil {
		return p, err
	}

	if preset != nil && *preset != "" {
		p.preset = *preset
	}
	if save != nil {
		p.save = *save
	}
	if count != nil {
		p.count = *count
	}

	name := ""
	if format != nil {
		name = *format
	}
	var err error
	p.format, err = functree.ParseFormat(name)
	return p, err
}

// statusFor maps generation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownPreset),
		errors.Is(err, domain.ErrInvalidPolicy),
		errors.Is(err, functree.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFixtureNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// GetFixture handles the GET /fixture request.
func (s *Server) GetFixture(w http.ResponseWriter, r *http.Request) {
	params, err := parseFixtureParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("GetFixture: invalid parameters", "error", err)
		return
	}

	fx, err := s.Generator.Generate(params.preset, params.seed)
	if err != nil {
		http.Error(w, fmt.Sprintf("Generate error: %v", err), statusFor(err))
		s.Logger.Warn("GetFixture: generation failed", "preset", params.preset, "error", err)
		return
	}

	if params.save {
		if s.Store == nil {
			http.Error(w, "no corpus store configured", http.StatusBadRequest)
			return
		}
		created, err := s.Store.Save(r.Context(), fx)
		if err != nil {
			http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
			s.Logger.Error("GetFixture: save failed", "id", fx.ID, "error", err)
			return
		}
		w.Header().Set("X-Fixture-Created", strconv.FormatBool(created))
	}

	s.writeFixture(w, fx, params.format)
}

func (s *Server) writeFixture(w http.ResponseWriter, fx domain.Fixture, format functree.Format) {
	text, err := functree.Render(fx, format)
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("render failed", "id", fx.ID, "error", err)
		return
	}

	w.Header().Set("X-Fixture-ID", fx.ID)
	if format == functree.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	io.WriteString(w, text+"\n")
}

// StreamFixtures handles the GET /stream request (SSE).
// It sends count fixtures (seeds seed, seed+1, ... when a seed is given) as
// "fixture" events with the rendered text as data, then a "done" event.
func (s *Server) StreamFixtures(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("StreamFixtures: Streaming not supported")
		return
	}

	params, err := parseFixtureParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	count := params.count
	if count < 1 || count > MaxStreamCount {
		http.Error(w, fmt.Sprintf("count must be within [1, %d]", MaxStreamCount), http.StatusBadRequest)
		return
	}
	if params.format == functree.FormatJSON || params.format == functree.FormatMermaid {
		http.Error(w, "stream supports single-line formats only", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for i := 0; i < count; i++ {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected", "sent", i)
			return
		default:
		}

		var seed *uint64
		if params.seed != nil {
			v := *params.seed + uint64(i)
			seed = &v
		}
		fx, err := s.Generator.Generate(params.preset, seed)
		if err != nil {
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", strings.ReplaceAll(err.Error(), "\n", " "))
			flusher.Flush()
			return
		}
		text, err := functree.Render(fx, params.format)
		if err != nil {
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", err.Error())
			flusher.Flush()
			return
		}
		fmt.Fprintf(w, "event: fixture\nid: %s\ndata: %s\n\n", fx.ID, text)
		flusher.Flush()
	}

	fmt.Fprintf(w, "event: done\ndata: %d\n\n", count)
	flusher.Flush()
}

// GetPresets handles the GET /presets request.
func (s *Server) GetPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, s.Generator.Presets())
}

// ListFixtures handles the GET /fixtures request.
func (s *Server) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("ListFixtures failed", "error", err)
		return
	}
	writeJSON(w, s.Logger, ids)
}

// GetStoredFixture handles the GET /fixtures/{id} request.
func (s *Server) GetStoredFixture(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid parameter id: %v", err), http.StatusBadRequest)
		return
	}
	params, err := parseFixtureParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fx, err := s.Store.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.writeFixture(w, fx, params.format)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, 0, len(functree.Formats()))
	for _, f := range functree.Formats() {
		formats = append(formats, string(f))
	}
	presets := s.Generator.Presets()
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, s.Logger, map[string]any{
		"app":         "functree-http",
		"version":     strings.TrimSpace(functree.Version),
		"api_version": apiVersion,
		"formats":     formats,
		"presets":     names,
		"store":       s.Store != nil,
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
